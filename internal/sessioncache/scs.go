package sessioncache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

// SessionScoped keeps the record inside the caller's scs session, giving
// every browser session its own slot. The context passed to its methods
// must carry a session loaded by SessionManager.LoadAndSave.
//
// Concurrent requests of one browser session each hold their own copy of
// the session data. Get therefore reads the slot from the session store
// and Set and Clear commit at once, so that a request sees writes made by
// another one after it loaded its copy.
type SessionScoped struct {
	sessionManager *scs.SessionManager
}

func NewSessionScoped(sessionManager *scs.SessionManager) *SessionScoped {
	return &SessionScoped{sessionManager: sessionManager}
}

func (s *SessionScoped) Get(ctx context.Context, purpose domain.CachePurpose) (*domain.CachedSessionRecord, error) {
	key := sessionKey(purpose)

	data, stored, err := s.storedBytes(ctx, key)
	if err != nil {
		return nil, err
	}

	if stored {
		s.syncRequestCopy(ctx, key, data)
	} else {
		data = s.sessionManager.GetBytes(ctx, key)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var record domain.CachedSessionRecord

	err = json.Unmarshal(data, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached session: %w", err)
	}

	return &record, nil
}

func (s *SessionScoped) Set(ctx context.Context, purpose domain.CachePurpose, record domain.CachedSessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cached session: %w", err)
	}

	s.sessionManager.Put(ctx, sessionKey(purpose), data)

	return s.commit(ctx)
}

func (s *SessionScoped) Clear(ctx context.Context, purpose domain.CachePurpose) error {
	s.sessionManager.Remove(ctx, sessionKey(purpose))

	return s.commit(ctx)
}

// storedBytes reads key from the session as last committed to the store.
// stored is false when the session has no token or is not in the store
// yet; the request's copy is then the only one.
func (s *SessionScoped) storedBytes(ctx context.Context, key string) (data []byte, stored bool, err error) {
	token := s.sessionManager.Token(ctx)
	if token == "" {
		return nil, false, nil
	}

	var b []byte
	var found bool

	if store, ok := s.sessionManager.Store.(scs.CtxStore); ok {
		b, found, err = store.FindCtx(ctx, token)
	} else {
		b, found, err = s.sessionManager.Store.Find(token)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read browser session: %w", err)
	}

	if !found {
		return nil, false, nil
	}

	_, values, err := s.sessionManager.Codec.Decode(b)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode browser session: %w", err)
	}

	data, _ = values[key].([]byte)

	return data, true, nil
}

// syncRequestCopy brings the request's copy of key in line with the store,
// so that committing the request later does not restore an older value.
func (s *SessionScoped) syncRequestCopy(ctx context.Context, key string, data []byte) {
	current := s.sessionManager.GetBytes(ctx, key)
	if string(current) == string(data) {
		return
	}

	if len(data) == 0 {
		s.sessionManager.Remove(ctx, key)
		return
	}

	s.sessionManager.Put(ctx, key, data)
}

func (s *SessionScoped) commit(ctx context.Context) error {
	_, _, err := s.sessionManager.Commit(ctx)
	if err != nil {
		return fmt.Errorf("failed to save browser session: %w", err)
	}

	return nil
}

func sessionKey(purpose domain.CachePurpose) string {
	return "cache:" + string(purpose)
}
