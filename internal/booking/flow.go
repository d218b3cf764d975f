// Package booking orders the booking API calls of one user's booking flow:
// it reuses or creates the session, keeps the local cache current and
// tracks the client-observed session state.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/expiry"
)

// Flow is safe for concurrent use. Mutations against the same session are
// serialized; Start is serialized per cache slot.
type Flow struct {
	api     domain.BookingAPI
	watcher *expiry.Watcher
	clock   domain.Clock
	logger  *slog.Logger
	slotKey func(ctx context.Context) string

	startLocks   *keyedMutex
	sessionLocks *keyedMutex
	states       *stateTracker
}

type Option func(*Flow)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithSlotKey identifies the cache slot a context belongs to, so that
// concurrent Start calls for different slots do not wait on each other.
func WithSlotKey(fn func(ctx context.Context) string) Option {
	return func(f *Flow) {
		f.slotKey = fn
	}
}

func NewFlow(api domain.BookingAPI, watcher *expiry.Watcher, clock domain.Clock, opts ...Option) *Flow {
	if clock == nil {
		clock = domain.SystemClock{}
	}

	f := &Flow{
		api:          api,
		watcher:      watcher,
		clock:        clock,
		logger:       slog.Default(),
		slotKey:      func(context.Context) string { return "" },
		startLocks:   newKeyedMutex(),
		sessionLocks: newKeyedMutex(),
		states:       newStateTracker(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Start returns the session to book showtimeID with. A cached session for
// the same showtime that has not expired is reused; otherwise a new one is
// created. reused reports which happened.
func (f *Flow) Start(ctx context.Context, showtimeID int) (session *domain.BookingSession, reused bool, err error) {
	if showtimeID < 1 {
		return nil, false, fmt.Errorf("%w: showtime ID must be greater than zero", domain.ErrValidation)
	}

	unlock := f.startLocks.Lock(f.slotKey(ctx))
	defer unlock()

	if record, ok := f.watcher.Peek(ctx); ok && f.handedOver(ctx, *record) {
		// its seats belong to the pending payment now, never release them
		f.logger.InfoContext(ctx, "leaving checked out session to payment", "session_id", record.ID)
		f.watcher.Forget(ctx)
		f.watcher.ForgetHandover(ctx)
	}

	decision := f.watcher.Decide(ctx, showtimeID)

	if decision.Reuse {
		session, err := f.api.GetSession(ctx, decision.SessionID)
		switch {
		case err == nil && session.ShowtimeID == showtimeID && !session.ExpiredAt(f.clock.Now()):
			f.watcher.Remember(ctx, session)
			f.adoptRecord(session.Record())
			return session, true, nil
		case err == nil:
			f.logger.InfoContext(ctx, "cached booking session no longer matches, releasing it",
				"session_id", decision.SessionID,
				"showtime_id", session.ShowtimeID,
				"expires_at", session.ExpiresAt,
			)
			f.watcher.Discard(ctx, decision.Record)
			f.states.transition(decision.SessionID, domain.FlowStateExpired, decision.Record.ExpiresAt, f.clock.Now())
		case isGone(err):
			f.logger.InfoContext(ctx, "cached booking session is no longer usable", "session_id", decision.SessionID)
			f.watcher.Forget(ctx)
			f.states.transition(decision.SessionID, domain.FlowStateExpired, decision.Record.ExpiresAt, f.clock.Now())
		default:
			return nil, false, err
		}
	}

	session, err = f.api.CreateSession(ctx, showtimeID)
	if err != nil {
		return nil, false, err
	}

	f.watcher.Remember(ctx, session)
	f.states.transition(session.ID, domain.FlowStateCreated, session.ExpiresAt, f.clock.Now())

	f.logger.InfoContext(ctx, "booking session created",
		"session_id", session.ID,
		"showtime_id", showtimeID,
		"expires_at", session.ExpiresAt,
	)

	return session, false, nil
}

// Current fetches the detail of the active session and refreshes the cache.
func (f *Flow) Current(ctx context.Context) (*domain.BookingSession, error) {
	record, err := f.active(ctx)
	if err != nil {
		return nil, err
	}

	session, err := f.api.GetSession(ctx, record.ID)
	if err != nil {
		return nil, f.handleSessionError(ctx, record, err)
	}

	f.watcher.Remember(ctx, session)
	f.adoptRecord(session.Record())

	return session, nil
}

// State reports the client-observed state of the active session.
func (f *Flow) State(ctx context.Context) domain.FlowState {
	record, err := f.active(ctx)
	if err != nil {
		return domain.FlowStateNone
	}

	return f.states.get(record.ID)
}

// Cancel deletes the active session and releases its seats. It succeeds
// when there is no session or the booking API no longer knows it; the
// result is nil in those cases. A session that went to checkout is only
// dropped from the cache.
func (f *Flow) Cancel(ctx context.Context) (*domain.DeleteResult, error) {
	record, err := f.active(ctx)
	if err != nil {
		return nil, nil
	}

	unlock := f.sessionLocks.Lock(record.ID)
	defer unlock()

	if f.handedOver(ctx, *record) {
		f.watcher.Forget(ctx)
		f.watcher.ForgetHandover(ctx)
		return nil, nil
	}

	result, err := f.api.DeleteSession(ctx, record.ID)
	if err != nil && !isGone(err) {
		return nil, err
	}

	f.watcher.Forget(ctx)
	f.states.transition(record.ID, domain.FlowStateCancelled, record.ExpiresAt, f.clock.Now())

	return result, nil
}

// Touch extends the active session. On a transient failure the session's
// previous expiry is returned together with the error, and the caller may
// carry on with it. An expired session yields domain.ErrSessionExpired.
func (f *Flow) Touch(ctx context.Context) (*domain.TouchResult, error) {
	record, err := f.active(ctx)
	if err != nil {
		return nil, err
	}

	unlock := f.sessionLocks.Lock(record.ID)
	defer unlock()

	result, err := f.api.TouchSession(ctx, record.ID)
	if err != nil {
		if isGone(err) {
			return nil, f.handleSessionError(ctx, record, err)
		}

		f.logger.WarnContext(ctx, "failed to extend booking session, keeping previous expiry",
			"session_id", record.ID,
			"error", err,
		)

		return &domain.TouchResult{SessionID: record.ID, ExpiresAt: record.ExpiresAt}, err
	}

	updated := *record
	updated.ExpiresAt = result.ExpiresAt
	f.watcher.RememberRecord(ctx, updated)
	f.adoptRecord(updated)
	f.states.transition(record.ID, domain.FlowStateActive, result.ExpiresAt, f.clock.Now())

	return result, nil
}

// Remaining is the time left on the active session.
func (f *Flow) Remaining(ctx context.Context) (time.Duration, bool) {
	record, err := f.active(ctx)
	if err != nil {
		return 0, false
	}

	return f.watcher.Remaining(*record), true
}

// active returns the cached record of the session being booked. A session
// handed over to payment stays active, expired or not, so that it is never
// discarded and released.
func (f *Flow) active(ctx context.Context) (*domain.CachedSessionRecord, error) {
	if record, ok := f.watcher.Peek(ctx); ok && f.handedOver(ctx, *record) {
		return record, nil
	}

	record, ok := f.watcher.Active(ctx)
	if !ok {
		return nil, domain.ErrNoActiveSession
	}

	return record, nil
}

// mutate runs fn against the active session while holding its lock. It
// refuses sessions that already went to checkout and invalidates the cache
// when the booking API reports the session gone.
func (f *Flow) mutate(ctx context.Context, fn func(sessionID string) error) error {
	return f.mutateRecord(ctx, func(record domain.CachedSessionRecord) error {
		return fn(record.ID)
	})
}

func (f *Flow) mutateRecord(ctx context.Context, fn func(record domain.CachedSessionRecord) error) error {
	record, err := f.active(ctx)
	if err != nil {
		return err
	}

	unlock := f.sessionLocks.Lock(record.ID)
	defer unlock()

	f.adoptRecord(*record)

	if !f.states.get(record.ID).Mutable() {
		return domain.ErrSessionClosed
	}

	err = fn(*record)
	if err != nil {
		return f.handleSessionError(ctx, record, err)
	}

	f.states.transition(record.ID, domain.FlowStateActive, record.ExpiresAt, f.clock.Now())

	return nil
}

// read runs fn against the active session without changing its state.
func (f *Flow) read(ctx context.Context, fn func(sessionID string) error) error {
	record, err := f.active(ctx)
	if err != nil {
		return err
	}

	err = fn(record.ID)
	if err != nil {
		return f.handleSessionError(ctx, record, err)
	}

	return nil
}

// handleSessionError clears the cache when err says the session is gone and
// reports that as domain.ErrSessionExpired. Other errors pass through.
func (f *Flow) handleSessionError(ctx context.Context, record *domain.CachedSessionRecord, err error) error {
	if !isGone(err) {
		return err
	}

	f.logger.InfoContext(ctx, "booking session is gone, clearing cache", "session_id", record.ID, "error", err)
	f.watcher.Forget(ctx)
	f.states.transition(record.ID, domain.FlowStateExpired, record.ExpiresAt, f.clock.Now())

	if errors.Is(err, domain.ErrSessionExpired) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrSessionExpired, err)
}

// adoptRecord starts tracking a session this process has not seen before,
// such as one cached by an earlier process.
func (f *Flow) adoptRecord(record domain.CachedSessionRecord) {
	if f.states.get(record.ID) == domain.FlowStateNone {
		f.states.transition(record.ID, domain.FlowStateCreated, record.ExpiresAt, f.clock.Now())
	}
}

// handedOver reports whether the session of record went to checkout, here
// or in another process sharing the cache.
func (f *Flow) handedOver(ctx context.Context, record domain.CachedSessionRecord) bool {
	f.adoptRecord(record)

	state := f.states.get(record.ID)
	if state == domain.FlowStateCheckoutInitiated || state == domain.FlowStatePaid {
		return true
	}

	if !f.watcher.HandedOver(ctx, record.ID) {
		return false
	}

	f.states.transition(record.ID, domain.FlowStateCheckoutInitiated, record.ExpiresAt, f.clock.Now())

	return true
}

func isGone(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired)
}
