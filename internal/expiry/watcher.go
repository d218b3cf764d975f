// Package expiry decides whether a cached booking session may be reused.
package expiry

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

const defaultStaleDeleteTimeout = 5 * time.Second

// SessionDeleter releases a remote booking session.
type SessionDeleter interface {
	DeleteSession(ctx context.Context, sessionID string) (*domain.DeleteResult, error)
}

type Reason string

const (
	ReasonNoRecord         Reason = "no_record"
	ReasonShowtimeMismatch Reason = "showtime_mismatch"
	ReasonExpired          Reason = "expired"
	ReasonCacheUnavailable Reason = "cache_unavailable"
	ReasonValid            Reason = "valid"
)

// Decision tells the caller whether to reuse the cached session or create a
// new one. SessionID is set only when Reuse is true.
type Decision struct {
	Reuse     bool
	SessionID string
	Record    *domain.CachedSessionRecord
	Reason    Reason
}

type Watcher struct {
	cache           domain.SessionCache
	clock           domain.Clock
	deleter         SessionDeleter
	purpose         domain.CachePurpose
	handoverPurpose domain.CachePurpose
	logger          *slog.Logger

	staleDeleteTimeout time.Duration
	pending            sync.WaitGroup
}

type Option func(*Watcher)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithPurpose moves the watcher to another cache slot. Its handover mark
// moves along.
func WithPurpose(purpose domain.CachePurpose) Option {
	return func(w *Watcher) {
		w.purpose = purpose
		w.handoverPurpose = purpose.Handover()
	}
}

func WithStaleDeleteTimeout(d time.Duration) Option {
	return func(w *Watcher) {
		w.staleDeleteTimeout = d
	}
}

func NewWatcher(cache domain.SessionCache, clock domain.Clock, deleter SessionDeleter, opts ...Option) *Watcher {
	if clock == nil {
		clock = domain.SystemClock{}
	}

	w := &Watcher{
		cache:              cache,
		clock:              clock,
		deleter:            deleter,
		purpose:            domain.CachePurposeBookingSession,
		handoverPurpose:    domain.CachePurposeBookingSession.Handover(),
		logger:             slog.Default(),
		staleDeleteTimeout: defaultStaleDeleteTimeout,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Decide reads the cached record and decides, for showtimeID, between
// reusing the cached session and creating a new one. Stale records are
// discarded and their remote sessions released in the background. Cache
// failures degrade to creating a new session.
func (w *Watcher) Decide(ctx context.Context, showtimeID int) Decision {
	record, err := w.cache.Get(ctx, w.purpose)
	if err != nil {
		w.logger.WarnContext(ctx, "session cache read failed, creating a new session", "error", err)
		return Decision{Reason: ReasonCacheUnavailable}
	}

	if record == nil {
		return Decision{Reason: ReasonNoRecord}
	}

	if record.ShowtimeID != showtimeID {
		w.logger.InfoContext(ctx, "discarding cached session of another showtime",
			"session_id", record.ID,
			"cached_showtime_id", record.ShowtimeID,
			"showtime_id", showtimeID,
		)
		w.Discard(ctx, record)
		return Decision{Record: record, Reason: ReasonShowtimeMismatch}
	}

	if record.ExpiredAt(w.clock.Now()) {
		w.logger.InfoContext(ctx, "discarding expired cached session",
			"session_id", record.ID,
			"expires_at", record.ExpiresAt,
		)
		w.Discard(ctx, record)
		return Decision{Record: record, Reason: ReasonExpired}
	}

	return Decision{
		Reuse:     true,
		SessionID: record.ID,
		Record:    record,
		Reason:    ReasonValid,
	}
}

// Active returns the cached record when it has not expired. An expired
// record is discarded.
func (w *Watcher) Active(ctx context.Context) (*domain.CachedSessionRecord, bool) {
	record, err := w.cache.Get(ctx, w.purpose)
	if err != nil {
		w.logger.WarnContext(ctx, "session cache read failed", "error", err)
		return nil, false
	}

	if record == nil {
		return nil, false
	}

	if record.ExpiredAt(w.clock.Now()) {
		w.Discard(ctx, record)
		return nil, false
	}

	return record, true
}

// Peek returns the cached record as stored, expired or not. Read failures
// count as no record.
func (w *Watcher) Peek(ctx context.Context) (*domain.CachedSessionRecord, bool) {
	record, err := w.cache.Get(ctx, w.purpose)
	if err != nil {
		w.logger.WarnContext(ctx, "session cache read failed", "error", err)
		return nil, false
	}

	return record, record != nil
}

// Remember caches the identity, showtime and expiry of session. Write
// failures are logged and otherwise ignored.
func (w *Watcher) Remember(ctx context.Context, session *domain.BookingSession) {
	w.RememberRecord(ctx, session.Record())
}

func (w *Watcher) RememberRecord(ctx context.Context, record domain.CachedSessionRecord) {
	err := w.cache.Set(ctx, w.purpose, record)
	if err != nil {
		w.logger.WarnContext(ctx, "failed to cache booking session", "session_id", record.ID, "error", err)
	}
}

func (w *Watcher) Forget(ctx context.Context) {
	err := w.cache.Clear(ctx, w.purpose)
	if err != nil {
		w.logger.WarnContext(ctx, "failed to clear cached booking session", "error", err)
	}
}

// MarkHandedOver records in the cache that the session of record went to
// checkout. The mark is seen by every process sharing the cache. Failures
// are logged.
func (w *Watcher) MarkHandedOver(ctx context.Context, record domain.CachedSessionRecord) {
	err := w.cache.Set(ctx, w.handoverPurpose, record)
	if err != nil {
		w.logger.WarnContext(ctx, "failed to cache checkout handover", "session_id", record.ID, "error", err)
	}
}

// HandedOver reports whether sessionID was marked as gone to checkout. A
// failed read counts as handed over.
func (w *Watcher) HandedOver(ctx context.Context, sessionID string) bool {
	record, err := w.cache.Get(ctx, w.handoverPurpose)
	if err != nil {
		w.logger.WarnContext(ctx, "checkout handover read failed", "session_id", sessionID, "error", err)
		return true
	}

	return record != nil && record.ID == sessionID
}

func (w *Watcher) ForgetHandover(ctx context.Context) {
	err := w.cache.Clear(ctx, w.handoverPurpose)
	if err != nil {
		w.logger.WarnContext(ctx, "failed to clear checkout handover", "error", err)
	}
}

// Remaining is the time left before the record expires, never negative.
func (w *Watcher) Remaining(record domain.CachedSessionRecord) time.Duration {
	left := record.ExpiresAt.Sub(w.clock.Now())
	if left < 0 {
		return 0
	}

	return left
}

// Wait blocks until background releases of stale sessions have finished.
func (w *Watcher) Wait() {
	w.pending.Wait()
}

// Discard clears the cached record and releases its remote session in the
// background.
func (w *Watcher) Discard(ctx context.Context, record *domain.CachedSessionRecord) {
	w.Forget(ctx)

	if w.deleter == nil {
		return
	}

	// The release outlives the request that noticed the stale record.
	deleteCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.staleDeleteTimeout)
	sessionID := record.ID

	w.pending.Add(1)
	go func() {
		defer w.pending.Done()
		defer cancel()

		_, err := w.deleter.DeleteSession(deleteCtx, sessionID)
		switch {
		case err == nil:
			w.logger.DebugContext(deleteCtx, "released stale booking session", "session_id", sessionID)
		case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
			w.logger.DebugContext(deleteCtx, "stale booking session already gone", "session_id", sessionID)
		default:
			w.logger.WarnContext(deleteCtx, "failed to release stale booking session", "session_id", sessionID, "error", err)
		}
	}()
}
