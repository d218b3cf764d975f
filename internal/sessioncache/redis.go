package sessioncache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// staleGrace keeps an expired record around long enough for the expiry
// watcher to see it and release the remote session.
const staleGrace = 5 * time.Minute

// Namespace identifies the owner of a cache slot, e.g. a device or a
// browser session.
type Namespace func(ctx context.Context) string

func StaticNamespace(namespace string) Namespace {
	return func(context.Context) string {
		return namespace
	}
}

// Redis stores one JSON record per purpose under
// "booking_cache:<namespace>:<purpose>".
type Redis struct {
	client    redis.UniversalClient
	namespace Namespace
	clock     domain.Clock
}

func NewRedis(client redis.UniversalClient, namespace Namespace, clock domain.Clock) *Redis {
	if clock == nil {
		clock = domain.SystemClock{}
	}

	return &Redis{
		client:    client,
		namespace: namespace,
		clock:     clock,
	}
}

func (r *Redis) Get(ctx context.Context, purpose domain.CachePurpose) (*domain.CachedSessionRecord, error) {
	data, err := r.client.Get(ctx, r.key(ctx, purpose)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached session: %w", err)
	}

	var record domain.CachedSessionRecord

	err = json.Unmarshal(data, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached session: %w", err)
	}

	return &record, nil
}

func (r *Redis) Set(ctx context.Context, purpose domain.CachePurpose, record domain.CachedSessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cached session: %w", err)
	}

	ttl := record.ExpiresAt.Sub(r.clock.Now()) + staleGrace
	if ttl < staleGrace {
		ttl = staleGrace
	}

	err = r.client.Set(ctx, r.key(ctx, purpose), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to write cached session: %w", err)
	}

	return nil
}

func (r *Redis) Clear(ctx context.Context, purpose domain.CachePurpose) error {
	err := r.client.Del(ctx, r.key(ctx, purpose)).Err()
	if err != nil {
		return fmt.Errorf("failed to clear cached session: %w", err)
	}

	return nil
}

func (r *Redis) key(ctx context.Context, purpose domain.CachePurpose) string {
	return fmt.Sprintf("booking_cache:%s:%s", r.namespace(ctx), purpose)
}
