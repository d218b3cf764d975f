package bookingapi

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

// TokenProvider supplies the bearer token attached to every request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken serves a fixed bearer token. When the token is a JWT carrying
// an exp claim, an expired token is reported as ErrAuthenticationRequired
// without a round-trip. The signature is not checked here; the booking API
// does that.
type StaticToken struct {
	token string
	now   func() time.Time
}

func NewStaticToken(token string) *StaticToken {
	return &StaticToken{token: token, now: time.Now}
}

func (s *StaticToken) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", domain.ErrAuthenticationRequired
	}

	err := checkTokenExpiry(s.token, s.now())
	if err != nil {
		return "", err
	}

	return s.token, nil
}

type contextKey string

const tokenContextKey = contextKey("bearer_token")

// ContextWithToken attaches a per-request bearer token, used by ContextToken.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// ContextToken reads the token placed on the context by ContextWithToken and
// falls back to the given provider when there is none.
func ContextToken(fallback TokenProvider) TokenProvider {
	return TokenFunc(func(ctx context.Context) (string, error) {
		token, _ := ctx.Value(tokenContextKey).(string)
		if token != "" {
			err := checkTokenExpiry(token, time.Now())
			if err != nil {
				return "", err
			}

			return token, nil
		}

		if fallback == nil {
			return "", domain.ErrAuthenticationRequired
		}

		return fallback.Token(ctx)
	})
}

func checkTokenExpiry(token string, now time.Time) error {
	claims := jwt.RegisteredClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		// opaque token
		return nil
	}

	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return fmt.Errorf("%w: token expired at %s", domain.ErrAuthenticationRequired, claims.ExpiresAt.Time.Format(time.RFC3339))
	}

	return nil
}
