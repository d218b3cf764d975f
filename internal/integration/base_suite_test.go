package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinex-booking/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	cacheImageName   = "redis:7"
	bookingAPIToken  = "integration-token"
	sessionCookieKey = "session_id"
)

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	cacheContainer *RedisContainer
	bookingAPI     *bookingAPIServer
	apiServer      *httptest.Server
	sessionCache   string
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	redisContainer, err := getCacheContainer(ctx)
	s.Require().NoError(err, "failed to start container")

	s.cacheContainer = redisContainer
	s.bookingAPI = newBookingAPIServer()
	s.apiServer = httptest.NewServer(s.bookingAPI.Routes())

	cfg := gateway.Config{
		Port: 3000,
		Env:  "test",
		BookingAPI: gateway.BookingAPIConfig{
			URL:           s.apiServer.URL + "/api/booking",
			Token:         bookingAPIToken,
			Timeout:       5 * time.Second,
			MaxTries:      2,
			RetryInterval: 10 * time.Millisecond,
		},
		Redis: gateway.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Session: gateway.SessionConfig{
			IdleTimeout: 20 * time.Minute,
			Lifetime:    time.Hour,
			Cache:       s.sessionCache,
		},
	}

	testApp, err := newTestApp(cfg)
	s.Require().NoError(err, "cannot initialize app")

	s.app = testApp
}

func (s *BaseSuite) TearDownSuite() {
	if s.apiServer != nil {
		s.apiServer.Close()
	}
	if s.app != nil {
		s.app.Redis.Close()
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

// newVisitor opens a browser session and returns its cookies.
func (s *BaseSuite) newVisitor() []http.Cookie {
	req, err := prepareRequest(http.MethodGet, "/booking", nil, nil, nil)
	s.Require().NoError(err)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)

	var cookies []http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieKey {
			cookies = append(cookies, *c)
		}
	}
	s.Require().NotEmpty(cookies, "gateway did not open a browser session")

	return cookies
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	Cookies          []http.Cookie
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, s.Cookies)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
