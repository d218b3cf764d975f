package gateway

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/bookingapi"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/expiry"
	"github.com/metinatakli/cinex-booking/internal/sessioncache"
	"github.com/metinatakli/cinex-booking/internal/telemetry"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
	"github.com/metinatakli/cinex-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	clock          domain.Clock

	watcher *expiry.Watcher
	flow    *booking.Flow
}

type Config struct {
	Port       int
	Env        string
	BookingAPI BookingAPIConfig
	Redis      RedisConfig
	Session    SessionConfig
	Otel       OtelConfig
}

type BookingAPIConfig struct {
	URL           string
	Token         string
	Timeout       time.Duration
	MaxTries      uint
	RetryInterval time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SessionConfig struct {
	IdleTimeout time.Duration
	Lifetime    time.Duration
	Secure      bool
	// Cache selects where the booking cache slot lives: "session" keeps it
	// in the browser session, "redis" under its own key with its own TTL.
	Cache string
}

type OtelConfig struct {
	CollectorURL string
}

func (cfg Config) telemetry() telemetry.Config {
	return telemetry.Config{
		CollectorURL: cfg.Otel.CollectorURL,
		Version:      version,
		Env:          cfg.Env,
	}
}

func Run() error {
	// a missing .env file is fine, the environment and flags still apply
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flag.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.BookingAPI.URL, "booking-api-url", envString("BOOKING_API_URL", "http://localhost:8080/api/booking"), "Booking API base URL")
	flag.StringVar(&cfg.BookingAPI.Token, "booking-api-token", envString("BOOKING_API_TOKEN", ""), "Booking API bearer token used when the request carries none")
	flag.DurationVar(&cfg.BookingAPI.Timeout, "booking-api-timeout", envDuration("BOOKING_API_TIMEOUT", 10*time.Second), "Booking API request timeout")
	flag.UintVar(&cfg.BookingAPI.MaxTries, "booking-api-max-tries", uint(envInt("BOOKING_API_MAX_TRIES", 3)), "Booking API attempts for idempotent calls")
	flag.DurationVar(&cfg.BookingAPI.RetryInterval, "booking-api-retry-interval", envDuration("BOOKING_API_RETRY_INTERVAL", 200*time.Millisecond), "Booking API initial retry interval")

	flag.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", "localhost:6379"), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flag.DurationVar(&cfg.Session.IdleTimeout, "session-idle-timeout", envDuration("SESSION_IDLE_TIMEOUT", 20*time.Minute), "Browser session idle timeout")
	flag.DurationVar(&cfg.Session.Lifetime, "session-lifetime", envDuration("SESSION_LIFETIME", 24*time.Hour), "Browser session absolute lifetime")
	flag.BoolVar(&cfg.Session.Secure, "session-secure", envString("SESSION_SECURE", "false") == "true", "Send the session cookie over HTTPS only")
	flag.StringVar(&cfg.Session.Cache, "session-cache", envString("SESSION_CACHE", "session"), "Booking cache store (session|redis)")

	flag.StringVar(&cfg.Otel.CollectorURL, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := telemetry.NewLogger(cfg.telemetry(), slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := telemetry.Init(context.Background(), cfg.telemetry(), logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	if cfg.telemetry().Enabled() {
		err = errors.Join(redisotel.InstrumentTracing(redisClient), redisotel.InstrumentMetrics(redisClient))
		if err != nil {
			return fmt.Errorf("failed to instrument redis client: %w", err)
		}
	}

	app, err := NewApplication(cfg, logger, redisClient)
	if err != nil {
		return err
	}

	return app.run()
}

// NewApplication wires the booking flow for cfg. Each browser session gets
// its own session cache slot, kept in the scs session.
func NewApplication(cfg Config, logger *slog.Logger, redisClient *redis.Client) (*Application, error) {
	api, err := bookingapi.New(
		cfg.BookingAPI.URL,
		bookingapi.ContextToken(bookingapi.NewStaticToken(cfg.BookingAPI.Token)),
		bookingapi.WithHTTPClient(newHTTPClient(cfg.BookingAPI.Timeout)),
		bookingapi.WithRetry(cfg.BookingAPI.MaxTries, cfg.BookingAPI.RetryInterval),
		bookingapi.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	sessionManager := newSessionManager(cfg, redisClient)
	clock := domain.SystemClock{}

	cache, err := newSessionCache(cfg, sessionManager, redisClient, clock)
	if err != nil {
		return nil, err
	}

	watcher := expiry.NewWatcher(
		cache,
		clock,
		api,
		expiry.WithLogger(logger),
	)

	flow := booking.NewFlow(api, watcher, clock,
		booking.WithLogger(logger),
		booking.WithSlotKey(sessionManager.Token),
	)

	app := &Application{
		config:         cfg,
		logger:         logger,
		redis:          redisClient,
		validator:      appvalidator.NewValidator(),
		sessionManager: sessionManager,
		clock:          clock,
		watcher:        watcher,
		flow:           flow,
	}

	return app, nil
}

func newSessionCache(cfg Config, sessionManager *scs.SessionManager, client *redis.Client, clock domain.Clock) (domain.SessionCache, error) {
	switch cfg.Session.Cache {
	case "", "session":
		return sessioncache.NewSessionScoped(sessionManager), nil
	case "redis":
		return sessioncache.NewRedis(client, sessionManager.Token, clock), nil
	default:
		return nil, fmt.Errorf("unknown session cache %q", cfg.Session.Cache)
	}
}

func newSessionManager(cfg Config, client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = cfg.Session.IdleTimeout
	sessionManager.Lifetime = cfg.Session.Lifetime
	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Session.Secure

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	// stale sessions discarded during the last requests are still being deleted
	app.watcher.Wait()

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
