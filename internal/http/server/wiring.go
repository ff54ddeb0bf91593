// Package server construye el runtime HTTP desde la configuración:
// store, credenciales, email, rate limit y métricas.
package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/cursomvc/internal/app"
	"github.com/dropDatabas3/cursomvc/internal/config"
	"github.com/dropDatabas3/cursomvc/internal/email"
	jwtx "github.com/dropDatabas3/cursomvc/internal/jwt"
	"github.com/dropDatabas3/cursomvc/internal/metrics"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/rate"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	store "github.com/dropDatabas3/cursomvc/internal/store"
	migrations "github.com/dropDatabas3/cursomvc/migrations/postgres"
)

// ErrNotMigratable se retorna si el driver no soporta migraciones SQL.
var ErrNotMigratable = errors.New("storage driver does not support migrations")

// Runtime es la aplicación cableada más lo que el proceso necesita para
// apagarla ordenadamente.
type Runtime struct {
	App        *app.App
	DAL        store.DataAccessLayer
	Issuer     *jwtx.Issuer
	Dispatcher *email.AsyncDispatcher

	// MetricsHandler es no-nil sólo si métricas va en un listener propio.
	MetricsHandler http.Handler

	redis *rdb.Client
}

// Close espera los emails en vuelo y libera conexiones.
func (rt *Runtime) Close() error {
	if rt.Dispatcher != nil {
		rt.Dispatcher.Wait()
	}
	var errs []error
	if rt.redis != nil {
		errs = append(errs, rt.redis.Close())
	}
	if rt.DAL != nil {
		errs = append(errs, rt.DAL.Close())
	}
	return errors.Join(errs...)
}

// Build arma el runtime completo a partir de cfg.
func Build(ctx context.Context, cfg *config.Config, version string) (*Runtime, error) {
	log := logger.FromWithFields(ctx, logger.Component("wiring"))
	rt := &Runtime{}

	// 1. Store
	dal, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.DAL = dal

	if cfg.Flags.Migrate {
		if _, err := RunMigrations(ctx, dal); err != nil && !errors.Is(err, ErrNotMigratable) {
			_ = rt.Close()
			return nil, err
		}
	}

	// 2. Credenciales
	hasher, err := password.New(cfg.Security.PasswordHasher)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	issuer, err := NewIssuer(ctx, cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Issuer = issuer

	// 3. Email (fire-and-forget)
	rt.Dispatcher = email.NewAsyncDispatcher(newSender(cfg))

	// 4. Rate limit
	var loginLimiter, forgotLimiter rate.Limiter
	if cfg.Rate.Enabled {
		loginLimiter, forgotLimiter, err = rt.newLimiters(ctx, cfg)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
	}

	// 5. Métricas
	reg := prometheus.NewRegistry()
	if err := registerMetrics(reg, dal); err != nil {
		_ = rt.Close()
		return nil, err
	}
	var apiMetrics http.Handler
	if cfg.Metrics.Addr == "" {
		apiMetrics = metrics.Handler(reg)
	} else {
		rt.MetricsHandler = metrics.Handler(reg)
	}

	rt.App = app.New(app.Config{
		OpTimeout: cfg.Storage.OpTimeout,
		Version:   version,
	}, app.Deps{
		DAL:           dal,
		Issuer:        issuer,
		Hasher:        hasher,
		Mail:          rt.Dispatcher,
		LoginLimiter:  loginLimiter,
		ForgotLimiter: forgotLimiter,
		Metrics:       apiMetrics,
	})

	log.Info("runtime ready",
		logger.String("storage", dal.Name()),
		logger.String("hasher", cfg.Security.PasswordHasher),
		logger.String("email", cfg.Email.Driver),
		logger.Bool("rate_limit", cfg.Rate.Enabled),
	)
	return rt, nil
}

// OpenStore abre el adapter configurado y verifica la conexión.
func OpenStore(ctx context.Context, cfg *config.Config) (store.DataAccessLayer, error) {
	dal, err := store.Open(ctx, store.AdapterConfig{
		Name:            cfg.Storage.Driver,
		DSN:             cfg.Storage.DSN,
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, cfg.Storage.OpTimeout)
	defer cancel()
	if err := dal.Ping(pctx); err != nil {
		_ = dal.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return dal, nil
}

// RunMigrations aplica las migraciones embebidas si el adapter lo soporta.
func RunMigrations(ctx context.Context, dal store.DataAccessLayer) (*store.MigrationResult, error) {
	mc, ok := dal.(store.MigratableConnection)
	if !ok {
		return nil, ErrNotMigratable
	}

	res, err := store.NewMigrator(migrations.FS, migrations.Dir).Run(ctx, mc.MigrationExecutor())
	if err != nil {
		metrics.RecordMigrationFailure()
		return res, fmt.Errorf("migrate: %w", err)
	}
	metrics.RecordMigrations(len(res.Applied), len(res.Skipped))
	logger.From(ctx).Info("migrations done",
		logger.Component("migrate"),
		logger.Int("applied", len(res.Applied)),
		logger.Int("skipped", len(res.Skipped)),
		logger.Duration(res.Duration),
	)
	return res, nil
}

// NewIssuer crea el emisor de tokens. Fuera de prod, un secreto vacío se
// reemplaza por uno aleatorio (los tokens no sobreviven a un reinicio).
func NewIssuer(ctx context.Context, cfg *config.Config) (*jwtx.Issuer, error) {
	secret := []byte(cfg.JWT.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		logger.From(ctx).Warn("jwt.secret not set, using an ephemeral secret", logger.Component("wiring"))
	}
	return jwtx.NewIssuer(cfg.JWT.Issuer, secret, cfg.AccessTTL())
}

func newSender(cfg *config.Config) email.Sender {
	if cfg.Email.Driver != "smtp" {
		return email.LogSender{Log: logger.Named("email")}
	}
	s := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
	s.TLSMode = cfg.SMTP.TLS
	s.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
	return s
}

// newLimiters crea los limiters de /login y /auth/forgot sobre Redis o memoria.
func (rt *Runtime) newLimiters(ctx context.Context, cfg *config.Config) (login, forgot rate.Limiter, err error) {
	loginWindow, _ := time.ParseDuration(cfg.Rate.Login.Window)
	forgotWindow, _ := time.ParseDuration(cfg.Rate.Forgot.Window)
	prefix := cfg.Cache.Redis.Prefix + "rl:"

	if cfg.Cache.Kind != "redis" {
		return rate.NewMemoryLimiter(prefix+"login:", cfg.Rate.Login.Limit, loginWindow),
			rate.NewMemoryLimiter(prefix+"forgot:", cfg.Rate.Forgot.Limit, forgotWindow), nil
	}

	client := rdb.NewClient(&rdb.Options{Addr: cfg.Cache.Redis.Addr, DB: cfg.Cache.Redis.DB})
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	rt.redis = client
	return rate.NewRedisLimiter(client, prefix+"login:", cfg.Rate.Login.Limit, loginWindow),
		rate.NewRedisLimiter(client, prefix+"forgot:", cfg.Rate.Forgot.Limit, forgotWindow), nil
}

func registerMetrics(reg *prometheus.Registry, dal store.DataAccessLayer) error {
	if err := metrics.Register(reg); err != nil {
		return err
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	if ps, ok := dal.(metrics.PoolStatter); ok {
		return metrics.RegisterPool(reg, ps)
	}
	return nil
}
