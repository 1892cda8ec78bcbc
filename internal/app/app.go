// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solarverify/internal/benchmark"
	"solarverify/internal/config"
	"solarverify/internal/database"
	"solarverify/internal/grading"
	"solarverify/internal/handlers"
	"solarverify/internal/metrics"
	"solarverify/internal/middleware"
	"solarverify/internal/pdf"
	"solarverify/internal/repositories"
	"solarverify/internal/routes"
	"solarverify/internal/seed"
	"solarverify/internal/services"
	"solarverify/internal/utils"
)

const purgeInterval = time.Hour

type App struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *sqlx.DB
	redis   *redis.Client
	store   *benchmark.Store
	ledger  repositories.UsedTokenRepository
	metrics *metrics.Metrics
	router  *gin.Engine
}

type options struct {
	transport services.Transport
}

type Option func(*options)

// WithTransport replaces the SMTP transport, e.g. with a recording fake.
func WithTransport(t services.Transport) Option {
	return func(o *options) { o.transport = t }
}

// New opens storage, loads the benchmark catalogue (seeding an empty
// database) and builds the router. Call Close when done.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	a := &App{cfg: cfg, log: log, metrics: metrics.New()}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.db = db

	if a.store, err = loadStore(ctx, db, log); err != nil {
		_ = a.Close()
		return nil, err
	}
	counts := a.store.Counts()
	log.Info("benchmarks loaded",
		zap.Int("panels", counts["panels"]),
		zap.Int("batteries", counts["batteries"]),
		zap.Int("inverters", counts["inverters"]),
		zap.Int("pricing", counts["pricing"]))

	if cfg.Redis.URL != "" {
		if a.redis, err = repositories.OpenRedis(ctx, cfg.Redis.URL); err != nil {
			_ = a.Close()
			return nil, err
		}
		a.ledger = repositories.NewRedisUsedTokenRepository(a.redis)
		log.Info("used-token ledger: redis")
	} else {
		a.ledger = repositories.NewUsedTokenRepository(db)
		log.Info("used-token ledger: database")
	}

	if cfg.Auth.SecretKey == config.DevSecretKey {
		log.Warn("auth.secret_key is the development default; set SECRET_KEY in production")
	}

	transport := o.transport
	if transport == nil {
		if cfg.Email.DeliveryEnabled() {
			transport = services.NewSMTPTransport(cfg.Email)
		} else {
			log.Warn("email delivery disabled; messages will only be logged")
			transport = services.NewLogTransport(log.Named("email"))
		}
	}

	a.router = a.buildRouter(transport)
	return a, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(ctx, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func loadStore(ctx context.Context, db *sqlx.DB, log *zap.Logger) (*benchmark.Store, error) {
	repo := repositories.NewBenchmarkRepository(db)
	store, err := benchmark.Load(ctx, repo)
	if err != nil {
		return nil, err
	}
	if store.Counts()["pricing"] > 0 {
		return store, nil
	}

	log.Info("benchmark tables empty; seeding reference data")
	cat, err := seed.Load()
	if err != nil {
		return nil, err
	}
	if _, err := seed.Apply(ctx, repo, cat, log); err != nil {
		return nil, err
	}
	return benchmark.Load(ctx, repo)
}

func (a *App) buildRouter(transport services.Transport) *gin.Engine {
	cfg, log := a.cfg, a.log

	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	userRepo := repositories.NewUserRepository(a.db)
	usageRepo := repositories.NewUsageRepository(a.db)

	engine := grading.New(a.store, grading.WithLogger(log.Named("grading")))
	usage := services.NewUsageService(userRepo, usageRepo, utils.NewHasher(cfg.Auth.SecretKey), cfg.Usage, log.Named("usage"))
	tokens := services.NewTokenService(services.TokenConfig{
		Secret: cfg.Auth.SecretKey,
		TTL:    cfg.Auth.TokenTTL,
		Issuer: cfg.Auth.Issuer,
	}, a.ledger, log.Named("auth"), a.metrics)
	guide := pdf.NewGuideGenerator(a.store, cfg.Files.FontPath)
	emails := services.NewEmailService(transport, guide, cfg, log.Named("email"), a.metrics)
	auth := services.NewAuthService(tokens, emails, usage, log.Named("auth"))
	quotes := services.NewQuoteService(engine, usage, log.Named("grading"), a.metrics)

	httpLog := log.Named("http")
	r := gin.New()
	r.Use(
		middleware.Recovery(httpLog),
		middleware.Logger(httpLog),
		middleware.Metrics(a.metrics),
		middleware.CORS(cfg.Frontend.Origin),
	)

	return routes.SetupRoutes(r, routes.Handlers{
		Quote:     handlers.NewQuoteHandler(quotes, httpLog),
		Auth:      handlers.NewAuthHandler(auth, httpLog),
		Verify:    handlers.NewVerifyHandler(auth, httpLog),
		Benchmark: handlers.NewBenchmarkHandler(a.store, httpLog),
		Usage:     handlers.NewUsageHandler(usage, httpLog),
		Health:    handlers.NewHealthHandler(a.store),
	}, a.metrics)
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		a.purgeLoop(gctx)
		return nil
	})
	return g.Wait()
}

// purgeLoop drops redeemed tokens that have expired anyway.
func (a *App) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := a.ledger.PurgeExpired(ctx, now)
			if err != nil {
				a.log.Warn("purge used tokens failed", zap.Error(err))
				continue
			}
			if n > 0 {
				a.log.Debug("purged used tokens", zap.Int64("rows", n))
			}
		}
	}
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// Migrate applies the schema and exits.
func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

// Seed loads the embedded reference catalogue, updating existing rows.
func Seed(ctx context.Context, cfg *config.Config, log *zap.Logger) (seed.Summary, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return seed.Summary{}, err
	}
	defer db.Close()

	cat, err := seed.Load()
	if err != nil {
		return seed.Summary{}, err
	}
	return seed.Apply(ctx, repositories.NewBenchmarkRepository(db), cat, log)
}
