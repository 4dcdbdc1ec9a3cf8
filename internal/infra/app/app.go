package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	auditpkg "github.com/avdeev/module-certification/internal/audit"
	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/guard"
	"github.com/avdeev/module-certification/internal/infra/config"
	"github.com/avdeev/module-certification/internal/infra/database"
	"github.com/avdeev/module-certification/internal/infra/logger"
	redisinfra "github.com/avdeev/module-certification/internal/infra/redis"
	"github.com/avdeev/module-certification/internal/infra/telemetry"
	"github.com/avdeev/module-certification/internal/repository/memory"
	postgresrepo "github.com/avdeev/module-certification/internal/repository/postgres"
	redisrepo "github.com/avdeev/module-certification/internal/repository/redis"
	"github.com/avdeev/module-certification/internal/transport/http/middleware"
	"github.com/avdeev/module-certification/internal/transport/http/routes"
	"github.com/avdeev/module-certification/internal/usecase"
)

// Application owns the service lifecycle: wiring, startup, graceful shutdown.
type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	pool     *pgxpool.Pool
	redis    *redisinfra.Client
	producer *auditpkg.Producer
	tracer   *telemetry.TracerProvider
}

// New wires the full dependency graph from configuration.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tracer, err := telemetry.Attach(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	app := &Application{cfg: cfg, logger: log, pool: pool, tracer: tracer}

	// Guard stores: Redis when configured, in-process maps otherwise. A
	// single-node deployment loses nothing with the in-memory fallback.
	var (
		rateStore port.RateLimitStore
		dupStore  port.DuplicateStore
	)
	if cfg.Redis.Host != "" {
		redisClient, err := redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init redis: %w", err)
		}
		app.redis = redisClient

		ttl := cfg.RateLimit.WindowDuration
		if ttl <= 0 {
			ttl = time.Minute
		}
		rateStore = redisrepo.NewRateLimitStore(redisClient.Client(), cfg.Redis.KeyPrefix+":rate-limit", ttl*2)
		dupStore = redisrepo.NewDuplicateStore(redisClient.Client(), cfg.Redis.KeyPrefix+":duplicates")
	} else {
		log.Info("redis not configured, using in-memory guard stores")
		rateStore = memory.NewRateLimitStore()
		dupStore = memory.NewDuplicateStore()
	}

	// Audit publisher: Kafka when brokers are configured, log stub otherwise.
	var publisher port.AuditPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := auditpkg.NewProducer(auditpkg.ProducerConfig{
			Brokers:     cfg.Kafka.Brokers,
			TopicPrefix: cfg.Kafka.TopicPrefix,
		}, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub audit publisher", zap.Error(err))
			publisher = auditpkg.NewStubPublisher(log)
		} else {
			app.producer = producer
			publisher = auditpkg.NewPublisher(producer, cfg.App.Name, cfg.App.Env, log)
		}
	} else {
		log.Info("kafka brokers not configured, using stub audit publisher")
		publisher = auditpkg.NewStubPublisher(log)
	}

	documents := postgresrepo.NewDocumentStore(pool)
	users := postgresrepo.NewUserProfileRepository(pool)
	rounds := postgresrepo.NewRoundRepository(pool)
	notes := postgresrepo.NewNoteRepository(pool)

	recorder := auditpkg.NewRecorder(publisher, log)
	abuseGuard := guard.New(rateStore, dupStore, log)
	limits := usecase.GuardLimits{
		MaxRequests:     cfg.RateLimit.MaxRequests,
		Window:          cfg.RateLimit.WindowDuration,
		DuplicateWindow: cfg.RateLimit.DuplicateWindow,
	}

	authService := usecase.NewAuthService(users)
	authzService := usecase.NewAuthzService(authService, rounds, documents)
	noteService := usecase.NewNoteService(authzService, abuseGuard, notes, recorder, limits)
	resourceService := usecase.NewResourceService(authzService, abuseGuard, documents, rounds, users, recorder, limits, cfg.Validation.AllowedEmailDomains)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		app.close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	deps := routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: middleware.NewRateLimiter(rateStore, log),
		Metrics:     metrics,
		Verifier:    usecase.NewTokenVerifier(cfg.JWT.Secret),
		Database:    pool,
		Services: routes.ServiceSet{
			Notes:     noteService,
			Resources: resourceService,
		},
	}
	if app.redis != nil {
		deps.Cache = app.redis
	}

	app.engine = routes.Register(deps)

	return app, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.close()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting certification API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

func (a *Application) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("close kafka producer", zap.Error(err))
		}
		a.producer = nil
	}
	if a.redis != nil {
		_ = a.redis.Close()
		a.redis = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.tracer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("shutdown tracer provider", zap.Error(err))
		}
		cancel()
		a.tracer = nil
	}
}
