// Package app composes the application's dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - optional redis client, search cache and background job service
//   - repositories, services and the health checker
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/lightbnb/internal/cache"
	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/database"
	"github.com/deppfellow/lightbnb/internal/health"
	"github.com/deppfellow/lightbnb/internal/lib/email"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/lightbnb/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// App is the application container that holds shared resources.
type App struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	// Redis and Job are nil when no Redis address is configured.
	Redis *redis.Client
	Job   *job.JobService

	Repositories *repository.Repositories
	Services     *service.Services
	Health       *health.Checker
}

// New connects to PostgreSQL and, when configured, Redis, then wires the
// repositories and services.
//
// A Redis ping failure is logged and startup continues; the database must
// be reachable.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*App, error) {
	db, err := database.New(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	var deps service.Deps

	if cfg.Redis.Enabled() {
		a.Redis = newRedis(ctx, cfg.Redis, logger, loggerService)

		if cfg.Redis.SearchCacheTTL > 0 {
			deps.Cache = cache.NewSearchCache(a.Redis, cfg.Redis.SearchCacheTTL, logger)
		}

		a.Job = job.NewJobService(logger, cfg.Redis.Address, email.NewClient(cfg.Integration, logger))
		deps.Jobs = a.Job
	}

	a.Repositories = repository.NewRepositories(db.Pool, logger, repository.Options{
		LegacyReadErrors: cfg.Repository.LegacyReadErrors,
	})
	a.Services = service.NewServices(a.Repositories, cfg.Repository, deps, logger)

	var events health.EventRecorder
	if nrApp := loggerService.GetApplication(); nrApp != nil {
		events = nrApp
	}
	a.Health = health.NewChecker(
		cfg.Primary.Env,
		cfg.Observability.HealthChecks.Checks,
		a.pingers(),
		cfg.Observability.HealthChecks.Timeout,
		events,
		logger,
	)

	return a, nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without it")
	}

	return redisClient
}

// pingers lists the dependencies the health checker can probe.
func (a *App) pingers() map[string]health.Pinger {
	pingers := map[string]health.Pinger{}

	if a.DB != nil {
		pingers["database"] = a.DB
	}
	if a.Redis != nil {
		pingers["redis"] = health.PingFunc(func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		})
	}

	return pingers
}

// Close releases every resource New acquired.
func (a *App) Close() error {
	if a.Job != nil {
		a.Job.Close()
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}

	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
