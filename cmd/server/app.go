package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/kindredapp/kindred-api/internal/config"
	"github.com/kindredapp/kindred-api/internal/events"
	"github.com/kindredapp/kindred-api/internal/platform/gemini"
	"github.com/kindredapp/kindred-api/internal/platform/postgres"
	"github.com/kindredapp/kindred-api/internal/platform/redis"
	"github.com/kindredapp/kindred-api/internal/service/matching"
	"github.com/kindredapp/kindred-api/internal/store"
	"github.com/kindredapp/kindred-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Optional Redis-backed score cache; nil when cache.redis_url is unset.
	cache *redis.Cache

	// Stores (using interfaces for proper abstraction)
	profileStore    store.ProfileStore
	matchStore      store.MatchHistoryStore
	preferenceStore store.PreferenceStore

	// Matching services
	scorer  *matching.Scorer
	learner *matching.Learner
	ranker  *matching.Ranker

	// Event system
	eventEmitter events.EventEmitter

	// Background learning pipeline
	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.matchStore = postgres.NewPostgresMatchStore(db, logger)
	app.preferenceStore = postgres.NewPostgresPreferenceStore(db, logger)

	// Initialize the intelligence oracle
	geminiOracle, err := gemini.NewGeminiOracle(
		ctx,
		logger.With("component", "gemini_oracle"),
		cfg.Oracle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize intelligence oracle: %w", err)
	}
	logger.Info("Intelligence oracle initialized", "model", cfg.Oracle.ModelName)

	// Initialize the optional score cache. A missing Redis URL disables
	// caching entirely; every oracle score is then computed fresh.
	var scoreCache matching.ScoreCache
	if cfg.Cache.RedisURL != "" {
		app.cache, err = redis.NewCache(cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize score cache: %w", err)
		}
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		scoreCache = redis.NewScoreCache(app.cache, ttl)
		logger.Info("Score cache enabled", "ttl_seconds", cfg.Cache.TTLSeconds)
	}

	// Initialize matching services
	app.scorer = matching.NewScorer(geminiOracle, scoreCache, nil, logger)
	app.learner = matching.NewLearner(app.matchStore, app.profileStore, app.preferenceStore, logger)
	app.ranker = matching.NewRanker(app.profileStore, app.preferenceStore, app.scorer, nil, logger)

	// Initialize the background learning pipeline
	app.taskQueue = task.NewTaskQueue(cfg.Task.QueueSize, logger)
	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)
	app.workerPool.Start()

	// Initialize event emitter and wire the learning task handler
	emitter := events.NewInMemoryEventEmitter(logger)
	taskFactory := task.NewPreferenceLearningTaskFactory(app.learner, logger)
	emitter.RegisterHandler(task.NewTaskFactoryEventHandler(taskFactory, app.taskQueue, logger))
	app.eventEmitter = emitter

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The queue
// is closed first so no new learning tasks land behind the stopping
// pool; learning is re-requested on demand, so abandoned tasks are not
// lost work.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		app.workerPool.Stop()
	}

	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing cache connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
