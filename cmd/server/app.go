package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/bibliobuddy/internal/config"
	"github.com/phrazzld/bibliobuddy/internal/corpus"
	"github.com/phrazzld/bibliobuddy/internal/events"
	"github.com/phrazzld/bibliobuddy/internal/platform/memory"
	"github.com/phrazzld/bibliobuddy/internal/platform/postgres"
	"github.com/phrazzld/bibliobuddy/internal/platform/redis"
	"github.com/phrazzld/bibliobuddy/internal/platform/sqlite"
	"github.com/phrazzld/bibliobuddy/internal/quiz"
	"github.com/phrazzld/bibliobuddy/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Backend handles; at most one is set, depending on the storage backend.
	db    *sql.DB
	pool  *pgxpool.Pool
	redis *goredis.Client

	corpus        *corpus.Index
	progressStore *store.ProgressStore
	eventEmitter  *events.InMemoryEventEmitter
	quizService   quiz.Service
}

// newApplication loads the corpus, opens the configured storage backend and
// builds the quiz engine. A corpus that cannot be loaded is fatal.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	index, err := loadCorpus(ctx, cfg.Corpus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	app.corpus = index
	logger.Info("Corpus loaded", "entries", index.Len())

	kv, err := app.openKV(ctx)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Info("Progress storage ready", "backend", cfg.Storage.Backend)

	app.progressStore = store.NewProgressStore(kv, cfg.Storage.KeyPrefix, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLoggingHandler(logger))

	app.quizService = quiz.NewService(quiz.Dependencies{
		Corpus:   app.corpus,
		Progress: app.progressStore,
		Emitter:  app.eventEmitter,
		Params:   quiz.ParamsFromConfig(cfg.Quiz),
		Logger:   logger,
	})

	logger.Info("Application initialized successfully")
	return app, nil
}

// loadCorpus reads the word list and its synonym shards from disk.
func loadCorpus(ctx context.Context, cfg config.CorpusConfig, logger *slog.Logger) (*corpus.Index, error) {
	wordsDir, wordsName := filepath.Split(cfg.WordsPath)
	if wordsDir == "" {
		wordsDir = "."
	}

	loader := corpus.NewLoader(os.DirFS(wordsDir), wordsName, os.DirFS(cfg.SynonymsDir), logger)
	return loader.Load(ctx)
}

// openKV connects the configured backend and records its handle for cleanup.
func (app *application) openKV(ctx context.Context) (store.KVStore, error) {
	cfg := app.config.Storage

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewKV(), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, app.logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		return sqlite.NewKV(db, app.logger), nil

	case config.BackendPostgres:
		if err := postgres.Migrate(ctx, cfg.PostgresURL, app.logger); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		app.pool = pool
		return postgres.NewKV(pool, app.logger), nil

	case config.BackendRedis:
		rdb, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		app.redis = rdb
		return redis.NewKV(rdb, app.logger), nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	if app.pool != nil {
		app.pool.Close()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
