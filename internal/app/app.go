// Package app wires storage clients, the survey registry and services for the server and tools.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"surveyflow/internal/cache"
	"surveyflow/internal/config"
	"surveyflow/internal/registry"
	"surveyflow/internal/repository"
	"surveyflow/internal/service"
	"surveyflow/internal/surveydef"
)

const connectTimeout = 5 * time.Second

// App holds every long-lived dependency of the server
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *registry.Registry

	PG    *pgxpool.Pool
	Mongo *mongo.Client
	Redis *redis.Client

	SurveyRepo   repository.SurveyRepo
	ResponseRepo repository.ResponseRepo
	DraftCache   cache.DraftCache

	SurveyService    *service.SurveyService
	ResponseService  *service.ResponseService
	ExportService    *service.ExportService
	ConverterService *service.ConverterService
	DraftService     *service.DraftService
}

// New connects to Postgres, MongoDB and Redis, migrates the response schema, loads bundled
// survey definitions and builds the services. The caller must Close the returned App.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}
	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	reg, err := LoadRegistry(cfg.SurveysDir, a.Logger)
	if err != nil {
		return err
	}
	a.Registry = reg

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	a.PG, err = pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to create postgres pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := a.PG.Ping(pingCtx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	a.Logger.Info("connected to postgres")

	a.Mongo, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := a.Mongo.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	a.Logger.Info("connected to mongodb", zap.String("database", cfg.Mongo.Database))

	a.Redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := a.Redis.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	a.Logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	a.ResponseRepo = repository.NewResponseRepo(a.PG)
	if err := a.ResponseRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate response schema: %w", err)
	}
	a.SurveyRepo = repository.NewSurveyRepo(a.Mongo.Database(cfg.Mongo.Database))
	a.DraftCache = cache.NewDraftCache(a.Redis)

	var generator service.Generator
	if cfg.AI.IsEnabled() {
		gemini, err := service.NewGeminiGenerator(ctx, &cfg.AI, "")
		if err != nil {
			return err
		}
		generator = gemini
		a.Logger.Info("survey conversion enabled", zap.String("model", gemini.Model()))
	} else {
		a.Logger.Info("survey conversion disabled: GEMINI_API_KEY not set")
	}

	a.SurveyService = service.NewSurveyService(reg, a.SurveyRepo, a.Logger)
	a.ResponseService = service.NewResponseService(a.SurveyService, a.ResponseRepo, a.Logger)
	a.ExportService = service.NewExportService(a.SurveyService, a.ResponseRepo)
	a.ConverterService = service.NewConverterService(generator,
		time.Duration(cfg.AI.TimeoutMS)*time.Millisecond, a.Logger)
	a.DraftService = service.NewDraftService(a.SurveyService, a.ResponseService, a.DraftCache, a.Logger)
	return nil
}

// LoadRegistry parses every definition in dir into a registry. Lint findings are logged, not fatal.
func LoadRegistry(dir string, logger *zap.Logger) (*registry.Registry, error) {
	surveys, err := surveydef.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey definitions: %w", err)
	}
	for _, s := range surveys {
		for _, issue := range surveydef.Lint(s) {
			logger.Warn("survey definition issue",
				zap.String("surveyId", s.ID),
				zap.String("path", issue.Path),
				zap.String("issue", issue.Message))
		}
	}
	reg, err := registry.New(surveys...)
	if err != nil {
		return nil, err
	}
	logger.Info("survey definitions loaded", zap.String("dir", dir), zap.Int("surveys", reg.Len()))
	return reg, nil
}

// Close releases every connection that was opened
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			a.Logger.Warn("failed to disconnect mongodb", zap.Error(err))
		}
	}
	if a.PG != nil {
		a.PG.Close()
	}
}
