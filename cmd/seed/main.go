// Command seed imports survey definition files into the MongoDB survey store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"surveyflow/internal/config"
	"surveyflow/internal/logging"
	"surveyflow/internal/model"
	"surveyflow/internal/repository"
	"surveyflow/internal/surveydef"
)

func main() {
	configPath := flag.String("config", os.Getenv("SURVEYFLOW_CONFIG"), "path to YAML config file")
	dir := flag.String("dir", "", "directory of survey definitions (defaults to the configured surveys dir)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var surveys []*model.Survey
	if flag.NArg() > 0 {
		for _, name := range flag.Args() {
			s, err := surveydef.ParseFile(name)
			if err != nil {
				logger.Fatal("failed to parse survey", zap.String("file", name), zap.Error(err))
			}
			surveys = append(surveys, s)
		}
	} else {
		src := *dir
		if src == "" {
			src = cfg.SurveysDir
		}
		surveys, err = surveydef.LoadDir(src)
		if err != nil {
			logger.Fatal("failed to load surveys", zap.String("dir", src), zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	repo := repository.NewSurveyRepo(client.Database(cfg.Mongo.Database))
	for _, s := range surveys {
		for _, issue := range surveydef.Lint(s) {
			logger.Warn("survey definition issue", zap.String("surveyId", s.ID), zap.Stringer("issue", issue))
		}
		if err := repo.Save(ctx, s); err != nil {
			logger.Fatal("failed to save survey", zap.String("surveyId", s.ID), zap.Error(err))
		}
		logger.Info("seeded survey", zap.String("surveyId", s.ID), zap.String("title", s.Title))
	}
	logger.Info("seed complete", zap.Int("surveys", len(surveys)))
}
