package cli

import (
	"context"
	"fmt"

	"freelancer-analyzer/cache"
	"freelancer-analyzer/config"
	"freelancer-analyzer/dataset"
	"freelancer-analyzer/llm"
	"freelancer-analyzer/services"
	"freelancer-analyzer/storage"
	"freelancer-analyzer/utils"
)

// app holds the collaborators a command runs against.
type app struct {
	cfg      *config.Config
	logger   *utils.Logger
	dataset  *dataset.Dataset
	analyzer *services.Analyzer
	router   *services.Router
	closers  []func() error
}

// loadDataset reads the records from the configured source.
func loadDataset(cfg *config.Config, logger *utils.Logger) (*dataset.Dataset, error) {
	loader := dataset.NewLoader(logger)

	switch cfg.DataSource {
	case config.SourceCSV:
		return loader.Load(cfg.DataPath)
	case config.SourcePostgres:
		store, err := storage.NewPostgresStore(cfg.DSN(), logger)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		records, err := store.FetchAll()
		if err != nil {
			return nil, err
		}
		return loader.FromRecords(records, "postgres:"+cfg.PostgresDB)
	}
	return nil, fmt.Errorf("unknown data source %q (want %s or %s)", cfg.DataSource, config.SourceCSV, config.SourcePostgres)
}

// newApp loads the data and builds the analyzer. With withLLM set the
// question router is wired as well; a missing API key or an unreachable
// cache only degrades it.
func newApp(ctx context.Context, cfg *config.Config, logger *utils.Logger, withLLM bool) (*app, error) {
	ds, err := loadDataset(cfg, logger)
	if err != nil {
		return nil, err
	}
	analyzer, err := services.NewAnalyzer(ds, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, dataset: ds, analyzer: analyzer}
	if !withLLM {
		return a, nil
	}

	opts := services.RouterOptions{
		APIKeySet: cfg.AnthropicAPIKey != "",
		Model:     cfg.ClaudeModel,
		CacheTTL:  cfg.CacheTTL,
	}

	client, err := llm.NewClient(cfg.LLMConfig(), logger)
	if err != nil {
		logger.Warn("[app] LLM client unavailable: %v", err)
	} else {
		opts.LLM = client
	}

	if cfg.CacheEnabled() {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisConfig())
		if err != nil {
			logger.Warn("[app] Answer cache disabled: %v", err)
		} else {
			opts.Cache = rc
			a.closers = append(a.closers, rc.Close)
		}
	}

	a.router = services.NewRouter(analyzer, opts, logger)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("[app] Close failed: %v", err)
		}
	}
}
