// Package container はアプリケーションの依存関係を組み立てる。
package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/seo-writer/internal/core/article"
	"github.com/jinford/seo-writer/internal/infra/llmmock"
	"github.com/jinford/seo-writer/internal/infra/memory"
	"github.com/jinford/seo-writer/internal/infra/natsjs"
	"github.com/jinford/seo-writer/internal/infra/openai"
	"github.com/jinford/seo-writer/internal/infra/postgres"
	"github.com/jinford/seo-writer/internal/infra/serpapi"
	"github.com/jinford/seo-writer/internal/platform/config"
	"github.com/jinford/seo-writer/internal/platform/database"
	"github.com/jinford/seo-writer/internal/platform/logger"
)

// Container はアプリケーションの全コンポーネントを保持します
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   article.JobStore
	Service *article.Service

	db        *database.DB
	publisher *natsjs.Publisher
}

// ContainerOption はコンテナの構築をカスタマイズします(主にテスト用)
type ContainerOption func(*options)

type options struct {
	logger    *slog.Logger
	store     article.JobStore
	serp      article.SERPProvider
	llm       article.TextGenerator
	publisher article.EventPublisher
}

// WithLogger はロガーを差し替えます
func WithLogger(l *slog.Logger) ContainerOption {
	return func(o *options) { o.logger = l }
}

// WithJobStore はジョブストアを差し替えます
func WithJobStore(s article.JobStore) ContainerOption {
	return func(o *options) { o.store = s }
}

// WithSERPProvider は検索結果プロバイダを差し替えます
func WithSERPProvider(p article.SERPProvider) ContainerOption {
	return func(o *options) { o.serp = p }
}

// WithTextGenerator はLLMクライアントを差し替えます
func WithTextGenerator(g article.TextGenerator) ContainerOption {
	return func(o *options) { o.llm = g }
}

// WithEventPublisher はイベント配信先を差し替えます
func WithEventPublisher(p article.EventPublisher) ContainerOption {
	return func(o *options) { o.publisher = p }
}

// New は設定に従って全コンポーネントを初期化します
func New(ctx context.Context, cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		log = logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}

	c := &Container{
		Config: cfg,
		Logger: log,
	}

	store := o.store
	if store == nil {
		switch cfg.Store.Driver {
		case "postgres":
			db, err := database.New(ctx, database.ConnectionParams{
				Host:     cfg.Store.Host,
				Port:     cfg.Store.Port,
				User:     cfg.Store.User,
				Password: cfg.Store.Password,
				DBName:   cfg.Store.DBName,
				SSLMode:  cfg.Store.SSLMode,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to connect to database: %w", err)
			}
			c.db = db

			repo := postgres.NewJobRepository(db.Pool)
			if err := repo.InitSchema(ctx); err != nil {
				c.Close()
				return nil, err
			}
			store = repo
		default:
			log.Info("using in-memory job store", slog.String("driver", cfg.Store.Driver))
			store = memory.NewJobRepository()
		}
	}
	c.Store = store

	llm := o.llm
	if llm == nil {
		if cfg.LLM.Mock {
			log.Info("using mock llm client")
			llm = llmmock.NewClient()
		} else {
			client, err := openai.NewClient(cfg.LLM.APIKey,
				openai.WithModel(cfg.LLM.Model),
				openai.WithMaxTokens(cfg.LLM.MaxTokens),
			)
			if err != nil {
				c.Close()
				return nil, err
			}
			llm = client
		}
	}

	serp := o.serp
	if serp == nil {
		serp = serpapi.NewClient(cfg.SerpAPI.APIKey, log,
			serpapi.WithBaseURL(cfg.SerpAPI.BaseURL),
			serpapi.WithTimeout(cfg.SerpAPI.Timeout),
		)
	}

	orchestratorOpts := []article.OrchestratorOption{
		article.WithJobTimeout(cfg.Job.Timeout),
	}
	if o.publisher != nil {
		orchestratorOpts = append(orchestratorOpts, article.WithEventPublisher(o.publisher))
	} else if cfg.NATS.URL != "" {
		publisher, err := natsjs.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject, log)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.publisher = publisher
		orchestratorOpts = append(orchestratorOpts, article.WithEventPublisher(publisher))
	}

	orchestrator := article.NewOrchestrator(store, serp, llm, log, orchestratorOpts...)
	c.Service = article.NewService(store, orchestrator, log)

	return c, nil
}

// Close は保持しているリソースを解放します
func (c *Container) Close() {
	if c.publisher != nil {
		c.publisher.Close()
	}
	if c.db != nil {
		c.db.Close()
	}
}
