package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/config"
	"totem-quiz-bot/internal/content"
	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/infra/memory"
	pgstore "totem-quiz-bot/internal/infra/postgres"
	redisstore "totem-quiz-bot/internal/infra/redis"
	"totem-quiz-bot/internal/pkg/logger"
)

// deps holds the optional backing services; nil fields are not configured.
type deps struct {
	cfg   config.Config
	log   *logger.Logger
	redis *redis.Client
	pool  *pgxpool.Pool
}

func openDeps(ctx context.Context, configPath string) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	d := &deps{cfg: cfg, log: log}
	if cfg.Redis.Addr != "" {
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Postgres.URL != "" {
		d.pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
	}
	return d, nil
}

func (d *deps) close() {
	if d.pool != nil {
		d.pool.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
	d.log.Sync()
}

// catalogLoader picks the configured content source and puts a cache in front of it.
func (d *deps) catalogLoader() (app.CatalogLoader, error) {
	var loader app.CatalogLoader
	switch d.cfg.Quiz.Source {
	case "file", "":
		loader = content.NewFileLoader(d.cfg.Quiz.CatalogPath)
	case "postgres":
		if d.pool == nil {
			return nil, fmt.Errorf("catalog source postgres requires postgres.url")
		}
		loader = pgstore.NewCatalogStore(d.pool, d.cfg.Quiz.CatalogName)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", d.cfg.Quiz.Source)
	}

	ttl := config.TTLDuration(d.cfg.Quiz.CacheTTL, 10*time.Minute)
	if d.redis != nil {
		return redisstore.NewCatalogCache(d.redis, loader, d.cfg.Quiz.CatalogName, ttl), nil
	}
	return memory.NewCatalogCache(loader, ttl), nil
}

// loadCatalog loads the catalog and checks it is usable for serving.
func (d *deps) loadCatalog(ctx context.Context) (*domain.Catalog, error) {
	loader, err := d.catalogLoader()
	if err != nil {
		return nil, err
	}
	catalog, err := loader.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := catalog.CheckQuestionBounds(d.cfg.Quiz.MinQuestions, d.cfg.Quiz.MaxQuestions); err != nil {
		return nil, err
	}
	if unreachable := catalog.UnreachableOutcomes(); len(unreachable) > 0 {
		d.log.Warn("outcomes no answer can lead to", "outcomes", unreachable)
	}
	return catalog, nil
}

func (d *deps) stateRepository() app.StateRepository {
	if d.redis != nil {
		return redisstore.NewStateStore(d.redis, config.TTLDuration(d.cfg.Redis.TTL, 24*time.Hour))
	}
	return memory.NewStateStore()
}

func (d *deps) feedbackRepository() app.FeedbackRepository {
	if d.redis != nil {
		return redisstore.NewFeedbackStore(d.redis)
	}
	return memory.NewFeedbackStore()
}
