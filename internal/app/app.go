package app

import (
	"context"
	"fmt"
	"time"

	"listenerlab/internal/cache"
	"listenerlab/internal/config"
	"listenerlab/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App holds the storage connections and the stores built on them
type App struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client

	SubmissionRepo repository.SubmissionRepo
	SessionCache   cache.SessionCache
	ReportCache    cache.ReportCache
	SegmentTally   cache.SegmentTallyCache
}

// Connect dials MongoDB and Redis, pings both and prepares indexes
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURI,
	})

	a := &App{
		Mongo: mongoClient,
		DB:    mongoClient.Database(cfg.MongoDB),
		Redis: rdb,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(pingCtx)
	g.Go(func() error {
		if err := mongoClient.Ping(gctx, nil); err != nil {
			return fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))
		return repository.EnsureSubmissionIndexes(gctx, a.DB)
	})
	g.Go(func() error {
		if err := rdb.Ping(gctx).Err(); err != nil {
			return fmt.Errorf("failed to ping Redis: %w", err)
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.RedisURI))
		return nil
	})
	if err := g.Wait(); err != nil {
		a.Close(context.Background())
		return nil, err
	}

	a.SubmissionRepo = repository.NewSubmissionRepo(a.DB)
	a.SessionCache = cache.NewSessionCache(rdb, cfg.SessionTTL)
	a.ReportCache = cache.NewReportCache(rdb, cfg.ReportTTL)
	a.SegmentTally = cache.NewSegmentTallyCache(rdb)
	return a, nil
}

// Close releases both connections
func (a *App) Close(ctx context.Context) error {
	redisErr := a.Redis.Close()
	if err := a.Mongo.Disconnect(ctx); err != nil {
		return err
	}
	return redisErr
}
