package app

import (
	"context"

	"bdo_market_go/internal/cache"
	"bdo_market_go/internal/config"
	"bdo_market_go/internal/service"
	"bdo_market_go/pkg/bdoapi"
	"bdo_market_go/pkg/logger"
)

// OpenCache prefers a Redis cluster, then a single Redis, then memory.
func OpenCache(ctx context.Context, cfg *config.Config, l logger.Logger) (cache.Store, error) {
	switch {
	case len(cfg.RedisClusterAddrs) > 0:
		l.Infof("cache: redis cluster %v", cfg.RedisClusterAddrs)
		return cache.OpenRedisCluster(ctx, cfg.RedisClusterAddrs)
	case cfg.RedisURL != "":
		l.Infof("cache: redis")
		return cache.OpenRedis(ctx, cfg.RedisURL)
	default:
		l.Infof("cache: in-memory")
		return cache.NewMemoryStore(), nil
	}
}

// Clients builds one upstream client per configured region.
func Clients(cfg *config.Config, l logger.Logger, hook bdoapi.DecodeHook) ([]service.API, error) {
	regions, err := cfg.ParsedRegions()
	if err != nil {
		return nil, err
	}
	out := make([]service.API, 0, len(regions))
	for _, r := range regions {
		out = append(out, bdoapi.NewClient(r,
			bdoapi.WithTimeout(cfg.RequestTimeout),
			bdoapi.WithRetries(cfg.Retries),
			bdoapi.WithLogger(l),
			bdoapi.WithDecodeHook(hook),
		))
	}
	return out, nil
}
