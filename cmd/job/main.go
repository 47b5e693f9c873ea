package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bdo_market_go/internal/app"
	"bdo_market_go/internal/config"
	"bdo_market_go/internal/repo"
	"bdo_market_go/internal/service"
	"bdo_market_go/pkg/logger"
)

// 설정된 아이템을 한 번 수집하고 종료
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logg := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenCache(ctx, cfg, logg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	apis, err := app.Clients(cfg, logg, nil)
	if err != nil {
		log.Fatal(err)
	}
	marketSvc := service.NewMarketService(apis, store, cfg.CacheTTL, logg)

	var snapshots repo.SnapshotRepo
	if cfg.DatabaseURL == "" {
		logg.Warnf("DATABASE_URL is empty, snapshots stay in memory")
		snapshots = repo.NewSnapshotRepoInMemory()
	} else {
		pool, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := repo.Migrate(ctx, pool); err != nil {
			log.Fatal(err)
		}
		snapshots = repo.NewSnapshotRepoPG(pool)
	}

	if err := service.NewCollector(marketSvc, snapshots, cfg.Items, logg).Run(ctx); err != nil {
		logg.Errorf("collection finished with errors: %v", err)
		os.Exit(1)
	}
	logg.Infof("collected %d items", len(cfg.Items))
}
