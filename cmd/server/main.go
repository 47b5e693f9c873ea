package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bdo_market_go/internal/app"
	"bdo_market_go/internal/config"
	"bdo_market_go/internal/handler"
	"bdo_market_go/internal/metrics"
	"bdo_market_go/internal/repo"
	"bdo_market_go/internal/router"
	"bdo_market_go/internal/service"
	"bdo_market_go/pkg/logger"
)

func main() {
	// 설정/로거 초기화
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logg := logger.New()
	ctx := context.Background()

	// 의존성 생성
	store, err := app.OpenCache(ctx, cfg, logg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	decodes := metrics.NewDecodeMetrics()
	apis, err := app.Clients(cfg, logg, decodes.Hook())
	if err != nil {
		log.Fatal(err)
	}
	marketSvc := service.NewMarketService(apis, store, cfg.CacheTTL, logg)
	marketH := handler.NewMarketHandler(marketSvc, logg)

	reg := prometheus.NewRegistry()
	err = metrics.Register(reg,
		decodes.Collector(),
		metrics.NewItemCollector(marketSvc, cfg.Items, cfg.RequestTimeout*4, logg),
		metrics.NewBiddingCollector(marketSvc, cfg.Items, cfg.RequestTimeout*4, logg),
	)
	if err != nil {
		log.Fatal(err)
	}

	// 수집 잡이 쌓은 스냅샷은 DB가 있을 때만 노출
	var historyH *handler.HistoryHandler
	if cfg.DatabaseURL != "" {
		pool, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := repo.Migrate(ctx, pool); err != nil {
			log.Fatal(err)
		}
		historyH = handler.NewHistoryHandler(repo.NewSnapshotRepoPG(pool), logg)
	} else {
		logg.Infof("DATABASE_URL is empty, /api/v1/history disabled")
	}

	// Gin 라우터 생성 및 라우팅 구성
	r := gin.Default()
	router.Register(r, router.Dependencies{
		MarketHandler:  marketH,
		HistoryHandler: historyH,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	addr := ":" + cfg.Port
	log.Printf("starting server at %s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
