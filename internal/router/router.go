package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bdo_market_go/internal/handler"
)

type Dependencies struct {
	MarketHandler  *handler.MarketHandler
	HistoryHandler *handler.HistoryHandler // nil이면 /api/v1/history 없음
	Metrics        http.Handler            // nil이면 /metrics 없음
}

func Register(r *gin.Engine, d Dependencies) {
	// 공용 라우트
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
	r.GET("/", health)
	r.GET("/health", health)
	r.GET("/healthz", health)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	// v1 그룹
	v1 := r.Group("/api/v1")
	{
		v1.GET("/items", d.MarketHandler.Items)
		v1.GET("/item", d.MarketHandler.Item)
		v1.GET("/orders", d.MarketHandler.Orders)
		v1.GET("/search", d.MarketHandler.Search)
		if d.HistoryHandler != nil {
			v1.GET("/history", d.HistoryHandler.Latest)
		}
	}
}
