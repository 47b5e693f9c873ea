package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bdo_market_go/internal/model"
	"bdo_market_go/internal/repo"
	"bdo_market_go/pkg/logger"
)

type SnapshotReader interface {
	LatestItems(ctx context.Context, region string, id int64) ([]model.Item, error)
}

// HistoryHandler serves what the collector job last stored.
type HistoryHandler struct {
	snapshots SnapshotReader
	logger    logger.Logger
}

func NewHistoryHandler(s SnapshotReader, l logger.Logger) *HistoryHandler {
	return &HistoryHandler{snapshots: s, logger: l}
}

type historyReq struct {
	ID     int64  `form:"id"     binding:"required,min=1"`
	Region string `form:"region"`
}

func (h *HistoryHandler) Latest(c *gin.Context) {
	var req historyReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, ok := region(c, req.Region)
	if !ok {
		return
	}
	items, err := h.snapshots.LatestItems(c.Request.Context(), string(r), req.ID)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot collected"})
		return
	}
	if err != nil {
		h.logger.Errorf("latest snapshot %s/%d: %v", r, req.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "snapshot lookup failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}
