package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bdo_market_go/internal/model"
	"bdo_market_go/internal/service"
	"bdo_market_go/pkg/bdoapi"
	"bdo_market_go/pkg/logger"
)

type MarketService interface {
	Items(ctx context.Context, region bdoapi.Region, mainCategory, subCategory int) ([]bdoapi.MarketListItem, error)
	Item(ctx context.Context, region bdoapi.Region, id int) ([]bdoapi.MarketSubListItem, error)
	Orders(ctx context.Context, region bdoapi.Region, id, sid int) ([]bdoapi.BiddingOrder, error)
	Search(ctx context.Context, region bdoapi.Region, query string) ([]bdoapi.MarketListItem, error)
}

type MarketHandler struct {
	svc    MarketService
	logger logger.Logger
}

func NewMarketHandler(s MarketService, l logger.Logger) *MarketHandler {
	return &MarketHandler{svc: s, logger: l}
}

type itemsReq struct {
	Category    int    `form:"category"    binding:"required,min=1"`
	SubCategory int    `form:"subcategory" binding:"required,min=1"`
	Region      string `form:"region"`
}

type itemReq struct {
	ID     int    `form:"id"     binding:"required,min=1"`
	Region string `form:"region"`
}

type ordersReq struct {
	ID     int    `form:"id"     binding:"required,min=1"`
	SID    int    `form:"sid"    binding:"min=0"`
	Region string `form:"region"`
}

type searchReq struct {
	Query  string `form:"q"      binding:"required"`
	Region string `form:"region"`
}

func region(c *gin.Context, s string) (bdoapi.Region, bool) {
	if s == "" {
		return bdoapi.NA, true
	}
	r, err := bdoapi.ParseRegion(s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return r, true
}

func (h *MarketHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnknownRegion) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func (h *MarketHandler) Items(c *gin.Context) {
	var req itemsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, ok := region(c, req.Region)
	if !ok {
		return
	}
	items, err := h.svc.Items(c.Request.Context(), r, req.Category, req.SubCategory)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MarketHandler) Item(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, ok := region(c, req.Region)
	if !ok {
		return
	}
	items, err := h.svc.Item(c.Request.Context(), r, req.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MarketHandler) Orders(c *gin.Context) {
	var req ordersReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, ok := region(c, req.Region)
	if !ok {
		return
	}
	orders, err := h.svc.Orders(c.Request.Context(), r, req.ID, req.SID)
	if err != nil {
		h.fail(c, err)
		return
	}
	minSale, maxBuy := bdoapi.BestPrices(orders)
	c.JSON(http.StatusOK, model.BiddingSummary{MinSale: minSale, MaxBuy: maxBuy, Orders: orders})
}

func (h *MarketHandler) Search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, ok := region(c, req.Region)
	if !ok {
		return
	}
	items, err := h.svc.Search(c.Request.Context(), r, req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
