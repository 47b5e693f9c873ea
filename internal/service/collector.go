package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bdo_market_go/internal/model"
	"bdo_market_go/internal/repo"
	"bdo_market_go/pkg/bdoapi"
	"bdo_market_go/pkg/logger"
)

// Collector takes one snapshot of every configured item in every region.
type Collector struct {
	svc    *MarketService
	repo   repo.SnapshotRepo
	items  []model.ConfigItem
	logger logger.Logger
	now    func() time.Time
}

func NewCollector(svc *MarketService, r repo.SnapshotRepo, items []model.ConfigItem, l logger.Logger) *Collector {
	return &Collector{svc: svc, repo: r, items: items, logger: l, now: time.Now}
}

// Run collects regions in parallel and items within a region in order. A
// failing item is logged and skipped; the joined errors come back at the end.
func (c *Collector) Run(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, region := range c.svc.Regions() {
		wg.Add(1)
		go func(region bdoapi.Region) {
			defer wg.Done()
			for _, it := range c.items {
				if err := c.collectItem(ctx, region, it); err != nil {
					c.logger.Errorf("[%s] %s(%d): %v", region, it.Name, it.ID, err)
					mu.Lock()
					errs = append(errs, fmt.Errorf("[%s] %s: %w", region, it.Name, err))
					mu.Unlock()
				}
			}
		}(region)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (c *Collector) collectItem(ctx context.Context, region bdoapi.Region, it model.ConfigItem) error {
	at := c.now().UTC()

	levels, err := c.svc.Item(ctx, region, it.ID)
	if err != nil {
		return err
	}
	items := make([]model.Item, 0, len(levels))
	for _, lv := range levels {
		items = append(items, model.Item{Region: string(region), Name: it.Name, CollectedAt: at, MarketSubListItem: lv})
	}
	if err := c.repo.SaveItems(ctx, items); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	orders, err := c.svc.Orders(ctx, region, it.ID, it.SID)
	if err != nil {
		return err
	}
	book := make([]model.ItemBidding, 0, len(orders))
	for _, o := range orders {
		book = append(book, model.ItemBidding{
			Region: string(region), Name: it.Name, ItemID: int64(it.ID), SID: int64(it.SID),
			CollectedAt: at, BiddingOrder: o,
		})
	}
	if err := c.repo.SaveBidding(ctx, book); err != nil {
		return fmt.Errorf("save bidding: %w", err)
	}
	c.logger.Infof("[%s] %s(%d): %d levels, %d orders", region, it.Name, it.ID, len(items), len(book))
	return nil
}
