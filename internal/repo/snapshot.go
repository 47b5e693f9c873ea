package repo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bdo_market_go/internal/model"
)

var ErrNotFound = errors.New("not found")

// 인터페이스
type SnapshotRepo interface {
	SaveItems(ctx context.Context, items []model.Item) error
	SaveBidding(ctx context.Context, orders []model.ItemBidding) error
	// LatestItems returns the newest snapshot of every enhancement level of id.
	LatestItems(ctx context.Context, region string, id int64) ([]model.Item, error)
}

/*** ---------- Postgres ---------- ***/

type pgSnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepoPG(pool *pgxpool.Pool) SnapshotRepo {
	return &pgSnapshotRepo{pool: pool}
}

func (r *pgSnapshotRepo) SaveItems(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(`
INSERT INTO market_item_snapshots
  (region, item_id, sid, name, base_price, current_stock, total_trades,
   price_min, price_max, last_trade_price, last_trade_time, collected_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT DO NOTHING`,
			it.Region, it.ItemID, it.EnhanceMin, it.Name, it.BasePrice, it.CurrentStock, it.TotalTrades,
			it.PriceMin, it.PriceMax, it.LastTradePrice, it.LastTradeTime, it.CollectedAt)
	}
	return r.pool.SendBatch(ctx, b).Close()
}

func (r *pgSnapshotRepo) SaveBidding(ctx context.Context, orders []model.ItemBidding) error {
	if len(orders) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, o := range orders {
		b.Queue(`
INSERT INTO market_bidding_snapshots (region, item_id, sid, price, sellers, buyers, collected_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT DO NOTHING`,
			o.Region, o.ItemID, o.SID, o.Price, o.Sellers, o.Buyers, o.CollectedAt)
	}
	return r.pool.SendBatch(ctx, b).Close()
}

func (r *pgSnapshotRepo) LatestItems(ctx context.Context, region string, id int64) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT ON (sid)
  region, name, item_id, sid, base_price, current_stock, total_trades,
  price_min, price_max, last_trade_price, last_trade_time, collected_at
FROM market_item_snapshots
WHERE region = $1 AND item_id = $2
ORDER BY sid, collected_at DESC`, region, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.Region, &it.Name, &it.ItemID, &it.EnhanceMin, &it.BasePrice, &it.CurrentStock,
			&it.TotalTrades, &it.PriceMin, &it.PriceMax, &it.LastTradePrice, &it.LastTradeTime, &it.CollectedAt); err != nil {
			return nil, err
		}
		it.EnhanceMax = it.EnhanceMin
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

/*** ---------- 인메모리 ---------- ***/

type snapshotKey struct {
	region string
	id     int64
	sid    int64
}

type snapshotRepoInMemory struct {
	mu      sync.RWMutex
	items   map[snapshotKey]model.Item
	bidding []model.ItemBidding
}

func NewSnapshotRepoInMemory() SnapshotRepo {
	return &snapshotRepoInMemory{items: make(map[snapshotKey]model.Item)}
}

func (r *snapshotRepoInMemory) SaveItems(_ context.Context, items []model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		k := snapshotKey{it.Region, it.ItemID, it.EnhanceMin}
		if cur, ok := r.items[k]; ok && cur.CollectedAt.After(it.CollectedAt) {
			continue
		}
		r.items[k] = it
	}
	return nil
}

func (r *snapshotRepoInMemory) SaveBidding(_ context.Context, orders []model.ItemBidding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bidding = append(r.bidding, orders...)
	return nil
}

func (r *snapshotRepoInMemory) LatestItems(_ context.Context, region string, id int64) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Item
	for k, it := range r.items {
		if k.region == region && k.id == id {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnhanceMin < out[j].EnhanceMin })
	return out, nil
}
