package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS market_item_snapshots (
  region           TEXT        NOT NULL,
  item_id          BIGINT      NOT NULL,
  sid              BIGINT      NOT NULL,
  name             TEXT        NOT NULL,
  base_price       BIGINT      NOT NULL,
  current_stock    BIGINT      NOT NULL,
  total_trades     BIGINT      NOT NULL,
  price_min        BIGINT      NOT NULL,
  price_max        BIGINT      NOT NULL,
  last_trade_price BIGINT      NOT NULL,
  last_trade_time  BIGINT      NOT NULL,
  collected_at     TIMESTAMPTZ NOT NULL,
  PRIMARY KEY (region, item_id, sid, collected_at)
);
CREATE TABLE IF NOT EXISTS market_bidding_snapshots (
  region       TEXT        NOT NULL,
  item_id      BIGINT      NOT NULL,
  sid          BIGINT      NOT NULL,
  price        BIGINT      NOT NULL,
  sellers      BIGINT      NOT NULL,
  buyers       BIGINT      NOT NULL,
  collected_at TIMESTAMPTZ NOT NULL,
  PRIMARY KEY (region, item_id, sid, price, collected_at)
)`)
	return err
}
