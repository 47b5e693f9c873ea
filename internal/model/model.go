package model

import (
	"time"

	"bdo_market_go/pkg/bdoapi"
)

// ConfigItem is one item the collector and the metrics endpoint watch.
type ConfigItem struct {
	Name string `yaml:"name" json:"name"`
	ID   int    `yaml:"id"   json:"id"`
	SID  int    `yaml:"sid"  json:"sid"`
}

// Item is one enhancement level of a watched item at a point in time.
type Item struct {
	Region      string    `json:"region"`
	Name        string    `json:"name"`
	CollectedAt time.Time `json:"collected_at"`
	bdoapi.MarketSubListItem
}

// ItemBidding is one price level of the order book at a point in time.
type ItemBidding struct {
	Region      string    `json:"region"`
	Name        string    `json:"name"`
	ItemID      int64     `json:"id"`
	SID         int64     `json:"sid"`
	CollectedAt time.Time `json:"collected_at"`
	bdoapi.BiddingOrder
}

// BiddingSummary is what the orders endpoint returns next to the raw book.
type BiddingSummary struct {
	MinSale int64                 `json:"min_sale"`
	MaxBuy  int64                 `json:"max_buy"`
	Orders  []bdoapi.BiddingOrder `json:"orders"`
}
