package bdoapi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 응답 시 받는 데이터 구조체
type MarketListItem struct {
	ItemID       int64 `json:"id"`
	CurrentStock int64 `json:"current_stock"`
	TotalTrades  int64 `json:"total_trades"`
	BasePrice    int64 `json:"base_price"`
}

// MarketSubListItem is one enhancement level of an item.
type MarketSubListItem struct {
	ItemID         int64 `json:"id"`
	EnhanceMin     int64 `json:"enhancement_min"`
	EnhanceMax     int64 `json:"enhancement_max"`
	BasePrice      int64 `json:"base_price"`
	CurrentStock   int64 `json:"current_stock"`
	TotalTrades    int64 `json:"total_trades"`
	PriceMin       int64 `json:"price_min"`
	PriceMax       int64 `json:"price_max"`
	LastTradePrice int64 `json:"price_last"`
	LastTradeTime  int64 `json:"last_sold"`
}

type BiddingOrder struct {
	Price   int64 `json:"price"`
	Sellers int64 `json:"sellers"`
	Buyers  int64 `json:"buyers"`
}

var (
	marketListFields    = []string{"ItemID", "CurrentStock", "TotalTrades", "BasePrice"}
	marketSubListFields = []string{"ItemID", "EnhanceMin", "EnhanceMax", "BasePrice", "CurrentStock",
		"TotalTrades", "PriceMin", "PriceMax", "LastTradePrice", "LastTradeTime"}
	biddingFields = []string{"Price", "Sellers", "Buyers"}
)

// parseRecords splits "a-b-c|d-e-f|" style text. Empty records are skipped and
// fields past len(names) are ignored.
func parseRecords[T any](raw string, names []string, build func(fs []int64) T) ([]T, error) {
	parts := strings.Split(raw, "|")
	out := make([]T, 0, len(parts))
	fs := make([]int64, len(names))

	for idx, rec := range parts {
		if rec == "" {
			continue
		}
		cols := strings.Split(rec, "-")
		if len(cols) < len(names) {
			return nil, fmt.Errorf("record %d: want %d fields, got %d [%s]", idx, len(names), len(cols), rec)
		}
		for i, name := range names {
			v, err := strconv.ParseInt(cols[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("record %d: %s: %w", idx, name, err)
			}
			fs[i] = v
		}
		out = append(out, build(fs))
	}
	return out, nil
}

func ParseMarketList(raw string) ([]MarketListItem, error) {
	return parseRecords(raw, marketListFields, func(fs []int64) MarketListItem {
		return MarketListItem{ItemID: fs[0], CurrentStock: fs[1], TotalTrades: fs[2], BasePrice: fs[3]}
	})
}

// list는 강화단계별로 나뉘어져 있음
func ParseMarketSubList(raw string) ([]MarketSubListItem, error) {
	return parseRecords(raw, marketSubListFields, func(fs []int64) MarketSubListItem {
		return MarketSubListItem{
			ItemID:         fs[0],
			EnhanceMin:     fs[1],
			EnhanceMax:     fs[2],
			BasePrice:      fs[3],
			CurrentStock:   fs[4],
			TotalTrades:    fs[5],
			PriceMin:       fs[6],
			PriceMax:       fs[7],
			LastTradePrice: fs[8],
			LastTradeTime:  fs[9],
		}
	})
}

func ParseBiddingList(raw string) ([]BiddingOrder, error) {
	return parseRecords(raw, biddingFields, func(fs []int64) BiddingOrder {
		return BiddingOrder{Price: fs[0], Sellers: fs[1], Buyers: fs[2]}
	})
}

// BestPrices returns the lowest price anyone is selling at and the highest
// price anyone is buying at. Zero means nobody is on that side.
func BestPrices(orders []BiddingOrder) (minSale, maxBuy int64) {
	minSale = int64(math.MaxInt64)
	for _, o := range orders {
		if o.Sellers > 0 && o.Price < minSale {
			minSale = o.Price
		}
		if o.Buyers > 0 && o.Price > maxBuy {
			maxBuy = o.Price
		}
	}
	if minSale == int64(math.MaxInt64) {
		minSale = 0 // 판매 대기 없음
	}
	return minSale, maxBuy
}
