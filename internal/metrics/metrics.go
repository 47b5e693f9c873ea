package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"bdo_market_go/internal/model"
	"bdo_market_go/pkg/bdoapi"
	"bdo_market_go/pkg/logger"
)

// Source is satisfied by *service.MarketService.
type Source interface {
	Regions() []bdoapi.Region
	Item(ctx context.Context, region bdoapi.Region, id int) ([]bdoapi.MarketSubListItem, error)
	Orders(ctx context.Context, region bdoapi.Region, id, sid int) ([]bdoapi.BiddingOrder, error)
}

var (
	itemLabels    = []string{"region", "name", "id", "sid"}
	biddingLabels = []string{"region", "name", "id", "sid", "price"}
)

/*** ---------- 아이템 게이지 ---------- ***/

type ItemCollector struct {
	src     Source
	items   []model.ConfigItem
	timeout time.Duration
	logger  logger.Logger

	totalTrades  *prometheus.Desc
	currentStock *prometheus.Desc
	basePrice    *prometheus.Desc
}

func NewItemCollector(src Source, items []model.ConfigItem, timeout time.Duration, l logger.Logger) *ItemCollector {
	return &ItemCollector{
		src: src, items: items, timeout: timeout, logger: l,
		totalTrades:  prometheus.NewDesc("market_item_total_trades", "Market Item Total Trades", itemLabels, nil),
		currentStock: prometheus.NewDesc("market_item_current_stock", "Market Item Current Stock", itemLabels, nil),
		basePrice:    prometheus.NewDesc("market_item_base_price", "Market Item Base Price", itemLabels, nil),
	}
}

func (c *ItemCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalTrades
	ch <- c.currentStock
	ch <- c.basePrice
}

// Collect labels every enhancement level with its own sid so levels of the
// same item never collide.
func (c *ItemCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	for _, region := range c.src.Regions() {
		for _, it := range c.items {
			levels, err := c.src.Item(ctx, region, it.ID)
			if err != nil {
				c.logger.Errorf("metrics [%s] %s(%d): %v", region, it.Name, it.ID, err)
				continue
			}
			for _, lv := range levels {
				labels := []string{string(region), it.Name, strconv.Itoa(it.ID), strconv.FormatInt(lv.EnhanceMin, 10)}
				ch <- prometheus.MustNewConstMetric(c.totalTrades, prometheus.GaugeValue, float64(lv.TotalTrades), labels...)
				ch <- prometheus.MustNewConstMetric(c.currentStock, prometheus.GaugeValue, float64(lv.CurrentStock), labels...)
				ch <- prometheus.MustNewConstMetric(c.basePrice, prometheus.GaugeValue, float64(lv.BasePrice), labels...)
			}
		}
	}
}

/*** ---------- 호가 게이지 ---------- ***/

type BiddingCollector struct {
	src     Source
	items   []model.ConfigItem
	timeout time.Duration
	logger  logger.Logger

	buyers  *prometheus.Desc
	sellers *prometheus.Desc
}

func NewBiddingCollector(src Source, items []model.ConfigItem, timeout time.Duration, l logger.Logger) *BiddingCollector {
	return &BiddingCollector{
		src: src, items: items, timeout: timeout, logger: l,
		buyers:  prometheus.NewDesc("market_item_bidding_buyers", "Market Item Bidding Buyers", biddingLabels, nil),
		sellers: prometheus.NewDesc("market_item_bidding_sellers", "Market Item Bidding Sellers", biddingLabels, nil),
	}
}

func (c *BiddingCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.buyers
	ch <- c.sellers
}

func (c *BiddingCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	for _, region := range c.src.Regions() {
		for _, it := range c.items {
			orders, err := c.src.Orders(ctx, region, it.ID, it.SID)
			if err != nil {
				c.logger.Errorf("metrics [%s] %s(%d, %d): %v", region, it.Name, it.ID, it.SID, err)
				continue
			}
			for _, o := range orders {
				labels := []string{string(region), it.Name, strconv.Itoa(it.ID), strconv.Itoa(it.SID), strconv.FormatInt(o.Price, 10)}
				ch <- prometheus.MustNewConstMetric(c.buyers, prometheus.GaugeValue, float64(o.Buyers), labels...)
				ch <- prometheus.MustNewConstMetric(c.sellers, prometheus.GaugeValue, float64(o.Sellers), labels...)
			}
		}
	}
}

/*** ---------- 디코딩 카운터 ---------- ***/

type DecodeMetrics struct {
	total *prometheus.CounterVec
}

func NewDecodeMetrics() *DecodeMetrics {
	return &DecodeMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_decode_total",
			Help: "Huffman octet-stream responses decoded, by result",
		}, []string{"region", "api", "result"}),
	}
}

// Hook plugs into bdoapi.WithDecodeHook.
func (d *DecodeMetrics) Hook() bdoapi.DecodeHook {
	return func(region bdoapi.Region, api string, err error) {
		result := "ok"
		if err != nil {
			result = "error"
		}
		d.total.WithLabelValues(string(region), api, result).Inc()
	}
}

func (d *DecodeMetrics) Collector() prometheus.Collector { return d.total }

// Register adds every market collector to reg.
func Register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
