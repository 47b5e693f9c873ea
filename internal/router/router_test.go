package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"bdo_market_go/internal/handler"
	"bdo_market_go/internal/model"
	"bdo_market_go/internal/repo"
	"bdo_market_go/internal/service"
	"bdo_market_go/pkg/bdoapi"
	"bdo_market_go/pkg/logger"
)

type fakeMarket struct{}

func (fakeMarket) Items(_ context.Context, r bdoapi.Region, main, sub int) ([]bdoapi.MarketListItem, error) {
	return []bdoapi.MarketListItem{{ItemID: int64(main*100 + sub)}}, nil
}

func (fakeMarket) Item(_ context.Context, r bdoapi.Region, id int) ([]bdoapi.MarketSubListItem, error) {
	if r == bdoapi.KR {
		return nil, fmt.Errorf("%w: %s", service.ErrUnknownRegion, r)
	}
	return []bdoapi.MarketSubListItem{{ItemID: int64(id), CurrentStock: 3}}, nil
}

func (fakeMarket) Orders(_ context.Context, r bdoapi.Region, id, sid int) ([]bdoapi.BiddingOrder, error) {
	return []bdoapi.BiddingOrder{
		{Price: 53801, Sellers: 198, Buyers: 55428},
		{Price: 53802, Sellers: 0, Buyers: 17725},
	}, nil
}

func (fakeMarket) Search(_ context.Context, r bdoapi.Region, q string) ([]bdoapi.MarketListItem, error) {
	return nil, errors.New("upstream down")
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	snapshots := repo.NewSnapshotRepoInMemory()
	_ = snapshots.SaveItems(context.Background(), []model.Item{
		{Region: "NA", Name: "Memory Fragment", MarketSubListItem: bdoapi.MarketSubListItem{ItemID: 44195, CurrentStock: 7}},
	})
	Register(r, Dependencies{
		MarketHandler:  handler.NewMarketHandler(fakeMarket{}, logger.Nop()),
		HistoryHandler: handler.NewHistoryHandler(snapshots, logger.Nop()),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("market_decode_total 1\n"))
		}),
	})
	return r
}

func get(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestStatusCodes(t *testing.T) {
	r := newEngine()
	tests := []struct {
		url  string
		want int
	}{
		{"/", http.StatusOK},
		{"/healthz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/items?category=25&subcategory=1", http.StatusOK},
		{"/api/v1/items?category=25", http.StatusBadRequest},
		{"/api/v1/item?id=44195&region=eu", http.StatusOK},
		{"/api/v1/item?id=44195&region=jp", http.StatusBadRequest},
		{"/api/v1/item?id=44195&region=kr", http.StatusNotFound},
		{"/api/v1/item", http.StatusBadRequest},
		{"/api/v1/orders?id=11254", http.StatusOK},
		{"/api/v1/orders?id=11254&sid=-1", http.StatusBadRequest},
		{"/api/v1/search?q=ore", http.StatusBadGateway},
		{"/api/v1/history?id=44195", http.StatusOK},
		{"/api/v1/history?id=44195&region=eu", http.StatusNotFound},
		{"/api/v1/history?id=44195&region=jp", http.StatusBadRequest},
		{"/api/v1/history", http.StatusBadRequest},
	}
	for _, tc := range tests {
		if w := get(t, r, tc.url); w.Code != tc.want {
			t.Errorf("%s: expected(%d) != actual(%d) %s", tc.url, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestOrdersBody(t *testing.T) {
	w := get(t, newEngine(), "/api/v1/orders?id=11254&sid=0&region=na")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var got model.BiddingSummary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.MinSale != 53801 || got.MaxBuy != 53802 || len(got.Orders) != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestHistoryBody(t *testing.T) {
	w := get(t, newEngine(), "/api/v1/history?id=44195&region=na")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d %s", w.Code, w.Body.String())
	}
	var got []model.Item
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Memory Fragment" || got[0].CurrentStock != 7 {
		t.Fatalf("got %+v", got)
	}
}

func TestHistoryDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, Dependencies{MarketHandler: handler.NewMarketHandler(fakeMarket{}, logger.Nop())})
	if w := get(t, r, "/api/v1/history?id=44195"); w.Code != http.StatusNotFound {
		t.Fatalf("expected(404) != actual(%d)", w.Code)
	}
}
