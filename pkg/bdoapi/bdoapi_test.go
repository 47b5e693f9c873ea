package bdoapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// huffmanunpack 테스트와 같은 캡처 응답
var biddingPayload = []byte{
	0x81, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x0B, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00,
	0x2D, 0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00,
	0x30, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00,
	0x31, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00,
	0x32, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
	0x33, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
	0x34, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00,
	0x35, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00,
	0x37, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x38, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x39, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
	0x7C, 0x00, 0x00, 0x00,
	0x85, 0x00, 0x00, 0x00,
	0x11, 0x00, 0x00, 0x00,
	0x29, 0x00, 0x00, 0x00,
	0xD3, 0x0C, 0x78, 0x90, 0xFB, 0x1D, 0x0E, 0x6E,
	0x4B, 0x4C, 0x35, 0xDF, 0x17, 0x75, 0xBD, 0xAA, 0x90,
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithBaseURL(srv.URL + "/Trademarket"), WithBackoff(time.Millisecond)}, opts...)
	return NewClient(NA, opts...)
}

func TestOctetStreamIsUnpacked(t *testing.T) {
	var hookErr error = errors.New("hook not called")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Trademarket/GetBiddingInfoList" {
			t.Errorf("path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "BlackDesert" {
			t.Errorf("user agent %q", r.Header.Get("User-Agent"))
		}
		var p MainSubKeyPayload
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &p); err != nil || p.MainKey != 11254 || p.SubKey != 0 {
			t.Errorf("payload %s: %v", body, err)
		}
		w.Header().Set("Content-Type", "Application/Octet-Stream")
		_, _ = w.Write(biddingPayload)
	}, WithDecodeHook(func(region Region, api string, err error) { hookErr = err }))

	orders, err := c.GetBiddingInfoList(context.Background(), 11254, 0)
	if err != nil {
		t.Fatal(err)
	}
	if hookErr != nil {
		t.Fatalf("hook: %v", hookErr)
	}
	want := []BiddingOrder{
		{Price: 53801, Sellers: 198, Buyers: 55428},
		{Price: 53802, Sellers: 0, Buyers: 17725},
	}
	if len(orders) != len(want) {
		t.Fatalf("got %+v", orders)
	}
	for i := range want {
		if orders[i] != want[i] {
			t.Fatalf("%d: expected(%+v) != actual(%+v)", i, want[i], orders[i])
		}
	}
}

func TestJSONResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"resultCode":0,"resultMsg":"44195-0-10-1170000-5-1170000-1000000-1890000-1170000-1700000000|44195-1-1-0-0-0-1-2-3-4|"}`))
	})
	items, err := c.GetWorldMarketSubList(context.Background(), 44195)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %+v", items)
	}
	if items[0].CurrentStock != 5 || items[0].TotalTrades != 1170000 || items[0].LastTradePrice != 1170000 {
		t.Fatalf("got %+v", items[0])
	}
}

func TestResultCodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultCode":8,"resultMsg":"not found"}`))
	})
	if _, err := c.Do(context.Background(), MarketSubListRequest(1)); !errors.Is(err, ErrResult) {
		t.Fatalf("expected ErrResult, got %v", err)
	}
}

func TestRetriesOnServerError(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"resultCode":0,"resultMsg":"1-2-3-4|"}`))
	}, WithRetries(3))

	items, err := c.GetWorldMarketList(context.Background(), 25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 || len(items) != 1 || items[0].BasePrice != 4 {
		t.Fatalf("calls=%d items=%+v", n, items)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}, WithRetries(3))

	_, err := c.Do(context.Background(), MarketListRequest(25, 1))
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls=%d", n)
	}
}

func TestGiveUpAfterRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithRetries(2))

	if _, err := c.Do(context.Background(), MarketListRequest(25, 1)); !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls=%d", n)
	}
}

func TestBrokenOctetStream(t *testing.T) {
	var hookErr error
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(biddingPayload[:40])
	}, WithDecodeHook(func(region Region, api string, err error) { hookErr = err }))

	if _, err := c.Do(context.Background(), BiddingInfoRequest(1, 0)); err == nil {
		t.Fatal("expected error")
	}
	if hookErr == nil {
		t.Fatal("hook did not see the decode error")
	}
}

func TestRequestKey(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{MarketListRequest(25, 1), "GetWorldMarketList_25_1"},
		{MarketSubListRequest(44195), "GetWorldMarketSubList_44195"},
		{BiddingInfoRequest(11254, 0), "GetBiddingInfoList_11254_0"},
		{SearchRequest("ore"), "GetWorldMarketSearchList_ore"},
	}
	for _, tc := range tests {
		if got := tc.req.Key(); got != tc.want {
			t.Errorf("expected(%s) != actual(%s)", tc.want, got)
		}
	}
}

func TestParseRegion(t *testing.T) {
	for in, want := range map[string]Region{"na": NA, " EU ": EU, "Kr": KR} {
		got, err := ParseRegion(in)
		if err != nil || got != want {
			t.Errorf("%q: %s %v", in, got, err)
		}
	}
	if _, err := ParseRegion("jp"); err == nil {
		t.Error("jp accepted")
	}
}
