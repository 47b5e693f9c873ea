package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"bdo_market_go/internal/model"
	"bdo_market_go/pkg/bdoapi"
)

func item(region string, id, sid int64, stock int64, at time.Time) model.Item {
	return model.Item{
		Region:      region,
		Name:        "Memory Fragment",
		CollectedAt: at,
		MarketSubListItem: bdoapi.MarketSubListItem{
			ItemID: id, EnhanceMin: sid, EnhanceMax: sid, CurrentStock: stock,
		},
	}
}

func TestInMemoryLatestItems(t *testing.T) {
	ctx := context.Background()
	r := NewSnapshotRepoInMemory()
	t0 := time.Unix(1700000000, 0)

	if _, err := r.LatestItems(ctx, "NA", 44195); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	err := r.SaveItems(ctx, []model.Item{
		item("NA", 44195, 1, 10, t0),
		item("NA", 44195, 0, 5, t0),
		item("EU", 44195, 0, 99, t0),
	})
	if err != nil {
		t.Fatal(err)
	}
	// 오래된 스냅샷은 덮어쓰지 않아요
	_ = r.SaveItems(ctx, []model.Item{item("NA", 44195, 0, 1, t0.Add(-time.Hour))})
	_ = r.SaveItems(ctx, []model.Item{item("NA", 44195, 1, 11, t0.Add(time.Hour))})

	got, err := r.LatestItems(ctx, "NA", 44195)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].EnhanceMin != 0 || got[0].CurrentStock != 5 || got[1].CurrentStock != 11 {
		t.Fatalf("got %+v", got)
	}
}

func TestInMemorySaveBidding(t *testing.T) {
	r := NewSnapshotRepoInMemory().(*snapshotRepoInMemory)
	orders := []model.ItemBidding{{Region: "NA", ItemID: 1, BiddingOrder: bdoapi.BiddingOrder{Price: 10, Sellers: 1}}}
	if err := r.SaveBidding(context.Background(), orders); err != nil {
		t.Fatal(err)
	}
	if len(r.bidding) != 1 || r.bidding[0].Price != 10 {
		t.Fatalf("got %+v", r.bidding)
	}
}
