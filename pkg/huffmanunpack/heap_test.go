package huffmanunpack

import (
	"math/rand"
	"sort"
	"testing"
)

type heapItem struct {
	id  int
	pri uint64
}

func newItemHeap() *Heap[heapItem] {
	return NewHeap(func(it heapItem) uint64 { return it.pri })
}

func TestHeapEmpty(t *testing.T) {
	h := newItemHeap()
	if _, ok := h.PopMin(); ok {
		t.Fatal("pop on empty heap returned ok")
	}
	if _, ok := h.Peek(); ok {
		t.Fatal("peek on empty heap returned ok")
	}
}

func TestHeapOrdersByPriority(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := newItemHeap()
	want := make([]uint64, 0, 200)
	for i := 0; i < 200; i++ {
		p := uint64(rng.Intn(50))
		want = append(want, p)
		h.Push(heapItem{id: i, pri: p})
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	for i, p := range want {
		top, ok := h.Peek()
		if !ok {
			t.Fatalf("%d: peek failed", i)
		}
		got, ok := h.PopMin()
		if !ok {
			t.Fatalf("%d: pop failed", i)
		}
		if top != got {
			t.Fatalf("%d: peek %+v != pop %+v", i, top, got)
		}
		if got.pri != p {
			t.Fatalf("%d: expected(%d) != actual(%d)", i, p, got.pri)
		}
	}
	if h.Len() != 0 {
		t.Fatalf("len %d after draining", h.Len())
	}
}

// 동률 처리 순서는 인코더와 같아야 해요
func TestHeapTieOrder(t *testing.T) {
	h := newItemHeap()
	for i := 0; i < 3; i++ {
		h.Push(heapItem{id: i, pri: 7})
	}
	var got []int
	for h.Len() > 0 {
		it, _ := h.PopMin()
		got = append(got, it.id)
	}
	want := []int{0, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected(%v) != actual(%v)", want, got)
		}
	}
}
