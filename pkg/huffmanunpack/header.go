package huffmanunpack

import "github.com/pkg/errors"

// Symbol is one decoded unit, a Unicode code point in practice.
type Symbol uint32

type FrequencyEntry struct {
	Symbol Symbol
	Count  uint32
}

// FrequencyTable maps symbol -> count and remembers the order in which each
// symbol first appeared. A repeated symbol overwrites the count but keeps its
// original position, so leaves are seeded into the heap in the same order the
// encoder saw them.
type FrequencyTable struct {
	entries []FrequencyEntry
	index   map[Symbol]int
}

func NewFrequencyTable(capacity int) *FrequencyTable {
	return &FrequencyTable{
		entries: make([]FrequencyEntry, 0, capacity),
		index:   make(map[Symbol]int, capacity),
	}
}

// Set records count for sym. Last write wins.
func (ft *FrequencyTable) Set(sym Symbol, count uint32) {
	if i, ok := ft.index[sym]; ok {
		ft.entries[i].Count = count
		return
	}
	ft.index[sym] = len(ft.entries)
	ft.entries = append(ft.entries, FrequencyEntry{Symbol: sym, Count: count})
}

func (ft *FrequencyTable) Count(sym Symbol) (uint32, bool) {
	i, ok := ft.index[sym]
	if !ok {
		return 0, false
	}
	return ft.entries[i].Count, true
}

// Len is the alphabet size.
func (ft *FrequencyTable) Len() int { return len(ft.entries) }

// Entries returns a copy in first-appearance order.
func (ft *FrequencyTable) Entries() []FrequencyEntry {
	out := make([]FrequencyEntry, len(ft.entries))
	copy(out, ft.entries)
	return out
}

func (ft *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, e := range ft.entries {
		sum += uint64(e.Count)
	}
	return sum
}

/*** ---------- 헤더 파싱 (3개 길이 필드 + (count, symbol) 쌍) ---------- ***/

type Header struct {
	DeclaredLength uint32 // 정보용, 검증 안 함
	SymbolCount    uint32
	Frequencies    *FrequencyTable
}

// ReadHeader consumes declaredLength, reserved, symbolCount and the
// frequency pairs from c.
func ReadHeader(c *Cursor) (Header, error) {
	var h Header
	var err error
	if h.DeclaredLength, err = c.ReadU32(); err != nil {
		return h, errors.WithMessage(err, "declared length")
	}
	reserved, err := c.ReadU32()
	if err != nil {
		return h, errors.WithMessage(err, "reserved")
	}
	if reserved != 0 {
		return h, errors.Wrapf(ErrMalformedHeader, "reserved field is %#x, want 0", reserved)
	}
	if h.SymbolCount, err = c.ReadU32(); err != nil {
		return h, errors.WithMessage(err, "symbol count")
	}
	if h.SymbolCount == 0 {
		return h, ErrEmptyAlphabet
	}

	// 선언된 개수만 믿고 크게 잡지 않아요
	capacity := int(h.SymbolCount)
	if most := c.Remaining() / 8; most < capacity {
		capacity = most
	}
	h.Frequencies = NewFrequencyTable(capacity)
	for i := uint32(0); i < h.SymbolCount; i++ {
		count, err := c.ReadU32()
		if err != nil {
			return h, errors.WithMessagef(err, "frequency pair %d/%d", i+1, h.SymbolCount)
		}
		sym, err := c.ReadU32()
		if err != nil {
			return h, errors.WithMessagef(err, "frequency pair %d/%d", i+1, h.SymbolCount)
		}
		h.Frequencies.Set(Symbol(sym), count)
	}
	return h, nil
}
