package huffmanunpack

import (
	"github.com/chronos-tachyon/assert"
)

/*** ---------- 노드 (Leaf / Internal) ---------- ***/

// Node is either a Leaf or an Internal. Consumers switch on the concrete
// type; there is no sentinel symbol for internal nodes.
type Node interface {
	Frequency() uint64
	node()
}

type Leaf struct {
	Symbol Symbol
	Freq   uint64
}

// Internal refers to its children by arena index.
type Internal struct {
	Freq        uint64
	Left, Right int
}

func (l Leaf) Frequency() uint64     { return l.Freq }
func (n Internal) Frequency() uint64 { return n.Freq }
func (Leaf) node()                   {}
func (Internal) node()               {}

// Tree stores every node in one slice. Children always sit at lower
// indices than their parent, and the root is the last node appended.
type Tree struct {
	nodes  []Node
	root   int
	leaves int
}

func (t *Tree) Root() int       { return t.root }
func (t *Tree) Node(i int) Node { return t.nodes[i] }
func (t *Tree) Len() int        { return len(t.nodes) }
func (t *Tree) Leaves() int     { return t.leaves }

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

/*** ---------- 트리 구성 (입력 순서 보존해 push) ---------- ***/

// BuildTree seeds a min-heap with one leaf per symbol, in first-appearance
// order, then repeatedly merges the two cheapest nodes. The first node popped
// becomes the left child.
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	if ft == nil || ft.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	t := &Tree{
		nodes:  make([]Node, 0, 2*ft.Len()-1),
		leaves: ft.Len(),
	}
	h := NewHeap(func(i int) uint64 { return t.nodes[i].Frequency() })
	for _, e := range ft.entries {
		h.Push(t.add(Leaf{Symbol: e.Symbol, Freq: uint64(e.Count)}))
	}
	for h.Len() > 1 {
		a, _ := h.PopMin()
		b, _ := h.PopMin()
		freq := t.nodes[a].Frequency() + t.nodes[b].Frequency()
		h.Push(t.add(Internal{Freq: freq, Left: a, Right: b})) // a=left, b=right
	}
	t.root, _ = h.PopMin()

	assert.Assertf(len(t.nodes) == 2*t.leaves-1, "full tree: %d nodes for %d leaves", len(t.nodes), t.leaves)
	assert.Assertf(t.nodes[t.root].Frequency() == ft.Total(), "root frequency %d != total %d", t.nodes[t.root].Frequency(), ft.Total())
	return t, nil
}
