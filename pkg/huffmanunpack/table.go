package huffmanunpack

import (
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps prefix-free bit strings ("0"/"1" characters) to symbols.
// It is built once per decode and never mutated afterwards.
type CodeTable struct {
	bySymbol map[Symbol]string
	byCode   map[string]Symbol
	maxLen   int
}

type frame struct {
	node int
	code string
}

// BuildCodeTable walks t depth-first with an explicit stack; left appends
// '0', right appends '1'. A single-leaf tree yields the empty code.
func BuildCodeTable(t *Tree) *CodeTable {
	ct := &CodeTable{
		bySymbol: make(map[Symbol]string, t.Leaves()),
		byCode:   make(map[string]Symbol, t.Leaves()),
	}
	stack := []frame{{node: t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := t.Node(f.node).(type) {
		case Leaf:
			ct.byCode[f.code] = n.Symbol
			ct.bySymbol[n.Symbol] = f.code
			if len(f.code) > ct.maxLen {
				ct.maxLen = len(f.code)
			}
		case Internal:
			stack = append(stack,
				frame{node: n.Right, code: f.code + "1"},
				frame{node: n.Left, code: f.code + "0"},
			)
		}
	}
	assert.Assertf(len(ct.byCode) == t.Leaves(), "code table has %d entries for %d leaves", len(ct.byCode), t.Leaves())
	return ct
}

// Lookup returns the symbol for an exact code match.
func (ct *CodeTable) Lookup(code string) (Symbol, bool) {
	sym, ok := ct.byCode[code]
	return sym, ok
}

// Code is the reverse lookup, used mostly by tests and tooling.
func (ct *CodeTable) Code(sym Symbol) (string, bool) {
	code, ok := ct.bySymbol[sym]
	return code, ok
}

func (ct *CodeTable) Len() int { return len(ct.byCode) }

// MaxLen is the length of the longest code.
func (ct *CodeTable) MaxLen() int { return ct.maxLen }

// Codes returns every code sorted by length, then lexically.
func (ct *CodeTable) Codes() []string {
	out := make([]string, 0, len(ct.byCode))
	for code := range ct.byCode {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
