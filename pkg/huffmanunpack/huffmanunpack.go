// Package huffmanunpack decodes the Huffman-packed octet streams the trade
// market server sends instead of JSON.
//
// Layout, every integer a little-endian uint32:
//
//	declaredLength, reserved (0), symbolCount
//	symbolCount x (count, symbol)
//	packedBitLength, packedByteLength, unpackedByteLength
//	packedByteLength bytes of MSB-first packed bits
package huffmanunpack

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Payload is the result of one decode.
type Payload struct {
	Header  Header
	Trailer Trailer
	Symbols []Symbol
}

// String writes every symbol as a Unicode code point.
func (p *Payload) String() string {
	var sb strings.Builder
	sb.Grow(len(p.Symbols))
	for _, s := range p.Symbols {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

// Bytes is the UTF-8 form of String.
func (p *Payload) Bytes() []byte {
	out := make([]byte, 0, len(p.Symbols))
	for _, s := range p.Symbols {
		out = utf8.AppendRune(out, rune(s))
	}
	return out
}

// DefaultMaxSymbols bounds unpackedByteLength unless WithMaxSymbols says
// otherwise. Market responses are a few kilobytes.
const DefaultMaxSymbols = 1 << 22

type options struct {
	lengthCheck bool
	maxSymbols  uint32
}

type Option func(*options)

// WithLengthCheck fails the decode with ErrLengthMismatch when the number of
// decoded symbols differs from the declared unpackedByteLength.
func WithLengthCheck() Option {
	return func(o *options) { o.lengthCheck = true }
}

// WithMaxSymbols rejects payloads whose unpackedByteLength exceeds n with
// ErrMalformedHeader. Zero removes the limit.
func WithMaxSymbols(n uint32) Option {
	return func(o *options) { o.maxSymbols = n }
}

/*** ---------- 공개 API ---------- ***/

// Unpack decodes b in one go. It keeps no state between calls and is safe to
// call from many goroutines.
func Unpack(b []byte, opts ...Option) (*Payload, error) {
	o := options{maxSymbols: DefaultMaxSymbols}
	for _, opt := range opts {
		opt(&o)
	}

	c := NewCursor(b)
	h, err := ReadHeader(c)
	if err != nil {
		return nil, err
	}
	tree, err := BuildTree(h.Frequencies)
	if err != nil {
		return nil, err
	}
	table := BuildCodeTable(tree)

	tr, packed, err := ReadTrailer(c)
	if err != nil {
		return nil, err
	}
	// 단일 심볼 경로는 unpackedByteLength만큼 그대로 할당한다
	if o.maxSymbols > 0 && tr.UnpackedBytes > o.maxSymbols {
		return nil, errors.Wrapf(ErrMalformedHeader, "%d unpacked symbols declared, limit is %d", tr.UnpackedBytes, o.maxSymbols)
	}
	syms, err := Decode(table, tr, packed)
	if err != nil {
		return nil, err
	}
	if o.lengthCheck && uint64(len(syms)) != uint64(tr.UnpackedBytes) {
		return nil, errors.Wrapf(ErrLengthMismatch, "decoded %d symbols, header says %d", len(syms), tr.UnpackedBytes)
	}
	return &Payload{Header: h, Trailer: tr, Symbols: syms}, nil
}

func UnpackBytes(b []byte) (string, error) {
	p, err := Unpack(b)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

func UnpackFromReader(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return UnpackBytes(b)
}
