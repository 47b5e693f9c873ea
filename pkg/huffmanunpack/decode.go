package huffmanunpack

import (
	"bytes"

	"github.com/32bitkid/bitreader"
	"github.com/pkg/errors"
)

/*** ---------- 트레일러 (packedBits, packedBytes, unpackedBytes) ---------- ***/

type Trailer struct {
	PackedBits    uint32
	PackedBytes   uint32
	UnpackedBytes uint32 // 용량 힌트
}

// ReadTrailer reads the three length fields that follow the frequency table
// and then the packed payload itself.
func ReadTrailer(c *Cursor) (Trailer, []byte, error) {
	var tr Trailer
	var err error
	if tr.PackedBits, err = c.ReadU32(); err != nil {
		return tr, nil, errors.WithMessage(err, "packed bit length")
	}
	if tr.PackedBytes, err = c.ReadU32(); err != nil {
		return tr, nil, errors.WithMessage(err, "packed byte length")
	}
	if tr.UnpackedBytes, err = c.ReadU32(); err != nil {
		return tr, nil, errors.WithMessage(err, "unpacked byte length")
	}
	packed, err := c.ReadBytes(int(tr.PackedBytes))
	if err != nil {
		return tr, nil, errors.WithMessage(err, "packed payload")
	}
	if uint64(tr.PackedBits) > 8*uint64(tr.PackedBytes) {
		return tr, nil, errors.Wrapf(ErrMalformedHeader, "%d packed bits declared in %d bytes", tr.PackedBits, tr.PackedBytes)
	}
	return tr, packed, nil
}

/*** ---------- 비트스트림 디코딩 (MSB-first) ---------- ***/

// Decode turns the first tr.PackedBits bits of packed into symbols. Bits are
// taken most significant first within each byte; the padding after
// PackedBits is ignored.
//
// A one-symbol alphabet has the empty code, which no bit can ever match, so
// it skips the bit loop and repeats the symbol tr.UnpackedBytes times.
func Decode(ct *CodeTable, tr Trailer, packed []byte) ([]Symbol, error) {
	if ct.Len() == 1 {
		sym, ok := ct.Lookup("")
		if !ok {
			return nil, errors.Wrap(ErrMalformedHeader, "single-symbol table without empty code")
		}
		out := make([]Symbol, tr.UnpackedBytes)
		for i := range out {
			out[i] = sym
		}
		return out, nil
	}

	// 심볼마다 최소 1비트
	capacity := tr.UnpackedBytes
	if tr.PackedBits < capacity {
		capacity = tr.PackedBits
	}
	out := make([]Symbol, 0, capacity)

	var br bitreader.BitReader8 = bitreader.NewReader(bytes.NewReader(packed))
	candidate := make([]byte, 0, ct.MaxLen())
	for i := uint32(0); i < tr.PackedBits; i++ {
		bit, err := br.Read1()
		if err != nil {
			return nil, errors.Wrapf(ErrOutOfData, "bit %d of %d: %v", i, tr.PackedBits, err)
		}
		if bit {
			candidate = append(candidate, '1')
		} else {
			candidate = append(candidate, '0')
		}
		if sym, ok := ct.byCode[string(candidate)]; ok {
			out = append(out, sym)
			candidate = candidate[:0]
		}
	}
	if len(candidate) > 0 {
		return nil, errors.Wrapf(ErrTruncatedStream, "%d dangling bits %q after %d symbols", len(candidate), candidate, len(out))
	}
	return out, nil
}
