package huffmanunpack

import (
	"encoding/binary"
	"testing"
)

// 캡처한 실제 응답 (GetBiddingInfoList)
var samplePayload = []byte{
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
	0x85, 0x00, 0x00, 0x00, // packedBits = 133
	0x11, 0x00, 0x00, 0x00, // packedBytes = 17
	0x29, 0x00, 0x00, 0x00, // unpackedBytes = 41
	0xD3, 0x0C, 0x78, 0x90, 0xFB, 0x1D, 0x0E, 0x6E,
	0x4B, 0x4C, 0x35, 0xDF, 0x17, 0x75, 0xBD, 0xAA, 0x90,
}

const sampleText = "53801-198-55428-4050|53802-0-17725-70000|"

type wireTrailer struct {
	bits, bytes, unpacked uint32
}

// buildWire assembles a buffer in the upstream layout.
func buildWire(entries []FrequencyEntry, tr wireTrailer, packed []byte) []byte {
	var b []byte
	b = binary.LittleEndian.AppendUint32(b, 0) // declaredLength, 아래에서 채움
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(entries)))
	for _, e := range entries {
		b = binary.LittleEndian.AppendUint32(b, e.Count)
		b = binary.LittleEndian.AppendUint32(b, uint32(e.Symbol))
	}
	b = binary.LittleEndian.AppendUint32(b, tr.bits)
	b = binary.LittleEndian.AppendUint32(b, tr.bytes)
	b = binary.LittleEndian.AppendUint32(b, tr.unpacked)
	b = append(b, packed...)
	binary.LittleEndian.PutUint32(b, uint32(len(b)))
	return b
}

// pack is a test-only encoder: it counts runes in text, builds the same tree
// the decoder will, and packs the codes MSB-first.
func pack(t *testing.T, text string) []byte {
	t.Helper()
	ft := NewFrequencyTable(0)
	for _, r := range text {
		n, _ := ft.Count(Symbol(r))
		ft.Set(Symbol(r), n+1)
	}
	tree, err := BuildTree(ft)
	if err != nil {
		t.Fatal(err)
	}
	ct := BuildCodeTable(tree)

	var packed []byte
	var nbits uint32
	var symbols uint32
	for _, r := range text {
		code, ok := ct.Code(Symbol(r))
		if !ok {
			t.Fatalf("no code for %q", r)
		}
		for i := 0; i < len(code); i++ {
			if nbits%8 == 0 {
				packed = append(packed, 0)
			}
			if code[i] == '1' {
				packed[len(packed)-1] |= 0x80 >> (nbits % 8)
			}
			nbits++
		}
		symbols++
	}
	return buildWire(ft.Entries(), wireTrailer{bits: nbits, bytes: uint32(len(packed)), unpacked: symbols}, packed)
}
