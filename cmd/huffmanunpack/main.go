package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	hfm "bdo_market_go/pkg/huffmanunpack"
)

// 캡처한 octet-stream 응답을 풀어서 출력해요. 인자가 없으면 stdin.
func main() {
	strict := flag.Bool("strict", false, "fail when the symbol count differs from unpackedByteLength")
	verbose := flag.Bool("v", false, "print header and code table to stderr")
	flag.Parse()

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "open:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	b, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}

	var opts []hfm.Option
	if *strict {
		opts = append(opts, hfm.WithLengthCheck())
	}
	p, err := hfm.Unpack(b, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unpack:", err)
		os.Exit(1)
	}
	if *verbose {
		dump(p)
	}
	fmt.Println(p.String())
}

func dump(p *hfm.Payload) {
	fmt.Fprintf(os.Stderr, "declared=%d symbols=%d packedBits=%d packedBytes=%d unpacked=%d\n",
		p.Header.DeclaredLength, p.Header.SymbolCount,
		p.Trailer.PackedBits, p.Trailer.PackedBytes, p.Trailer.UnpackedBytes)
	tree, err := hfm.BuildTree(p.Header.Frequencies)
	if err != nil {
		return
	}
	ct := hfm.BuildCodeTable(tree)
	for _, code := range ct.Codes() {
		sym, _ := ct.Lookup(code)
		n, _ := p.Header.Frequencies.Count(sym)
		fmt.Fprintf(os.Stderr, "  %-12q %q x%d\n", code, rune(sym), n)
	}
}
