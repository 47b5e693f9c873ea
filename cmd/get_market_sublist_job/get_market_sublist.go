package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bdo_market_go/pkg/bdoapi"
)

func main() {
	region := flag.String("region", "na", "trade market region (na, eu, kr)")
	id := flag.Int("id", 15720, "item main key")
	flag.Parse()

	r, err := bdoapi.ParseRegion(*region)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	list, err := bdoapi.NewClient(r).GetWorldMarketSubList(context.Background(), *id)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("parsed %d items\n", len(list))
	for _, it := range list {
		fmt.Printf("%+v\n", it)
	}
}
