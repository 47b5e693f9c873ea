package bdoapi

import (
	"fmt"
	"strings"
)

// Region selects which trade server to talk to.
type Region string

const (
	NA Region = "NA"
	EU Region = "EU"
	KR Region = "KR"
)

var regionHosts = map[Region]string{
	NA: "na-trade.naeu.playblackdesert.com",
	EU: "eu-trade.naeu.playblackdesert.com",
	KR: "trade.kr.playblackdesert.com",
}

// Regions lists every known region in a fixed order.
var Regions = []Region{NA, EU, KR}

// ParseRegion accepts "na", "NA", "Na", ...
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := regionHosts[r]; !ok {
		return "", fmt.Errorf("unknown region %q", s)
	}
	return r, nil
}

func (r Region) Host() string { return regionHosts[r] }

func (r Region) BaseURL() string { return "https://" + r.Host() + "/Trademarket/" }
