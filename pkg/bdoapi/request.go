package bdoapi

import (
	"strconv"
	"strings"
)

// 요청 시 Payload 구조체
type ReqPayload interface {
	CategoryPayload | MainKeyPayload | MainSubKeyPayload | SearchPayload
}
type CategoryPayload struct {
	KeyType      int `json:"keyType"`
	MainCategory int `json:"mainCategory"`
	SubCategory  int `json:"subCategory"`
}
type MainKeyPayload struct {
	KeyType int `json:"keyType"`
	MainKey int `json:"mainKey"`
}
type MainSubKeyPayload struct {
	KeyType int `json:"keyType"`
	MainKey int `json:"mainKey"`
	SubKey  int `json:"subKey"`
}
type SearchPayload struct {
	SearchResult string `json:"searchResult"`
}

// Request is one call against the Trademarket API. Args only feed the cache
// key.
type Request struct {
	API     string
	Payload any
	Args    []string
}

func newRequest[T ReqPayload](api string, payload T, args ...any) Request {
	out := Request{API: api, Payload: payload, Args: make([]string, 0, len(args))}
	for _, a := range args {
		switch v := a.(type) {
		case int:
			out.Args = append(out.Args, strconv.Itoa(v))
		case string:
			out.Args = append(out.Args, v)
		}
	}
	return out
}

// Key is API plus args joined with '_', e.g. "GetBiddingInfoList_11254_0".
func (r Request) Key() string {
	if len(r.Args) == 0 {
		return r.API
	}
	return r.API + "_" + strings.Join(r.Args, "_")
}

func MarketListRequest(mainCategory, subCategory int) Request {
	return newRequest("GetWorldMarketList",
		CategoryPayload{KeyType: 0, MainCategory: mainCategory, SubCategory: subCategory},
		mainCategory, subCategory)
}

func MarketSubListRequest(mainKey int) Request {
	return newRequest("GetWorldMarketSubList", MainKeyPayload{KeyType: 0, MainKey: mainKey}, mainKey)
}

func BiddingInfoRequest(mainKey, subKey int) Request {
	return newRequest("GetBiddingInfoList",
		MainSubKeyPayload{KeyType: 0, MainKey: mainKey, SubKey: subKey},
		mainKey, subKey)
}

func SearchRequest(searchResult string) Request {
	return newRequest("GetWorldMarketSearchList", SearchPayload{SearchResult: searchResult}, searchResult)
}

// 카테고리 프리셋 (mainCategory, subCategory)
var Categories = map[string]CategoryPayload{
	"ore":     {KeyType: 0, MainCategory: 25, SubCategory: 1},
	"plants":  {KeyType: 0, MainCategory: 25, SubCategory: 2},
	"seed":    {KeyType: 0, MainCategory: 25, SubCategory: 3},
	"leather": {KeyType: 0, MainCategory: 25, SubCategory: 4},
	"blood":   {KeyType: 0, MainCategory: 25, SubCategory: 5},
	"meat":    {KeyType: 0, MainCategory: 25, SubCategory: 6},
	"seafood": {KeyType: 0, MainCategory: 25, SubCategory: 7},
	"misc":    {KeyType: 0, MainCategory: 25, SubCategory: 8},

	"offensive_elixir":  {KeyType: 0, MainCategory: 35, SubCategory: 1},
	"defensive_elixir":  {KeyType: 0, MainCategory: 35, SubCategory: 2},
	"functional_elixir": {KeyType: 0, MainCategory: 35, SubCategory: 3},
	"food":              {KeyType: 0, MainCategory: 35, SubCategory: 4},
	"portion_elixir":    {KeyType: 0, MainCategory: 35, SubCategory: 5},
}
