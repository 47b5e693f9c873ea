package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bdo_market_go/internal/cache"
	"bdo_market_go/pkg/bdoapi"
	"bdo_market_go/pkg/logger"
)

var ErrUnknownRegion = errors.New("region not served")

// API is the part of *bdoapi.Client the service needs.
type API interface {
	Region() bdoapi.Region
	Do(ctx context.Context, req bdoapi.Request) (bdoapi.Response, error)
}

type MarketService struct {
	apis    map[bdoapi.Region]API
	regions []bdoapi.Region
	cache   cache.Store
	ttl     time.Duration
	logger  logger.Logger
}

func NewMarketService(apis []API, store cache.Store, ttl time.Duration, l logger.Logger) *MarketService {
	s := &MarketService{
		apis:   make(map[bdoapi.Region]API, len(apis)),
		cache:  store,
		ttl:    ttl,
		logger: l,
	}
	for _, a := range apis {
		if _, dup := s.apis[a.Region()]; !dup {
			s.regions = append(s.regions, a.Region())
		}
		s.apis[a.Region()] = a
	}
	return s
}

func (s *MarketService) Regions() []bdoapi.Region { return s.regions }

// fetch answers from the cache when it can. A broken cache only costs an
// upstream call.
func (s *MarketService) fetch(ctx context.Context, region bdoapi.Region, req bdoapi.Request) (bdoapi.Response, error) {
	api, ok := s.apis[region]
	if !ok {
		return bdoapi.Response{}, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	key := cache.Key(string(region), req.API, req.Args...)

	if s.cache != nil {
		b, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warnf("cache get %s: %v", key, err)
		}
		if hit {
			var resp bdoapi.Response
			if err := json.Unmarshal(b, &resp); err == nil {
				s.logger.Debugf("cache hit %s", key)
				return resp, nil
			}
			s.logger.Warnf("cache entry %s is not a response, refetching", key)
		}
	}

	resp, err := api.Do(ctx, req)
	if err != nil {
		return bdoapi.Response{}, err
	}
	if s.cache != nil {
		b, _ := json.Marshal(resp)
		if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
			s.logger.Warnf("cache set %s: %v", key, err)
		}
	}
	return resp, nil
}

func (s *MarketService) Items(ctx context.Context, region bdoapi.Region, mainCategory, subCategory int) ([]bdoapi.MarketListItem, error) {
	resp, err := s.fetch(ctx, region, bdoapi.MarketListRequest(mainCategory, subCategory))
	if err != nil {
		return nil, err
	}
	return bdoapi.ParseMarketList(resp.ResultMsg)
}

func (s *MarketService) Item(ctx context.Context, region bdoapi.Region, id int) ([]bdoapi.MarketSubListItem, error) {
	resp, err := s.fetch(ctx, region, bdoapi.MarketSubListRequest(id))
	if err != nil {
		return nil, err
	}
	return bdoapi.ParseMarketSubList(resp.ResultMsg)
}

func (s *MarketService) Orders(ctx context.Context, region bdoapi.Region, id, sid int) ([]bdoapi.BiddingOrder, error) {
	resp, err := s.fetch(ctx, region, bdoapi.BiddingInfoRequest(id, sid))
	if err != nil {
		return nil, err
	}
	return bdoapi.ParseBiddingList(resp.ResultMsg)
}

func (s *MarketService) Search(ctx context.Context, region bdoapi.Region, query string) ([]bdoapi.MarketListItem, error) {
	resp, err := s.fetch(ctx, region, bdoapi.SearchRequest(query))
	if err != nil {
		return nil, err
	}
	return bdoapi.ParseMarketList(resp.ResultMsg)
}
