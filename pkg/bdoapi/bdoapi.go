// Package bdoapi talks to the Black Desert trade market. The server answers
// either JSON {"resultCode", "resultMsg"} or a Huffman-packed octet stream
// carrying the resultMsg text; both come back as a Response.
package bdoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	hfm "bdo_market_go/pkg/huffmanunpack"
	"bdo_market_go/pkg/logger"
)

var (
	ErrStatus = errors.New("unexpected status")
	ErrResult = errors.New("non-zero resultCode")
)

type Response struct {
	ResultCode int    `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

// DecodeHook is called after every octet-stream body, err is the decode
// result.
type DecodeHook func(region Region, api string, err error)

type Client struct {
	region   Region
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	retries  int
	backoff  time.Duration
	logger   logger.Logger
	onDecode DecodeHook
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }
func WithTimeout(d time.Duration) Option   { return func(c *Client) { c.timeout = d } }
func WithRetries(n int) Option             { return func(c *Client) { c.retries = n } }
func WithBackoff(d time.Duration) Option   { return func(c *Client) { c.backoff = d } }
func WithLogger(l logger.Logger) Option    { return func(c *Client) { c.logger = l } }
func WithDecodeHook(h DecodeHook) Option   { return func(c *Client) { c.onDecode = h } }

func NewClient(region Region, opts ...Option) *Client {
	c := &Client{
		region:  region,
		baseURL: region.BaseURL(),
		timeout: 5 * time.Second,
		retries: 3,
		backoff: 200 * time.Millisecond,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

func (c *Client) Region() Region { return c.region }

// Do sends req, retrying transport errors and 5xx answers.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	b, err := json.Marshal(req.Payload)
	if err != nil {
		return Response{}, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Warnf("[%s] %s retry %d/%d: %v", c.region, req.API, attempt, c.retries, lastErr)
			select {
			case <-ctx.Done():
				return Response{}, ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
		resp, retry, err := c.once(ctx, req.API, b)
		if err == nil {
			return resp, nil
		}
		if !retry {
			return Response{}, err
		}
		lastErr = err
	}
	return Response{}, fmt.Errorf("[%s] %s: giving up after %d attempts: %w", c.region, req.API, c.retries+1, lastErr)
}

func (c *Client) once(ctx context.Context, api string, body []byte) (Response, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+api, bytes.NewReader(body))
	if err != nil {
		return Response{}, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "BlackDesert")

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, true, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, true, err
	}
	if resp.StatusCode >= 500 {
		return Response{}, true, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	if resp.StatusCode >= 300 {
		return Response{}, false, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "application/octet-stream") {
		text, err := hfm.UnpackBytes(data)
		if c.onDecode != nil {
			c.onDecode(c.region, api, err)
		}
		if err != nil {
			c.logger.Errorf("[%s] %s: failed to unpack data: %v", c.region, api, err)
			return Response{}, false, fmt.Errorf("unpack %s: %w", api, err)
		}
		return Response{ResultCode: 0, ResultMsg: text}, false, nil
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return Response{}, false, fmt.Errorf("failed to unmarshal: [%s]: %w", api, err)
	}
	if out.ResultCode != 0 {
		return Response{}, false, fmt.Errorf("%w: [%s] %d %s", ErrResult, api, out.ResultCode, out.ResultMsg)
	}
	return out, false, nil
}

/*** ---------- 타입별 호출 ---------- ***/

func (c *Client) GetWorldMarketList(ctx context.Context, mainCategory, subCategory int) ([]MarketListItem, error) {
	resp, err := c.Do(ctx, MarketListRequest(mainCategory, subCategory))
	if err != nil {
		return nil, fmt.Errorf("wrong request: [GetWorldMarketList] %d-%d: %w", mainCategory, subCategory, err)
	}
	return ParseMarketList(resp.ResultMsg)
}

func (c *Client) GetWorldMarketSubList(ctx context.Context, mainKey int) ([]MarketSubListItem, error) {
	resp, err := c.Do(ctx, MarketSubListRequest(mainKey))
	if err != nil {
		return nil, fmt.Errorf("wrong request: [GetWorldMarketSubList] %d: %w", mainKey, err)
	}
	return ParseMarketSubList(resp.ResultMsg)
}

func (c *Client) GetBiddingInfoList(ctx context.Context, mainKey, subKey int) ([]BiddingOrder, error) {
	resp, err := c.Do(ctx, BiddingInfoRequest(mainKey, subKey))
	if err != nil {
		return nil, fmt.Errorf("wrong request: [GetBiddingInfoList] %d, %d: %w", mainKey, subKey, err)
	}
	return ParseBiddingList(resp.ResultMsg)
}

func (c *Client) GetWorldMarketSearchList(ctx context.Context, searchResult string) ([]MarketListItem, error) {
	resp, err := c.Do(ctx, SearchRequest(searchResult))
	if err != nil {
		return nil, fmt.Errorf("wrong request: [GetWorldMarketSearchList] %s: %w", searchResult, err)
	}
	return ParseMarketList(resp.ResultMsg)
}
