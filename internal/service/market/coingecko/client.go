package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	providerName   = "coingecko"
)

var _ market.Client = (*Client)(nil)

// Client 通过 coins/{id}/market_chart 获取价格和成交量序列
type Client struct {
	baseURL    string
	vsCurrency string
	httpCli    *http.Client
	now        func() time.Time
}

type Option func(c *Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithVsCurrency(currency string) Option {
	return func(c *Client) {
		c.vsCurrency = currency
	}
}

func WithHTTPClient(cli *http.Client) Option {
	return func(c *Client) {
		c.httpCli = cli
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		vsCurrency: "usd",
		httpCli:    &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// marketChart 每个点是 [毫秒时间戳, 数值]
type marketChart struct {
	Prices       [][2]decimal.Decimal `json:"prices"`
	TotalVolumes [][2]decimal.Decimal `json:"total_volumes"`
}

func (c *Client) Fetch(ctx context.Context, ins instrument.Instrument, window time.Duration) (market.Snapshot, error) {
	id := ins.MarketId()
	days := int(math.Ceil(window.Hours() / 24))
	if days < 1 {
		days = 1
	}
	u := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.baseURL, url.PathEscape(id), url.QueryEscape(c.vsCurrency), days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return market.Snapshot{}, c.wrap(market.ErrDataUnavailable, id, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return market.Snapshot{}, c.wrap(market.ErrDataUnavailable, id, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return market.Snapshot{}, c.wrap(market.ErrDataUnavailable, id, resp.StatusCode, fmt.Errorf("%s", body))
	}

	var chart marketChart
	if err = json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return market.Snapshot{}, c.wrap(market.ErrMalformedResponse, id, resp.StatusCode, err)
	}

	fetchedAt := c.now()
	return market.Snapshot{
		Instrument: ins,
		Samples:    c.toSamples(chart, fetchedAt.Add(-window)),
		FetchedAt:  fetchedAt,
	}, nil
}

func (c *Client) toSamples(chart marketChart, since time.Time) []market.Sample {
	volumes := lo.SliceToMap(chart.TotalVolumes, func(item [2]decimal.Decimal) (int64, decimal.Decimal) {
		return item[0].IntPart(), item[1]
	})

	samples := make([]market.Sample, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		ts := time.UnixMilli(p[0].IntPart())
		if ts.Before(since) {
			continue
		}
		samples = append(samples, market.Sample{
			Time:   ts,
			Price:  p[1],
			Volume: volumes[p[0].IntPart()],
		})
	}
	slices.SortStableFunc(samples, func(a, b market.Sample) int {
		return a.Time.Compare(b.Time)
	})
	return samples
}

func (c *Client) wrap(kind error, id string, status int, err error) error {
	return &market.Error{
		Kind:       kind,
		Provider:   providerName,
		Id:         id,
		StatusCode: status,
		Err:        err,
	}
}
