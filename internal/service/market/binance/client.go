package binance

import (
	"context"
	"fmt"
	"time"

	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

const (
	providerName = "binance"
	klinesLimit  = 1000
)

var _ market.Client = (*Client)(nil)

// Client 使用现货 K 线作为行情数据, 价格取收盘价, 成交量取成交额 (计价币)
type Client struct {
	cli      *binance.Client
	interval string
}

func NewClient(cli *binance.Client, interval string) *Client {
	if interval == "" {
		interval = "15m"
	}
	return &Client{cli: cli, interval: interval}
}

func (c *Client) Fetch(ctx context.Context, ins instrument.Instrument, window time.Duration) (market.Snapshot, error) {
	end := time.Now()
	res, err := c.cli.NewKlinesService().
		Symbol(ins.Symbol).
		Interval(c.interval).
		StartTime(end.Add(-window).UnixMilli()).
		EndTime(end.UnixMilli()).
		Limit(klinesLimit).
		Do(ctx)
	if err != nil {
		return market.Snapshot{}, &market.Error{Kind: market.ErrDataUnavailable, Provider: providerName, Id: ins.Symbol, Err: err}
	}

	samples, err := c.convertKlines(res)
	if err != nil {
		return market.Snapshot{}, &market.Error{Kind: market.ErrMalformedResponse, Provider: providerName, Id: ins.Symbol, Err: err}
	}
	return market.Snapshot{
		Instrument: ins,
		Samples:    samples,
		FetchedAt:  end,
	}, nil
}

func (c *Client) convertKlines(klines []*binance.Kline) ([]market.Sample, error) {
	samples := make([]market.Sample, 0, len(klines))
	for _, k := range klines {
		price, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, fmt.Errorf("kline %d close: %w", k.OpenTime, err)
		}
		volume, err := decimal.NewFromString(k.QuoteAssetVolume)
		if err != nil {
			return nil, fmt.Errorf("kline %d quote volume: %w", k.OpenTime, err)
		}
		samples = append(samples, market.Sample{
			Time:   time.UnixMilli(k.CloseTime),
			Price:  price,
			Volume: volume,
		})
	}
	return samples, nil
}
