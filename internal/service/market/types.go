package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/shopspring/decimal"
)

var (
	// ErrDataUnavailable 网络错误, 限流, 4xx/5xx
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrMalformedResponse 响应无法解析
	ErrMalformedResponse = errors.New("malformed market data response")
)

// Error 行情数据源返回的错误, Kind 为 ErrDataUnavailable 或 ErrMalformedResponse
type Error struct {
	Kind       error
	Provider   string
	Id         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Provider, e.Id, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sample 某一时刻的价格和成交量
type Sample struct {
	Time   time.Time
	Price  decimal.Decimal
	Volume decimal.Decimal
}

// Snapshot 一个交易对在最近一段时间内按时间排序的采样
type Snapshot struct {
	Instrument instrument.Instrument
	Samples    []Sample
	FetchedAt  time.Time
}

// Last 最新的采样, 没有采样时 ok 为 false
func (s Snapshot) Last() (Sample, bool) {
	if len(s.Samples) == 0 {
		return Sample{}, false
	}
	return s.Samples[len(s.Samples)-1], true
}

// Client 行情数据源
type Client interface {
	Fetch(ctx context.Context, ins instrument.Instrument, window time.Duration) (Snapshot, error)
}
