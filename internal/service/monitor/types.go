package monitor

import (
	"context"
	"time"

	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/KNICEX/pairwatch/internal/service/strategy"
	"github.com/KNICEX/pairwatch/internal/service/trade"
	"github.com/shopspring/decimal"
)

// TradePolicy 哪些信号会自动下单, 以及每次下单的金额
type TradePolicy struct {
	Notional decimal.Decimal
	AutoBuy  bool
	AutoSell bool
}

type TradeExecutor interface {
	Execute(ctx context.Context, req trade.Request) trade.Result
}

// Journal 记录信号和交易结果, 写入失败只记录日志
type Journal interface {
	RecordSignal(ctx context.Context, pass string, snapshot market.Snapshot, signal strategy.Signal) error
	RecordTrade(ctx context.Context, pass string, res trade.Result) error
}

// Outcome 单个交易对在一轮扫描中的处理结果
type Outcome struct {
	Instrument instrument.Instrument
	Signal     strategy.Signal
	Alerted    bool          // 信号通知是否送达
	Trade      *trade.Result // 未下单时为 nil
	Err        error         // 行情获取等本地错误
}

// PassReport 一轮扫描的汇总
type PassReport struct {
	Id        string
	StartedAt time.Time
	Cost      time.Duration
	Outcomes  []Outcome
}

func (r PassReport) count(fn func(o Outcome) bool) int {
	n := 0
	for _, o := range r.Outcomes {
		if fn(o) {
			n++
		}
	}
	return n
}

func (r PassReport) Failed() int {
	return r.count(func(o Outcome) bool { return o.Err != nil })
}

func (r PassReport) Actionable() int {
	return r.count(func(o Outcome) bool { return o.Signal.IsActionable() })
}

func (r PassReport) Trades() int {
	return r.count(func(o Outcome) bool { return o.Trade != nil })
}

func (r PassReport) FailedTrades() int {
	return r.count(func(o Outcome) bool { return o.Trade != nil && !o.Trade.Succeeded() })
}
