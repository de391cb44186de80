package strategy

import (
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type RSIConfig struct {
	Period      int
	Oversold    decimal.Decimal // RSI 低于该值且成交量达标 -> 买入
	Overbought  decimal.Decimal // RSI 高于该值 -> 卖出
	VolumeFloor decimal.Decimal // 最新一个采样的成交量下限
}

func DefaultRSIConfig() RSIConfig {
	return RSIConfig{
		Period:      14,
		Oversold:    decimal.NewFromInt(30),
		Overbought:  decimal.NewFromInt(70),
		VolumeFloor: decimal.NewFromInt(1_000_000),
	}
}

type rsiVolumeEvaluator struct {
	cfg RSIConfig
}

// NewRSIVolumeEvaluator 超卖且放量买入, 超买卖出
func NewRSIVolumeEvaluator(cfg RSIConfig) Evaluator {
	if cfg.Period <= 0 {
		cfg.Period = DefaultRSIConfig().Period
	}
	return &rsiVolumeEvaluator{cfg: cfg}
}

func (e *rsiVolumeEvaluator) Evaluate(snapshot market.Snapshot) Signal {
	if !WellFormed(snapshot) || len(snapshot.Samples) < e.cfg.Period+1 {
		return Hold
	}

	prices := lo.Map(snapshot.Samples, func(item market.Sample, index int) decimal.Decimal {
		return item.Price
	})
	rsi := RSI(prices, e.cfg.Period)
	last := snapshot.Samples[len(snapshot.Samples)-1]

	if rsi.LessThan(e.cfg.Oversold) && last.Volume.GreaterThan(e.cfg.VolumeFloor) {
		return Buy
	}
	if rsi.GreaterThan(e.cfg.Overbought) {
		return Sell
	}
	return Hold
}

// RSI Wilder 平滑的相对强弱指数, 数据不足 period+1 个时返回 50
func RSI(prices []decimal.Decimal, period int) decimal.Decimal {
	if period <= 0 || len(prices) < period+1 {
		return decimal.NewFromInt(50)
	}

	p := decimal.NewFromInt(int64(period))
	avgGain, avgLoss := decimal.Zero, decimal.Zero
	for i := 1; i <= period; i++ {
		gain, loss := change(prices[i-1], prices[i])
		avgGain = avgGain.Add(gain)
		avgLoss = avgLoss.Add(loss)
	}
	avgGain = avgGain.Div(p)
	avgLoss = avgLoss.Div(p)

	// 后续点使用平滑均值
	prev := p.Sub(decimal.NewFromInt(1))
	for i := period + 1; i < len(prices); i++ {
		gain, loss := change(prices[i-1], prices[i])
		avgGain = avgGain.Mul(prev).Add(gain).Div(p)
		avgLoss = avgLoss.Mul(prev).Add(loss).Div(p)
	}

	if avgLoss.IsZero() {
		if avgGain.IsZero() {
			return decimal.NewFromInt(50)
		}
		return hundred
	}
	rs := avgGain.Div(avgLoss)
	return hundred.Sub(hundred.Div(decimal.NewFromInt(1).Add(rs)))
}

func change(prev, cur decimal.Decimal) (gain, loss decimal.Decimal) {
	diff := cur.Sub(prev)
	if diff.IsPositive() {
		return diff, decimal.Zero
	}
	return decimal.Zero, diff.Neg()
}
