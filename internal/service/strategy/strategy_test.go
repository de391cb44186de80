package strategy

import (
	"testing"
	"time"

	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// generateSnapshot 按给定价格生成快照, 每个采样间隔一分钟
func generateSnapshot(volume float64, prices ...float64) market.Snapshot {
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]market.Sample, len(prices))
	for i, p := range prices {
		samples[i] = market.Sample{
			Time:   baseTime.Add(time.Duration(i) * time.Minute),
			Price:  decimal.NewFromFloat(p),
			Volume: decimal.NewFromFloat(volume),
		}
	}
	return market.Snapshot{
		Instrument: instrument.Instrument{Symbol: "BTCUSDT"},
		Samples:    samples,
		FetchedAt:  baseTime.Add(time.Hour),
	}
}

func trend(start, step float64, count int) []float64 {
	prices := make([]float64, count)
	for i := range prices {
		prices[i] = start + step*float64(i)
	}
	return prices
}

func TestRSI(t *testing.T) {
	testCases := []struct {
		name   string
		prices []float64
		period int
		want   decimal.Decimal
	}{
		{name: "一路上涨", prices: trend(100, 1, 20), period: 14, want: decimal.NewFromInt(100)},
		{name: "一路下跌", prices: trend(100, -1, 20), period: 14, want: decimal.Zero},
		{name: "横盘", prices: trend(100, 0, 20), period: 14, want: decimal.NewFromInt(50)},
		{name: "数据不足", prices: trend(100, 1, 5), period: 14, want: decimal.NewFromInt(50)},
		{name: "刚好不足一个周期", prices: trend(100, 1, 14), period: 14, want: decimal.NewFromInt(50)},
		{name: "涨跌相同", prices: []float64{100, 101, 100, 101, 100}, period: 4, want: decimal.NewFromInt(50)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := make([]decimal.Decimal, len(tc.prices))
			for i, p := range tc.prices {
				ds[i] = decimal.NewFromFloat(p)
			}
			got := RSI(ds, tc.period)
			assert.True(t, tc.want.Equal(got), "rsi = %s", got)
		})
	}
}

func TestRSIVolumeEvaluator(t *testing.T) {
	e := NewRSIVolumeEvaluator(DefaultRSIConfig())

	testCases := []struct {
		name     string
		snapshot market.Snapshot
		want     Signal
	}{
		{name: "超卖放量买入", snapshot: generateSnapshot(2_000_000, trend(100, -1, 20)...), want: Buy},
		{name: "超卖但成交量不足", snapshot: generateSnapshot(500_000, trend(100, -1, 20)...), want: Hold},
		{name: "超买卖出", snapshot: generateSnapshot(10, trend(100, 1, 20)...), want: Sell},
		{name: "横盘观望", snapshot: generateSnapshot(2_000_000, trend(100, 0, 20)...), want: Hold},
		{name: "数据不足", snapshot: generateSnapshot(2_000_000, trend(100, -1, 10)...), want: Hold},
		{name: "空快照", snapshot: market.Snapshot{}, want: Hold},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.Evaluate(tc.snapshot))
			// 相同输入相同输出
			assert.Equal(t, tc.want, e.Evaluate(tc.snapshot))
		})
	}
}

func TestWellFormed(t *testing.T) {
	ok := generateSnapshot(1, 1, 2, 3)
	assert.True(t, WellFormed(ok))

	zeroPrice := generateSnapshot(1, 1, 0, 3)
	assert.False(t, WellFormed(zeroPrice))

	negativeVolume := generateSnapshot(-1, 1, 2, 3)
	assert.False(t, WellFormed(negativeVolume))

	unordered := generateSnapshot(1, 1, 2, 3)
	unordered.Samples[0], unordered.Samples[2] = unordered.Samples[2], unordered.Samples[0]
	assert.False(t, WellFormed(unordered))

	zeroTime := generateSnapshot(1, 1, 2)
	zeroTime.Samples[1].Time = time.Time{}
	assert.False(t, WellFormed(zeroTime))

	assert.False(t, WellFormed(market.Snapshot{}))
}

func TestSafe(t *testing.T) {
	always := func(s Signal) Evaluator {
		return EvaluatorFunc(func(market.Snapshot) Signal { return s })
	}
	snapshot := generateSnapshot(1, 1, 2, 3)

	testCases := []struct {
		name     string
		inner    Evaluator
		snapshot market.Snapshot
		want     Signal
	}{
		{name: "透传买入", inner: always(Buy), snapshot: snapshot, want: Buy},
		{name: "畸形快照不调用策略", inner: always(Buy), snapshot: generateSnapshot(1, 1, -2), want: Hold},
		{name: "未知信号", inner: always(Signal("moon")), snapshot: snapshot, want: Hold},
		{
			name: "策略 panic",
			inner: EvaluatorFunc(func(s market.Snapshot) Signal {
				_ = s.Samples[100]
				return Buy
			}),
			snapshot: snapshot,
			want:     Hold,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got Signal
			assert.NotPanics(t, func() {
				got = Safe(tc.inner).Evaluate(tc.snapshot)
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSignal(t *testing.T) {
	assert.True(t, Buy.IsActionable())
	assert.True(t, Sell.IsActionable())
	assert.False(t, Hold.IsActionable())
	assert.False(t, Signal("").IsValid())
}
