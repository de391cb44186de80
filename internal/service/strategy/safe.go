package strategy

import (
	"github.com/KNICEX/pairwatch/internal/service/market"
)

type safeEvaluator struct {
	inner Evaluator
}

// Safe 包装任意策略: 畸形快照直接返回 Hold, 策略 panic 或返回未知信号也视为 Hold
func Safe(e Evaluator) Evaluator {
	if s, ok := e.(safeEvaluator); ok {
		return s
	}
	return safeEvaluator{inner: e}
}

func (s safeEvaluator) Evaluate(snapshot market.Snapshot) (signal Signal) {
	defer func() {
		if r := recover(); r != nil {
			signal = Hold
		}
	}()

	if !WellFormed(snapshot) {
		return Hold
	}
	signal = s.inner.Evaluate(snapshot)
	if !signal.IsValid() {
		return Hold
	}
	return signal
}

// WellFormed 快照非空, 价格为正, 成交量非负, 时间递增
func WellFormed(snapshot market.Snapshot) bool {
	if len(snapshot.Samples) == 0 {
		return false
	}
	for i, sample := range snapshot.Samples {
		if sample.Time.IsZero() || !sample.Price.IsPositive() || sample.Volume.IsNegative() {
			return false
		}
		if i > 0 && sample.Time.Before(snapshot.Samples[i-1].Time) {
			return false
		}
	}
	return true
}
