package strategy

import (
	"github.com/KNICEX/pairwatch/internal/service/market"
)

type Signal string

const (
	Hold Signal = "hold"
	Buy  Signal = "buy"
	Sell Signal = "sell"
)

func (s Signal) IsValid() bool {
	return s == Hold || s == Buy || s == Sell
}

// IsActionable 非观望信号
func (s Signal) IsActionable() bool {
	return s == Buy || s == Sell
}

func (s Signal) ToString() string {
	return string(s)
}

// Evaluator 行情快照 -> 信号
// 实现必须是纯函数: 相同输入得到相同输出, 不做任何 I/O, 数据不足时返回 Hold
type Evaluator interface {
	Evaluate(snapshot market.Snapshot) Signal
}

type EvaluatorFunc func(snapshot market.Snapshot) Signal

func (f EvaluatorFunc) Evaluate(snapshot market.Snapshot) Signal {
	return f(snapshot)
}
