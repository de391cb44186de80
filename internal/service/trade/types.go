package trade

import (
	"errors"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/pkg/decimalx"
	"github.com/shopspring/decimal"
)

// ErrInvalidOrder 下单前校验失败 (价格或数量不合法), 不会调用交易所下单
var ErrInvalidOrder = errors.New("invalid order")

// Request 一次交易请求, 只会被执行一次
type Request struct {
	Instrument instrument.Instrument
	Side       exchange.Side
	Notional   decimal.Decimal // 计价币金额
}

// Result 交易结果, Err 不为空表示失败
type Result struct {
	Instrument     instrument.Instrument
	Side           exchange.Side
	Notional       decimal.Decimal
	Price          decimal.Decimal // 计算数量时使用的价格
	Step           decimal.Decimal
	Quantity       decimal.Decimal // 委托数量
	FilledQuantity decimal.Decimal
	AvgPrice       decimal.Decimal // 成交均价, 未成交时为 0
	OrderId        exchange.OrderId
	Status         exchange.OrderStatus
	Err            error
}

func (r Result) Succeeded() bool {
	return r.Err == nil
}

// ReportedQuantity 通知中展示的数量, 优先使用成交数量, 按步长精度补零
func (r Result) ReportedQuantity() string {
	q := r.FilledQuantity
	if q.IsZero() {
		q = r.Quantity
	}
	return q.StringFixed(decimalx.PrecisionOf(r.Step))
}

// Quantity 金额 / 价格, 按步长向下截断, 保证 数量 * 价格 <= 金额
func Quantity(notional, price, step decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() || !notional.IsPositive() {
		return decimal.Zero
	}
	if !step.IsPositive() {
		step = decimalx.StepOf(defaultPrecision)
	}
	units, _ := notional.QuoRem(price.Mul(step), 0)
	return units.Mul(step)
}
