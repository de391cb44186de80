package exchange

import (
	"github.com/shopspring/decimal"
)

type OrderId string

func (id OrderId) IsZero() bool {
	return id == ""
}

func (id OrderId) ToString() string {
	return string(id)
}

type OrderStatus string

const (
	OrderStatusCreated       OrderStatus = "created"
	OrderStatusPartialFilled OrderStatus = "partially_filled"
	OrderStatusFilled        OrderStatus = "filled"
	OrderStatusCancelled     OrderStatus = "cancelled"
	OrderStatusRejected      OrderStatus = "rejected"
	OrderStatusExpired       OrderStatus = "expired"
)

// IsFilled 判断订单是否已完全成交
func (s OrderStatus) IsFilled() bool {
	return s == OrderStatusFilled
}

// MarketOrderReq 市价单请求, Quantity 已按步长截断
type MarketOrderReq struct {
	Symbol        string
	Side          Side
	Quantity      decimal.Decimal
	ClientOrderId string // 幂等 id, 可为空
}

// Order 下单结果
type Order struct {
	Id               OrderId
	ClientOrderId    string
	Symbol           string
	Side             Side
	Status           OrderStatus
	Quantity         decimal.Decimal // 委托数量
	ExecutedQuantity decimal.Decimal // 已成交数量
	QuoteQuantity    decimal.Decimal // 已成交金额
}

// AvgPrice 成交均价, 未成交时为 0
func (o Order) AvgPrice() decimal.Decimal {
	if o.ExecutedQuantity.IsZero() {
		return decimal.Zero
	}
	return o.QuoteQuantity.Div(o.ExecutedQuantity)
}
