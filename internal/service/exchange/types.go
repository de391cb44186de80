package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrRejected 交易所明确拒绝, 例如余额不足, 交易对不存在
	ErrRejected = errors.New("exchange rejected")
	// ErrTransient 网络错误或限流, 可在下一轮重试, 同一请求内不重试
	ErrTransient = errors.New("exchange transient failure")
)

// Error 交易所调用失败, Kind 为 ErrRejected 或 ErrTransient
type Error struct {
	Kind    error
	Code    int64
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: code %d: %s", e.Kind, e.Code, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Rejected 构造一个拒绝错误
func Rejected(format string, args ...any) error {
	return &Error{Kind: ErrRejected, Message: fmt.Sprintf(format, args...)}
}

// Transient 把底层错误包装为可重试错误
func Transient(err error) error {
	return &Error{Kind: ErrTransient, Err: err}
}

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func (s Side) IsValid() bool {
	return s == Buy || s == Sell
}

func (s Side) ToString() string {
	return string(s)
}

// Client 交易所: 查询最新价格, 下市价单
type Client interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
	PlaceMarketOrder(ctx context.Context, req MarketOrderReq) (Order, error)
}

// QuantityStepProvider 交易对的最小下单数量步长
type QuantityStepProvider interface {
	QuantityStep(ctx context.Context, symbol string) (decimal.Decimal, error)
}
