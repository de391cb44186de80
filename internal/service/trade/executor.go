package trade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/KNICEX/pairwatch/internal/service/notification"
	"github.com/google/uuid"
)

const defaultPrecision = 6

type Executor struct {
	client   exchange.Client
	steps    exchange.QuantityStepProvider
	notifier *notification.BestEffort
	logger   *slog.Logger

	newClientOrderId func() string
}

type Option func(e *Executor)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

func WithClientOrderId(fn func() string) Option {
	return func(e *Executor) {
		e.newClientOrderId = fn
	}
}

func NewExecutor(client exchange.Client, steps exchange.QuantityStepProvider, notifier *notification.BestEffort, opts ...Option) *Executor {
	e := &Executor{
		client:           client,
		steps:            steps,
		notifier:         notifier,
		logger:           slog.Default(),
		newClientOrderId: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute 查询步长 -> 查询价格 -> 计算数量 -> 市价下单 -> 通知
// 错误不会向上抛出, 全部体现在 Result 中; 通知失败不影响 Result
func (e *Executor) Execute(ctx context.Context, req Request) Result {
	res := e.execute(ctx, req)

	logger := e.logger.With("symbol", req.Instrument.Symbol, "side", req.Side, "notional", req.Notional)
	if res.Succeeded() {
		logger.Info("trade executed", "price", res.Price, "avg_price", res.AvgPrice, "quantity", res.Quantity,
			"filled", res.FilledQuantity, "order", res.OrderId, "status", res.Status)
		if !res.Status.IsFilled() {
			logger.Warn("order not fully filled", "order", res.OrderId, "status", res.Status, "filled", res.FilledQuantity)
		}
	} else {
		logger.Error("trade failed", "price", res.Price, "quantity", res.Quantity, "error", res.Err)
	}

	e.notifier.Notify(ctx, Message(res))
	return res
}

func (e *Executor) execute(ctx context.Context, req Request) (res Result) {
	res = Result{
		Instrument: req.Instrument,
		Side:       req.Side,
		Notional:   req.Notional,
	}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("trade panic: %v", r)
		}
	}()

	if !req.Side.IsValid() {
		res.Err = fmt.Errorf("%w: unsupported side %q", ErrInvalidOrder, req.Side)
		return res
	}
	if !req.Notional.IsPositive() {
		res.Err = fmt.Errorf("%w: notional %s must be positive", ErrInvalidOrder, req.Notional)
		return res
	}

	symbol := req.Instrument.Symbol
	// 步长在查价之前获取, 保证价格和下单之间没有其他远程调用
	step, err := e.steps.QuantityStep(ctx, symbol)
	if err != nil {
		res.Err = fmt.Errorf("get quantity step: %w", err)
		return res
	}
	res.Step = step

	price, err := e.client.Price(ctx, symbol)
	if err != nil {
		res.Err = fmt.Errorf("get price: %w", err)
		return res
	}
	res.Price = price
	if !price.IsPositive() {
		res.Err = fmt.Errorf("%w: price %s must be positive", ErrInvalidOrder, price)
		return res
	}

	res.Quantity = Quantity(req.Notional, price, step)
	if !res.Quantity.IsPositive() {
		res.Err = fmt.Errorf("%w: notional %s is below one step %s at price %s", ErrInvalidOrder, req.Notional, step, price)
		return res
	}

	order, err := e.client.PlaceMarketOrder(ctx, exchange.MarketOrderReq{
		Symbol:        symbol,
		Side:          req.Side,
		Quantity:      res.Quantity,
		ClientOrderId: e.newClientOrderId(),
	})
	if err != nil {
		res.Err = fmt.Errorf("place market order: %w", err)
		return res
	}
	res.OrderId = order.Id
	res.Status = order.Status
	res.FilledQuantity = order.ExecutedQuantity
	res.AvgPrice = order.AvgPrice()

	if order.ExecutedQuantity.IsZero() &&
		(order.Status == exchange.OrderStatusRejected || order.Status == exchange.OrderStatusExpired || order.Status == exchange.OrderStatusCancelled) {
		res.Err = exchange.Rejected("order %s %s without fill", order.Id, order.Status)
	}
	return res
}

// Message 交易结果对应的通知文本
func Message(res Result) string {
	if res.Succeeded() {
		verb := "Bought"
		if res.Side == exchange.Sell {
			verb = "Sold"
		}
		return fmt.Sprintf("%s %s %s at ~%s (order %s)", verb, res.ReportedQuantity(), res.Instrument.Symbol, res.Price, res.OrderId)
	}
	return fmt.Sprintf("Failed to %s %s: %v", res.Side, res.Instrument.Symbol, res.Err)
}
