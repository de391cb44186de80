package binance

import (
	"context"
	"strconv"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/KNICEX/pairwatch/pkg/decimalx"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// PlaceMarketOrder 现货市价单
func (svc *Service) PlaceMarketOrder(ctx context.Context, req exchange.MarketOrderReq) (exchange.Order, error) {
	side := binanceSide(req.Side)
	if side == "" {
		return exchange.Order{}, exchange.Rejected("unsupported side %q", req.Side)
	}

	// 已知步长时再截断一次, 避免 LOT_SIZE 过滤器拒单
	quantity := req.Quantity
	svc.mu.RLock()
	if step, ok := svc.steps[req.Symbol]; ok {
		quantity = decimalx.FloorToStep(quantity, step)
	}
	svc.mu.RUnlock()
	if !quantity.IsPositive() {
		return exchange.Order{}, exchange.Rejected("quantity %s of %s is below lot step", req.Quantity, req.Symbol)
	}

	orderSvc := svc.cli.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(side).
		Type(binance.OrderTypeMarket).
		Quantity(quantity.String()).
		NewOrderRespType(binance.NewOrderRespTypeRESULT)
	if req.ClientOrderId != "" {
		orderSvc.NewClientOrderID(req.ClientOrderId)
	}

	resp, err := orderSvc.Do(ctx)
	if err != nil {
		return exchange.Order{}, classifyErr(err)
	}
	return svc.parseOrder(resp), nil
}

func (svc *Service) parseOrder(resp *binance.CreateOrderResponse) exchange.Order {
	return exchange.Order{
		Id:               exchange.OrderId(strconv.FormatInt(resp.OrderID, 10)),
		ClientOrderId:    resp.ClientOrderID,
		Symbol:           resp.Symbol,
		Side:             fromBinanceSide(resp.Side),
		Status:           fromBinanceOrderStatus(resp.Status),
		Quantity:         parseOrZero(resp.OrigQuantity),
		ExecutedQuantity: parseOrZero(resp.ExecutedQuantity),
		QuoteQuantity:    parseOrZero(resp.CummulativeQuoteQuantity),
	}
}

func parseOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
