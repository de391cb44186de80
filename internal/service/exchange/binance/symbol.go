package binance

import (
	"context"
	"fmt"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/shopspring/decimal"
)

// Price 最新成交价
func (svc *Service) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := svc.cli.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, classifyErr(err)
	}
	if len(prices) == 0 {
		return decimal.Zero, exchange.Rejected("symbol %s not found", symbol)
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, exchange.Transient(fmt.Errorf("parse price %q: %w", prices[0].Price, err))
	}
	return price, nil
}
