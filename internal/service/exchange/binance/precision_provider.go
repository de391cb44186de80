package binance

import (
	"context"
	"fmt"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/shopspring/decimal"
)

// QuantityStep 从 exchangeInfo 的 LOT_SIZE 过滤器读取数量步长, 结果按交易对缓存
func (svc *Service) QuantityStep(ctx context.Context, symbol string) (decimal.Decimal, error) {
	svc.mu.RLock()
	step, ok := svc.steps[symbol]
	svc.mu.RUnlock()
	if ok {
		return step, nil
	}

	info, err := svc.cli.NewExchangeInfoService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, classifyErr(err)
	}
	for i := range info.Symbols {
		s := &info.Symbols[i]
		if s.Symbol != symbol {
			continue
		}
		lot := s.LotSizeFilter()
		if lot == nil {
			return decimal.Zero, exchange.Rejected("symbol %s has no LOT_SIZE filter", symbol)
		}
		step, err = decimal.NewFromString(lot.StepSize)
		if err != nil {
			return decimal.Zero, exchange.Transient(fmt.Errorf("parse step size %q: %w", lot.StepSize, err))
		}
		svc.mu.Lock()
		svc.steps[symbol] = step
		svc.mu.Unlock()
		return step, nil
	}
	return decimal.Zero, exchange.Rejected("symbol %s not found", symbol)
}
