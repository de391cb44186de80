package exchange

import (
	"context"
	"errors"

	"github.com/KNICEX/pairwatch/pkg/decimalx"
	"github.com/shopspring/decimal"
)

var (
	_ QuantityStepProvider = (*StaticStepProvider)(nil)
	_ QuantityStepProvider = (*FallbackStepProvider)(nil)
)

// StaticStepProvider 本地配置的数量精度, 未配置的交易对使用默认精度
type StaticStepProvider struct {
	precisions       map[string]int32
	defaultPrecision int32
}

func NewStaticStepProvider(defaultPrecision int32, precisions map[string]int32) *StaticStepProvider {
	if precisions == nil {
		precisions = map[string]int32{}
	}
	return &StaticStepProvider{
		precisions:       precisions,
		defaultPrecision: defaultPrecision,
	}
}

func (p *StaticStepProvider) QuantityStep(ctx context.Context, symbol string) (decimal.Decimal, error) {
	precision, ok := p.precisions[symbol]
	if !ok {
		precision = p.defaultPrecision
	}
	return decimalx.StepOf(precision), nil
}

// FallbackStepProvider 交易所步长查询临时失败或返回非正数时, 使用本地精度
type FallbackStepProvider struct {
	primary  QuantityStepProvider
	fallback QuantityStepProvider
}

func NewFallbackStepProvider(primary, fallback QuantityStepProvider) *FallbackStepProvider {
	return &FallbackStepProvider{
		primary:  primary,
		fallback: fallback,
	}
}

func (p *FallbackStepProvider) QuantityStep(ctx context.Context, symbol string) (decimal.Decimal, error) {
	step, err := p.primary.QuantityStep(ctx, symbol)
	switch {
	case err == nil && step.IsPositive():
		return step, nil
	case err != nil && !errors.Is(err, ErrTransient):
		return decimal.Zero, err
	}
	return p.fallback.QuantityStep(ctx, symbol)
}
