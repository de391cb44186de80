package exchange

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/KNICEX/pairwatch/pkg/decimalx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	rejected := fmt.Errorf("place order: %w", &Error{Kind: ErrRejected, Code: -2010, Message: "Account has insufficient balance"})
	assert.ErrorIs(t, rejected, ErrRejected)
	assert.NotErrorIs(t, rejected, ErrTransient)
	assert.Contains(t, rejected.Error(), "code -2010")

	cause := errors.New("i/o timeout")
	transient := Transient(cause)
	assert.ErrorIs(t, transient, ErrTransient)
	assert.ErrorIs(t, transient, cause)

	assert.ErrorIs(t, Rejected("symbol %s not found", "NOPE"), ErrRejected)
}

func TestSide_IsValid(t *testing.T) {
	assert.True(t, Buy.IsValid())
	assert.True(t, Sell.IsValid())
	assert.False(t, Side("HOLD").IsValid())
}

func TestOrder_AvgPrice(t *testing.T) {
	o := Order{ExecutedQuantity: decimalx.MustFromString("2"), QuoteQuantity: decimalx.MustFromString("100")}
	assert.Equal(t, "50", o.AvgPrice().String())
	assert.True(t, Order{}.AvgPrice().IsZero())
}

func TestStaticStepProvider(t *testing.T) {
	p := NewStaticStepProvider(6, map[string]int32{"DOGEUSDT": 0})

	step, err := p.QuantityStep(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "0.000001", step.String())

	step, err = p.QuantityStep(context.Background(), "DOGEUSDT")
	require.NoError(t, err)
	assert.Equal(t, "1", step.String())
}

type stepFunc func(ctx context.Context, symbol string) (decimal.Decimal, error)

func (f stepFunc) QuantityStep(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return f(ctx, symbol)
}

func TestFallbackStepProvider(t *testing.T) {
	fallback := NewStaticStepProvider(2, nil)
	testCases := []struct {
		name     string
		primary  stepFunc
		wantStep string
		wantErr  error
	}{
		{
			name: "交易所返回步长",
			primary: func(ctx context.Context, symbol string) (decimal.Decimal, error) {
				return decimalx.MustFromString("0.001"), nil
			},
			wantStep: "0.001",
		},
		{
			name: "临时失败使用本地精度",
			primary: func(ctx context.Context, symbol string) (decimal.Decimal, error) {
				return decimal.Zero, Transient(errors.New("timeout"))
			},
			wantStep: "0.01",
		},
		{
			name: "步长为零使用本地精度",
			primary: func(ctx context.Context, symbol string) (decimal.Decimal, error) {
				return decimal.Zero, nil
			},
			wantStep: "0.01",
		},
		{
			name: "交易对不存在直接返回",
			primary: func(ctx context.Context, symbol string) (decimal.Decimal, error) {
				return decimal.Zero, Rejected("symbol %s not found", symbol)
			},
			wantErr: ErrRejected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			step, err := NewFallbackStepProvider(tc.primary, fallback).QuantityStep(context.Background(), "BTCUSDT")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStep, step.String())
		})
	}
}
