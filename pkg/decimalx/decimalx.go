package decimalx

import (
	"strings"

	"github.com/shopspring/decimal"
)

func MustFromString(s string) decimal.Decimal {
	res, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return res
}

// StepOf 精度转步长, 例如 6 -> 0.000001
func StepOf(precision int32) decimal.Decimal {
	return decimal.New(1, -precision)
}

// PrecisionOf 步长对应的小数位数, 例如 0.00100000 -> 3
func PrecisionOf(step decimal.Decimal) int32 {
	if !step.IsPositive() {
		return 0
	}
	s := step.String()
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return int32(len(s) - idx - 1)
}

// FloorToStep 按步长向下截断 (向零取整), step <= 0 时原样返回
func FloorToStep(d, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return d
	}
	units, _ := d.QuoRem(step, 0)
	return units.Mul(step)
}
