package binance

import (
	"errors"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
)

func binanceSide(side exchange.Side) binance.SideType {
	switch side {
	case exchange.Buy:
		return binance.SideTypeBuy
	case exchange.Sell:
		return binance.SideTypeSell
	default:
		return ""
	}
}

func fromBinanceSide(side binance.SideType) exchange.Side {
	switch side {
	case binance.SideTypeBuy:
		return exchange.Buy
	case binance.SideTypeSell:
		return exchange.Sell
	default:
		return exchange.Side(side)
	}
}

func fromBinanceOrderStatus(status binance.OrderStatusType) exchange.OrderStatus {
	switch status {
	case binance.OrderStatusTypeNew:
		return exchange.OrderStatusCreated
	case binance.OrderStatusTypePartiallyFilled:
		return exchange.OrderStatusPartialFilled
	case binance.OrderStatusTypeFilled:
		return exchange.OrderStatusFilled
	case binance.OrderStatusTypeCanceled:
		return exchange.OrderStatusCancelled
	case binance.OrderStatusTypeRejected:
		return exchange.OrderStatusRejected
	case binance.OrderStatusTypeExpired:
		return exchange.OrderStatusExpired
	default:
		return exchange.OrderStatus(status)
	}
}

// 可在下一轮重试的错误码
// https://developers.binance.com/docs/binance-spot-api-docs/errors
var transientCodes = map[int64]struct{}{
	0:     {}, // 响应不是 json, 通常是 429/5xx
	-1000: {}, // UNKNOWN
	-1001: {}, // DISCONNECTED
	-1003: {}, // TOO_MANY_REQUESTS
	-1006: {}, // UNEXPECTED_RESP
	-1007: {}, // TIMEOUT
	-1008: {}, // SERVER_BUSY
	-1015: {}, // TOO_MANY_ORDERS
	-1021: {}, // INVALID_TIMESTAMP
}

// classifyErr 把 go-binance 的错误转换为 exchange.Error
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *common.APIError
	if !errors.As(err, &apiErr) {
		// 网络错误等
		return exchange.Transient(err)
	}
	kind := exchange.ErrRejected
	if _, ok := transientCodes[apiErr.Code]; ok {
		kind = exchange.ErrTransient
	}
	return &exchange.Error{
		Kind:    kind,
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Err:     err,
	}
}
