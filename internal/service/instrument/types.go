package instrument

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSourceUnavailable 观察列表无法读取, 本轮扫描跳过
var ErrSourceUnavailable = errors.New("instrument source unavailable")

// Instrument 被观察的交易对
type Instrument struct {
	Symbol string // 交易所交易对, 例如 BTCUSDT
	DataId string // 行情数据源 id, 例如 coingecko 的 bitcoin
}

// MarketId 行情数据源使用的 id, 未配置时为小写的 Symbol
func (i Instrument) MarketId() string {
	if i.DataId == "" {
		return strings.ToLower(i.Symbol)
	}
	return i.DataId
}

func (i Instrument) String() string {
	if i.DataId == "" || strings.EqualFold(i.DataId, i.Symbol) {
		return i.Symbol
	}
	return fmt.Sprintf("%s(%s)", i.Symbol, i.DataId)
}

// Parse 解析 "BTCUSDT" 或 "BTCUSDT:bitcoin"
// 没有 ":id" 时 DataId 取原样的小写, 例如 "bitcoin" 对应 coingecko 的 bitcoin
func Parse(s string) (Instrument, error) {
	s = strings.TrimSpace(s)
	raw, dataId, hasId := strings.Cut(s, ":")
	raw = strings.TrimSpace(raw)
	symbol := strings.ToUpper(raw)
	dataId = strings.TrimSpace(dataId)
	if symbol == "" {
		return Instrument{}, fmt.Errorf("empty instrument %q", s)
	}
	if !hasId || dataId == "" {
		dataId = strings.ToLower(raw)
	}
	return Instrument{Symbol: symbol, DataId: dataId}, nil
}

// HasExplicitId 是否单独配置了行情数据源 id
func (i Instrument) HasExplicitId() bool {
	return i.DataId != "" && !strings.EqualFold(i.DataId, i.Symbol)
}

// Source 提供当前需要观察的交易对
type Source interface {
	List(ctx context.Context) ([]Instrument, error)
}
