package entity

import (
	"time"
)

// Symbol 观察列表中的交易对
type Symbol struct {
	Id        int64  `gorm:"primaryKey"`
	Symbol    string `gorm:"uniqueIndex"` // 交易所交易对, 例如 BTCUSDT
	DataId    string // 行情数据源 id, 为空时使用 Symbol
	About     string
	Mark      string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	MarkIgnore   = "ignore"
	MarkFavorite = "favorite"
)
