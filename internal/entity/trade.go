package entity

import (
	"time"
)

// Trade 一次下单尝试的结果
type Trade struct {
	Id             int64  `gorm:"primaryKey;autoIncrement"`
	Pass           string `gorm:"index"`
	Symbol         string `gorm:"index"`
	Side           string
	Notional       string
	Price          string
	Quantity       string
	FilledQuantity string
	OrderId        string
	Status         int `gorm:"index"` // 0:成功 1:失败
	Error          string
	CreatedAt      time.Time `gorm:"index"`
}

const (
	TradeStatusSuccess = 0
	TradeStatusFailed  = 1
)
