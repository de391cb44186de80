package entity

import (
	"time"
)

// Signal 扫描中产生的买卖信号
type Signal struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	Pass      string `gorm:"index"` // 扫描批次
	Symbol    string `gorm:"index"`
	Action    string `gorm:"index"` // buy / sell
	LastPrice string
	Samples   int
	CreatedAt time.Time `gorm:"index"`
}
