package repo

import (
	"github.com/KNICEX/pairwatch/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Symbol{}, &entity.Signal{}, &entity.Trade{})
}
