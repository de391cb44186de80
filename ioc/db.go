package ioc

import (
	"github.com/KNICEX/pairwatch/internal/config"
	"github.com/KNICEX/pairwatch/internal/repo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB db.enabled 为 false 时返回 nil
func InitDB(cfg config.Config) *gorm.DB {
	if !cfg.DB.Enabled {
		return nil
	}
	db, err := gorm.Open(sqlite.Open(cfg.DB.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(err)
	}
	if err = repo.InitTables(db); err != nil {
		panic(err)
	}
	return db
}
