package platform

import (
	"fmt"

	"github.com/Tougashi/Stunting-sub001/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	DB *gorm.DB
)

// InitDB opens the MySQL connection once at startup. Connection failure is
// surfaced to main instead of being logged and ignored.
func InitDB(cfg config.SQLConfig) error {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db
	return nil
}
