package repository

import (
	"errors"
	"fmt"
	"time"

	"cardapio-go/config"
	"cardapio-go/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("record already exists")
	// ErrStaleStatus means the order was no longer in the expected status
	// when the update ran.
	ErrStaleStatus = errors.New("order status changed concurrently")
)

// InitDB opens the configured database. SQL is logged at info level in
// development and only errors are logged otherwise.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Error
	if cfg.IsDevelopment() {
		level = logger.Info
	}
	return Open(cfg.Database.Driver, cfg.Database.DSN, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
}

func Open(driver, dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if gormCfg == nil {
		gormCfg = &gorm.Config{}
	}
	gormCfg.TranslateError = true
	gormCfg.NowFunc = func() time.Time { return time.Now().UTC() }

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Promotion{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusChange{},
		&models.RestaurantSettings{},
		&models.Profile{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
