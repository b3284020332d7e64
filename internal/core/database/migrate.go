package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationDir = "migrations"

// Migrate postgres 走 goose 版本化脚本；sqlite/mysql 用 AutoMigrate 再补活跃借阅唯一索引
func Migrate(ctx context.Context, db *gorm.DB, driver string, models ...any) error {
	switch driver {
	case DriverPostgres:
		return Goose(ctx, db, "up")
	case DriverSQLite:
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return err
		}
		return db.WithContext(ctx).Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS uq_loans_active_book ON loans (book_id) WHERE return_date IS NULL",
		).Error
	case DriverMySQL:
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return err
		}
		return mysqlActiveLoanIndex(ctx, db)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// mysql 没有部分索引，用生成列模拟：归还后为 NULL，唯一索引忽略 NULL
func mysqlActiveLoanIndex(ctx context.Context, db *gorm.DB) error {
	if db.Migrator().HasColumn("loans", "active_book_id") {
		return nil
	}
	return db.WithContext(ctx).Exec(
		"ALTER TABLE loans " +
			"ADD COLUMN active_book_id BIGINT GENERATED ALWAYS AS (IF(return_date IS NULL, book_id, NULL)) STORED, " +
			"ADD UNIQUE INDEX uq_loans_active_book (active_book_id)",
	).Error
}

// Goose 执行 up / down / status（仅 postgres）
func Goose(ctx context.Context, db *gorm.DB, command string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	switch command {
	case "up":
		return goose.UpContext(ctx, sqlDB, migrationDir)
	case "down":
		return goose.DownContext(ctx, sqlDB, migrationDir)
	case "status":
		return goose.StatusContext(ctx, sqlDB, migrationDir)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}
