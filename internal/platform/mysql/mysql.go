package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const pingTimeout = 3 * time.Second

// New opens a pooled gorm MySQL handle and verifies connectivity before
// returning it. TranslateError must stay on: the storage layer detects
// unique-key conflicts through gorm.ErrDuplicatedKey.
func New(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql failed: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access mysql pool failed: %w", err)
	}
	pool.SetMaxOpenConns(40)
	pool.SetMaxIdleConns(8)
	pool.SetConnMaxLifetime(time.Hour)
	pool.SetConnMaxIdleTime(20 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping mysql failed: %w", err)
	}
	return db, nil
}
