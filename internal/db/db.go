package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/emrekarsli/tvservis_backend/internal/models"
	"github.com/emrekarsli/tvservis_backend/pkg/logger"
)

const slowQueryThreshold = time.Second

type DB struct {
	*gorm.DB

	// Observe, ayarlanmışsa, her sorgunun süresini performans monitörüne iletir.
	Observe func(name string, elapsed time.Duration)
}

func Open(path string) (*DB, error) {
	// busy_timeout: eşzamanlı yazmalarda "database is locked" hatasını azaltır.
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", path)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &DB{DB: gdb}, nil
}

func (d *DB) Migrate() error {
	return d.AutoMigrate(
		&models.Bayi{},
		&models.IsTalebi{},
		&models.OdemeIslemi{},
		&models.AdminKullanici{},
		&models.KrediHareketi{},
		&models.BayiOturumu{},
		&models.BildirimKaydi{},
	)
}

// QueryRow tek satır döndüren ham SQL çalıştırır.
func (d *DB) QueryRow(ctx context.Context, dest any, query string, args ...any) error {
	return d.instrumented(ctx, "query_row", query, func(tx *gorm.DB) error {
		return tx.Raw(query, args...).Take(dest).Error
	})
}

// QueryAll çok satır döndüren ham SQL çalıştırır.
func (d *DB) QueryAll(ctx context.Context, dest any, query string, args ...any) error {
	return d.instrumented(ctx, "query_all", query, func(tx *gorm.DB) error {
		return tx.Raw(query, args...).Scan(dest).Error
	})
}

// QueryPage LIMIT/OFFSET ekleyerek sayfalı okur; toplam satır sayısını döndürür.
func (d *DB) QueryPage(ctx context.Context, dest any, page, perPage int, query string, args ...any) (int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s)", query)
	if err := d.instrumented(ctx, "query_count", countQuery, func(tx *gorm.DB) error {
		return tx.Raw(countQuery, args...).Scan(&total).Error
	}); err != nil {
		return 0, err
	}

	paged := fmt.Sprintf("%s LIMIT %d OFFSET %d", query, perPage, (page-1)*perPage)
	err := d.instrumented(ctx, "query_page", paged, func(tx *gorm.DB) error {
		return tx.Raw(paged, args...).Scan(dest).Error
	})
	return total, err
}

// Transaction gerçek bir veritabanı transaction'ı açar. fn hata döndürürse
// tamamı geri alınır.
func (d *DB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	start := time.Now()
	err := d.WithContext(ctx).Transaction(fn)
	d.observe("transaction", time.Since(start))
	return err
}

func (d *DB) instrumented(ctx context.Context, name, query string, fn func(tx *gorm.DB) error) error {
	start := time.Now()
	err := fn(d.WithContext(ctx))
	elapsed := time.Since(start)
	d.observe(name, elapsed)

	if elapsed > slowQueryThreshold {
		logger.Warn("yavaş sorgu", "sql", truncateSQL(query), "sure_ms", elapsed.Milliseconds())
	}
	if err != nil {
		logger.Error("sorgu hatası", "sql", truncateSQL(query), "error", err.Error())
	}
	return err
}

func (d *DB) observe(name string, elapsed time.Duration) {
	if d.Observe != nil {
		d.Observe("db_"+name, elapsed)
	}
}

func truncateSQL(q string) string {
	if len(q) > 100 {
		return q[:100]
	}
	return q
}
