package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// CatalogGorm owns the catalog database (products, image rows, content
	// sections, activity logs). Every taxonomy mutation goes through its
	// Transaction primitive.
	CatalogGorm *gorm.DB

	// StoreDB is the storefront database pool (orders, carts) used for raw
	// reads during delete-precondition checks and for the stale-cart purge.
	StoreDB *pgxpool.Pool
)

func InitDB() {
	initCatalogGorm()
	initStorePgx()
}

func initCatalogGorm() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	dsn := os.Getenv("CATALOG_DB_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=catalog port=%s sslmode=disable TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ CATALOG_DB_URL not set, using local default")
	}

	var err error
	CatalogGorm, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to catalog database: %v", err)
	}
	if sqlDB, err := CatalogGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Catalog database connected (GORM)")
}

func initStorePgx() {
	storeURL := os.Getenv("STORE_DB_URL")
	if storeURL == "" {
		storeURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/storefront?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ STORE_DB_URL not set, using local default")
	}

	var err error
	StoreDB, err = pgxpool.New(context.Background(), storeURL)
	if err != nil {
		log.Fatalf("❌ Unable to connect to storefront database: %v", err)
	}
	if err = StoreDB.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Storefront database ping failed: %v", err)
	}
	log.Println("✅ Storefront database connected (pgx)")
}

func CloseDB() {
	if StoreDB != nil {
		StoreDB.Close()
		log.Println("✅ Storefront database connection closed (pgx)")
	}
	if CatalogGorm != nil {
		sqlDB, _ := CatalogGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Catalog database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout for persistence calls
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
