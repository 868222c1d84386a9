package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

// Repositories groups every store backed by the shared connection pool.
type Repositories struct {
	Carts         CartRepository
	Transactions  TransactionRepository
	Coupons       CouponRepository
	Sales         SaleRepository
	Settings      SettingsRepository
	Orders        OrderRepository
	Products      ProductRepository
	Notifications NotificationRepository
}

func New(cfg *config.Config) (*Repository, *Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(), otelsql.WithSpanOptions(otelsql.SpanOptions{DisableErrSkip: true}))

	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return &Repository{DB: db}, NewRepositories(db), nil
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Carts:         NewCartRepo(db),
		Transactions:  NewTransactionRepo(db),
		Coupons:       NewCouponRepo(db),
		Sales:         NewSaleRepo(db),
		Settings:      NewSettingsRepo(db),
		Orders:        NewOrderRepo(db),
		Products:      NewProductRepo(db),
		Notifications: NewNotificationRepo(db),
	}
}

func (p *Repository) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
