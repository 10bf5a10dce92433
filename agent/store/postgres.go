package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// PostgresStore keeps the restaurant records in Postgres via bun.
type PostgresStore struct {
	db *bun.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	return &PostgresStore{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// Init creates the record tables when they do not exist yet.
func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Reservation)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create reservations table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*TakeawayOrder)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create takeaway_orders table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateReservation(ctx context.Context, r *Reservation) (*Reservation, error) {
	if r == nil {
		return nil, ErrNilRecord
	}
	if _, err := s.db.NewInsert().Model(r).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ReservationsByPhone(ctx context.Context, mobileNumber string) ([]Reservation, error) {
	if strings.TrimSpace(mobileNumber) == "" {
		return nil, ErrInvalidPhone
	}
	var out []Reservation
	if err := s.db.NewSelect().Model(&out).Where("mobile_number = ?", mobileNumber).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select reservations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateOrder(ctx context.Context, o *TakeawayOrder) (*TakeawayOrder, error) {
	if o == nil {
		return nil, ErrNilRecord
	}
	if _, err := s.db.NewInsert().Model(o).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert takeaway order: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) OrdersByPhone(ctx context.Context, mobileNumber string) ([]TakeawayOrder, error) {
	if strings.TrimSpace(mobileNumber) == "" {
		return nil, ErrInvalidPhone
	}
	var out []TakeawayOrder
	if err := s.db.NewSelect().Model(&out).Where("mobile_number = ?", mobileNumber).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select takeaway orders: %w", err)
	}
	return out, nil
}
