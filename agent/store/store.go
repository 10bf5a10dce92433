// Package store persists reservations and takeaway orders. The conversation
// core treats it as a potentially failing remote dependency: a create that
// errors keeps the caller in the current stage so they can retry.
package store

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

var (
	ErrNilRecord    = errors.New("record is nil")
	ErrInvalidPhone = errors.New("mobile number is empty")
)

type Reservation struct {
	bun.BaseModel `bun:"table:reservations,alias:r"`

	ID           int64  `bun:"id,pk,autoincrement"`
	CustomerName string `bun:"customer_name,notnull"`
	MobileNumber string `bun:"mobile_number,notnull"`
	Date         string `bun:"date,notnull"`
	Time         string `bun:"time,notnull"`
	TableNumber  int    `bun:"table_number,notnull"`
	NumPeople    int    `bun:"num_people,notnull"`
}

type TakeawayOrder struct {
	bun.BaseModel `bun:"table:takeaway_orders,alias:o"`

	ID           int64   `bun:"id,pk,autoincrement"`
	CustomerName string  `bun:"customer_name,notnull"`
	MobileNumber string  `bun:"mobile_number,notnull"`
	Items        string  `bun:"items,notnull"` // comma-separated list
	TotalPrice   float64 `bun:"total_price,notnull"`
	OrderStatus  string  `bun:"order_status,notnull"`
	PickupTime   string  `bun:"pickup_time,notnull"`
}

// Store is the persistence contract consumed by the tool handlers.
type Store interface {
	CreateReservation(ctx context.Context, r *Reservation) (*Reservation, error)
	ReservationsByPhone(ctx context.Context, mobileNumber string) ([]Reservation, error)
	CreateOrder(ctx context.Context, o *TakeawayOrder) (*TakeawayOrder, error)
	OrdersByPhone(ctx context.Context, mobileNumber string) ([]TakeawayOrder, error)
}
