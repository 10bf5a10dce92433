package store

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is the in-process Store used for local runs and tests. Sessions
// are isolated from each other but share the store, hence the lock.
type MemoryStore struct {
	mu           sync.Mutex
	reservations []Reservation
	orders       []TakeawayOrder
	nextResID    int64
	nextOrderID  int64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextResID: 1, nextOrderID: 1}
}

func (s *MemoryStore) CreateReservation(_ context.Context, r *Reservation) (*Reservation, error) {
	if r == nil {
		return nil, ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextResID
	s.nextResID++
	s.reservations = append(s.reservations, *r)
	return r, nil
}

func (s *MemoryStore) ReservationsByPhone(_ context.Context, mobileNumber string) ([]Reservation, error) {
	if strings.TrimSpace(mobileNumber) == "" {
		return nil, ErrInvalidPhone
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reservation
	for _, r := range s.reservations {
		if r.MobileNumber == mobileNumber {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, o *TakeawayOrder) (*TakeawayOrder, error) {
	if o == nil {
		return nil, ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextOrderID
	s.nextOrderID++
	s.orders = append(s.orders, *o)
	return o, nil
}

func (s *MemoryStore) OrdersByPhone(_ context.Context, mobileNumber string) ([]TakeawayOrder, error) {
	if strings.TrimSpace(mobileNumber) == "" {
		return nil, ErrInvalidPhone
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []TakeawayOrder
	for _, o := range s.orders {
		if o.MobileNumber == mobileNumber {
			out = append(out, o)
		}
	}
	return out, nil
}
