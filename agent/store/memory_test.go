package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreCreateReservationAssignsIDs(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.CreateReservation(ctx, &Reservation{
		CustomerName: "Ann",
		MobileNumber: "555-0100",
		Date:         "2026-09-01",
		Time:         "19:00",
		TableNumber:  3,
		NumPeople:    4,
	})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("first reservation id = %d, want 1", first.ID)
	}

	second, err := s.CreateReservation(ctx, &Reservation{MobileNumber: "555-0101"})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("second reservation id = %d, want 2", second.ID)
	}
}

func TestMemoryStoreReservationsByPhone(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	for _, phone := range []string{"555-0100", "555-0101", "555-0100"} {
		if _, err := s.CreateReservation(ctx, &Reservation{MobileNumber: phone}); err != nil {
			t.Fatalf("CreateReservation() error = %v", err)
		}
	}

	got, err := s.ReservationsByPhone(ctx, "555-0100")
	if err != nil {
		t.Fatalf("ReservationsByPhone() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("found %d reservations, want 2", len(got))
	}

	if _, err := s.ReservationsByPhone(ctx, "  "); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("blank phone error = %v, want ErrInvalidPhone", err)
	}
}

func TestMemoryStoreOrders(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateOrder(ctx, &TakeawayOrder{
		CustomerName: "Bo",
		MobileNumber: "555-0102",
		Items:        "Pizza, Coffee",
		TotalPrice:   12,
		OrderStatus:  "confirmed",
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("order id = %d, want 1", created.ID)
	}

	got, err := s.OrdersByPhone(ctx, "555-0102")
	if err != nil {
		t.Fatalf("OrdersByPhone() error = %v", err)
	}
	if len(got) != 1 || got[0].Items != "Pizza, Coffee" {
		t.Fatalf("orders = %+v", got)
	}
}

func TestMemoryStoreNilRecords(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.CreateReservation(ctx, nil); !errors.Is(err, ErrNilRecord) {
		t.Fatalf("CreateReservation(nil) error = %v, want ErrNilRecord", err)
	}
	if _, err := s.CreateOrder(ctx, nil); !errors.Is(err, ErrNilRecord) {
		t.Fatalf("CreateOrder(nil) error = %v, want ErrNilRecord", err)
	}
}

func TestMemoryStoreCopiesOnWrite(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	rec := &Reservation{MobileNumber: "555-0103", CustomerName: "Cy"}
	if _, err := s.CreateReservation(ctx, rec); err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	// mutating the caller's record must not reach the stored copy
	rec.CustomerName = "changed"

	got, err := s.ReservationsByPhone(ctx, "555-0103")
	if err != nil {
		t.Fatalf("ReservationsByPhone() error = %v", err)
	}
	if got[0].CustomerName != "Cy" {
		t.Fatalf("stored name = %q, want Cy", got[0].CustomerName)
	}
}
