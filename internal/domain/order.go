package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is one requested seat within a booking. It is an ephemeral input:
// if the booking succeeds it becomes an OrderLine, otherwise it leaves no
// trace. Daytime is echoed back to the client for display only.
type Ticket struct {
	FilmID      string
	ScreeningID string
	Daytime     time.Time
	Row         int
	Seat        int
	Price       decimal.Decimal
}

func (t Ticket) SeatKey() SeatKey {
	return SeatKey{Row: t.Row, Seat: t.Seat}
}

func (t Ticket) ScreeningKey() ScreeningKey {
	return ScreeningKey{FilmID: t.FilmID, ScreeningID: t.ScreeningID}
}

// Order is the durable record of a completed booking. It is immutable once
// persisted. Total is always computed server-side from the line prices;
// client-supplied totals are never trusted.
type Order struct {
	ID        string
	Email     string
	Phone     string
	CreatedAt time.Time
	Total     decimal.Decimal
	Lines     []OrderLine
}

// OrderLine is a snapshot of one booked seat at booking time, independent of
// later screening mutations.
type OrderLine struct {
	FilmID      string
	ScreeningID string
	Daytime     time.Time
	Row         int
	Seat        int
	Price       decimal.Decimal
}

func (l OrderLine) SeatKey() SeatKey {
	return SeatKey{Row: l.Row, Seat: l.Seat}
}

// OrderRepository is the order ledger.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByIds(ctx context.Context, ids []string) ([]*Order, error)
}
