package domain

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Film struct {
	ID          string
	Title       string
	Rating      float64
	Director    string
	Tags        []string
	About       string
	Description string
	Image       string
	Cover       string
	Schedule    []Screening
}

// Screening is one scheduled showing of a film. Its geometry (Rows x Seats)
// is immutable; the taken set is mutated exclusively through TryReserve and
// Release on the FilmRepository.
type Screening struct {
	ID      string
	FilmID  string
	Daytime time.Time
	Hall    int
	Rows    int
	Seats   int
	Price   decimal.Decimal
	Taken   []SeatKey
}

// InBounds reports whether the seat exists on this screening's grid.
func (s *Screening) InBounds(key SeatKey) bool {
	return key.Row >= 1 && key.Row <= s.Rows && key.Seat >= 1 && key.Seat <= s.Seats
}

// IsTaken reports whether the seat is in the taken set of this snapshot.
// The answer may be stale by the time a reservation is attempted; TryReserve
// is the authoritative check.
func (s *Screening) IsTaken(key SeatKey) bool {
	return slices.Contains(s.Taken, key)
}

type Metadata struct {
	CurrentPage  int
	FirstPage    int
	LastPage     int
	PageSize     int
	TotalRecords int
}

func NewMetadata(totalRecords, page, pageSize int) *Metadata {
	return &Metadata{
		CurrentPage:  page,
		FirstPage:    1,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
	}
}

type FilmFilters struct {
	Page     int
	PageSize int
	Term     string
	Sort     string
}

func (f FilmFilters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f FilmFilters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (f FilmFilters) Limit() int {
	return f.PageSize
}

func (f FilmFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// FilmRepository is the screening catalog. It owns all mutable screening
// state: the taken set of a screening changes only through TryReserve and
// Release, each of which is atomic per screening.
type FilmRepository interface {
	GetAll(ctx context.Context, filters FilmFilters) ([]*Film, *Metadata, error)
	GetById(ctx context.Context, id string) (*Film, error)
	Create(ctx context.Context, film *Film) error
	GetScreening(ctx context.Context, key ScreeningKey) (*Screening, error)

	// TryReserve atomically adds the given seats to the screening's taken
	// set. If any seat is already taken at the instant of commit, nothing is
	// added and a *ReservationConflictError reports the colliding keys.
	TryReserve(ctx context.Context, key ScreeningKey, seats []SeatKey) error

	// Release removes the given seats from the screening's taken set.
	// Releasing a seat that is not taken is a no-op, never an error.
	Release(ctx context.Context, key ScreeningKey, seats []SeatKey) error
}
