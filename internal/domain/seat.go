package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SeatKey identifies a single seat within a screening. Rows and seats are
// 1-indexed. The canonical form is "row:seat", which is also how members of
// a screening's taken set are stored.
type SeatKey struct {
	Row  int
	Seat int
}

func (k SeatKey) String() string {
	return fmt.Sprintf("%d:%d", k.Row, k.Seat)
}

// ParseSeatKey parses the canonical "row:seat" form.
func ParseSeatKey(s string) (SeatKey, error) {
	rowPart, seatPart, found := strings.Cut(s, ":")
	if !found {
		return SeatKey{}, fmt.Errorf("invalid seat key %q", s)
	}

	row, err := strconv.Atoi(rowPart)
	if err != nil {
		return SeatKey{}, fmt.Errorf("invalid seat key %q: %w", s, err)
	}

	seat, err := strconv.Atoi(seatPart)
	if err != nil {
		return SeatKey{}, fmt.Errorf("invalid seat key %q: %w", s, err)
	}

	if row < 1 || seat < 1 {
		return SeatKey{}, fmt.Errorf("invalid seat key %q: row and seat must be positive", s)
	}

	return SeatKey{Row: row, Seat: seat}, nil
}

// ScreeningKey addresses one screening of one film. Bookings may span
// multiple screenings, so tickets are grouped by this composite key.
type ScreeningKey struct {
	FilmID      string
	ScreeningID string
}

func (k ScreeningKey) String() string {
	return k.FilmID + "/" + k.ScreeningID
}

// SeatKeyStrings returns the canonical forms of the given keys, preserving order.
func SeatKeyStrings(keys []SeatKey) []string {
	strs := make([]string, len(keys))
	for i, k := range keys {
		strs[i] = k.String()
	}

	return strs
}
