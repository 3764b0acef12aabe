package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrFilmNotFound      = errors.New("film not found")
	ErrScreeningNotFound = errors.New("screening not found")
	ErrFilmAlreadyExists = errors.New("film already exists")
	ErrEmptyBooking      = errors.New("booking contains no tickets")
)

// OutOfBoundsError reports a requested seat that does not exist on the
// screening's grid, including rows or seats below 1.
type OutOfBoundsError struct {
	Screening ScreeningKey
	Seat      SeatKey
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("seat %s does not exist on screening %s", e.Seat, e.Screening)
}

// DuplicateSeatsError reports seat keys that appear more than once within a
// single booking for the same screening. Duplicates are rejected, never
// silently deduplicated.
type DuplicateSeatsError struct {
	Screening ScreeningKey
	Seats     []SeatKey
}

func (e *DuplicateSeatsError) Error() string {
	return fmt.Sprintf("seat(s) %s requested more than once for screening %s", joinSeatKeys(e.Seats), e.Screening)
}

// SeatsTakenError reports seats found in the taken set during the advisory
// availability check.
type SeatsTakenError struct {
	Screening ScreeningKey
	Seats     []SeatKey
}

func (e *SeatsTakenError) Error() string {
	return fmt.Sprintf("seat(s) %s already taken on screening %s", joinSeatKeys(e.Seats), e.Screening)
}

// ReservationConflictError reports seats that were already taken at the
// instant of the atomic commit. When it is returned, none of the requested
// seats were reserved.
type ReservationConflictError struct {
	Screening ScreeningKey
	Seats     []SeatKey
}

func (e *ReservationConflictError) Error() string {
	return fmt.Sprintf("seat(s) %s were taken by a concurrent booking on screening %s", joinSeatKeys(e.Seats), e.Screening)
}

func joinSeatKeys(keys []SeatKey) string {
	return strings.Join(SeatKeyStrings(keys), ", ")
}
