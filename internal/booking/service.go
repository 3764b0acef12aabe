// Package booking implements the seat reservation and order commit protocol:
// validate requested seats against a screening's geometry and occupancy,
// atomically claim them, persist the order, and release the seats again if
// persistence fails.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	films  domain.FilmRepository
	orders domain.OrderRepository
	logger *slog.Logger
}

func NewService(films domain.FilmRepository, orders domain.OrderRepository, logger *slog.Logger) *Service {
	return &Service{
		films:  films,
		orders: orders,
		logger: logger,
	}
}

// Request is one booking call: contact details plus the requested tickets,
// possibly spanning multiple screenings.
type Request struct {
	Email   string
	Phone   string
	Tickets []domain.Ticket
}

// ticketGroup holds the tickets of one booking that target the same screening.
type ticketGroup struct {
	key     domain.ScreeningKey
	tickets []domain.Ticket
	seats   []domain.SeatKey
}

// CreateOrder runs the booking protocol: an advisory availability check per
// screening group, an atomic reservation per group, then the order persist.
// Reservations of earlier groups are released when a later group conflicts,
// and all reservations are released when the persist fails, so no partial
// booking ever survives. The pre-check is advisory only; TryReserve is the
// sole correctness guarantee under concurrency.
func (s *Service) CreateOrder(ctx context.Context, req Request) (*domain.Order, error) {
	if len(req.Tickets) == 0 {
		return nil, domain.ErrEmptyBooking
	}

	groups := groupTickets(req.Tickets)

	for _, group := range groups {
		err := s.checkAvailability(ctx, group)
		if err != nil {
			return nil, err
		}
	}

	reserved := make([]ticketGroup, 0, len(groups))

	for _, group := range groups {
		err := s.films.TryReserve(ctx, group.key, group.seats)
		if err != nil {
			if releaseErr := s.releaseAll(ctx, reserved); releaseErr != nil {
				return nil, errors.Join(err, releaseErr)
			}

			return nil, err
		}

		reserved = append(reserved, group)
	}

	order := &domain.Order{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
		Total:     totalPrice(req.Tickets),
		Lines:     toOrderLines(req.Tickets),
	}

	err := s.orders.Create(ctx, order)
	if err != nil {
		err = fmt.Errorf("persisting order: %w", err)

		if releaseErr := s.releaseAll(ctx, reserved); releaseErr != nil {
			return nil, errors.Join(err, releaseErr)
		}

		return nil, err
	}

	return order, nil
}

// checkAvailability validates one screening group against the screening's
// geometry and a snapshot of its taken set. The snapshot may be stale by the
// time the reservation is attempted; that race is resolved by TryReserve.
func (s *Service) checkAvailability(ctx context.Context, group ticketGroup) error {
	screening, err := s.films.GetScreening(ctx, group.key)
	if err != nil {
		return err
	}

	seen := make(map[domain.SeatKey]bool, len(group.seats))
	var duplicates, taken []domain.SeatKey

	for _, seat := range group.seats {
		if !screening.InBounds(seat) {
			return &domain.OutOfBoundsError{Screening: group.key, Seat: seat}
		}

		if seen[seat] {
			duplicates = append(duplicates, seat)
		}
		seen[seat] = true

		if screening.IsTaken(seat) {
			taken = append(taken, seat)
		}
	}

	if len(duplicates) > 0 {
		return &domain.DuplicateSeatsError{Screening: group.key, Seats: duplicates}
	}

	if len(taken) > 0 {
		return &domain.SeatsTakenError{Screening: group.key, Seats: taken}
	}

	return nil
}

// releaseAll rolls back committed reservations. It runs on a context that
// survives caller cancellation: a booking abandoned between reservation and
// persistence must still be cleaned up, or its seats stay taken with no
// order to show for them. A failed release is exactly that inconsistency,
// so it is escalated loudly.
func (s *Service) releaseAll(ctx context.Context, groups []ticketGroup) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error

	for _, group := range groups {
		err := s.films.Release(ctx, group.key, group.seats)
		if err != nil {
			s.logger.Error(
				"failed to release reserved seats, seats are taken without a matching order",
				"film_id", group.key.FilmID,
				"screening_id", group.key.ScreeningID,
				"seats", domain.SeatKeyStrings(group.seats),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("releasing seats of screening %s: %w", group.key, err))
		}
	}

	return errors.Join(errs...)
}

// groupTickets partitions tickets by screening, preserving the order in
// which each screening first appears in the request.
func groupTickets(tickets []domain.Ticket) []ticketGroup {
	indexes := make(map[domain.ScreeningKey]int, len(tickets))
	groups := make([]ticketGroup, 0, len(tickets))

	for _, ticket := range tickets {
		key := ticket.ScreeningKey()

		i, ok := indexes[key]
		if !ok {
			i = len(groups)
			indexes[key] = i
			groups = append(groups, ticketGroup{key: key})
		}

		groups[i].tickets = append(groups[i].tickets, ticket)
		groups[i].seats = append(groups[i].seats, ticket.SeatKey())
	}

	return groups
}

func totalPrice(tickets []domain.Ticket) decimal.Decimal {
	total := decimal.Zero

	for _, ticket := range tickets {
		total = total.Add(ticket.Price)
	}

	return total
}

func toOrderLines(tickets []domain.Ticket) []domain.OrderLine {
	lines := make([]domain.OrderLine, len(tickets))

	for i, ticket := range tickets {
		lines[i] = domain.OrderLine{
			FilmID:      ticket.FilmID,
			ScreeningID: ticket.ScreeningID,
			Daytime:     ticket.Daytime,
			Row:         ticket.Row,
			Seat:        ticket.Seat,
			Price:       ticket.Price,
		}
	}

	return lines
}
