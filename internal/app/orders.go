package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/cinetick/cinetick/internal/booking"
	"github.com/cinetick/cinetick/internal/domain"
	"github.com/cinetick/cinetick/internal/event"
)

func (app *Application) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input CreateOrderRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	req := booking.Request{
		Email:   input.Email,
		Phone:   input.Phone,
		Tickets: toTickets(input.Tickets),
	}

	order, err := app.bookings.CreateOrder(r.Context(), req)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	sessionID := app.sessionManager.Token(r.Context())

	err = app.recordSessionOrder(r.Context(), sessionID, order.ID)
	if err != nil {
		// The order is committed; losing the session index only affects
		// GET /order for this browser.
		app.logger.Error("failed to index order under session", "order_id", order.ID, "error", err)
	}

	app.notifyOrderCreated(order)

	resp := toOrderResponse(order)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingErrorResponse maps the booking error taxonomy onto HTTP statuses.
// Validation and geometry problems are client errors, occupancy clashes are
// conflicts, and everything else (including a ledger persist failure after
// its rollback) is a server error.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var outOfBounds *domain.OutOfBoundsError
	var duplicates *domain.DuplicateSeatsError
	var taken *domain.SeatsTakenError
	var conflict *domain.ReservationConflictError

	switch {
	case errors.Is(err, domain.ErrEmptyBooking):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrFilmNotFound), errors.Is(err, domain.ErrScreeningNotFound):
		app.notFoundResponseWithErr(w, r, err)
	case errors.As(err, &outOfBounds), errors.As(err, &duplicates):
		app.badRequestResponse(w, r, err)
	case errors.As(err, &taken), errors.As(err, &conflict):
		app.editConflictResponseWithErr(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// notifyOrderCreated fires the side effects of a committed order: the
// order.created event and the confirmation email. Both are best-effort; the
// booking itself has already succeeded.
func (app *Application) notifyOrderCreated(order *domain.Order) {
	app.background(func() {
		if app.events != nil {
			err := app.events.PublishOrderCreated(context.Background(), event.OrderCreated{
				OrderID:   order.ID,
				Email:     order.Email,
				Total:     order.Total,
				SeatCount: len(order.Lines),
				CreatedAt: order.CreatedAt,
			})
			if err != nil {
				app.logger.Error("failed to publish order.created event", "order_id", order.ID, "error", err)
			}
		}

		data := map[string]any{
			"OrderID": order.ID,
			"Total":   order.Total,
			"Lines":   orderMailLines(order),
		}

		err := app.mailer.Send(order.Email, "order_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send order confirmation", "order_id", order.ID, "error", err)
		}
	})
}

func orderMailLines(order *domain.Order) []map[string]any {
	lines := make([]map[string]any, len(order.Lines))

	for i, line := range order.Lines {
		lines[i] = map[string]any{
			"Film":    line.FilmID,
			"Daytime": line.Daytime,
			"Row":     line.Row,
			"Seat":    line.Seat,
			"Price":   line.Price,
		}
	}

	return lines
}

func (app *Application) GetSessionOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := app.sessionManager.Token(r.Context())

	ids, err := app.sessionOrderIds(r.Context(), sessionID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	orders, err := app.orderRepo.GetByIds(r.Context(), ids)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := OrderListResponse{
		Orders: make([]OrderResponse, len(orders)),
	}
	for i, order := range orders {
		resp.Orders[i] = toOrderResponse(order)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTickets(requests []TicketRequest) []domain.Ticket {
	tickets := make([]domain.Ticket, len(requests))

	for i, req := range requests {
		tickets[i] = domain.Ticket{
			FilmID:      req.Film,
			ScreeningID: req.Session,
			Daytime:     req.Daytime,
			Row:         req.Row,
			Seat:        req.Seat,
			Price:       req.Price,
		}
	}

	return tickets
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]TicketResponse, len(order.Lines))

	for i, line := range order.Lines {
		items[i] = TicketResponse{
			Film:    line.FilmID,
			Session: line.ScreeningID,
			Daytime: line.Daytime,
			Row:     line.Row,
			Seat:    line.Seat,
			Price:   line.Price,
		}
	}

	return OrderResponse{
		ID:        order.ID,
		Email:     order.Email,
		Phone:     order.Phone,
		CreatedAt: order.CreatedAt,
		Total:     order.Total,
		Items:     items,
	}
}
