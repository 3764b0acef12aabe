package app

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type HealthcheckResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type CreateFilmRequest struct {
	ID          string                `json:"id"`
	Title       string                `json:"title" validate:"required"`
	Rating      float64               `json:"rating" validate:"gte=0,lte=10"`
	Director    string                `json:"director" validate:"required"`
	Tags        []string              `json:"tags"`
	About       string                `json:"about"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Cover       string                `json:"cover"`
	Schedule    []ScheduleItemRequest `json:"schedule" validate:"dive"`
}

type ScheduleItemRequest struct {
	ID      string          `json:"id"`
	Daytime time.Time       `json:"daytime" validate:"required"`
	Hall    int             `json:"hall" validate:"gte=1"`
	Rows    int             `json:"rows" validate:"required,gte=1"`
	Seats   int             `json:"seats" validate:"required,gte=1"`
	Price   decimal.Decimal `json:"price" validate:"required"`
}

type FilmResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Rating      float64  `json:"rating"`
	Director    string   `json:"director"`
	Tags        []string `json:"tags"`
	About       string   `json:"about"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Cover       string   `json:"cover"`
}

type FilmListResponse struct {
	Films    []FilmResponse `json:"films"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type ScheduleItemResponse struct {
	ID      string          `json:"id"`
	Daytime time.Time       `json:"daytime"`
	Hall    int             `json:"hall"`
	Rows    int             `json:"rows"`
	Seats   int             `json:"seats"`
	Price   decimal.Decimal `json:"price"`
	Taken   []string        `json:"taken"`
}

type ScheduleResponse struct {
	FilmID string                 `json:"filmId"`
	Items  []ScheduleItemResponse `json:"items"`
}

type SeatRowResponse struct {
	Row   int            `json:"row"`
	Seats []SeatResponse `json:"seats"`
}

type SeatResponse struct {
	Seat      int  `json:"seat"`
	Available bool `json:"available"`
}

type SeatMapResponse struct {
	FilmID         string            `json:"id"`
	ScreeningID    string            `json:"sessionId"`
	Hall           int               `json:"hall"`
	Daytime        time.Time         `json:"daytime"`
	TotalSeats     int               `json:"totalSeats"`
	TakenSeats     int               `json:"takenSeats"`
	AvailableSeats int               `json:"availableSeats"`
	Price          decimal.Decimal   `json:"price"`
	SeatsMap       []SeatRowResponse `json:"seatsMap"`
}

type CreateOrderRequest struct {
	Email   string          `json:"email" validate:"required,email"`
	Phone   string          `json:"phone" validate:"required,phone"`
	Tickets []TicketRequest `json:"tickets" validate:"dive"`

	// Total is ignored on purpose: the order total is always recomputed
	// server-side from the ticket prices.
	Total decimal.Decimal `json:"total"`
}

type TicketRequest struct {
	Film    string          `json:"film" validate:"required"`
	Session string          `json:"session" validate:"required"`
	Daytime time.Time       `json:"daytime"`
	Row     int             `json:"row"`
	Seat    int             `json:"seat"`
	Price   decimal.Decimal `json:"price" validate:"required"`
}

type TicketResponse struct {
	Film    string          `json:"film"`
	Session string          `json:"session"`
	Daytime time.Time       `json:"daytime"`
	Row     int             `json:"row"`
	Seat    int             `json:"seat"`
	Price   decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	CreatedAt time.Time        `json:"createdAt"`
	Total     decimal.Decimal  `json:"total"`
	Items     []TicketResponse `json:"items"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}
