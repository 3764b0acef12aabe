package app

import (
	"errors"
	"net/http"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) GetScreeningSeats(w http.ResponseWriter, r *http.Request) {
	key := domain.ScreeningKey{
		FilmID:      chi.URLParam(r, "filmId"),
		ScreeningID: chi.URLParam(r, "screeningId"),
	}

	screening, err := app.filmRepo.GetScreening(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrScreeningNotFound) {
			app.notFoundResponseWithErr(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toSeatMapResponse(key, screening)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(key domain.ScreeningKey, screening *domain.Screening) SeatMapResponse {
	totalSeats := screening.Rows * screening.Seats

	resp := SeatMapResponse{
		FilmID:         key.FilmID,
		ScreeningID:    screening.ID,
		Hall:           screening.Hall,
		Daytime:        screening.Daytime,
		TotalSeats:     totalSeats,
		TakenSeats:     len(screening.Taken),
		AvailableSeats: totalSeats - len(screening.Taken),
		Price:          screening.Price,
		SeatsMap:       make([]SeatRowResponse, 0, screening.Rows),
	}

	for row := 1; row <= screening.Rows; row++ {
		rowResp := SeatRowResponse{
			Row:   row,
			Seats: make([]SeatResponse, 0, screening.Seats),
		}

		for seat := 1; seat <= screening.Seats; seat++ {
			rowResp.Seats = append(rowResp.Seats, SeatResponse{
				Seat:      seat,
				Available: !screening.IsTaken(domain.SeatKey{Row: row, Seat: seat}),
			})
		}

		resp.SeatsMap = append(resp.SeatsMap, rowResp)
	}

	return resp
}
