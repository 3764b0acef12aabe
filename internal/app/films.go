package app

import (
	"errors"
	"net/http"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetFilms(w http.ResponseWriter, r *http.Request) {
	filters := domain.FilmFilters{
		Page:     readIntQuery(r, "page", DefaultPage),
		PageSize: readIntQuery(r, "pageSize", DefaultPageSize),
		Term:     r.URL.Query().Get("term"),
		Sort:     DefaultSort,
	}

	switch sort := r.URL.Query().Get("sort"); sort {
	case "", DefaultSort:
	case "title", "-title", "-id":
		filters.Sort = sort
	default:
		app.badRequestResponse(w, r, errors.New("sort must be one of id, -id, title, -title"))
		return
	}

	if filters.Page < 1 || filters.PageSize < 1 || filters.PageSize > 100 {
		app.badRequestResponse(w, r, errors.New("page must be >= 1 and pageSize between 1 and 100"))
		return
	}

	films, metadata, err := app.filmRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := FilmListResponse{
		Films:    toFilmResponses(films),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var input CreateFilmRequest

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

	film := toFilm(input)

	err = app.filmRepo.Create(r.Context(), film)
	if err != nil {
		if errors.Is(err, domain.ErrFilmAlreadyExists) {
			app.editConflictResponseWithErr(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toFilmResponse(film), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetFilmSchedule(w http.ResponseWriter, r *http.Request) {
	filmId := chi.URLParam(r, "filmId")

	film, err := app.filmRepo.GetById(r.Context(), filmId)
	if err != nil {
		if errors.Is(err, domain.ErrFilmNotFound) {
			app.notFoundResponseWithErr(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ScheduleResponse{
		FilmID: film.ID,
		Items:  toScheduleItems(film.Schedule),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toFilm(input CreateFilmRequest) *domain.Film {
	film := &domain.Film{
		ID:          input.ID,
		Title:       input.Title,
		Rating:      input.Rating,
		Director:    input.Director,
		Tags:        input.Tags,
		About:       input.About,
		Description: input.Description,
		Image:       input.Image,
		Cover:       input.Cover,
	}

	if film.ID == "" {
		film.ID = uuid.New().String()
	}

	for _, item := range input.Schedule {
		screening := domain.Screening{
			ID:      item.ID,
			FilmID:  film.ID,
			Daytime: item.Daytime,
			Hall:    item.Hall,
			Rows:    item.Rows,
			Seats:   item.Seats,
			Price:   item.Price,
		}

		if screening.ID == "" {
			screening.ID = uuid.New().String()
		}

		film.Schedule = append(film.Schedule, screening)
	}

	return film
}

func toFilmResponses(films []*domain.Film) []FilmResponse {
	responses := make([]FilmResponse, len(films))

	for i, film := range films {
		responses[i] = toFilmResponse(film)
	}

	return responses
}

func toFilmResponse(film *domain.Film) FilmResponse {
	return FilmResponse{
		ID:          film.ID,
		Title:       film.Title,
		Rating:      film.Rating,
		Director:    film.Director,
		Tags:        film.Tags,
		About:       film.About,
		Description: film.Description,
		Image:       film.Image,
		Cover:       film.Cover,
	}
}

func toScheduleItems(screenings []domain.Screening) []ScheduleItemResponse {
	items := make([]ScheduleItemResponse, len(screenings))

	for i, screening := range screenings {
		items[i] = ScheduleItemResponse{
			ID:      screening.ID,
			Daytime: screening.Daytime,
			Hall:    screening.Hall,
			Rows:    screening.Rows,
			Seats:   screening.Seats,
			Price:   screening.Price,
			Taken:   domain.SeatKeyStrings(screening.Taken),
		}
	}

	return items
}

func toApiMetadata(metadata *domain.Metadata) *Metadata {
	if metadata == nil {
		return nil
	}

	return &Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
