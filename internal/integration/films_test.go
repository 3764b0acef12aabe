package integration_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type FilmsSuite struct {
	BaseSuite
}

func TestFilmsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(FilmsSuite))
}

func (s *FilmsSuite) SetupTest() {
	s.truncateTables("films", "orders")
}

func (s *FilmsSuite) TestCreateFilm() {
	body := fmt.Sprintf(`{
		"id": %q,
		"title": %q,
		"rating": %v,
		"director": %q,
		"tags": ["Sci-Fi", "Thriller"],
		"about": %q,
		"schedule": [
			{
				"id": %q,
				"daytime": %q,
				"hall": %d,
				"rows": %d,
				"seats": %d,
				"price": "350"
			}
		]
	}`, TestFilmId, TestFilmTitle, TestFilmRating, TestFilmDirector, TestFilmAbout,
		TestScreeningId, TestScreeningDaytime, TestScreeningHall, TestScreeningRows, TestScreeningSeats)

	scenarios := []Scenario{
		{
			Name:           "creates a film with its schedule",
			Method:         http.MethodPost,
			URL:            "/films",
			Body:           strings.NewReader(body),
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: fmt.Sprintf(`{
				"id": %q,
				"title": %q,
				"rating": %v,
				"director": %q,
				"tags": ["Sci-Fi", "Thriller"],
				"about": %q,
				"description": "",
				"image": "",
				"cover": ""
			}`, TestFilmId, TestFilmTitle, TestFilmRating, TestFilmDirector, TestFilmAbout),
		},
		{
			Name:           "rejects a film with an existing id",
			Method:         http.MethodPost,
			URL:            "/films",
			Body:           strings.NewReader(body),
			ExpectedStatus: http.StatusConflict,
			ExpectedResponse: `{
				"message": "film already exists"
			}`,
		},
		{
			Name:           "rejects a film without required fields",
			Method:         http.MethodPost,
			URL:            "/films",
			Body:           strings.NewReader(`{"rating": 5}`),
			ExpectedStatus: http.StatusUnprocessableEntity,
			ExpectedResponse: `{
				"message": "The request contains invalid fields",
				"validationErrors": [
					{"field": "Title", "issue": "must be provided"},
					{"field": "Director", "issue": "must be provided"}
				]
			}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *FilmsSuite) TestGetFilms() {
	s.seedTestFilm()

	scenario := Scenario{
		Name:           "lists films with pagination metadata",
		Method:         http.MethodGet,
		URL:            "/films",
		ExpectedStatus: http.StatusOK,
		ExpectedResponse: fmt.Sprintf(`{
			"films": [
				{
					"id": %q,
					"title": %q,
					"rating": %v,
					"director": %q,
					"tags": ["Sci-Fi", "Thriller"],
					"about": %q,
					"description": "",
					"image": "",
					"cover": ""
				}
			],
			"metadata": {
				"currentPage": 1,
				"firstPage": 1,
				"lastPage": 1,
				"pageSize": 10,
				"totalRecords": 1
			}
		}`, TestFilmId, TestFilmTitle, TestFilmRating, TestFilmDirector, TestFilmAbout),
	}

	scenario.Run(s.T(), s.app)
}

func (s *FilmsSuite) TestGetFilms_InvalidSort() {
	scenario := Scenario{
		Name:           "rejects an unknown sort column",
		Method:         http.MethodGet,
		URL:            "/films?sort=rating",
		ExpectedStatus: http.StatusBadRequest,
		ExpectedResponse: `{
			"message": "sort must be one of id, -id, title, -title"
		}`,
	}

	scenario.Run(s.T(), s.app)
}

func (s *FilmsSuite) TestGetFilmSchedule() {
	s.seedTestFilm()

	scenarios := []Scenario{
		{
			Name:           "returns the screenings of a film",
			Method:         http.MethodGet,
			URL:            fmt.Sprintf("/films/%s/schedule", TestFilmId),
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: fmt.Sprintf(`{
				"filmId": %q,
				"items": [
					{
						"id": %q,
						"daytime": %q,
						"hall": %d,
						"rows": %d,
						"seats": %d,
						"price": "350",
						"taken": []
					}
				]
			}`, TestFilmId, TestScreeningId, TestScreeningDaytime,
				TestScreeningHall, TestScreeningRows, TestScreeningSeats),
		},
		{
			Name:           "returns 404 for an unknown film",
			Method:         http.MethodGet,
			URL:            "/films/no-such-film/schedule",
			ExpectedStatus: http.StatusNotFound,
			ExpectedResponse: `{
				"message": "film not found"
			}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *FilmsSuite) TestGetScreeningSeats() {
	s.seedTestFilm("2:5", "2:6")

	scenario := Scenario{
		Name:           "reflects taken seats in the seat map",
		Method:         http.MethodGet,
		URL:            fmt.Sprintf("/films/%s/schedule/%s/seats", TestFilmId, TestScreeningId),
		ExpectedStatus: http.StatusOK,
		AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
			seatMap := decodeSeatMap(t, res.Body)

			total := TestScreeningRows * TestScreeningSeats
			s.Equal(total, seatMap.TotalSeats)
			s.Equal(2, seatMap.TakenSeats)
			s.Equal(total-2, seatMap.AvailableSeats)

			s.False(seatAvailable(seatMap, 2, 5))
			s.False(seatAvailable(seatMap, 2, 6))
			s.True(seatAvailable(seatMap, 2, 7))
		},
	}

	scenario.Run(s.T(), s.app)
}

func (s *FilmsSuite) TestGetScreeningSeats_NotFound() {
	s.seedTestFilm()

	scenario := Scenario{
		Name:           "returns 404 for an unknown screening",
		Method:         http.MethodGet,
		URL:            fmt.Sprintf("/films/%s/schedule/no-such-screening/seats", TestFilmId),
		ExpectedStatus: http.StatusNotFound,
		ExpectedResponse: `{
			"message": "screening not found"
		}`,
	}

	scenario.Run(s.T(), s.app)
}
