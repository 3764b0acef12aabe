package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinetick/cinetick/internal/booking"
	"github.com/cinetick/cinetick/internal/domain"
	"github.com/cinetick/cinetick/internal/mailer"
	appvalidator "github.com/cinetick/cinetick/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication builds an Application backed by the given repositories,
// a recording mailer, and an in-memory session store. No Redis or database
// is involved.
func newTestApplication(films domain.FilmRepository, orders domain.OrderRepository) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Application{
		config:         Config{Env: "test"},
		logger:         logger,
		validator:      appvalidator.NewValidator(),
		mailer:         mailer.NewMockMailer(),
		sessionManager: newSessionManager(nil),
		filmRepo:       films,
		orderRepo:      orders,
		bookings:       booking.NewService(films, orders, logger),
	}
}

func executeRequest(t *testing.T, app *Application, method, url string, body io.Reader) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	app.Routes().ServeHTTP(rec, req)

	return rec.Result()
}

func decodeResponse[T any](t *testing.T, body io.Reader) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))

	return v
}

func checkErrorResponse(t *testing.T, res *http.Response, status int, message string) {
	t.Helper()

	assert.Equal(t, status, res.StatusCode)

	resp := decodeResponse[ErrorResponse](t, res.Body)
	assert.Contains(t, resp.Message, message)
}

func checkValidationResponse(t *testing.T, res *http.Response, fields ...string) {
	t.Helper()

	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	resp := decodeResponse[ValidationErrorResponse](t, res.Body)
	assert.Equal(t, ErrFailedValidation, resp.Message)

	got := make([]string, 0, len(resp.ValidationErrors))
	for _, v := range resp.ValidationErrors {
		got = append(got, v.Field)
	}
	assert.ElementsMatch(t, fields, got)
}
