package app

import (
	"net/http"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthcheckResponse{
		Status:      "UP",
		Environment: app.config.Env,
		Version:     version,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
