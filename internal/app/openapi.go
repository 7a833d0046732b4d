package app

import (
	"net/http"

	"github.com/metinatakli/movie-catalog/api"
)

// GetOpenAPISpec serves the embedded API document as JSON.
func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	doc, err := api.GetSwagger()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, doc, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
