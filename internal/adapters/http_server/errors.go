package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_search/internal/domain"
)

// genericErrorMessage is the only text a 500 body ever carries; the real
// cause goes to the log, not to the caller.
const genericErrorMessage = "An unexpected error occurred while processing your request. Please try again later or contact support if the problem persists."

const errorTimestampLayout = "2006-01-02 15:04:05"

type errorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := errorBody{
		Timestamp: time.Now().Format(errorTimestampLayout),
		Status:    status,
		Error:     title,
		Message:   message,
		Path:      r.URL.Path,
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

// detail strips the sentinel prefix so bodies read as one sentence instead
// of "validation failed: validation failed: ...".
func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// writeServiceError maps the failure kinds of the services to HTTP
// responses. Anything unrecognized is a 500 with the fixed message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCheckIn):
		writeError(w, r, http.StatusBadRequest, "Bad Request",
			"The check-in date provided is invalid. "+detail(err, domain.ErrInvalidCheckIn))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, "Validation Failed",
			"Validation failed for the request. "+detail(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Not Found",
			"The requested search could not be found in our system. Please verify the search id is correct or create a new search. "+detail(err, domain.ErrNotFound))
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "Internal Server Error", genericErrorMessage)
	}
}
