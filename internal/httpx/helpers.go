package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"photoai/internal/serr"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func ReadJSON(w http.ResponseWriter, r *http.Request, out any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return serr.BadRequest("Request body is empty")
		}
		return serr.Wrap(err, http.StatusBadRequest, "Invalid JSON payload")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Message: msg})
}

// HandleErr logs err and writes its client-safe form. Internal details of
// unclassified errors never reach the client.
func HandleErr(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	var se *serr.ServiceError
	if errors.As(err, &se) {
		ev := logger.Warn()
		if se.StatusCode >= http.StatusInternalServerError {
			ev = logger.Error()
		}
		ev.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Int("status", se.StatusCode).Msg("request failed")
		WriteJSON(w, se.StatusCode, ErrorResponse{Message: se.Msg, Errors: se.Fields})
		return
	}
	logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request error")
	WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
