package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"photoai/internal/middleware"
	"photoai/internal/notify"

	"github.com/rs/zerolog"
)

const defaultHeartbeat = 25 * time.Second

// EventsHandler streams job completion events so clients need not poll.
type EventsHandler struct {
	hub       *notify.Hub
	heartbeat time.Duration
	logger    zerolog.Logger
}

func NewEventsHandler(hub *notify.Hub, heartbeat time.Duration, logger zerolog.Logger) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &EventsHandler{hub: hub, heartbeat: heartbeat, logger: logger.With().Str("handler", "EventsHandler").Logger()}
}

func (h *EventsHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /events", authMw(http.HandlerFunc(h.stream)))
}

// stream godoc
// @Summary Stream account events
// @Description Server-Sent Events for image, model and credit updates of the caller.
// @Tags events
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "Server-Sent Events stream"
// @Failure 401 {object} httpx.ErrorResponse
// @Router /events [get]
func (h *EventsHandler) stream(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, cancel := h.hub.Subscribe(userID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()
	h.logger.Debug().Str("user_id", userID).Msg("Event stream opened")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug().Str("user_id", userID).Msg("Event stream closed")
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to encode event")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
