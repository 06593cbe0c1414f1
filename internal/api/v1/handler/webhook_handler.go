package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"photoai/internal/api/v1/dto"
	"photoai/internal/httpx"
	"photoai/internal/serr"
	"photoai/internal/service"

	"github.com/rs/zerolog"
)

const maxWebhookBytes = 1 << 20

// WebhookHandler receives callbacks from Clerk, fal.ai and Stripe. Each
// source authenticates itself, so none of these routes use bearer auth.
type WebhookHandler struct {
	users    service.UserService
	jobs     service.WebhookService
	payments service.PaymentService
	logger   zerolog.Logger
}

func NewWebhookHandler(users service.UserService, jobs service.WebhookService, payments service.PaymentService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{users: users, jobs: jobs, payments: payments, logger: logger.With().Str("handler", "WebhookHandler").Logger()}
}

func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/webhook/clerk", h.clerk)
	mux.HandleFunc("POST /api/webhook/fal-ai/train", h.falTraining)
	mux.HandleFunc("POST /api/webhook/fal-ai/image", h.falImage)
	mux.HandleFunc("POST /api/webhook/stripe", h.stripe)
}

// clerk godoc
// @Summary Clerk user webhook
// @Description Svix-signed user.created, user.updated and user.deleted events.
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} dto.WebhookAckResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/webhook/clerk [post]
func (h *WebhookHandler) clerk(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(w, r)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	if err := h.users.HandleClerkWebhook(r.Context(), payload, r.Header); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.WebhookAckResponse{Success: true, Message: "Webhook received"})
}

// falTraining godoc
// @Summary fal.ai training callback
// @Tags webhooks
// @Accept json
// @Produce json
// @Param token query string false "Shared callback token"
// @Param payload body dto.FalWebhookPayload true "Callback body"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /api/webhook/fal-ai/train [post]
func (h *WebhookHandler) falTraining(w http.ResponseWriter, r *http.Request) {
	p, err := h.falPayload(w, r)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	if err := h.jobs.HandleTraining(r.Context(), service.TrainingCallback{RequestID: p.ID(), Status: p.Status}); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Webhook received"})
}

// falImage godoc
// @Summary fal.ai image callback
// @Tags webhooks
// @Accept json
// @Produce json
// @Param token query string false "Shared callback token"
// @Param payload body dto.FalWebhookPayload true "Callback body"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/webhook/fal-ai/image [post]
func (h *WebhookHandler) falImage(w http.ResponseWriter, r *http.Request) {
	p, err := h.falPayload(w, r)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	cb := service.ImageCallback{RequestID: p.ID(), Status: p.Status}
	if p.Payload != nil {
		for _, img := range p.Payload.Images {
			cb.ImageURLs = append(cb.ImageURLs, img.URL)
		}
	}
	if err := h.jobs.HandleImage(r.Context(), cb); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Webhook received"})
}

// stripe godoc
// @Summary Stripe webhook
// @Description Finalizes paid checkout sessions. Safe to receive alongside the verify route.
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/webhook/stripe [post]
func (h *WebhookHandler) stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(w, r)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	if err := h.payments.HandleStripeWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *WebhookHandler) falPayload(w http.ResponseWriter, r *http.Request) (*dto.FalWebhookPayload, error) {
	if !h.jobs.VerifyToken(r.URL.Query().Get("token")) {
		return nil, serr.Unauthorized("Invalid webhook token")
	}
	body, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	var p dto.FalWebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, serr.Wrap(err, http.StatusBadRequest, "Invalid JSON payload")
	}
	if p.ID() == "" {
		return nil, serr.Validation(map[string]string{"request_id": "is required"})
	}
	return &p, nil
}

// readBody keeps the exact bytes, which signature checks depend on.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		return nil, serr.Wrap(err, http.StatusBadRequest, "Failed to read request body")
	}
	return body, nil
}
