package handler

import (
	"net/http"

	"photoai/internal/api/v1/dto"
	"photoai/internal/httpx"
	"photoai/internal/middleware"
	"photoai/internal/model"
	"photoai/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// PaymentHandler handles plan purchases and credit queries.
type PaymentHandler struct {
	payments service.PaymentService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewPaymentHandler(payments service.PaymentService, validate *validator.Validate, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, validate: validate, logger: logger.With().Str("handler", "PaymentHandler").Logger()}
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /payment/create", authMw(http.HandlerFunc(h.create)))
	mux.Handle("POST /payment/verify", authMw(http.HandlerFunc(h.verifyStripe)))
	mux.Handle("POST /payment/stripe/verify", authMw(http.HandlerFunc(h.verifyStripe)))
	mux.Handle("POST /payment/razorpay/verify", authMw(http.HandlerFunc(h.verifyRazorpay)))
	mux.Handle("GET /payment/credits", authMw(http.HandlerFunc(h.credits)))
	mux.Handle("GET /payment/subscription", authMw(http.HandlerFunc(h.subscription)))
}

// create godoc
// @Summary Start a plan purchase
// @Description Returns a Stripe checkout session or a Razorpay order depending on method.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentRequest true "Purchase request"
// @Success 200 {object} billing.StripeCheckout "method=stripe"
// @Success 200 {object} billing.RazorpayOrder "method=razorpay"
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /payment/create [post]
func (h *PaymentHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req dto.CreatePaymentRequest
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	co, err := h.payments.CreateCheckout(r.Context(), userID, model.PlanType(req.Plan), req.IsAnnual, service.PaymentMethod(req.Method))
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	if co.Stripe != nil {
		httpx.WriteJSON(w, http.StatusOK, co.Stripe)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, co.Razorpay)
}

// verifyStripe godoc
// @Summary Confirm a Stripe payment
// @Description Checks the checkout session is paid and grants the plan credits once.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StripeVerifyRequest true "Checkout session"
// @Success 200 {object} dto.PaymentVerifyResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /payment/stripe/verify [post]
func (h *PaymentHandler) verifyStripe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req dto.StripeVerifyRequest
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	res, err := h.payments.VerifyStripe(r.Context(), userID, req.SessionID)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.PaymentVerifyResponse{Success: res.Success, Credits: res.Credits})
}

// verifyRazorpay godoc
// @Summary Confirm a Razorpay payment
// @Description Verifies the checkout signature and grants the plan credits once.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RazorpayVerifyRequest true "Razorpay callback fields"
// @Success 200 {object} dto.PaymentVerifyResponse
// @Failure 400 {object} httpx.ErrorResponse "Invalid signature"
// @Router /payment/razorpay/verify [post]
func (h *PaymentHandler) verifyRazorpay(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req dto.RazorpayVerifyRequest
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	res, err := h.payments.VerifyRazorpay(r.Context(), userID, service.RazorpayVerification{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		Plan:      model.PlanType(req.Plan),
		IsAnnual:  req.IsAnnual,
	})
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.PaymentVerifyResponse{Success: res.Success, Credits: res.Credits})
}

// credits godoc
// @Summary Current credit balance
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CreditsResponse
// @Router /payment/credits [get]
func (h *PaymentHandler) credits(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	credits, err := h.payments.GetCredits(r.Context(), userID)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.CreditsResponse{Credits: credits})
}

// subscription godoc
// @Summary Latest subscription
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /payment/subscription [get]
func (h *PaymentHandler) subscription(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	sub, err := h.payments.GetSubscription(r.Context(), userID)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.SubscriptionResponse{Plan: string(sub.Plan), CreatedAt: sub.CreatedAt, Credits: sub.Credits})
}

func (h *PaymentHandler) decode(w http.ResponseWriter, r *http.Request, req any) error {
	if err := httpx.ReadJSON(w, r, req); err != nil {
		return err
	}
	return validateStruct(h.validate, req)
}
