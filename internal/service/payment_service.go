package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"photoai/internal/billing"
	"photoai/internal/model"
	"photoai/internal/notify"
	"photoai/internal/repository"
	"photoai/internal/serr"

	"github.com/rs/zerolog"
)

type PaymentMethod string

const (
	MethodStripe   PaymentMethod = "stripe"
	MethodRazorpay PaymentMethod = "razorpay"
)

// StripeGateway is implemented by billing.StripeGateway.
type StripeGateway interface {
	CreateCheckout(ctx context.Context, req billing.CheckoutRequest) (*billing.StripeCheckout, error)
	GetSession(ctx context.Context, sessionID string) (*billing.StripeSession, error)
	ParseWebhook(payload []byte, signature string) (string, *billing.StripeSession, error)
}

// RazorpayGateway is implemented by billing.RazorpayGateway.
type RazorpayGateway interface {
	CreateOrder(ctx context.Context, req billing.CheckoutRequest) (*billing.RazorpayOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*billing.RazorpayOrderInfo, error)
	VerifyPayment(orderID, paymentID, signature string) bool
}

// Checkout is the processor-specific descriptor the client completes.
type Checkout struct {
	Method   PaymentMethod
	Stripe   *billing.StripeCheckout
	Razorpay *billing.RazorpayOrder
}

type PaymentResult struct {
	Success bool `json:"success"`
	Credits int  `json:"credits"`
	// Applied is false when the payment had already been recorded.
	Applied bool `json:"-"`
}

type RazorpayVerification struct {
	OrderID   string
	PaymentID string
	Signature string
	Plan      model.PlanType
	IsAnnual  bool
}

type SubscriptionStatus struct {
	Plan      model.PlanType `json:"plan"`
	CreatedAt time.Time      `json:"createdAt"`
	Credits   int            `json:"credits"`
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, userID string, plan model.PlanType, isAnnual bool, method PaymentMethod) (*Checkout, error)
	VerifyStripe(ctx context.Context, userID, sessionID string) (*PaymentResult, error)
	VerifyRazorpay(ctx context.Context, userID string, v RazorpayVerification) (*PaymentResult, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
	// FinalizeSubscription records the payment and grants the plan credits
	// atomically. Replaying the same paymentID grants nothing.
	FinalizeSubscription(ctx context.Context, userID string, plan model.PlanType, isAnnual bool, provider model.PaymentProvider, paymentID, orderID string) (*PaymentResult, error)
	GetCredits(ctx context.Context, userID string) (int, error)
	GetSubscription(ctx context.Context, userID string) (*SubscriptionStatus, error)
}

type paymentService struct {
	stripe   StripeGateway
	razorpay RazorpayGateway
	subs     repository.SubscriptionRepository
	users    repository.UserRepository
	credits  CreditService
	events   notify.Sink
	logger   zerolog.Logger
}

// NewPaymentService accepts nil gateways for processors that are not configured.
func NewPaymentService(
	stripe StripeGateway,
	razorpay RazorpayGateway,
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	credits CreditService,
	events notify.Sink,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		stripe:   stripe,
		razorpay: razorpay,
		subs:     subs,
		users:    users,
		credits:  credits,
		events:   events,
		logger:   logger.With().Str("service", "PaymentService").Logger(),
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userID string, planType model.PlanType, isAnnual bool, method PaymentMethod) (*Checkout, error) {
	plan, err := billing.LookupPlan(planType)
	if err != nil {
		return nil, serr.BadRequest("Invalid plan")
	}
	req := billing.CheckoutRequest{UserID: userID, Plan: plan, IsAnnual: isAnnual, Email: s.userEmail(ctx, userID)}

	switch method {
	case MethodStripe:
		if s.stripe == nil {
			return nil, serr.New(http.StatusServiceUnavailable, "Stripe payments are not configured")
		}
		sess, err := s.stripe.CreateCheckout(ctx, req)
		if err != nil {
			return nil, serr.Upstream(err, "Failed to create Stripe checkout")
		}
		s.logger.Info().Str("user_id", userID).Str("session_id", sess.SessionID).Str("plan", string(planType)).Msg("Stripe checkout created")
		return &Checkout{Method: method, Stripe: sess}, nil
	case MethodRazorpay:
		if s.razorpay == nil {
			return nil, serr.New(http.StatusServiceUnavailable, "Razorpay payments are not configured")
		}
		order, err := s.razorpay.CreateOrder(ctx, req)
		if err != nil {
			return nil, serr.Upstream(err, "Failed to create Razorpay order")
		}
		s.logger.Info().Str("user_id", userID).Str("order_id", order.OrderID).Str("plan", string(planType)).Msg("Razorpay order created")
		return &Checkout{Method: method, Razorpay: order}, nil
	default:
		return nil, serr.BadRequest("Invalid payment method")
	}
}

func (s *paymentService) VerifyStripe(ctx context.Context, userID, sessionID string) (*PaymentResult, error) {
	if s.stripe == nil {
		return nil, serr.New(http.StatusServiceUnavailable, "Stripe payments are not configured")
	}
	sess, err := s.stripe.GetSession(ctx, sessionID)
	if err != nil {
		return nil, serr.Upstream(err, "Failed to verify Stripe payment")
	}
	if sess.UserID != userID {
		s.logger.Warn().Str("user_id", userID).Str("session_id", sessionID).Msg("Stripe session belongs to another user")
		return nil, serr.Forbidden("Payment does not belong to this user")
	}
	if !sess.Paid {
		return nil, serr.BadRequest("Payment not completed")
	}
	return s.FinalizeSubscription(ctx, userID, sess.Plan, sess.IsAnnual, model.ProviderStripe, sess.ID, sess.PaymentIntentID)
}

// VerifyRazorpay trusts the plan recorded on the order over the one echoed
// back by the client, since only the order amount was actually charged.
func (s *paymentService) VerifyRazorpay(ctx context.Context, userID string, v RazorpayVerification) (*PaymentResult, error) {
	if s.razorpay == nil {
		return nil, serr.New(http.StatusServiceUnavailable, "Razorpay payments are not configured")
	}
	if !s.razorpay.VerifyPayment(v.OrderID, v.PaymentID, v.Signature) {
		s.logger.Warn().Str("user_id", userID).Str("order_id", v.OrderID).Msg("Invalid Razorpay signature")
		return nil, serr.BadRequest("Invalid signature")
	}

	plan, isAnnual := v.Plan, v.IsAnnual
	order, err := s.razorpay.FetchOrder(ctx, v.OrderID)
	if err != nil {
		return nil, serr.Upstream(err, "Failed to verify Razorpay order")
	}
	if order.UserID != "" && order.UserID != userID {
		return nil, serr.Forbidden("Payment does not belong to this user")
	}
	if order.Plan != "" {
		plan, isAnnual = order.Plan, order.IsAnnual
	}
	return s.FinalizeSubscription(ctx, userID, plan, isAnnual, model.ProviderRazorpay, v.PaymentID, v.OrderID)
}

func (s *paymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.stripe == nil {
		return serr.New(http.StatusServiceUnavailable, "Stripe payments are not configured")
	}
	eventType, sess, err := s.stripe.ParseWebhook(payload, signature)
	if err != nil {
		return serr.Wrap(err, http.StatusBadRequest, "Invalid Stripe signature")
	}
	if sess == nil {
		s.logger.Debug().Str("event_type", eventType).Msg("Ignoring Stripe event")
		return nil
	}
	if !sess.Paid {
		s.logger.Info().Str("event_type", eventType).Str("session_id", sess.ID).Msg("Checkout completed without payment yet")
		return nil
	}
	if sess.UserID == "" {
		return serr.BadRequest("Missing userId in session metadata")
	}
	_, err = s.FinalizeSubscription(ctx, sess.UserID, sess.Plan, sess.IsAnnual, model.ProviderStripe, sess.ID, sess.PaymentIntentID)
	return err
}

func (s *paymentService) FinalizeSubscription(ctx context.Context, userID string, planType model.PlanType, isAnnual bool, provider model.PaymentProvider, paymentID, orderID string) (*PaymentResult, error) {
	plan, err := billing.LookupPlan(planType)
	if err != nil {
		return nil, serr.BadRequest("Invalid plan")
	}
	if paymentID == "" {
		return nil, serr.BadRequest("Missing payment id")
	}
	sub := &model.Subscription{
		UserID:    userID,
		Plan:      plan.Type,
		IsAnnual:  isAnnual,
		Provider:  provider,
		PaymentID: paymentID,
		OrderID:   orderID,
	}
	applied, balance, err := s.subs.CreateWithGrant(ctx, sub, plan.Credits)
	if err != nil {
		return nil, fmt.Errorf("finalize subscription: %w", err)
	}
	if !applied {
		s.logger.Info().Str("user_id", userID).Str("payment_id", paymentID).Msg("Payment already applied")
		return &PaymentResult{Success: true, Credits: balance}, nil
	}

	s.logger.Info().Str("user_id", userID).Str("payment_id", paymentID).Str("plan", string(plan.Type)).Int("credits", plan.Credits).Msg("Subscription recorded")
	if s.events != nil {
		s.events.Publish(ctx, notify.Event{Type: notify.CreditsGranted, UserID: userID, ID: sub.ID, Credits: balance, CreatedAt: time.Now().UTC()})
	}
	return &PaymentResult{Success: true, Credits: balance, Applied: true}, nil
}

func (s *paymentService) GetCredits(ctx context.Context, userID string) (int, error) {
	return s.credits.GetBalance(ctx, userID)
}

func (s *paymentService) GetSubscription(ctx context.Context, userID string) (*SubscriptionStatus, error) {
	sub, err := s.subs.Latest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, serr.NotFound("No subscription found")
	}
	if err != nil {
		return nil, err
	}
	credits, err := s.credits.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionStatus{Plan: sub.Plan, CreatedAt: sub.CreatedAt, Credits: credits}, nil
}

func (s *paymentService) userEmail(ctx context.Context, userID string) string {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to look up user email")
		}
		return ""
	}
	return u.Email
}
