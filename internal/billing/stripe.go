package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"photoai/internal/model"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	metaUserID   = "userId"
	metaPlan     = "plan"
	metaIsAnnual = "isAnnual"
)

// CheckoutRequest describes a purchase of one plan.
type CheckoutRequest struct {
	UserID   string
	Email    string
	Plan     Plan
	IsAnnual bool
}

type StripeCheckout struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// StripeSession is the part of a checkout session the service acts on.
type StripeSession struct {
	ID              string
	Paid            bool
	UserID          string
	Plan            model.PlanType
	IsAnnual        bool
	PaymentIntentID string
}

// StripeGateway creates and inspects Checkout Sessions with its own key
// instead of the package-level stripe.Key.
type StripeGateway struct {
	sessions      *checkoutsession.Client
	webhookSecret string
	frontendURL   string
}

func NewStripeGateway(secretKey, webhookSecret, frontendURL string) *StripeGateway {
	return &StripeGateway{
		sessions:      &checkoutsession.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		webhookSecret: webhookSecret,
		frontendURL:   frontendURL,
	}
}

// CreateCheckout opens a one-time payment session for a plan.
func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*StripeCheckout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(req.Plan.Name + " Plan"),
					Description: stripe.String(req.Plan.Description(req.IsAnnual)),
				},
				UnitAmount: stripe.Int64(req.Plan.Price(req.IsAnnual)),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(g.frontendURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.frontendURL + "/payment/cancel"),
		Metadata: map[string]string{
			metaUserID:   req.UserID,
			metaPlan:     string(req.Plan.Type),
			metaIsAnnual: strconv.FormatBool(req.IsAnnual),
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	sess, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &StripeCheckout{SessionID: sess.ID, URL: sess.URL}, nil
}

// GetSession re-fetches a session to check its payment status.
func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*StripeSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("fetch checkout session %s: %w", sessionID, err)
	}
	return sessionFromStripe(sess), nil
}

// ParseWebhook verifies the Stripe-Signature header and returns the checkout
// session for completion events. Other event types return a nil session.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (string, *StripeSession, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("verify stripe webhook: %w", err)
	}
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return string(event.Type), nil, fmt.Errorf("decode checkout session: %w", err)
		}
		return string(event.Type), sessionFromStripe(&cs), nil
	default:
		return string(event.Type), nil, nil
	}
}

func sessionFromStripe(cs *stripe.CheckoutSession) *StripeSession {
	out := &StripeSession{
		ID:   cs.ID,
		Paid: cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if cs.Metadata != nil {
		out.UserID = cs.Metadata[metaUserID]
		out.Plan = model.PlanType(cs.Metadata[metaPlan])
		out.IsAnnual, _ = strconv.ParseBool(cs.Metadata[metaIsAnnual])
	}
	if cs.PaymentIntent != nil {
		out.PaymentIntentID = cs.PaymentIntent.ID
	}
	return out
}
