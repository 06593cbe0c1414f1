package billing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"photoai/internal/model"

	"github.com/razorpay/razorpay-go"
)

const (
	razorpayCurrency = "INR"
	maxReceiptLen    = 40
	// Razorpay amounts are in paise.
	paisePerUnit = 100
)

// RazorpayOrder is what the frontend checkout widget needs.
type RazorpayOrder struct {
	OrderID     string            `json:"orderId"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Prefill     map[string]string `json:"prefill"`
	Notes       map[string]string `json:"notes"`
}

// RazorpayOrderInfo is the purchase recorded in an order's notes.
type RazorpayOrderInfo struct {
	OrderID  string
	Status   string
	Amount   int64
	UserID   string
	Plan     model.PlanType
	IsAnnual bool
}

type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	now       func() time.Time
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		now:       time.Now,
	}
}

// CreateOrder registers an order for the plan price. The widget amount matches
// the order amount, both in paise.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, req CheckoutRequest) (*RazorpayOrder, error) {
	amount := req.Plan.Price(req.IsAnnual) * paisePerUnit
	notes := map[string]string{
		metaUserID:   req.UserID,
		metaPlan:     string(req.Plan.Type),
		metaIsAnnual: strconv.FormatBool(req.IsAnnual),
	}
	data := map[string]interface{}{
		"amount":   amount,
		"currency": razorpayCurrency,
		"receipt":  receipt(req.UserID, g.now()),
		"notes":    notes,
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create razorpay order: %w", err)
	}
	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("create razorpay order: response has no id")
	}
	prefill := map[string]string{}
	if req.Email != "" {
		prefill["email"] = req.Email
	}
	return &RazorpayOrder{
		OrderID:     orderID,
		Amount:      amount,
		Currency:    razorpayCurrency,
		Key:         g.keyID,
		Name:        "Photo AI",
		Description: req.Plan.Description(req.IsAnnual),
		Prefill:     prefill,
		Notes:       notes,
	}, nil
}

// VerifyPayment checks the checkout callback signature.
func (g *RazorpayGateway) VerifyPayment(orderID, paymentID, signature string) bool {
	return VerifyRazorpaySignature(orderID, paymentID, signature, g.keySecret)
}

// FetchOrder reads back the notes written by CreateOrder.
func (g *RazorpayGateway) FetchOrder(ctx context.Context, orderID string) (*RazorpayOrderInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch razorpay order %s: %w", orderID, err)
	}
	return orderInfo(orderID, body), nil
}

func orderInfo(orderID string, body map[string]interface{}) *RazorpayOrderInfo {
	info := &RazorpayOrderInfo{OrderID: orderID}
	info.Status, _ = body["status"].(string)
	if amount, ok := body["amount"].(float64); ok {
		info.Amount = int64(amount)
	}
	// Orders created without notes come back with an empty JSON array.
	notes, _ := body["notes"].(map[string]interface{})
	if v, ok := notes[metaUserID].(string); ok {
		info.UserID = v
	}
	if v, ok := notes[metaPlan].(string); ok {
		info.Plan = model.PlanType(v)
	}
	if v, ok := notes[metaIsAnnual].(string); ok {
		info.IsAnnual, _ = strconv.ParseBool(v)
	}
	return info
}

// receipt stays within Razorpay's 40 character limit.
func receipt(userID string, now time.Time) string {
	r := "order_" + userID + "_" + strconv.FormatInt(now.Unix(), 10)
	if len(r) > maxReceiptLen {
		r = r[len(r)-maxReceiptLen:]
	}
	return r
}
