package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"photoai/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func TestLookupPlan(t *testing.T) {
	basic, err := LookupPlan(model.PlanBasic)
	require.NoError(t, err)
	assert.Equal(t, int64(999), basic.Price(false))
	assert.Equal(t, int64(9990), basic.Price(true))
	assert.Equal(t, 500, basic.Credits)

	premium, err := LookupPlan(model.PlanPremium)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), premium.Price(false))
	assert.Equal(t, int64(19990), premium.Price(true))
	assert.Equal(t, 1000, premium.Credits)

	_, err = LookupPlan("enterprise")
	assert.Error(t, err)
}

func TestRazorpaySignature(t *testing.T) {
	sig := RazorpaySignature("order_1", "pay_1", "secret")
	assert.Len(t, sig, 64)

	assert.True(t, VerifyRazorpaySignature("order_1", "pay_1", sig, "secret"))
	assert.False(t, VerifyRazorpaySignature("order_1", "pay_2", sig, "secret"))
	assert.False(t, VerifyRazorpaySignature("order_1", "pay_1", sig, "other"))
	assert.False(t, VerifyRazorpaySignature("order_1", "pay_1", strings.ToUpper(sig), "secret"))
	assert.False(t, VerifyRazorpaySignature("order_1", "pay_1", "", "secret"))
	assert.False(t, VerifyRazorpaySignature("order_1", "pay_1", sig, ""))
}

func TestReceiptLength(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, "order_u1_1700000000", receipt("u1", now))

	long := receipt("user_2abcdefghijklmnopqrstuvwxyz0123456789", now)
	assert.Len(t, long, maxReceiptLen)
	assert.True(t, strings.HasSuffix(long, "_1700000000"))
}

func TestStripeParseWebhook(t *testing.T) {
	g := NewStripeGateway("sk_test", "whsec_test", "http://localhost:3000")
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"api_version": "` + stripe.APIVersion + `",
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"payment_status": "paid",
			"metadata": {"userId": "user_1", "plan": "premium", "isAnnual": "true"}
		}}
	}`)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    "whsec_test",
		Timestamp: time.Now(),
	})

	eventType, sess, err := g.ParseWebhook(payload, signed.Header)
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", eventType)
	require.NotNil(t, sess)
	assert.Equal(t, "cs_test_1", sess.ID)
	assert.True(t, sess.Paid)
	assert.Equal(t, "user_1", sess.UserID)
	assert.Equal(t, model.PlanPremium, sess.Plan)
	assert.True(t, sess.IsAnnual)
}

func TestStripeParseWebhook_BadSignature(t *testing.T) {
	g := NewStripeGateway("sk_test", "whsec_test", "http://localhost:3000")
	_, _, err := g.ParseWebhook([]byte(`{"type":"checkout.session.completed"}`), "t=1,v1=deadbeef")
	assert.Error(t, err)
}

func TestSessionFromStripe_Unpaid(t *testing.T) {
	sess := sessionFromStripe(&stripe.CheckoutSession{
		ID:            "cs_2",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
	})
	assert.False(t, sess.Paid)
	assert.Equal(t, "pi_1", sess.PaymentIntentID)
	assert.Empty(t, sess.UserID)
}

func TestOrderInfo(t *testing.T) {
	info := orderInfo("order_1", map[string]interface{}{
		"status": "paid",
		"amount": float64(1999),
		"notes":  map[string]interface{}{"userId": "user_1", "plan": "premium", "isAnnual": "false"},
	})
	assert.Equal(t, "paid", info.Status)
	assert.Equal(t, int64(1999), info.Amount)
	assert.Equal(t, "user_1", info.UserID)
	assert.Equal(t, model.PlanPremium, info.Plan)
	assert.False(t, info.IsAnnual)

	bare := orderInfo("order_2", map[string]interface{}{"notes": []interface{}{}})
	assert.Empty(t, bare.Plan)
	assert.Empty(t, bare.UserID)
}

func TestRazorpayCreateOrder_SendsPaise(t *testing.T) {
	var sent map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","status":"created"}`))
	}))
	defer srv.Close()

	g := NewRazorpayGateway("rzp_key", "rzp_secret")
	g.client.Order.Request.BaseURL = srv.URL
	g.now = func() time.Time { return time.Unix(1700000000, 0) }

	basic, err := LookupPlan(model.PlanBasic)
	require.NoError(t, err)
	order, err := g.CreateOrder(context.Background(), CheckoutRequest{
		UserID: "user_1",
		Email:  "a@example.com",
		Plan:   basic,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(99900), sent["amount"])
	assert.Equal(t, "INR", sent["currency"])
	assert.Equal(t, "order_user_1_1700000000", sent["receipt"])
	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, int64(99900), order.Amount)
	assert.Equal(t, "rzp_key", order.Key)
	assert.Equal(t, "a@example.com", order.Prefill["email"])
}
