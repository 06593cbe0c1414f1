package dto

import "time"

type CreatePaymentRequest struct {
	Plan     string `json:"plan" validate:"required,oneof=basic premium"`
	IsAnnual bool   `json:"isAnnual"`
	Method   string `json:"method" validate:"required,oneof=stripe razorpay"`
}

type StripeVerifyRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// RazorpayVerifyRequest uses the field names of the Razorpay checkout callback.
type RazorpayVerifyRequest struct {
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
	Plan      string `json:"plan" validate:"omitempty,oneof=basic premium"`
	IsAnnual  bool   `json:"isAnnual"`
}

type PaymentVerifyResponse struct {
	Success bool `json:"success"`
	Credits int  `json:"credits"`
}

type CreditsResponse struct {
	Credits int `json:"credits"`
}

type SubscriptionResponse struct {
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	Credits   int       `json:"credits"`
}
