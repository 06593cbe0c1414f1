package model

import "time"

type PlanType string

const (
	PlanBasic   PlanType = "basic"
	PlanPremium PlanType = "premium"
)

type PaymentProvider string

const (
	ProviderStripe   PaymentProvider = "stripe"
	ProviderRazorpay PaymentProvider = "razorpay"
)

// Subscription records a completed payment. PaymentID is unique so a payment
// can only ever be applied once.
type Subscription struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	UserID    string          `gorm:"index;size:64;not null" json:"userId"`
	Plan      PlanType        `gorm:"size:16;not null" json:"plan"`
	IsAnnual  bool            `json:"isAnnual"`
	Provider  PaymentProvider `gorm:"size:16" json:"provider"`
	PaymentID string          `gorm:"uniqueIndex;size:255;not null" json:"paymentId"`
	OrderID   string          `gorm:"size:255" json:"orderId"`
	CreatedAt time.Time       `json:"createdAt"`
}
