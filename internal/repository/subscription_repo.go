package repository

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/model"

	"gorm.io/gorm"
)

// SubscriptionRepository records completed payments.
type SubscriptionRepository interface {
	// CreateWithGrant inserts the subscription and grants credits in one
	// transaction. A subscription already recorded for the same payment id
	// is returned with applied=false and nothing is granted.
	CreateWithGrant(ctx context.Context, sub *model.Subscription, credits int) (applied bool, balance int, err error)
	Latest(ctx context.Context, userID string) (*model.Subscription, error)
}

type subscriptionRepo struct {
	db *gorm.DB
}

// NewSubscriptionRepo creates a new SubscriptionRepository
func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) CreateWithGrant(ctx context.Context, sub *model.Subscription, credits int) (bool, int, error) {
	applied := false
	total := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Subscription
		err := tx.Where("payment_id = ?", sub.PaymentID).Take(&existing).Error
		switch {
		case err == nil:
			*sub = existing
			total, err = balance(tx, sub.UserID)
			return err
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("checking payment %s: %w", sub.PaymentID, err)
		}

		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("recording subscription for payment %s: %w", sub.PaymentID, err)
		}
		total, err = grant(tx, sub.UserID, credits)
		if err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent finalize won the unique payment id.
			current, balErr := balance(r.db.WithContext(ctx), sub.UserID)
			return false, current, balErr
		}
		return false, 0, err
	}
	return applied, total, nil
}

func (r *subscriptionRepo) Latest(ctx context.Context, userID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Take(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching subscription for user %s: %w", userID, err)
	}
	return &sub, nil
}
