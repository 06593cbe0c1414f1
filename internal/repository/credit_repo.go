package repository

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/model"

	"gorm.io/gorm"
)

// CreditRepository owns the per-user credit balance.
type CreditRepository interface {
	GetBalance(ctx context.Context, userID string) (int, error)
	// Reserve atomically subtracts amount if and only if the balance covers it.
	// Returns ErrInsufficientCredits otherwise and leaves the balance untouched.
	Reserve(ctx context.Context, userID string, amount int) error
	// Grant adds amount to the balance, creating the row on first grant, and
	// returns the new balance.
	Grant(ctx context.Context, userID string, amount int) (int, error)
}

type creditRepo struct {
	db *gorm.DB
}

// NewCreditRepo creates a new CreditRepository
func NewCreditRepo(db *gorm.DB) CreditRepository {
	return &creditRepo{db: db}
}

func (r *creditRepo) GetBalance(ctx context.Context, userID string) (int, error) {
	return balance(r.db.WithContext(ctx), userID)
}

func (r *creditRepo) Reserve(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("reserving %d credits for user %s: amount must be positive", amount, userID)
	}
	res := r.db.WithContext(ctx).
		Model(&model.UserCredit{}).
		Where("user_id = ? AND amount >= ?", userID, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if res.Error != nil {
		return fmt.Errorf("reserving %d credits for user %s: %w", amount, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}

func (r *creditRepo) Grant(ctx context.Context, userID string, amount int) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		total, err = grant(tx, userID, amount)
		return err
	})
	return total, err
}

func balance(db *gorm.DB, userID string) (int, error) {
	var credit model.UserCredit
	err := db.Where("user_id = ?", userID).Take(&credit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading credits for user %s: %w", userID, err)
	}
	return credit.Amount, nil
}

// grant must run inside tx. It increments an existing row, or inserts the
// first one; a concurrent first insert loses on the unique user_id and is
// retried as an increment.
func grant(tx *gorm.DB, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("granting %d credits to user %s: amount must not be negative", amount, userID)
	}
	for attempt := 0; attempt < 2; attempt++ {
		res := tx.Model(&model.UserCredit{}).
			Where("user_id = ?", userID).
			Update("amount", gorm.Expr("amount + ?", amount))
		if res.Error != nil {
			return 0, fmt.Errorf("granting credits to user %s: %w", userID, res.Error)
		}
		if res.RowsAffected > 0 {
			return balance(tx, userID)
		}
		// Savepoint so a lost insert race does not abort the outer transaction.
		err := tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(&model.UserCredit{UserID: userID, Amount: amount}).Error
		})
		if err == nil {
			return amount, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("creating credits for user %s: %w", userID, err)
		}
	}
	return 0, fmt.Errorf("granting credits to user %s: concurrent insert did not settle", userID)
}
