package service

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/repository"
	"photoai/internal/serr"

	"github.com/rs/zerolog"
)

// CreditService is the credit ledger used by every paid operation.
type CreditService interface {
	GetBalance(ctx context.Context, userID string) (int, error)
	// Reserve takes amount credits or fails with a 411 service error without
	// touching the balance. A zero amount is free and always succeeds.
	Reserve(ctx context.Context, userID string, amount int) error
	Grant(ctx context.Context, userID string, amount int) (int, error)
	// Refund returns previously reserved credits. Failures are logged since
	// callers are already on an error path.
	Refund(ctx context.Context, userID string, amount int)
}

type creditService struct {
	repo   repository.CreditRepository
	logger zerolog.Logger
}

func NewCreditService(repo repository.CreditRepository, logger zerolog.Logger) CreditService {
	return &creditService{repo: repo, logger: logger.With().Str("service", "CreditService").Logger()}
}

func (s *creditService) GetBalance(ctx context.Context, userID string) (int, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *creditService) Reserve(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	err := s.repo.Reserve(ctx, userID, amount)
	if errors.Is(err, repository.ErrInsufficientCredits) {
		s.logger.Info().Str("user_id", userID).Int("amount", amount).Msg("Insufficient credits")
		return serr.InsufficientCredits(err)
	}
	if err != nil {
		return fmt.Errorf("reserve credits: %w", err)
	}
	s.logger.Debug().Str("user_id", userID).Int("amount", amount).Msg("Credits reserved")
	return nil
}

func (s *creditService) Grant(ctx context.Context, userID string, amount int) (int, error) {
	total, err := s.repo.Grant(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("grant credits: %w", err)
	}
	return total, nil
}

func (s *creditService) Refund(ctx context.Context, userID string, amount int) {
	if amount <= 0 {
		return
	}
	// The request context may already be cancelled; the refund must still land.
	if _, err := s.repo.Grant(context.WithoutCancel(ctx), userID, amount); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int("amount", amount).Msg("Failed to refund credits")
		return
	}
	s.logger.Info().Str("user_id", userID).Int("amount", amount).Msg("Credits refunded")
}
