package service

import (
	"context"
	"errors"

	"photoai/internal/model"
	"photoai/internal/repository"
	"photoai/internal/serr"

	"github.com/rs/zerolog"
)

type PackService interface {
	List(ctx context.Context) ([]model.Pack, error)
	Get(ctx context.Context, packID string) (*model.Pack, error)
	Create(ctx context.Context, p *model.Pack) (*model.Pack, error)
	Update(ctx context.Context, p *model.Pack) (*model.Pack, error)
	Delete(ctx context.Context, packID string) error
}

type packService struct {
	repo   repository.PackRepository
	logger zerolog.Logger
}

func NewPackService(repo repository.PackRepository, logger zerolog.Logger) PackService {
	return &packService{repo: repo, logger: logger.With().Str("service", "PackService").Logger()}
}

func (s *packService) List(ctx context.Context) ([]model.Pack, error) {
	return s.repo.List(ctx)
}

func (s *packService) Get(ctx context.Context, packID string) (*model.Pack, error) {
	return notFoundAs(s.repo.GetByID(ctx, packID))
}

func (s *packService) Create(ctx context.Context, p *model.Pack) (*model.Pack, error) {
	p.ID = ""
	for i := range p.Prompts {
		p.Prompts[i].ID = ""
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("pack_id", p.ID).Int("prompts", len(p.Prompts)).Msg("Pack created")
	return p, nil
}

func (s *packService) Update(ctx context.Context, p *model.Pack) (*model.Pack, error) {
	updated, err := notFoundAs(s.repo.Update(ctx, p))
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("pack_id", p.ID).Int("prompts", len(updated.Prompts)).Msg("Pack updated")
	return updated, nil
}

func (s *packService) Delete(ctx context.Context, packID string) error {
	err := s.repo.Delete(ctx, packID)
	if errors.Is(err, repository.ErrNotFound) {
		return serr.NotFound("Pack not found")
	}
	if err != nil {
		return err
	}
	s.logger.Info().Str("pack_id", packID).Msg("Pack deleted")
	return nil
}

func notFoundAs(p *model.Pack, err error) (*model.Pack, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, serr.NotFound("Pack not found")
	}
	return p, err
}
