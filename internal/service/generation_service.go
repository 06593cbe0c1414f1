package service

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/falai"
	"photoai/internal/model"
	"photoai/internal/repository"
	"photoai/internal/serr"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultImageLimit = 100
	MaxImageLimit     = 100
)

// Pricing holds the per-operation credit costs and batch limits.
type Pricing struct {
	ImageCredits        int
	TrainingCredits     int
	MaxImagesPerRequest int
	SubmitConcurrency   int
}

// GenerationService starts training and generation jobs and lists their rows.
//
// Every paid operation follows the same order: reserve credits, submit to the
// provider, persist one pending row per accepted job, refund whatever the
// provider did not accept.
type GenerationService interface {
	Train(ctx context.Context, m *model.Model) (*model.Model, error)
	Generate(ctx context.Context, userID, modelID, prompt string, num int) ([]*model.OutputImage, error)
	GeneratePack(ctx context.Context, userID, modelID, packID string) ([]*model.OutputImage, error)
	ListImages(ctx context.Context, userID string, ids []string, limit, offset int) ([]model.OutputImage, error)
	ListModels(ctx context.Context, userID string) ([]model.Model, error)
}

type generationService struct {
	credits  CreditService
	provider AIProvider
	models   repository.ModelRepository
	images   repository.ImageRepository
	packs    repository.PackRepository
	pricing  Pricing
	logger   zerolog.Logger
}

func NewGenerationService(
	credits CreditService,
	provider AIProvider,
	models repository.ModelRepository,
	images repository.ImageRepository,
	packs repository.PackRepository,
	pricing Pricing,
	logger zerolog.Logger,
) GenerationService {
	if pricing.SubmitConcurrency <= 0 {
		pricing.SubmitConcurrency = 4
	}
	if pricing.MaxImagesPerRequest <= 0 {
		pricing.MaxImagesPerRequest = 4
	}
	return &generationService{
		credits:  credits,
		provider: provider,
		models:   models,
		images:   images,
		packs:    packs,
		pricing:  pricing,
		logger:   logger.With().Str("service", "GenerationService").Logger(),
	}
}

func (s *generationService) Train(ctx context.Context, m *model.Model) (*model.Model, error) {
	cost := s.pricing.TrainingCredits
	if err := s.credits.Reserve(ctx, m.UserID, cost); err != nil {
		return nil, err
	}

	job, err := s.provider.SubmitTraining(ctx, falai.TrainingInput{ZipURL: m.ZipURL, TriggerWord: m.Name})
	if err != nil {
		s.credits.Refund(ctx, m.UserID, cost)
		return nil, serr.Upstream(err, "Failed to start model training")
	}

	m.FalAIRequestID = job.RequestID
	m.TriggerWord = m.Name
	m.TrainingStatus = model.TrainingPending
	if err := s.models.Create(ctx, m); err != nil {
		s.logger.Error().Err(err).Str("request_id", job.RequestID).Msg("Training accepted but model row not saved")
		s.credits.Refund(ctx, m.UserID, cost)
		return nil, fmt.Errorf("save model: %w", err)
	}
	s.logger.Info().Str("user_id", m.UserID).Str("model_id", m.ID).Str("request_id", job.RequestID).Msg("Training started")
	return m, nil
}

func (s *generationService) Generate(ctx context.Context, userID, modelID, prompt string, num int) ([]*model.OutputImage, error) {
	if num <= 0 {
		num = 1
	}
	if num > s.pricing.MaxImagesPerRequest {
		return nil, serr.BadRequest(fmt.Sprintf("num must be at most %d", s.pricing.MaxImagesPerRequest))
	}
	m, err := s.readyModel(ctx, userID, modelID)
	if err != nil {
		return nil, err
	}
	prompts := make([]string, num)
	for i := range prompts {
		prompts[i] = prompt
	}
	return s.generateBatch(ctx, userID, m, prompts)
}

func (s *generationService) GeneratePack(ctx context.Context, userID, modelID, packID string) ([]*model.OutputImage, error) {
	pack, err := s.packs.GetByID(ctx, packID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, serr.NotFound("Pack not found")
	}
	if err != nil {
		return nil, err
	}
	if len(pack.Prompts) == 0 {
		return nil, serr.BadRequest("Pack has no prompts")
	}
	m, err := s.readyModel(ctx, userID, modelID)
	if err != nil {
		return nil, err
	}
	prompts := make([]string, len(pack.Prompts))
	for i, p := range pack.Prompts {
		prompts[i] = p.Prompt
	}
	return s.generateBatch(ctx, userID, m, prompts)
}

func (s *generationService) ListImages(ctx context.Context, userID string, ids []string, limit, offset int) ([]model.OutputImage, error) {
	if limit <= 0 {
		limit = DefaultImageLimit
	}
	if limit > MaxImageLimit {
		limit = MaxImageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.images.List(ctx, repository.ImageFilter{UserID: userID, IDs: ids, Limit: limit, Offset: offset})
}

func (s *generationService) ListModels(ctx context.Context, userID string) ([]model.Model, error) {
	return s.models.ListVisible(ctx, userID)
}

func (s *generationService) readyModel(ctx context.Context, userID, modelID string) (*model.Model, error) {
	m, err := s.models.GetVisible(ctx, modelID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, serr.NotFound("Model not found")
	}
	if err != nil {
		return nil, err
	}
	if !m.Ready() {
		return nil, serr.Conflict("Model is not trained yet")
	}
	return m, nil
}

type submission struct {
	prompt    string
	requestID string
	err       error
}

// generateBatch charges for every prompt up front so an unaffordable batch
// fails before any job reaches the provider.
func (s *generationService) generateBatch(ctx context.Context, userID string, m *model.Model, prompts []string) ([]*model.OutputImage, error) {
	perImage := s.pricing.ImageCredits
	if err := s.credits.Reserve(ctx, userID, perImage*len(prompts)); err != nil {
		return nil, err
	}

	results := s.submitAll(ctx, m.TensorPath, prompts)

	images := make([]*model.OutputImage, 0, len(results))
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		images = append(images, &model.OutputImage{
			UserID:         userID,
			ModelID:        m.ID,
			Prompt:         r.prompt,
			FalAIRequestID: r.requestID,
			Status:         model.ImagePending,
		})
	}

	if rejected := len(prompts) - len(images); rejected > 0 {
		s.logger.Warn().Err(firstErr).Str("user_id", userID).Int("rejected", rejected).Int("accepted", len(images)).Msg("Provider rejected generation jobs")
		s.credits.Refund(ctx, userID, perImage*rejected)
	}
	if len(images) == 0 {
		return nil, serr.Upstream(firstErr, "Failed to start image generation")
	}

	if err := s.images.CreateBatch(ctx, images); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int("accepted", len(images)).Msg("Generation accepted but rows not saved")
		s.credits.Refund(ctx, userID, perImage*len(images))
		return nil, fmt.Errorf("save images: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Str("model_id", m.ID).Int("count", len(images)).Msg("Generation started")
	return images, nil
}

// submitAll sends every prompt with bounded concurrency. One rejection does
// not cancel the others.
func (s *generationService) submitAll(ctx context.Context, tensorPath string, prompts []string) []submission {
	results := make([]submission, len(prompts))
	var g errgroup.Group
	g.SetLimit(s.pricing.SubmitConcurrency)
	for i, prompt := range prompts {
		g.Go(func() error {
			results[i].prompt = prompt
			job, err := s.provider.SubmitGeneration(ctx, falai.GenerationInput{Prompt: prompt, TensorPath: tensorPath})
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].requestID = job.RequestID
			return nil
		})
	}
	_ = g.Wait()
	return results
}
