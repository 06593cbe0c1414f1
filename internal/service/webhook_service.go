package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"photoai/internal/model"
	"photoai/internal/notify"
	"photoai/internal/repository"
	"photoai/internal/serr"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const falStatusError = "ERROR"

// TrainingCallback is the decoded body of a training completion webhook.
type TrainingCallback struct {
	RequestID string
	Status    string
}

// ImageCallback is the decoded body of an image completion webhook.
type ImageCallback struct {
	RequestID string
	Status    string
	ImageURLs []string
}

// WebhookService applies provider completion callbacks. Each callback may be
// delivered more than once; only the first delivery changes state.
type WebhookService interface {
	VerifyToken(token string) bool
	HandleTraining(ctx context.Context, cb TrainingCallback) error
	HandleImage(ctx context.Context, cb ImageCallback) error
}

type webhookService struct {
	provider AIProvider
	models   repository.ModelRepository
	images   repository.ImageRepository
	events   notify.Sink
	token    string
	logger   zerolog.Logger
	// inflight collapses concurrent deliveries of one training callback so
	// the paid thumbnail render runs once per instance.
	inflight singleflight.Group
}

func NewWebhookService(
	provider AIProvider,
	models repository.ModelRepository,
	images repository.ImageRepository,
	events notify.Sink,
	token string,
	logger zerolog.Logger,
) WebhookService {
	return &webhookService{
		provider: provider,
		models:   models,
		images:   images,
		events:   events,
		token:    token,
		logger:   logger.With().Str("service", "WebhookService").Logger(),
	}
}

// VerifyToken accepts any token when none is configured.
func (s *webhookService) VerifyToken(token string) bool {
	if s.token == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}

// HandleTraining applies a training callback. Redeliveries racing on another
// instance can still render a second thumbnail; the conditional MarkTrained
// keeps the stored result to the first one.
func (s *webhookService) HandleTraining(ctx context.Context, cb TrainingCallback) error {
	_, err, _ := s.inflight.Do(cb.RequestID, func() (interface{}, error) {
		return nil, s.applyTraining(ctx, cb)
	})
	return err
}

func (s *webhookService) applyTraining(ctx context.Context, cb TrainingCallback) error {
	log := s.logger.With().Str("request_id", cb.RequestID).Str("status", cb.Status).Logger()

	m, err := s.models.GetByRequestID(ctx, cb.RequestID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn().Msg("Training callback for unknown request")
		return nil
	}
	if err != nil {
		return err
	}
	if m.TrainingStatus != model.TrainingPending {
		log.Info().Str("model_id", m.ID).Msg("Training callback already applied")
		return nil
	}

	if strings.EqualFold(cb.Status, falStatusError) {
		applied, err := s.models.MarkTrainingFailed(ctx, cb.RequestID)
		if err != nil {
			return err
		}
		if applied {
			log.Warn().Str("model_id", m.ID).Msg("Training failed")
			s.publish(ctx, notify.Event{Type: notify.ModelFailed, UserID: m.UserID, ID: m.ID, Status: string(model.TrainingFailed)})
		}
		return nil
	}

	result, err := s.provider.TrainingResult(ctx, cb.RequestID)
	if err != nil {
		return serr.Upstream(err, "Failed to fetch training result")
	}
	tensorPath := result.DiffusersLoraFile.URL
	if tensorPath == "" {
		return serr.Upstream(nil, "Training result has no weights file")
	}

	thumbnail, err := s.provider.GenerateThumbnail(ctx, tensorPath)
	if err != nil {
		log.Error().Err(err).Str("model_id", m.ID).Msg("Thumbnail generation failed")
		thumbnail = ""
	}

	applied, err := s.models.MarkTrained(ctx, cb.RequestID, tensorPath, thumbnail)
	if err != nil {
		return err
	}
	if applied {
		log.Info().Str("model_id", m.ID).Msg("Model trained")
		s.publish(ctx, notify.Event{Type: notify.ModelTrained, UserID: m.UserID, ID: m.ID, Status: string(model.TrainingGenerated), URL: thumbnail})
	}
	return nil
}

func (s *webhookService) HandleImage(ctx context.Context, cb ImageCallback) error {
	log := s.logger.With().Str("request_id", cb.RequestID).Str("status", cb.Status).Logger()

	img, err := s.images.GetByRequestID(ctx, cb.RequestID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn().Msg("Image callback for unknown request")
		return nil
	}
	if err != nil {
		return err
	}

	url := firstNonEmpty(cb.ImageURLs)
	if strings.EqualFold(cb.Status, falStatusError) || url == "" {
		applied, err := s.images.Fail(ctx, cb.RequestID)
		if err != nil {
			return err
		}
		if applied {
			log.Warn().Str("image_id", img.ID).Msg("Image generation failed")
			s.publish(ctx, notify.Event{Type: notify.ImageFailed, UserID: img.UserID, ID: img.ID, Status: string(model.ImageFailed)})
		}
		return nil
	}

	applied, err := s.images.Complete(ctx, cb.RequestID, url)
	if err != nil {
		return err
	}
	if !applied {
		log.Info().Str("image_id", img.ID).Msg("Image callback already applied")
		return nil
	}
	log.Info().Str("image_id", img.ID).Msg("Image generated")
	s.publish(ctx, notify.Event{Type: notify.ImageGenerated, UserID: img.UserID, ID: img.ID, Status: string(model.ImageGenerated), URL: url})
	return nil
}

func (s *webhookService) publish(ctx context.Context, ev notify.Event) {
	if s.events == nil {
		return
	}
	ev.CreatedAt = time.Now().UTC()
	s.events.Publish(ctx, ev)
}

func firstNonEmpty(urls []string) string {
	for _, u := range urls {
		if u != "" {
			return u
		}
	}
	return ""
}
