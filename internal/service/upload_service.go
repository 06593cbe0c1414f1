package service

import (
	"context"

	"photoai/internal/serr"
	"photoai/internal/storage"

	"github.com/rs/zerolog"
)

// Presigner is implemented by storage.S3Presigner.
type Presigner interface {
	PresignZipUpload(ctx context.Context) (*storage.PresignedUpload, error)
}

type UploadService interface {
	PresignUpload(ctx context.Context, userID string) (*storage.PresignedUpload, error)
}

type uploadService struct {
	presigner Presigner
	logger    zerolog.Logger
}

func NewUploadService(presigner Presigner, logger zerolog.Logger) UploadService {
	return &uploadService{presigner: presigner, logger: logger.With().Str("service", "UploadService").Logger()}
}

func (s *uploadService) PresignUpload(ctx context.Context, userID string) (*storage.PresignedUpload, error) {
	up, err := s.presigner.PresignZipUpload(ctx)
	if err != nil {
		return nil, serr.Upstream(err, "Failed to create upload URL")
	}
	s.logger.Debug().Str("user_id", userID).Str("key", up.Key).Msg("Upload URL issued")
	return up, nil
}
