package service

import (
	"context"

	"photoai/internal/falai"
)

// AIProvider is the asynchronous training and inference backend.
type AIProvider interface {
	SubmitTraining(ctx context.Context, in falai.TrainingInput) (*falai.Job, error)
	SubmitGeneration(ctx context.Context, in falai.GenerationInput) (*falai.Job, error)
	TrainingResult(ctx context.Context, requestID string) (*falai.TrainingResult, error)
	GenerateThumbnail(ctx context.Context, tensorPath string) (string, error)
}
