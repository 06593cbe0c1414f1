package repository

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/model"

	"gorm.io/gorm"
)

// ModelRepository stores trained model references.
type ModelRepository interface {
	Create(ctx context.Context, m *model.Model) error
	// GetVisible returns the model when it is owned by userID or open.
	GetVisible(ctx context.Context, modelID, userID string) (*model.Model, error)
	ListVisible(ctx context.Context, userID string) ([]model.Model, error)
	GetByRequestID(ctx context.Context, requestID string) (*model.Model, error)
	// MarkTrained moves a pending model to Generated. It reports false when
	// no pending row matched, which makes redelivery a no-op.
	MarkTrained(ctx context.Context, requestID, tensorPath, thumbnail string) (bool, error)
	MarkTrainingFailed(ctx context.Context, requestID string) (bool, error)
}

type modelRepo struct {
	db *gorm.DB
}

// NewModelRepo creates a new ModelRepository
func NewModelRepo(db *gorm.DB) ModelRepository {
	return &modelRepo{db: db}
}

func (r *modelRepo) Create(ctx context.Context, m *model.Model) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("creating model for user %s: %w", m.UserID, err)
	}
	return nil
}

func (r *modelRepo) GetVisible(ctx context.Context, modelID, userID string) (*model.Model, error) {
	var m model.Model
	err := r.db.WithContext(ctx).
		Where("id = ? AND (user_id = ? OR open = ?)", modelID, userID, true).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching model %s: %w", modelID, err)
	}
	return &m, nil
}

func (r *modelRepo) ListVisible(ctx context.Context, userID string) ([]model.Model, error) {
	models := []model.Model{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR open = ?", userID, true).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing models for user %s: %w", userID, err)
	}
	return models, nil
}

func (r *modelRepo) GetByRequestID(ctx context.Context, requestID string) (*model.Model, error) {
	var m model.Model
	err := r.db.WithContext(ctx).Where("fal_ai_request_id = ?", requestID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching model by request %s: %w", requestID, err)
	}
	return &m, nil
}

func (r *modelRepo) MarkTrained(ctx context.Context, requestID, tensorPath, thumbnail string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Model{}).
		Where("fal_ai_request_id = ? AND training_status = ?", requestID, model.TrainingPending).
		Updates(map[string]interface{}{
			"training_status": model.TrainingGenerated,
			"tensor_path":     tensorPath,
			"thumbnail":       thumbnail,
		})
	if res.Error != nil {
		return false, fmt.Errorf("marking model %s trained: %w", requestID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *modelRepo) MarkTrainingFailed(ctx context.Context, requestID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Model{}).
		Where("fal_ai_request_id = ? AND training_status = ?", requestID, model.TrainingPending).
		Update("training_status", model.TrainingFailed)
	if res.Error != nil {
		return false, fmt.Errorf("marking model %s failed: %w", requestID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
