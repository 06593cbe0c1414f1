package repository

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/model"

	"gorm.io/gorm"
)

// ImageFilter narrows an image listing.
type ImageFilter struct {
	UserID string
	IDs    []string
	Limit  int
	Offset int
}

// ImageRepository stores generation requests and their results.
type ImageRepository interface {
	CreateBatch(ctx context.Context, images []*model.OutputImage) error
	List(ctx context.Context, f ImageFilter) ([]model.OutputImage, error)
	GetByRequestID(ctx context.Context, requestID string) (*model.OutputImage, error)
	// Complete and Fail only touch pending rows and report whether one changed.
	Complete(ctx context.Context, requestID, imageURL string) (bool, error)
	Fail(ctx context.Context, requestID string) (bool, error)
}

type imageRepo struct {
	db *gorm.DB
}

// NewImageRepo creates a new ImageRepository
func NewImageRepo(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) CreateBatch(ctx context.Context, images []*model.OutputImage) error {
	if len(images) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(images).Error; err != nil {
		return fmt.Errorf("creating %d output images: %w", len(images), err)
	}
	return nil
}

// List returns the caller's images newest first, hiding failed ones.
func (r *imageRepo) List(ctx context.Context, f ImageFilter) ([]model.OutputImage, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", f.UserID, model.ImageFailed)
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	images := []model.OutputImage{}
	err := q.Order("created_at DESC").Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("listing images for user %s: %w", f.UserID, err)
	}
	return images, nil
}

func (r *imageRepo) GetByRequestID(ctx context.Context, requestID string) (*model.OutputImage, error) {
	var img model.OutputImage
	err := r.db.WithContext(ctx).Where("fal_ai_request_id = ?", requestID).Take(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching image by request %s: %w", requestID, err)
	}
	return &img, nil
}

func (r *imageRepo) Complete(ctx context.Context, requestID, imageURL string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OutputImage{}).
		Where("fal_ai_request_id = ? AND status = ?", requestID, model.ImagePending).
		Updates(map[string]interface{}{
			"status":    model.ImageGenerated,
			"image_url": imageURL,
		})
	if res.Error != nil {
		return false, fmt.Errorf("completing image %s: %w", requestID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *imageRepo) Fail(ctx context.Context, requestID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OutputImage{}).
		Where("fal_ai_request_id = ? AND status = ?", requestID, model.ImagePending).
		Update("status", model.ImageFailed)
	if res.Error != nil {
		return false, fmt.Errorf("failing image %s: %w", requestID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
