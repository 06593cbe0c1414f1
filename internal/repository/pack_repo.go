package repository

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/model"

	"gorm.io/gorm"
)

// PackRepository stores curated prompt packs.
type PackRepository interface {
	List(ctx context.Context) ([]model.Pack, error)
	GetByID(ctx context.Context, packID string) (*model.Pack, error)
	Create(ctx context.Context, p *model.Pack) error
	// Update replaces the pack fields and upserts the given prompts by id:
	// prompts with a known id are rewritten in place, the rest are created.
	Update(ctx context.Context, p *model.Pack) (*model.Pack, error)
	Delete(ctx context.Context, packID string) error
}

type packRepo struct {
	db *gorm.DB
}

// NewPackRepo creates a new PackRepository
func NewPackRepo(db *gorm.DB) PackRepository {
	return &packRepo{db: db}
}

func (r *packRepo) List(ctx context.Context) ([]model.Pack, error) {
	packs := []model.Pack{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&packs).Error; err != nil {
		return nil, fmt.Errorf("listing packs: %w", err)
	}
	return packs, nil
}

func (r *packRepo) GetByID(ctx context.Context, packID string) (*model.Pack, error) {
	return getPack(r.db.WithContext(ctx), packID)
}

func (r *packRepo) Create(ctx context.Context, p *model.Pack) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("creating pack %q: %w", p.Name, err)
	}
	return nil
}

func (r *packRepo) Update(ctx context.Context, p *model.Pack) (*model.Pack, error) {
	var updated *model.Pack
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Pack{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"image_url1":  p.ImageURL1,
			"image_url2":  p.ImageURL2,
		})
		if res.Error != nil {
			return fmt.Errorf("updating pack %s: %w", p.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		for _, prompt := range p.Prompts {
			if prompt.ID != "" {
				res := tx.Model(&model.PackPrompt{}).
					Where("id = ? AND pack_id = ?", prompt.ID, p.ID).
					Update("prompt", prompt.Prompt)
				if res.Error != nil {
					return fmt.Errorf("updating prompt %s: %w", prompt.ID, res.Error)
				}
				if res.RowsAffected > 0 {
					continue
				}
			}
			row := model.PackPrompt{PackID: p.ID, Prompt: prompt.Prompt}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("creating prompt for pack %s: %w", p.ID, err)
			}
		}

		var err error
		updated, err = getPack(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *packRepo) Delete(ctx context.Context, packID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pack_id = ?", packID).Delete(&model.PackPrompt{}).Error; err != nil {
			return fmt.Errorf("deleting prompts of pack %s: %w", packID, err)
		}
		res := tx.Delete(&model.Pack{}, "id = ?", packID)
		if res.Error != nil {
			return fmt.Errorf("deleting pack %s: %w", packID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func getPack(db *gorm.DB, packID string) (*model.Pack, error) {
	var p model.Pack
	err := db.Preload("Prompts", func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at ASC")
	}).Take(&p, "id = ?", packID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching pack %s: %w", packID, err)
	}
	return &p, nil
}
