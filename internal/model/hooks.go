package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (c *UserCredit) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	return nil
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	newID(&m.ID)
	return nil
}

func (o *OutputImage) BeforeCreate(tx *gorm.DB) error {
	newID(&o.ID)
	return nil
}

func (p *Pack) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (p *PackPrompt) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	newID(&s.ID)
	return nil
}
