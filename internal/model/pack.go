package model

import "time"

// Pack is an admin-curated bundle of prompts.
type Pack struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	ImageURL1   string       `gorm:"column:image_url1" json:"imageUrl1"`
	ImageURL2   string       `gorm:"column:image_url2" json:"imageUrl2"`
	Prompts     []PackPrompt `gorm:"foreignKey:PackID;constraint:OnDelete:CASCADE" json:"prompts,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type PackPrompt struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PackID    string    `gorm:"index;size:36;not null" json:"packId"`
	Prompt    string    `gorm:"not null" json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PackPrompt) TableName() string {
	return "pack_prompts"
}
