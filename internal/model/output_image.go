package model

import "time"

type ImageStatus string

const (
	ImagePending   ImageStatus = "Pending"
	ImageGenerated ImageStatus = "Generated"
	ImageFailed    ImageStatus = "Failed"
)

// OutputImage is one requested generation. The URL stays empty until the
// provider reports completion.
type OutputImage struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`
	ImageURL       string      `json:"imageUrl"`
	ModelID        string      `gorm:"index;size:36;not null" json:"modelId"`
	UserID         string      `gorm:"index;size:64;not null" json:"userId"`
	Prompt         string      `gorm:"not null" json:"prompt"`
	FalAIRequestID string      `gorm:"column:fal_ai_request_id;index;size:128" json:"falAiRequestId,omitempty"`
	Status         ImageStatus `gorm:"size:16;index;default:Pending" json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
