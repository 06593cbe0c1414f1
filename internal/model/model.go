package model

import "time"

type ModelType string

const (
	ModelTypeMan    ModelType = "Man"
	ModelTypeWoman  ModelType = "Woman"
	ModelTypeOthers ModelType = "Others"
)

type TrainingStatus string

const (
	TrainingPending   TrainingStatus = "Pending"
	TrainingGenerated TrainingStatus = "Generated"
	TrainingFailed    TrainingStatus = "Failed"
)

// Model is a personalized image model trained by the AI provider.
type Model struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Type           ModelType      `gorm:"size:16" json:"type"`
	Age            int            `json:"age"`
	Ethnicity      string         `gorm:"size:32" json:"ethinicity"`
	EyeColor       string         `gorm:"size:16" json:"eyeColor"`
	Bald           bool           `json:"bald"`
	UserID         string         `gorm:"index;size:64;not null" json:"userId"`
	ZipURL         string         `json:"zipUrl"`
	TriggerWord    string         `json:"triggerWord,omitempty"`
	TensorPath     string         `json:"tensorPath,omitempty"`
	Thumbnail      string         `json:"thumbnail"`
	TrainingStatus TrainingStatus `gorm:"size:16;index;default:Pending" json:"trainingStatus"`
	FalAIRequestID string         `gorm:"column:fal_ai_request_id;index;size:128" json:"falAiRequestId,omitempty"`
	Open           bool           `gorm:"default:false" json:"open"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Ready reports whether the model can be used for generation.
func (m *Model) Ready() bool {
	return m.TrainingStatus == TrainingGenerated && m.TensorPath != ""
}
