package dto

import "time"

// TrainModelRequest starts a training job from an uploaded zip of photos.
type TrainModelRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Type      string `json:"type" validate:"required,oneof=Man Woman Others"`
	Age       int    `json:"age" validate:"gte=0,lte=150"`
	Ethnicity string `json:"ethinicity" validate:"required,oneof=White Black Asian_American East_Asian South_East_Asian South_Asian Middle_Eastern Pacific Hispanic"`
	EyeColor  string `json:"eyeColor" validate:"required,oneof=Brown Blue Hazel Gray"`
	Bald      bool   `json:"bald"`
	ZipURL    string `json:"zipUrl" validate:"required,url"`
}

type TrainModelResponse struct {
	ModelID string `json:"modelId"`
}

// GenerateImageRequest asks for num images of prompt from one model.
type GenerateImageRequest struct {
	Prompt  string `json:"prompt" validate:"required,max=2000"`
	ModelID string `json:"modelId" validate:"required"`
	Num     int    `json:"num" validate:"gte=0"`
}

// GenerateImageResponse keeps imageId for clients that request one image.
type GenerateImageResponse struct {
	ImageID  string   `json:"imageId"`
	ImageIDs []string `json:"imageIds"`
}

type GeneratePackRequest struct {
	ModelID string `json:"modelId" validate:"required"`
	PackID  string `json:"packId" validate:"required"`
}

type GeneratePackResponse struct {
	Images []string `json:"images"`
}

type PresignedURLResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ImageDTO struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	ModelID   string    `json:"modelId"`
	UserID    string    `json:"userId"`
	Prompt    string    `json:"prompt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ImagesResponse struct {
	Images []ImageDTO `json:"images"`
}

type ModelDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Age            int       `json:"age"`
	Ethnicity      string    `json:"ethinicity"`
	EyeColor       string    `json:"eyeColor"`
	Bald           bool      `json:"bald"`
	UserID         string    `json:"userId"`
	TriggerWord    string    `json:"triggerWord"`
	Thumbnail      string    `json:"thumbnail"`
	TrainingStatus string    `json:"trainingStatus"`
	Open           bool      `json:"open"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ModelsResponse struct {
	Models []ModelDTO `json:"models"`
}
