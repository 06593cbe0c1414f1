package dto

import "time"

type PackPromptInput struct {
	ID     string `json:"id,omitempty"`
	Prompt string `json:"prompt" validate:"required"`
}

// PackInput is the body of pack create and update requests.
type PackInput struct {
	Name        string            `json:"name" validate:"required,min=3,max=50"`
	Description string            `json:"description" validate:"required,min=10,max=500"`
	ImageURL1   string            `json:"imageUrl1" validate:"required,url"`
	ImageURL2   string            `json:"imageUrl2" validate:"required,url"`
	Prompts     []PackPromptInput `json:"prompts" validate:"dive"`
}

type PackPromptDTO struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

type PackDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL1   string          `json:"imageUrl1"`
	ImageURL2   string          `json:"imageUrl2"`
	Prompts     []PackPromptDTO `json:"prompts,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type PackResponse struct {
	Pack PackDTO `json:"pack"`
}

type PacksResponse struct {
	Packs []PackDTO `json:"packs"`
}
