package dto

// FalWebhookPayload is the body fal.ai posts to completion callbacks. Older
// deliveries used camelCase request ids.
type FalWebhookPayload struct {
	RequestID      string          `json:"request_id"`
	RequestIDCamel string          `json:"requestId"`
	Status         string          `json:"status"`
	Error          string          `json:"error,omitempty"`
	Payload        *FalImageOutput `json:"payload"`
}

type FalImageOutput struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// ID returns the request id regardless of casing.
func (p *FalWebhookPayload) ID() string {
	if p.RequestID != "" {
		return p.RequestID
	}
	return p.RequestIDCamel
}

type MessageResponse struct {
	Message string `json:"message"`
}

type WebhookAckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
