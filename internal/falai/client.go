// Package falai talks to the fal.ai queue and run APIs.
//
// Training and generation are submitted to the queue with a webhook URL; the
// provider calls back when the job finishes. Only thumbnails are rendered
// synchronously.
package falai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"photoai/internal/config"

	"github.com/rs/zerolog"
)

const (
	TrainWebhookPath = "/api/webhook/fal-ai/train"
	ImageWebhookPath = "/api/webhook/fal-ai/image"

	thumbnailPrompt = "Generate a head shot for this user in front of a white background"
	maxErrorBody    = 512
)

// Job is the queue receipt for a submitted request.
type Job struct {
	RequestID string `json:"request_id"`
	StatusURL string `json:"status_url,omitempty"`
}

type TrainingInput struct {
	ZipURL      string
	TriggerWord string
}

type GenerationInput struct {
	Prompt     string
	TensorPath string
}

// TrainingResult is the final output of a training job.
type TrainingResult struct {
	DiffusersLoraFile File `json:"diffusers_lora_file"`
	ConfigFile        File `json:"config_file"`
}

type File struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// APIError is returned for any non-2xx provider response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fal.ai error: status=%d body=%s", e.StatusCode, e.Body)
}

type Client struct {
	apiKey         string
	queueURL       string
	runURL         string
	trainingApp    string
	generationApp  string
	webhookBaseURL string
	webhookToken   string
	httpClient     *http.Client
	logger         zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	timeout := cfg.FalTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:         cfg.FalKey,
		queueURL:       strings.TrimRight(cfg.FalQueueURL, "/"),
		runURL:         strings.TrimRight(cfg.FalRunURL, "/"),
		trainingApp:    strings.Trim(cfg.FalTrainingApp, "/"),
		generationApp:  strings.Trim(cfg.FalGenerationApp, "/"),
		webhookBaseURL: strings.TrimRight(cfg.WebhookBaseURL, "/"),
		webhookToken:   cfg.FalWebhookToken,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger.With().Str("client", "falai").Logger(),
	}
}

// SubmitTraining queues a LoRA training job on the uploaded zip.
func (c *Client) SubmitTraining(ctx context.Context, in TrainingInput) (*Job, error) {
	payload := map[string]any{
		"images_data_url": in.ZipURL,
		"trigger_word":    in.TriggerWord,
	}
	return c.submit(ctx, c.trainingApp, c.webhookURL(TrainWebhookPath), payload)
}

// SubmitGeneration queues one image generation with the trained weights.
func (c *Client) SubmitGeneration(ctx context.Context, in GenerationInput) (*Job, error) {
	return c.submit(ctx, c.generationApp, c.webhookURL(ImageWebhookPath), generationPayload(in))
}

// TrainingResult fetches the output of a finished training request.
func (c *Client) TrainingResult(ctx context.Context, requestID string) (*TrainingResult, error) {
	endpoint := fmt.Sprintf("%s/%s/requests/%s", c.queueURL, c.trainingApp, url.PathEscape(requestID))
	var result TrainingResult
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, fmt.Errorf("fetch training result %s: %w", requestID, err)
	}
	if result.DiffusersLoraFile.URL == "" {
		return nil, fmt.Errorf("fetch training result %s: missing diffusers_lora_file", requestID)
	}
	return &result, nil
}

// GenerateThumbnail renders a headshot synchronously and returns its URL.
func (c *Client) GenerateThumbnail(ctx context.Context, tensorPath string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s", c.runURL, c.generationApp)
	var out struct {
		Images []Image `json:"images"`
	}
	in := GenerationInput{Prompt: thumbnailPrompt, TensorPath: tensorPath}
	if err := c.do(ctx, http.MethodPost, endpoint, generationPayload(in), &out); err != nil {
		return "", fmt.Errorf("generate thumbnail: %w", err)
	}
	if len(out.Images) == 0 || out.Images[0].URL == "" {
		return "", fmt.Errorf("generate thumbnail: no image returned")
	}
	return out.Images[0].URL, nil
}

func (c *Client) submit(ctx context.Context, app, webhook string, payload map[string]any) (*Job, error) {
	endpoint := fmt.Sprintf("%s/%s", c.queueURL, app)
	if webhook != "" {
		endpoint += "?fal_webhook=" + url.QueryEscape(webhook)
	}
	var job Job
	if err := c.do(ctx, http.MethodPost, endpoint, payload, &job); err != nil {
		return nil, fmt.Errorf("submit %s: %w", app, err)
	}
	if job.RequestID == "" {
		return nil, fmt.Errorf("submit %s: empty request_id in response", app)
	}
	c.logger.Info().Str("app", app).Str("request_id", job.RequestID).Msg("fal.ai job queued")
	return &job, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().Int("status", resp.StatusCode).Str("url", endpoint).Str("body", truncateBody(raw)).Msg("fal.ai request failed")
		return &APIError{StatusCode: resp.StatusCode, Body: truncateBody(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w (body=%s)", err, truncateBody(raw))
	}
	return nil
}

func (c *Client) webhookURL(path string) string {
	if c.webhookBaseURL == "" {
		return ""
	}
	u := c.webhookBaseURL + path
	if c.webhookToken != "" {
		u += "?token=" + url.QueryEscape(c.webhookToken)
	}
	return u
}

func generationPayload(in GenerationInput) map[string]any {
	return map[string]any{
		"prompt": in.Prompt,
		"loras": []map[string]any{
			{"path": in.TensorPath, "scale": 1},
		},
	}
}

func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
