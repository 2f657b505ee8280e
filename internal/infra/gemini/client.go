package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("provider returned an empty response")

const defaultModel = "gemini-3-flash-preview"

// Config configures the Gemini client.
type Config struct {
	APIKey      string  // Gemini API key
	Model       string  // model name, defaults to gemini-3-flash-preview
	Temperature float32 // sampling temperature, zero keeps the model default
}

// contentGenerator is the part of genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client asks Gemini for question batches as structured JSON.
type Client struct {
	models contentGenerator
	cfg    Config
	logger *zap.Logger
}

// NewClient builds a Gemini client backed by the Gemini API.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("new genai client: %w", err)
	}

	return newClient(gc.Models, cfg, logger), nil
}

func newClient(models contentGenerator, cfg Config, logger *zap.Logger) *Client {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{models: models, cfg: cfg, logger: logger}
}

// Generate sends one prompt and returns the raw JSON text of the reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), c.generateConfig())
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("gemini response received",
		zap.String("model", c.cfg.Model),
		zap.Int("bytes", len(text)),
	)

	return text, nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	}
	if c.cfg.Temperature > 0 {
		t := c.cfg.Temperature
		gc.Temperature = &t
	}
	return gc
}
