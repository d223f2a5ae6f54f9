package imageapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements Client using the OpenAI images API.
type OpenAI struct {
	client openai.Client
	model  string
	size   openai.ImageGenerateParamsSize
}

type OpenAIOption func(*OpenAI)

func WithModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		if model != "" {
			o.model = model
		}
	}
}

func WithSize(size openai.ImageGenerateParamsSize) OpenAIOption {
	return func(o *OpenAI) {
		o.size = size
	}
}

var ErrMissingAPIKey = errors.New("image api key is required")

func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	o := &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  string(openai.ImageModelDallE3),
		size:   openai.ImageGenerateParamsSize1024x1024,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Generate renders a single image for the prompt and returns its URL.
// Upstream failures are converted to *APIError so the caller can classify
// them by status code.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(o.model),
		N:              openai.Int(1),
		Size:           o.size,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{StatusCode: apiErr.StatusCode, Body: apiErr.Message}
		}
		return "", fmt.Errorf("image api request failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image api returned no image")
	}

	return resp.Data[0].URL, nil
}
