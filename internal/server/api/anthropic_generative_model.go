package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
	"strings"
)

const defaultAnthropicMaxTokens = 1024

// AnthropicAPI forwards content parts to the Anthropic Messages API.
type AnthropicAPI struct {
	client      anthropic.Client
	modelName   string
	maxTokens   int64
	temperature float32
}

// NewAnthropicAPI создает новый экземпляр AnthropicAPI
func NewAnthropicAPI(_ context.Context, apiKey string, modelName string, maxTokens int, temperature float32) (*AnthropicAPI, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key can't be empty")
	}
	limit := int64(maxTokens)
	if limit <= 0 {
		limit = defaultAnthropicMaxTokens
	}
	return &AnthropicAPI{
		client:      anthropic.NewClient(anthropicopt.WithAPIKey(apiKey)),
		modelName:   modelName,
		maxTokens:   limit,
		temperature: temperature,
	}, nil
}

func (a *AnthropicAPI) Name() string {
	return "anthropic"
}

func (a *AnthropicAPI) GenerateContent(ctx context.Context, parts []models.ContentPart) (string, error) {
	blocks, err := toAnthropicBlocks(parts)
	if err != nil {
		return "", &models.ProviderError{Provider: a.Name(), Err: err}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.modelName),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	}
	if a.temperature >= 0 && a.temperature <= 1 {
		params.Temperature = anthropic.Float(float64(a.temperature))
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		logrus.WithError(err).WithField("model", a.modelName).Error("Error creating Anthropic request")
		return "", &models.ProviderError{Provider: a.Name(), Err: err}
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	if b.Len() == 0 {
		return "", &models.ProviderError{Provider: a.Name(), Err: models.ErrEmptyResponse}
	}
	return b.String(), nil
}

func toAnthropicBlocks(parts []models.ContentPart) ([]anthropic.ContentBlockParamUnion, error) {
	out := make([]anthropic.ContentBlockParamUnion, 0, len(parts))
	for i, p := range parts {
		switch {
		case p.IsText():
			out = append(out, anthropic.NewTextBlock(*p.Text))
		case p.InlineData != nil:
			// Messages API принимает только изображения в base64
			mt := supportedImageMIME(p.InlineData.MIMEType)
			if mt == "" {
				return nil, fmt.Errorf("anthropic: unsupported inline data type %s", p.InlineData.MIMEType)
			}
			out = append(out, anthropic.NewImageBlockBase64(mt, p.InlineData.Data))
		default:
			return nil, fmt.Errorf("content part %d is empty", i)
		}
	}
	return out, nil
}
