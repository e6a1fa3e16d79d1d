package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIAPI forwards content parts to the OpenAI chat completions API.
// Inline data is only accepted for the image types the API understands.
type OpenAIAPI struct {
	client      *openai.Client // Клиент для взаимодействия с API
	modelName   string         // Версия генеративной модели
	maxTokens   int            // Максимальное количество токенов (опционально)
	temperature float32        // Температура для управления креативностью (опционально)
}

// NewOpenAIAPI создает новый экземпляр OpenAIAPI
func NewOpenAIAPI(_ context.Context, apiKey string, modelName string, maxTokens int, temperature float32) (*OpenAIAPI, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key can't be empty")
	}
	return &OpenAIAPI{
		client:      openai.NewClient(apiKey),
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

func (o *OpenAIAPI) Name() string {
	return "openai"
}

func (o *OpenAIAPI) GenerateContent(ctx context.Context, parts []models.ContentPart) (string, error) {
	multi, err := toOpenAIParts(parts)
	if err != nil {
		return "", &models.ProviderError{Provider: o.Name(), Err: err}
	}

	req := openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{{
			Role:         openai.ChatMessageRoleUser,
			MultiContent: multi,
		}},
	}
	if o.maxTokens > 0 {
		req.MaxTokens = o.maxTokens
	}
	if o.temperature >= 0 && o.temperature <= 1 {
		req.Temperature = o.temperature
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logrus.WithError(err).Errorf("Error creating %s request", o.modelName)
		return "", &models.ProviderError{Provider: o.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &models.ProviderError{Provider: o.Name(), Err: models.ErrEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIParts(parts []models.ContentPart) ([]openai.ChatMessagePart, error) {
	out := make([]openai.ChatMessagePart, 0, len(parts))
	for i, p := range parts {
		switch {
		case p.IsText():
			out = append(out, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: *p.Text})
		case p.InlineData != nil:
			mt := supportedImageMIME(p.InlineData.MIMEType)
			if mt == "" {
				return nil, fmt.Errorf("openai: unsupported inline data type %s", p.InlineData.MIMEType)
			}
			out = append(out, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    fmt.Sprintf("data:%s;base64,%s", mt, p.InlineData.Data),
					Detail: openai.ImageURLDetailAuto,
				},
			})
		default:
			return nil, fmt.Errorf("content part %d is empty", i)
		}
	}
	return out, nil
}
