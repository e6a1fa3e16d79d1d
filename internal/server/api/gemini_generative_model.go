package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"strings"
)

// GeminiAPI представляет структуру для работы с Gemini API
type GeminiAPI struct {
	client    *genai.Client          // Клиент для взаимодействия с API
	model     *genai.GenerativeModel // Модель для генерации контента
	modelName string                 // Имя генеративной модели
}

// NewGeminiAPI создает новый экземпляр GeminiAPI
func NewGeminiAPI(ctx context.Context, apiKey string, modelName string, maxTokens int, temperature float32) (*GeminiAPI, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key can't be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// Настраиваем параметры модели (опционально)
	if maxTokens > 0 {
		maxToken := int32(maxTokens)
		model.MaxOutputTokens = &maxToken
	}
	if temperature >= 0 && temperature <= 1 {
		model.Temperature = &temperature
	}

	return &GeminiAPI{
		client:    client,
		model:     model,
		modelName: modelName,
	}, nil
}

// Name returns the provider name.
func (g *GeminiAPI) Name() string {
	return "gemini"
}

// GenerateContent sends the content parts to Gemini and joins the text of the first candidate.
func (g *GeminiAPI) GenerateContent(ctx context.Context, parts []models.ContentPart) (string, error) {
	geminiParts, err := toGeminiParts(parts)
	if err != nil {
		return "", &models.ProviderError{Provider: g.Name(), Err: err}
	}

	resp, err := g.model.GenerateContent(ctx, geminiParts...)
	if err != nil {
		logrus.WithError(err).WithField("model", g.modelName).Error("Error creating Gemini request")
		return "", &models.ProviderError{Provider: g.Name(), Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &models.ProviderError{Provider: g.Name(), Err: models.ErrEmptyResponse}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if text, ok := p.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// Close releases the underlying client connection.
func (g *GeminiAPI) Close() error {
	return g.client.Close()
}

func toGeminiParts(parts []models.ContentPart) ([]genai.Part, error) {
	out := make([]genai.Part, 0, len(parts))
	for i, p := range parts {
		switch {
		case p.IsText():
			out = append(out, genai.Text(*p.Text))
		case p.InlineData != nil:
			data, err := p.InlineData.Bytes()
			if err != nil {
				return nil, fmt.Errorf("decode inline data of part %d: %w", i, err)
			}
			out = append(out, genai.Blob{MIMEType: p.InlineData.MIMEType, Data: data})
		default:
			return nil, fmt.Errorf("content part %d is empty", i)
		}
	}
	return out, nil
}
