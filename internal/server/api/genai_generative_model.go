package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
	"strings"
)

// GenAIAPI talks to Gemini through the unified google.golang.org/genai SDK.
type GenAIAPI struct {
	client    *genai.Client
	modelName string
	config    *genai.GenerateContentConfig
}

// NewGenAIAPI creates a client for the Gemini API backend.
func NewGenAIAPI(ctx context.Context, apiKey string, modelName string, maxTokens int, temperature float32) (*GenAIAPI, error) {
	if apiKey == "" {
		return nil, errors.New("genai api key can't be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if temperature >= 0 && temperature <= 1 {
		config.Temperature = &temperature
	}

	return &GenAIAPI{
		client:    client,
		modelName: modelName,
		config:    config,
	}, nil
}

func (g *GenAIAPI) Name() string {
	return "genai"
}

func (g *GenAIAPI) GenerateContent(ctx context.Context, parts []models.ContentPart) (string, error) {
	content, err := toGenAIContent(parts)
	if err != nil {
		return "", &models.ProviderError{Provider: g.Name(), Err: err}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, []*genai.Content{content}, g.config)
	if err != nil {
		logrus.WithError(err).WithField("model", g.modelName).Error("Error creating GenAI request")
		return "", &models.ProviderError{Provider: g.Name(), Err: err}
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &models.ProviderError{Provider: g.Name(), Err: models.ErrEmptyResponse}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String(), nil
}

func toGenAIContent(parts []models.ContentPart) (*genai.Content, error) {
	out := make([]*genai.Part, 0, len(parts))
	for i, p := range parts {
		switch {
		case p.IsText():
			out = append(out, &genai.Part{Text: *p.Text})
		case p.InlineData != nil:
			data, err := p.InlineData.Bytes()
			if err != nil {
				return nil, fmt.Errorf("decode inline data of part %d: %w", i, err)
			}
			out = append(out, &genai.Part{InlineData: &genai.Blob{MIMEType: p.InlineData.MIMEType, Data: data}})
		default:
			return nil, fmt.Errorf("content part %d is empty", i)
		}
	}
	return &genai.Content{Role: genai.RoleUser, Parts: out}, nil
}
