package generative

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/api"
	"github.com/DenisKhanov/GenAPI/internal/server/service"
	"sort"
	"strings"
)

// generativeCreator defines a function to create GenerativeModel
type generativeCreator func(ctx context.Context, apiKey, modelName string, maxTokens int, temperature float32) (service.GenerativeModel, error)

// generativeRegistry stores registered implementations
var generativeRegistry = map[string]generativeCreator{
	"gemini": func(ctx context.Context, apiKey, modelName string, maxTokens int, temperature float32) (service.GenerativeModel, error) {
		return api.NewGeminiAPI(ctx, apiKey, modelName, maxTokens, temperature)
	},
	"genai": func(ctx context.Context, apiKey, modelName string, maxTokens int, temperature float32) (service.GenerativeModel, error) {
		return api.NewGenAIAPI(ctx, apiKey, modelName, maxTokens, temperature)
	},
	"openai": func(ctx context.Context, apiKey, modelName string, maxTokens int, temperature float32) (service.GenerativeModel, error) {
		return api.NewOpenAIAPI(ctx, apiKey, modelName, maxTokens, temperature)
	},
	"anthropic": func(ctx context.Context, apiKey, modelName string, maxTokens int, temperature float32) (service.GenerativeModel, error) {
		return api.NewAnthropicAPI(ctx, apiKey, modelName, maxTokens, temperature)
	},
}

// ModelFactory creates a GenerativeModel implementation based on an environment variable
func ModelFactory(ctx context.Context, generativeName, apiKey, modelName string, maxTokens int, temperature float32) (service.GenerativeModel, error) {
	creator, exists := generativeRegistry[strings.ToLower(generativeName)]
	if !exists {
		return nil, fmt.Errorf("unsupported GENERATIVE_NAME: %s (expected one of %s)", generativeName, strings.Join(Names(), ", "))
	}
	return creator(ctx, apiKey, modelName, maxTokens, temperature)
}

// Names returns the registered provider names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(generativeRegistry))
	for name := range generativeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
