package factory

import (
	"fmt"
	"strings"

	"support-assistant-be/pkg/llm"
	"support-assistant-be/pkg/llm/huggingface"
	"support-assistant-be/pkg/llm/ollama"
	"support-assistant-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured backend. It returns nil, nil when no
// backend is configured, which leaves the generative fallback unavailable.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(providerType)) {
	case "", "none":
		return nil, nil
	case "openai":
		if apiKey == "" {
			return nil, nil
		}
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "huggingface":
		if apiKey == "" {
			return nil, nil
		}
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
