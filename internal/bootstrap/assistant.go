package bootstrap

import (
	"log"

	"support-assistant-be/internal/config"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/assistant/document"
	"support-assistant-be/pkg/assistant/generative"
	"support-assistant-be/pkg/assistant/knowledge"
	"support-assistant-be/pkg/assistant/router"
	"support-assistant-be/pkg/assistant/status"
	"support-assistant-be/pkg/llm/factory"
)

// Assistant is the resolution pipeline and the sources it reads from
type Assistant struct {
	Router     *router.Router
	Status     *status.Service
	Responder  *status.Responder
	Documents  *document.Store
	Generative *generative.Client
}

// NewAssistant loads the knowledge sources and builds the router. Missing
// or broken files fall back to the built-in data; an unknown LLM provider
// is fatal.
func NewAssistant(cfg *config.Config, sysLogger, llmLogger logger.ILogger) *Assistant {
	knowledgeBase := knowledge.Load(cfg.Knowledge.KnowledgeBasePath, sysLogger)
	statusService := status.NewService(
		status.LoadRegistry(cfg.Knowledge.StatusRegistryPath, sysLogger),
		cfg.Knowledge.SynthesizeUnknown,
	)
	responder := status.NewResponder(cfg.App.PortalName)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider == nil {
		log.Printf("[INFO] No LLM Provider configured, generative answers disabled")
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	generativeClient := generative.NewClient(llmProvider, generative.Config{
		SystemPrompt: generative.DefaultSystemPrompt(cfg.App.PortalName),
		Timeout:      cfg.Ai.Timeout,
		Model:        cfg.Ai.LLMModel,
		Temperature:  cfg.Ai.Temperature,
		MaxTokens:    cfg.Ai.MaxTokens,
	}, llmLogger)

	documentStore := document.NewStore(generativeClient, sysLogger)
	if cfg.Knowledge.DocumentPath != "" {
		if err := documentStore.LoadFile(cfg.Knowledge.DocumentPath); err != nil {
			log.Printf("[WARN] Failed to load document: %v", err)
		}
	}

	return &Assistant{
		Router: router.NewRouter(router.Dependencies{
			Status:     statusService,
			Responder:  responder,
			Documents:  documentStore,
			Generative: generativeClient,
			Knowledge:  knowledge.NewMatcher(knowledgeBase, nil),
			Logger:     sysLogger,
		}),
		Status:     statusService,
		Responder:  responder,
		Documents:  documentStore,
		Generative: generativeClient,
	}
}
