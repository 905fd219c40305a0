package bootstrap

import (
	"context"
	"log"

	"support-assistant-be/internal/config"
	"support-assistant-be/internal/controller"
	"support-assistant-be/internal/handler"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/internal/repository/contract"
	"support-assistant-be/internal/repository/memory"
	redisRepo "support-assistant-be/internal/repository/redis"
	"support-assistant-be/internal/service"
	"support-assistant-be/internal/websocket"
	"support-assistant-be/pkg/assistant/document"
	"support-assistant-be/pkg/assistant/stats"
	"support-assistant-be/pkg/events"
	pktNats "support-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	ChatHandler       *handler.ChatHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub
	DocumentWatcher *document.Watcher // nil unless DOCUMENT_WATCH is set

	closers []func()
}

func NewContainer(cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)
	c.closers = append(c.closers, func() {
		_ = sysLogger.Sync()
		_ = llmLogger.Sync()
	})

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Resolution pipeline
	assistant := NewAssistant(cfg, sysLogger, llmLogger)
	if cfg.Knowledge.DocumentPath != "" && cfg.Knowledge.WatchDocument {
		watcher, err := document.NewWatcher(cfg.Knowledge.DocumentPath, assistant.Documents, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to create document watcher: %v", err)
		} else {
			c.DocumentWatcher = watcher
		}
	}

	// 4. Infrastructure
	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var conversations contract.IConversationRepository
	if cfg.Conversation.Store == "redis" && rdb != nil {
		conversations = redisRepo.NewConversationRepository(rdb, cfg.Conversation.TTL, cfg.Conversation.MaxMessages)
		log.Printf("[INFO] Using conversation store: REDIS")
	} else {
		if cfg.Conversation.Store == "redis" {
			log.Printf("[WARN] Redis unavailable, falling back to in-memory conversation store")
		}
		conversations = memory.NewConversationRepository(cfg.Conversation.TTL, cfg.Conversation.MaxMessages)
		log.Printf("[INFO] Using conversation store: MEMORY")
	}

	// NATS
	var forwarder events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 5. Services
	tracker := stats.NewTracker()
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		tracker,
		forwarder,
		sysLogger,
	)

	chatbotService := service.NewChatbotService(service.ChatbotDependencies{
		Router:        assistant.Router,
		Conversations: conversations,
		Status:        assistant.Status,
		Responder:     assistant.Responder,
		Documents:     assistant.Documents,
		Generative:    assistant.Generative,
		Publisher:     publisherService,
		Tracker:       tracker,
		Logger:        sysLogger,
	})

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	c.WebSocketHub = websocket.NewHub(chatbotService, rdb, uuid.NewString(), wsLogger)

	// 6. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService)
	c.ChatHandler = handler.NewChatHandler(c.WebSocketHub, wsLogger)

	return c
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
