package bootstrap

import (
	"context"
	"fmt"
	"time"

	"knagent-be/internal/config"
	"knagent-be/internal/controller"
	"knagent-be/internal/pkg/logger"
	"knagent-be/internal/pkg/mailer"
	"knagent-be/internal/pkg/serverutils"
	"knagent-be/internal/repository/memory"
	"knagent-be/internal/repository/unitofwork"
	"knagent-be/internal/service"
	"knagent-be/pkg/agent"
	"knagent-be/pkg/embedding"
	"knagent-be/pkg/llm/factory"
	pktNats "knagent-be/pkg/nats"
	"knagent-be/pkg/rag/chain"
	"knagent-be/pkg/rag/gap"
	"knagent-be/pkg/rag/retriever"
	"knagent-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController  controller.IAuthController
	AgentController controller.IAgentController

	// Services used by the ops CLI
	AgentService     service.IAgentService
	OpsService       service.IOpsService
	IngestionService service.IIngestionService
	ConsumerService  service.IConsumerService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		emailService = mailer.NewNopEmailService()
		sysLogger.Info("Bootstrap", "SMTP_HOST not set, leave confirmation mail disabled", nil)
	}

	// 2. Event Bus. Publishing blocks until the consumer acks so an ingest run is synchronous.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var eventPublisher pktNats.EventPublisher = pktNats.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, domain events disabled", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var limiterStorage fiber.Storage
	if cfg.App.RedisURL != "" {
		if rdb, err := connectRedis(cfg.App.RedisURL); err != nil {
			sysLogger.Warn("Bootstrap", "Redis unavailable, rate limiting per process", map[string]interface{}{"error": err.Error()})
		} else {
			limiterStorage = serverutils.NewRedisStorage(rdb, "knagent:limiter:")
			c.closers = append(c.closers, func() { rdb.Close() })
		}
	}

	// 4. Models
	embeddingProvider := embedding.NewCachedProvider(
		embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel),
		memory.NewEmbeddingCache(cfg.Retrieval.EmbeddingCacheTTL, 10*time.Minute),
	)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceKey,
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "Providers ready", map[string]interface{}{
		"llm_provider":    cfg.Ai.LLMProvider,
		"llm_model":       cfg.Ai.LLMModel,
		"embedding_model": cfg.Ai.EmbeddingModel,
		"pipeline":        cfg.Agent.Pipeline,
	})

	// 5. Retrieval + Agent
	knowledge := retriever.New(
		embeddingProvider,
		retriever.NewPgVectorIndex(uowFactory, cfg.Retrieval.Collection),
		cfg.Retrieval.TopK,
		sysLogger,
	)

	tools := agent.NewToolSet(
		knowledge,
		service.NewAccountStore(uowFactory, eventPublisher, sysLogger),
		service.NewLeaveStore(uowFactory, emailService, eventPublisher, sysLogger),
		service.HashPassword,
	)
	loop := agent.NewLoop(llmProvider, tools, agent.Config{
		MaxIterations:   cfg.Agent.MaxIterations,
		MaxParseRetries: cfg.Agent.MaxParseRetries,
	}, sysLogger)

	c.AgentService = service.NewAgentService(
		uowFactory,
		loop,
		chain.New(knowledge, llmProvider),
		gap.NewDetector(cfg.Agent.RefusalPhrases),
		eventPublisher,
		service.AgentSettings{
			Pipeline:     cfg.Agent.Pipeline,
			HistoryTurns: cfg.Agent.HistoryTurns,
		},
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, service.AuthSettings{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.AccessTokenTTL,
		AllowedDomain: cfg.Auth.AllowedDomain,
	}, sysLogger)

	// 6. Ingestion + Ops
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Ingestion.Topic,
		uowFactory,
		embeddingProvider,
		utils.NewRecursiveSplitter(cfg.Ingestion.ChunkSize, cfg.Ingestion.ChunkOverlap),
		sysLogger,
	)
	c.IngestionService = service.NewIngestionService(
		service.NewPublisherService(cfg.Ingestion.Topic, pubSub),
		c.ConsumerService,
		cfg.Retrieval.Collection,
		sysLogger,
	)
	c.OpsService = service.NewOpsService(uowFactory, cfg.Auth.DefaultSeedSecret, sysLogger)

	// 7. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.AgentController = controller.NewAgentController(
		c.AgentService,
		cfg.Auth.JWTSecret,
		serverutils.RateLimiter(cfg.App.RateLimitPerSecond, limiterStorage),
	)

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
	_ = c.Logger.Sync()
}

func connectRedis(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
