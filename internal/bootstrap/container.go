package bootstrap

import (
	"context"
	"log"

	"gitscout-be/internal/config"
	"gitscout-be/internal/controller"
	"gitscout-be/internal/handler"
	"gitscout-be/internal/pkg/logger"
	"gitscout-be/internal/pkg/mailer"
	"gitscout-be/internal/repository/unitofwork"
	"gitscout-be/internal/service"
	"gitscout-be/internal/websocket"
	"gitscout-be/pkg/embedding"
	"gitscout-be/pkg/githubapi"
	"gitscout-be/pkg/notifier"
	"gitscout-be/pkg/trending"

	pkgNats "gitscout-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController           controller.IAuthController
	ProjectController        controller.IProjectController
	RepositoryController     controller.IRepositoryController
	RecommendationController controller.IRecommendationController
	MatchController          controller.IMatchController
	TrendingController       controller.ITrendingController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Pipeline services (exposed for the batch entrypoint)
	MatcherService  service.IMatcherService
	TrendingService service.ITrendingService

	// WebSockets & live feed
	FeedHandler  *handler.FeedHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider selection
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// External clients
	githubClient := githubapi.NewClient(cfg.Keys.GithubToken)
	scraper := trending.NewScraper()
	slack := notifier.NewSlackNotifier(cfg.Keys.SlackBotToken, cfg.Keys.SlackChannelId)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	authService := service.NewAuthService(uowFactory, emailService)
	projectService := service.NewProjectService(uowFactory, publisherService)
	repoService := service.NewRepoService(uowFactory)
	recommendationService := service.NewRecommendationService(uowFactory, natsPub)
	matcherService := service.NewMatcherService(
		uowFactory,
		cfg.Match,
		natsPub,
		slack,
		emailService,
		cfg.SMTP.DigestTo,
	)
	trendingService := service.NewTrendingService(
		uowFactory,
		scraper,
		githubClient,
		publisherService,
		natsPub,
		slack,
	)

	// 3.5 Live feed. Bridges durable events onto the WebSocket hub.
	if natsSub != nil {
		feedService := service.NewFeedService(natsSub, wsHub, wsLogger)
		go feedService.Start()
	}

	feedHandler := handler.NewFeedHandler(wsHub, sysLogger)

	// 4. Controllers
	return &Container{
		FeedHandler:  feedHandler,
		WebSocketHub: wsHub,

		AuthController:           controller.NewAuthController(authService),
		ProjectController:        controller.NewProjectController(projectService),
		RepositoryController:     controller.NewRepositoryController(repoService),
		RecommendationController: controller.NewRecommendationController(recommendationService),
		MatchController:          controller.NewMatchController(matcherService),
		TrendingController:       controller.NewTrendingController(trendingService),

		ConsumerService: consumerService,
		MatcherService:  matcherService,
		TrendingService: trendingService,
	}
}
