package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfare/config"
	"wayfare/cron"
	"wayfare/database"
	conversationRepo "wayfare/database/repository/conversation"
	stayRepo "wayfare/database/repository/stay"
	"wayfare/handlers"
	"wayfare/routes"
	"wayfare/services/assistant"
	"wayfare/services/geo"
	ai "wayfare/services/intelligence"
	"wayfare/services/inventory"
	"wayfare/services/news"
	"wayfare/services/places"
	recsService "wayfare/services/recs"
	"wayfare/services/state"
	"wayfare/services/weather"
	"wayfare/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitConvoCache()
	utils.InitRecsCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	convoRepo := conversationRepo.NewMongoConversationRepo()
	staysRepo := stayRepo.NewMongoStayRepo()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelIndex()
	if err := convoRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure conversation indexes: %v", err)
	}
	if err := staysRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure stay indexes: %v", err)
	}

	// services.
	stateStore := &state.DefaultStore{
		Repo:     convoRepo,
		Cache:    utils.GetConvoCacheClient(),
		CacheTTL: 15 * time.Minute,
	}

	geminiClient, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	extractor := ai.NewDefaultPlanExtractor(geminiClient)
	replier := ai.NewDefaultReplyGenerator(geminiClient)

	inventoryService := &inventory.DefaultSearchService{
		Repo: staysRepo,
	}

	recsServiceInstance := &recsService.DefaultService{
		Store:   recsService.NewRedisPackStore(utils.GetRecsCacheClient()),
		Places:  places.NewGoogleProvider(config.AppConfig.PlacesAPIKey),
		Weather: weather.NewOpenMeteoService(),
	}

	queueClient := cron.NewQueueClient()
	defer queueClient.Close()

	assistantService := &assistant.DefaultAssistantService{
		Store:     stateStore,
		Extractor: extractor,
		Renderer: &assistant.Renderer{
			Replier:         replier,
			DefaultLanguage: config.AppConfig.DefaultLanguage,
		},
		Inventory:       inventoryService,
		Geo:             geo.NewOpenMeteoGeocoder(),
		Recs:            recsServiceInstance,
		News:            news.NewRSSProvider(),
		Weather:         weather.NewOpenMeteoService(),
		Classifier:      assistant.KeywordClassifier{},
		Queue:           queueClient,
		DefaultRadiusKm: config.AppConfig.TripRadiusKm,
		DefaultLanguage: config.AppConfig.DefaultLanguage,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProcessTurnHandler:           handlers.ProcessTurnHandler(assistantService),
		GetConversationHandler:       handlers.GetConversationHandler(stateStore),
		ResetConversationHandler:     handlers.ResetConversationHandler(assistantService),
		NearbyRecommendationsHandler: handlers.NearbyRecommendationsHandler(recsServiceInstance),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for delta pack refreshes.
	go func() {
		if err := cron.InitPackRefreshWorker(recsServiceInstance); err != nil {
			logger.Sugar().Errorf("main: pack refresh worker stopped: %v", err)
		}
	}()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
