package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tallybook/internal/automation"
	"tallybook/internal/handler"
	"tallybook/internal/repo"
	"tallybook/internal/service"
	"tallybook/pkg/database"
	"tallybook/pkg/integrations/chanpubsub"
	"tallybook/pkg/integrations/memcache"
	"tallybook/pkg/integrations/yahoo"
	"tallybook/pkg/utils"

	"github.com/gin-gonic/gin"
)

// @title TallyBook API
// @version 1.0
// @description Personal finance tracking API with automation rules

// @host localhost:8080
// @BasePath /

func main() {
	utils.LoadEnv()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPath := utils.GetEnv("DB_PATH", "./data/tallybook.db")
	db, err := database.New(database.WithPath(dbPath))
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	repository, err := repo.New(db.Get())
	if err != nil {
		log.Fatal("Failed to create repository:", err)
	}

	if err := repository.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	yahooClient := yahoo.NewClient()

	rateCh := make(chan []byte, 10)
	sseCh := make(chan []byte, 10)
	ratePublisher := chanpubsub.New(
		chanpubsub.WithChannel(rateCh),
		chanpubsub.WithContext(ctx),
		chanpubsub.WithTopic("rates"),
		chanpubsub.WithLogger(logger),
		chanpubsub.WithHandler(func(data []byte) error {
			select {
			case sseCh <- data:
			default:
				logger.Warn("sseCh full, dropping message")
			}
			return nil
		}),
	)
	if err := ratePublisher.Subscribe(); err != nil {
		log.Fatal("Failed to start rate subscriber:", err)
	}

	rateSvc, err := service.NewRateService(
		service.WithRateContext(ctx),
		service.WithRateLogger(logger),
		service.WithRateFetcher(yahooClient),
		service.WithRatePublisher(ratePublisher),
	)
	if err != nil {
		log.Fatal("Failed to create rate service:", err)
	}

	marketSvc, err := service.NewMarketDataService(
		service.WithMarketDataContext(ctx),
		service.WithMarketDataLogger(logger),
		service.WithMarketDataFetcher(yahooClient),
		service.WithMarketDataRepo(repository),
		service.WithMarketDataChangeCache(memcache.New[string, float64]()),
	)
	if err != nil {
		log.Fatal("Failed to create market data service:", err)
	}

	engine, err := automation.New(automation.WithLogger(logger))
	if err != nil {
		log.Fatal("Failed to create automation engine:", err)
	}

	if err := rateSvc.Start(); err != nil {
		log.Fatal("Failed to start rate service:", err)
	}

	r := gin.Default()

	h, err := handler.New(
		handler.WithEngine(r),
		handler.WithRepository(repository),
		handler.WithLogger(logger),
		handler.WithRateSource(rateSvc),
		handler.WithMarketData(marketSvc),
		handler.WithAutomationEngine(engine),
		handler.WithRateChannel(sseCh),
	)
	if err != nil {
		log.Fatal("Failed to create handler:", err)
	}
	if err := h.Setup(); err != nil {
		log.Fatal("Failed to setup routes:", err)
	}

	port := utils.GetEnv("APP_PORT", "8080")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down...")
		cancel()
		rateSvc.Stop()
		os.Exit(0)
	}()

	logger.Info("starting TallyBook", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
