package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dscr-calculator/config"
	httpLayer "dscr-calculator/http"
	"dscr-calculator/repository"
	"dscr-calculator/service"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	counties := repository.NewCountyRateRepositoryMemory()

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		cache = repository.NewRedisCache(cfg.Redis.Addr)
	} else {
		cache = repository.NewMockCache()
	}

	rentService := service.NewRentService(service.DefaultRentPolicy())
	taxService := service.NewTaxService(counties, cache)
	amortizationService := service.NewAmortizationService()
	aiService := service.NewAIService(cfg.OpenAIAPIKey)
	dscrService := service.NewDSCRService(rentService, taxService, amortizationService, aiService)

	dscrHandler := httpLayer.NewDSCRHandler(dscrService)
	rentHandler := httpLayer.NewRentHandler(rentService)
	taxHandler := httpLayer.NewTaxHandler(taxService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/dscr/calculate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(dscrHandler.Calculate),
		),
	)

	mux.Handle(
		"/rent/estimate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(rentHandler.Estimate),
		),
	)

	mux.Handle(
		"/tax/calculate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(taxHandler.Calculate),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("DSCR calculator listening on http://localhost:%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
