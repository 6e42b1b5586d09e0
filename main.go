package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"communityconnect/config"
	"communityconnect/database"
	"communityconnect/handlers"
	"communityconnect/routes"
	"communityconnect/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting CommunityConnect backend...")

	cfg := config.Load()

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set")
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.Connect(cfg.MongoURI, cfg.Database); err != nil {
			dbErr = err
			log.Printf("MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("Failed to connect to MongoDB: ", dbErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("Failed to create indexes: ", err)
	}
	cancel()

	// ===== MEDIA GATEWAY =====
	gateway, err := storage.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatal("Cloudinary configuration error: ", err)
	}
	handlers.SetMediaGateway(gateway)

	// ===== GIN MODE =====
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter(cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	if err := database.Disconnect(); err != nil {
		log.Println("MongoDB disconnect error: ", err)
	}

	log.Println("Server stopped gracefully")
}
