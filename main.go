package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"knowshare/config"
	"knowshare/database"
	"knowshare/handlers"
	"knowshare/interactions"
	"knowshare/media"
	"knowshare/moderation"
	"knowshare/routes"
	"knowshare/search"
	"knowshare/threads"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Knowshare backend...")

	cfg := config.Load()
	if cfg.JWTSecret == "" || cfg.CloudinaryURL == "" || cfg.ClassifierURL == "" {
		log.Fatal("JWT_SECRET, CLOUDINARY_URL and CLASSIFIER_URL must be set")
	}

	// Connect to MongoDB with retry
	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB); err != nil {
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
	defer func() {
		if err := database.DisconnectMongo(); err != nil {
			log.Println("MongoDB disconnect error:", err)
		}
	}()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	mediaManager, err := media.NewManager(cfg.CloudinaryURL, cfg.CloudFolderName)
	if err != nil {
		log.Fatal("Cloudinary configuration error: ", err)
	}

	classifier := moderation.NewClassifier(cfg.ClassifierURL, cfg.ClassifierToken)
	defer classifier.Close()

	transcriber := search.NewTranscriber(cfg.TranscriberURL, cfg.TranscriberToken)
	defer transcriber.Close()

	pipeline := moderation.NewPipeline(classifier, &moderation.MongoTaxonomy{
		Categories:    database.Categories,
		Subcategories: database.Subcategories,
	})

	postHandler := &handlers.PostHandler{
		Moderation:   pipeline,
		Media:        mediaManager,
		Posts:        database.Posts,
		Comments:     database.Comments,
		Interactions: database.Interactions,
		Users:        database.Users,
		Assembler: &threads.Assembler{
			Comments: database.Comments,
			Users:    database.Users,
		},
		Aggregator: &interactions.Aggregator{
			Interactions: database.Interactions,
		},
	}
	commentHandler := &handlers.CommentHandler{
		Posts:    database.Posts,
		Comments: database.Comments,
	}
	interactionHandler := &handlers.InteractionHandler{
		Posts:        database.Posts,
		Interactions: database.Interactions,
	}
	taxonomyHandler := &handlers.TaxonomyHandler{
		Categories:    database.Categories,
		Subcategories: database.Subcategories,
	}
	searchHandler := &handlers.SearchHandler{
		Transcriber: transcriber,
		Posts:       database.Posts,
	}

	router := routes.SetupRouter(cfg.JWTSecret, postHandler, commentHandler, interactionHandler, taxonomyHandler, searchHandler)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "Knowshare Backend Running",
			"service": "healthy",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown:", err)
	}

	log.Println("Server stopped gracefully")
}
