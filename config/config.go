package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	JWTSecret string

	CloudinaryURL   string
	CloudFolderName string

	ClassifierURL   string
	ClassifierToken string

	TranscriberURL   string
	TranscriberToken string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// Load reads the environment once at startup. Components receive the
// resulting struct at construction instead of reading env vars themselves.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	return Config{
		MongoURI:         getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:          getEnv("MONGODB_DB", "knowshare"),
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudFolderName:  getEnv("CLOUD_FOLDER_NAME", "knowshare"),
		ClassifierURL:    os.Getenv("CLASSIFIER_URL"),
		ClassifierToken:  os.Getenv("CLASSIFIER_TOKEN"),
		TranscriberURL:   os.Getenv("TRANSCRIBER_URL"),
		TranscriberToken: os.Getenv("TRANSCRIBER_TOKEN"),
	}
}
