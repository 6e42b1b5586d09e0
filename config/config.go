package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	MongoURI string
	Database string

	SessionSecret string

	FrontendURL string
	BackendURL  string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	AppEnv string
}

// Load reads .env (if present) and assembles the configuration from
// environment variables, falling back to development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:     getEnv("PORT", "3001"),
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		Database: getEnv("MONGO_DATABASE", "community_connect"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
		BackendURL:  os.Getenv("BACKEND_URL"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		AppEnv: getEnv("APP_ENV", "development"),
	}
}

// AllowedOrigins is the CORS origin list: local dev hosts plus the deployed
// frontend/backend URLs when configured.
func (c *Config) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:3001",
		"http://localhost:3002",
	}
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	if c.BackendURL != "" {
		origins = append(origins, c.BackendURL)
	}
	return origins
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
