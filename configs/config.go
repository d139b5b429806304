package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port               string
	MongoURI           string
	DBName             string
	NATSUrl            string
	PostCreatedSubject string
	ContentMinLength   int
	ContentMaxLength   int

	// Endpoint template of the user service, e.g. "http://user-service:8081/api/users/%s".
	// Consumed by sibling services; kept here so one .env covers the deployment.
	UserServiceURL string
}

// Load reads .env (if present) and builds the Config with defaults applied.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:             getEnv("DB_NAME", "chatterbox"),
		NATSUrl:            getEnv("NATS_URL", "nats://localhost:4222"),
		PostCreatedSubject: getEnv("POST_CREATED_SUBJECT", "posts.created"),
		ContentMinLength:   getEnvInt("CONTENT_MIN_LENGTH", 5),
		ContentMaxLength:   getEnvInt("CONTENT_MAX_LENGTH", 100),
		UserServiceURL:     getEnv("USER_SERVICE_URL", "http://localhost:8081/api/users/%s"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
