package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	OpenAIAPIKey  string
	Model         string
	// Knowledge base + localized canned strings for the assistant
	KnowledgeFile string
	// Document store
	MongoURI      string
	MongoDatabase string
	// Email relay
	MailRelayURL  string
	MailRelayKey  string
	MailRecipient string
	// WhatsApp deep links (international format, digits only)
	WhatsAppNumber string
	// Bearer token guarding blog mutations from the admin panel
	AdminToken string
	// Assistant defaults
	DefaultLanguage string
	MaxHistoryTurns int
	// Logging
	LogLevel string
	LogJSON  bool
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:            getEnvDefault("PORT", "8080"),
		AllowedOrigin:   getEnvDefault("ALLOWED_ORIGIN", "*"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		Model:           getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		KnowledgeFile:   getEnvDefault("KNOWLEDGE_FILE", "prompts/knowledge.yaml"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDatabase:   getEnvDefault("MONGODB_DATABASE", "scribewell"),
		MailRelayURL:    os.Getenv("MAIL_RELAY_URL"),
		MailRelayKey:    os.Getenv("MAIL_RELAY_KEY"),
		MailRecipient:   getEnvDefault("MAIL_RECIPIENT", "support@scribewell.example"),
		WhatsAppNumber:  getEnvDefault("WHATSAPP_NUMBER", "15551234567"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		DefaultLanguage: getEnvDefault("DEFAULT_LANGUAGE", "en"),
		MaxHistoryTurns: getEnvIntDefault("MAX_HISTORY_TURNS", 10),
		LogLevel:        getEnvDefault("LOG_LEVEL", "info"),
		LogJSON:         getEnvBoolDefault("LOG_JSON", false),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; assistant calls will fail until provided")
	}
	if cfg.MongoURI == "" {
		log.Println("warning: MONGODB_URI is not set; blog posts will use in-memory storage only")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}
