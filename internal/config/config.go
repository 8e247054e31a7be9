package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string
	ServerPort      int
	LogLevel        string
	FrontendOrigins []string
	AdminEmails     []string
	SessionLifetime time.Duration
	OAuth           OAuthConfig
}

type OAuthConfig struct {
	DiscordKey         string
	DiscordSecret      string
	DiscordCallbackURL string
	GoogleKey          string
	GoogleSecret       string
	GoogleCallbackURL  string
}

var defaultOrigins = []string{
	"https://42chess.vercel.app",
	"http://localhost:5173",
	"http://localhost:3000",
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may carry everything
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT %q", os.Getenv("SERVER_PORT"))
	}

	lifetime, err := time.ParseDuration(getEnv("SESSION_LIFETIME", "24h"))
	if err != nil || lifetime <= 0 {
		return nil, fmt.Errorf("invalid SESSION_LIFETIME %q", os.Getenv("SESSION_LIFETIME"))
	}

	origins := splitList(os.Getenv("FRONTEND_ORIGINS"))
	if len(origins) == 0 {
		origins = defaultOrigins
	}

	return &Config{
		DBPath:          getEnv("DB_PATH", "chess.db"),
		ServerPort:      port,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		FrontendOrigins: origins,
		AdminEmails:     splitList(os.Getenv("ADMIN_EMAILS")),
		SessionLifetime: lifetime,
		OAuth: OAuthConfig{
			DiscordKey:         os.Getenv("DISCORD_KEY"),
			DiscordSecret:      os.Getenv("DISCORD_SECRET"),
			DiscordCallbackURL: os.Getenv("DISCORD_CALLBACK_URL"),
			GoogleKey:          os.Getenv("GOOGLE_KEY"),
			GoogleSecret:       os.Getenv("GOOGLE_SECRET"),
			GoogleCallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
