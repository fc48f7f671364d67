package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"techpulse" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" description:"Database password"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"techpulse" description:"Database name"`
	DBDisabled bool   `long:"db-disabled" env:"DB_DISABLED" description:"Run without a database, keeping users and company updates in memory"`

	// Upstream providers
	NewsAPIKey    string `long:"news-api-key" env:"NEWS_API_KEY" description:"NewsAPI access key"`
	NewsAPIURL    string `long:"news-api-url" env:"NEWS_API_URL" default:"https://newsapi.org/v2/top-headlines" description:"NewsAPI top-headlines endpoint"`
	OpenAIKey     string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"Completion service API key"`
	OpenAIBaseURL string `long:"openai-base-url" env:"OPENAI_BASE_URL" description:"Override completion service base URL (e.g. a local OpenAI-compatible server)"`
	OpenAIModel   string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-3.5-turbo" description:"Completion model"`

	// Application configuration
	Port          string `long:"port" env:"PORT" default:"8000" description:"HTTP server port"`
	FeedsDir      string `long:"feeds-dir" env:"FEEDS_DIR" description:"Optional directory with feed source override files (*.yml)"`
	SessionSecret string `long:"session-secret" env:"SESSION_SECRET" description:"Secret used to sign session tokens"`
	CORSOrigins   string `long:"cors-origins" env:"CORS_ORIGINS" default:"*" description:"Comma-separated list of allowed CORS origins"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TechPulse/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:        raw.DBHost,
		DBPort:        raw.DBPort,
		DBUser:        raw.DBUser,
		DBPassword:    raw.DBPassword,
		DBName:        raw.DBName,
		DBDisabled:    raw.DBDisabled,
		NewsAPIKey:    raw.NewsAPIKey,
		NewsAPIURL:    raw.NewsAPIURL,
		OpenAIKey:     raw.OpenAIKey,
		OpenAIBaseURL: raw.OpenAIBaseURL,
		OpenAIModel:   raw.OpenAIModel,
		Port:          raw.Port,
		FeedsDir:      raw.FeedsDir,
		SessionSecret: raw.SessionSecret,
		CORSOrigins:   splitOrigins(raw.CORSOrigins),
		UserAgent:     raw.UserAgent,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
