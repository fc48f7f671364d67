package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBDisabled bool

	// Upstream providers
	NewsAPIKey    string
	NewsAPIURL    string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	// Application configuration
	Port          string
	FeedsDir      string
	SessionSecret string
	CORSOrigins   []string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
