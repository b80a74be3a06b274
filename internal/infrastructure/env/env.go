package env

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config captures every environment value the runner consumes, read once at
// process start. Nothing else in the codebase reads os.Getenv directly.
type Config struct {
	AnthropicAPIKey  string
	AnthropicBaseURL string

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIEndpoint string

	// Defaults applied when the request omits llm_provider / llm_model.
	DefaultProvider string
	DefaultModel    string

	// VerboseLogging mirrors BROWSER_USE_SETUP_LOGGING; when false only
	// warnings and errors reach stderr.
	VerboseLogging bool
}

// Load reads .env files (base file first, then .env.<APP_ENV> overrides) and
// snapshots the process environment into a Config.
func Load() *Config {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Info: no .env file with secrets found (this is OK for CI/CD)")
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err == nil {
		log.Printf("Environment loaded: APP_ENV=%s", appEnv)
	}

	return FromEnviron()
}

// FromEnviron builds a Config from the current process environment without
// touching .env files. Split out so tests can set variables and call it.
func FromEnviron() *Config {
	return &Config{
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAIEndpoint:   os.Getenv("OPENAI_ENDPOINT"),
		DefaultProvider:  os.Getenv("BROWSER_USE_LLM_PROVIDER"),
		DefaultModel:     os.Getenv("BROWSER_USE_LLM_MODEL"),
		VerboseLogging:   getBool("BROWSER_USE_SETUP_LOGGING", false),
	}
}

func getBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
