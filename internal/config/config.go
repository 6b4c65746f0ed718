package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Search   Search   `mapstructure:"search"`
	Research Research `mapstructure:"research"`
	Output   Output   `mapstructure:"output"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds AI/LLM configuration
type AI struct {
	Backend string       `mapstructure:"backend"`
	Models  []string     `mapstructure:"models"`
	Ollama  OllamaConfig `mapstructure:"ollama"`
	Gemini  GeminiConfig `mapstructure:"gemini"`
}

// OllamaConfig holds local Ollama server configuration
type OllamaConfig struct {
	URL     string `mapstructure:"url"`
	Timeout string `mapstructure:"timeout"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Search holds search provider configuration
type Search struct {
	DefaultProvider string          `mapstructure:"default_provider"`
	MaxResults      int             `mapstructure:"max_results"`
	Timeout         string          `mapstructure:"timeout"`
	Language        string          `mapstructure:"language"`
	Providers       SearchProviders `mapstructure:"providers"`
}

// SearchProviders holds configuration for all search providers
type SearchProviders struct {
	Google  GoogleSearchConfig `mapstructure:"google"`
	SerpAPI SerpAPIConfig      `mapstructure:"serpapi"`
}

// GoogleSearchConfig holds Google Custom Search configuration
type GoogleSearchConfig struct {
	APIKey   string `mapstructure:"api_key"`
	SearchID string `mapstructure:"search_id"`
}

// SerpAPIConfig holds SerpAPI configuration
type SerpAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Research holds research pipeline configuration
type Research struct {
	NumSources int    `mapstructure:"num_sources"`
	Pause      string `mapstructure:"pause"`
	Language   string `mapstructure:"language"`
	Profile    string `mapstructure:"profile"`
}

// Output holds output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".scout")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// AI defaults
	viper.SetDefault("ai.backend", "ollama")
	viper.SetDefault("ai.ollama.url", "http://localhost:11434")
	viper.SetDefault("ai.ollama.timeout", "300s")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash-preview-05-20")
	viper.SetDefault("ai.gemini.timeout", "30s")

	// Search defaults
	viper.SetDefault("search.default_provider", "google")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.timeout", "15s")
	viper.SetDefault("search.language", "en")

	// Research defaults
	viper.SetDefault("research.num_sources", 3)
	viper.SetDefault("research.pause", "2s")
	viper.SetDefault("research.language", "en")
	viper.SetDefault("research.profile", "general")

	// Output defaults
	viper.SetDefault("output.directory", "reports")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output", "stdout")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("ai.ollama.url", []string{
		"OLLAMA_URL",
		"OLLAMA_HOST",
	})

	// Google Custom Search - support multiple formats
	bindEnvKeys("search.providers.google.api_key", []string{
		"GOOGLE_CUSTOM_SEARCH_API_KEY",
		"GOOGLE_CSE_API_KEY",
		"GOOGLE_SEARCH_API_KEY",
	})

	bindEnvKeys("search.providers.google.search_id", []string{
		"GOOGLE_CUSTOM_SEARCH_ID",
		"GOOGLE_CSE_ID",
		"GOOGLE_SEARCH_ENGINE_ID",
	})

	// SerpAPI
	bindEnvKeys("search.providers.serpapi.api_key", []string{
		"SERPAPI_API_KEY",
		"SERPAPI_KEY",
	})

	// General settings
	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"SCOUT_DEBUG",
	})

	bindEnvKeys("search.default_provider", []string{
		"SEARCH_PROVIDER",
		"DEFAULT_SEARCH_PROVIDER",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	if config.Output.Directory != "" {
		config.Output.Directory = expandPath(config.Output.Directory)
	}

	durations := map[string]string{
		"ai.ollama.timeout": config.AI.Ollama.Timeout,
		"ai.gemini.timeout": config.AI.Gemini.Timeout,
		"search.timeout":    config.Search.Timeout,
		"research.pause":    config.Research.Pause,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures required configuration is present
func validateConfig(config *Config) error {
	var errors []string

	switch config.AI.Backend {
	case "ollama", "":
		// Local backend, no credentials needed
	case "gemini":
		if config.AI.Gemini.APIKey == "" {
			errors = append(errors, "Gemini API key is required for the gemini backend. Set GEMINI_API_KEY environment variable or ai.gemini.api_key in config file")
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown AI backend: %s. Supported: ollama, gemini", config.AI.Backend))
	}

	// Credentials are checked when the provider is actually constructed;
	// here we only reject names no provider answers to.
	switch config.Search.DefaultProvider {
	case "", "google", "serpapi", "mock":
	default:
		errors = append(errors, fmt.Sprintf("Unknown search provider: %s. Supported: google, serpapi, mock", config.Search.DefaultProvider))
	}

	if config.Research.NumSources < 1 {
		errors = append(errors, "research.num_sources must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Convenience getters for commonly used configuration values
func GetApp() App           { return Get().App }
func GetAI() AI             { return Get().AI }
func GetSearch() Search     { return Get().Search }
func GetResearch() Research { return Get().Research }
func GetOutput() Output     { return Get().Output }
func GetLogging() Logging   { return Get().Logging }

// Specific convenience getters for frequently accessed values
func GetAIBackend() string      { return Get().AI.Backend }
func GetGeminiAPIKey() string   { return Get().AI.Gemini.APIKey }
func GetGeminiModel() string    { return Get().AI.Gemini.Model }
func GetOllamaURL() string      { return Get().AI.Ollama.URL }
func GetSearchProvider() string { return Get().Search.DefaultProvider }
func GetGoogleSearchConfig() (string, string) {
	c := Get().Search.Providers.Google
	return c.APIKey, c.SearchID
}
func GetSerpAPIKey() string      { return Get().Search.Providers.SerpAPI.APIKey }
func GetOutputDirectory() string { return Get().Output.Directory }
func IsDebugMode() bool          { return Get().App.Debug }

// ResearchPause returns the configured courtesy pause between source fetches.
func ResearchPause() time.Duration {
	raw := Get().Research.Pause
	if raw == "" {
		return 2 * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// HasValidGoogleSearch returns true if Google Custom Search is properly configured
func HasValidGoogleSearch() bool {
	apiKey, searchID := GetGoogleSearchConfig()
	return isValidAPIKey(apiKey) && isValidSearchID(searchID)
}

// HasValidSerpAPI returns true if SerpAPI is properly configured
func HasValidSerpAPI() bool {
	return isValidAPIKey(GetSerpAPIKey())
}

// GetSearchProviderConfig returns configuration for creating a search provider
func GetSearchProviderConfig(providerType string) map[string]string {
	config := Get()

	switch providerType {
	case "google":
		return map[string]string{
			"api_key":   config.Search.Providers.Google.APIKey,
			"search_id": config.Search.Providers.Google.SearchID,
		}
	case "serpapi":
		return map[string]string{
			"api_key": config.Search.Providers.SerpAPI.APIKey,
		}
	default:
		return map[string]string{}
	}
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	placeholders := []string{
		"your-api-key", "your-google-key", "your-google-api-key", "your-serpapi-key",
		"YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// isValidSearchID checks if a search ID is valid (not empty and not a placeholder)
func isValidSearchID(searchID string) bool {
	if searchID == "" {
		return false
	}

	placeholders := []string{
		"your-search-engine-id", "your-search-id", "your-cse-id",
		"YOUR_SEARCH_ID", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if searchID == placeholder {
			return false
		}
	}

	return true
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
