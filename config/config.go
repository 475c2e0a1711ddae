package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"ladder/database"
)

// DefaultLadderThreshold is the widest rank gap that still counts as a ladder game
const DefaultLadderThreshold = 3

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Primary Discord guild ID

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Ladder configuration
	LadderChannelID string // Channel where rank changes are announced
	LadderThreshold int

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables publishing

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelServiceName          string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Ladder
		LadderChannelID: os.Getenv("LADDER_CHANNEL_ID"),
		LadderThreshold: DefaultLadderThreshold,

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// OpenTelemetry
		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "none"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "ladder"),
		OTelExportIntervalMillis: 30000,

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if threshold := os.Getenv("LADDER_THRESHOLD"); threshold != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(threshold))
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("LADDER_THRESHOLD must be a non-negative integer, got %q", threshold)
		}
		config.LadderThreshold = parsed
	}

	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.OTelExportIntervalMillis = parsed
		}
	}

	switch config.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return nil, fmt.Errorf("OTEL_EXPORTER_TYPE must be console, otlp or none, got %q", config.OTelExporterType)
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:              "test",
		DiscordToken:             "test-token",
		LadderThreshold:          DefaultLadderThreshold,
		OTelExporterType:         "none",
		OTelServiceName:          "ladder-test",
		OTelExportIntervalMillis: 30000,
		LogLevel:                 "debug",
	}
}
