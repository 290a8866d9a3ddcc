package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the InstaStartup service.
type Config struct {
	Port      int
	Version   string
	DataDir   string
	Providers ProviderConfig
	Telemetry TelemetryConfig
}

// ProviderConfig carries the per-backend credentials. A backend with an
// empty credential is rejected at request time with an error naming the
// missing variable.
type ProviderConfig struct {
	Default     string
	OpenAIKey   string
	GeminiKey   string
	GitHubToken string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envInt("INSTASTARTUP_PORT", 8080),
		Version: envStr("INSTASTARTUP_VERSION", "0.2.0"),
		DataDir: envStr("INSTASTARTUP_DATA_DIR", ""),
		Providers: ProviderConfig{
			Default:     envStr("INSTASTARTUP_DEFAULT_PROVIDER", "openai"),
			OpenAIKey:   envStr("OPENAI_API_KEY", ""),
			GeminiKey:   envStr("GOOGLE_API_KEY", ""),
			GitHubToken: envStr("GITHUB_API_TOKEN", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "instastartup"),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
