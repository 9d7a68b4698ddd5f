package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPort is used when neither PORT nor TUBEINSIGHT_PORT is set
const DefaultPort = 5123

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	VideoInfo VideoInfoConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
	Tracing   TracingConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Production      bool
}

// UpstreamConfig holds the captions extraction service configuration
type UpstreamConfig struct {
	CaptionsURL  string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// VideoInfoConfig holds video metadata lookup configuration
type VideoInfoConfig struct {
	OEmbedURL string
	WatchURL  string
	Timeout   time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	RPS     int
	Burst   int
}

// MetricsConfig holds prometheus configuration.
// Port 0 serves /metrics on the API router.
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// TracingConfig holds Jaeger configuration
type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	JaegerEndpoint string
}

// CORSConfig holds allowed origins
type CORSConfig struct {
	AllowOrigins []string
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from an optional file and environment variables.
// A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TUBEINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	port, err := resolvePort(config.Server.Port)
	if err != nil {
		return nil, err
	}
	config.Server.Port = port

	// The hosting platform sets RENDER on deployed instances
	_, config.Server.Production = os.LookupEnv("RENDER")

	if config.Upstream.CaptionsURL == "" {
		return nil, fmt.Errorf("upstream.captionsURL must not be empty")
	}

	return &config, nil
}

// resolvePort applies PORT, then TUBEINSIGHT_PORT, then the configured value
func resolvePort(configured int) (int, error) {
	for _, key := range []string{"PORT", "TUBEINSIGHT_PORT"} {
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			continue
		}
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return 0, fmt.Errorf("invalid %s %q", key, raw)
		}
		return port, nil
	}
	if configured <= 0 {
		return DefaultPort, nil
	}
	return configured, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "30s")
	// Must outlast the upstream timeout
	v.SetDefault("server.writeTimeout", "90s")
	v.SetDefault("server.shutdownTimeout", "10s")

	// Upstream defaults
	v.SetDefault("upstream.captionsURL", "https://website-tools-dot-maestro-218920.uk.r.appspot.com/getYoutubeCaptions")
	v.SetDefault("upstream.timeout", "60s")
	v.SetDefault("upstream.maxBodyBytes", 10*1024*1024) // 10MB

	// Video info defaults
	v.SetDefault("videoInfo.oembedURL", "https://www.youtube.com/oembed")
	v.SetDefault("videoInfo.watchURL", "https://www.youtube.com/watch")
	v.SetDefault("videoInfo.timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Rate limit defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.rps", 5)
	v.SetDefault("rateLimit.burst", 10)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 0)

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.serviceName", "tubeinsight")
	v.SetDefault("tracing.jaegerEndpoint", "http://localhost:14268/api/traces")

	// CORS defaults
	v.SetDefault("cors.allowOrigins", []string{"*"})
}
