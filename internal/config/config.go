package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP HTTP `json:"http"`
	API  API  `json:"api"`
	Log  Log  `json:"log"`
}

// API describes the remote trips API this frontend renders.
type API struct {
	BaseURL   string        `json:"base_url" yaml:"base_url"`
	Timeout   time.Duration `json:"timeout"`
	RateLimit float64       `json:"rate_limit" yaml:"rate_limit"`
	Burst     int           `json:"burst"`
}

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

type Log struct {
	Level  string    `json:"level"`
	Format LogFormat `json:"format"`
}

type HTTPListener struct {
	IPV4Host string `json:"ipv4_host" yaml:"ipv4_host"`
	IPV6Host string `json:"ipv6_host" yaml:"ipv6_host"`
	Port     uint16 `json:"port"`
}

type Tracing struct {
	Enabled      bool   `json:"enabled"`
	OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint"`
}

type PProf struct {
	Enabled bool `json:"enabled"`
}

type Metrics struct {
	HTTPListener `yaml:",inline"`
	Enabled      bool `json:"enabled"`
}

type HTTP struct {
	HTTPListener   `yaml:",inline"`
	Tracing        Tracing  `json:"tracing"`
	PProf          PProf    `json:"pprof"`
	TrustedProxies []string `json:"trusted_proxies" yaml:"trusted_proxies"`
	Metrics        Metrics  `json:"metrics"`
	CORSHosts      []string `json:"cors_hosts" yaml:"cors_hosts"`
	MaxUploadBytes int64    `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

//nolint:golint,gochecknoglobals
var (
	ConfigFileKey          = "config"
	HTTPIPV4HostKey        = "http.ipv4_host"
	HTTPIPV6HostKey        = "http.ipv6_host"
	HTTPPortKey            = "http.port"
	HTTPTracingEnabledKey  = "http.tracing.enabled"
	HTTPTracingOTLPEndKey  = "http.tracing.otlp_endpoint"
	HTTPPProfEnabledKey    = "http.pprof.enabled"
	HTTPTrustedProxiesKey  = "http.trusted_proxies"
	HTTPMetricsEnabledKey  = "http.metrics.enabled"
	HTTPMetricsIPV4HostKey = "http.metrics.ipv4_host"
	HTTPMetricsIPV6HostKey = "http.metrics.ipv6_host"
	HTTPMetricsPortKey     = "http.metrics.port"
	HTTPCORSHostsKey       = "http.cors_hosts"
	HTTPMaxUploadBytesKey  = "http.max_upload_bytes"
	APIBaseURLKey          = "api.base_url"
	APITimeoutKey          = "api.timeout"
	APIRateLimitKey        = "api.rate_limit"
	APIBurstKey            = "api.burst"
	LogLevelKey            = "log.level"
	LogFormatKey           = "log.format"
)

const (
	DefaultConfigPath          = "config.yaml"
	DefaultHTTPIPV4Host        = "0.0.0.0"
	DefaultHTTPIPV6Host        = "::"
	DefaultHTTPPort            = 8080
	DefaultHTTPMetricsIPV4Host = "127.0.0.1"
	DefaultHTTPMetricsIPV6Host = "::1"
	DefaultHTTPMetricsPort     = 8081
	DefaultHTTPMaxUploadBytes  = 32 << 20
	DefaultAPIBaseURL          = "http://127.0.0.1:8000"
	DefaultAPITimeout          = 5 * time.Second
	DefaultAPIBurst            = 1
	DefaultLogLevel            = "info"
	DefaultLogFormat           = LogFormatText
)

func RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(ConfigFileKey, "c", DefaultConfigPath, "Config file path")
	cmd.Flags().String(HTTPIPV4HostKey, DefaultHTTPIPV4Host, "HTTP server IPv4 host")
	cmd.Flags().String(HTTPIPV6HostKey, DefaultHTTPIPV6Host, "HTTP server IPv6 host")
	cmd.Flags().Uint16(HTTPPortKey, DefaultHTTPPort, "HTTP server port")
	cmd.Flags().Bool(HTTPTracingEnabledKey, false, "Enable Open Telemetry tracing")
	cmd.Flags().String(HTTPTracingOTLPEndKey, "", "Open Telemetry endpoint")
	cmd.Flags().Bool(HTTPPProfEnabledKey, false, "Enable pprof")
	cmd.Flags().StringSlice(HTTPTrustedProxiesKey, []string{}, "Comma-separated list of trusted proxies")
	cmd.Flags().Bool(HTTPMetricsEnabledKey, false, "Enable metrics server")
	cmd.Flags().String(HTTPMetricsIPV4HostKey, DefaultHTTPMetricsIPV4Host, "Metrics server IPv4 host")
	cmd.Flags().String(HTTPMetricsIPV6HostKey, DefaultHTTPMetricsIPV6Host, "Metrics server IPv6 host")
	cmd.Flags().Uint16(HTTPMetricsPortKey, DefaultHTTPMetricsPort, "Metrics server port")
	cmd.Flags().StringSlice(HTTPCORSHostsKey, []string{}, "Comma-separated list of CORS hosts")
	cmd.Flags().Int64(HTTPMaxUploadBytesKey, DefaultHTTPMaxUploadBytes, "Maximum in-memory size of a photo upload form")
	cmd.Flags().String(APIBaseURLKey, DefaultAPIBaseURL, "Base URL of the trips API")
	cmd.Flags().Duration(APITimeoutKey, DefaultAPITimeout, "Timeout for a single trips API request")
	cmd.Flags().Float64(APIRateLimitKey, 0, "Maximum trips API requests per second, 0 for unlimited")
	cmd.Flags().Int(APIBurstKey, DefaultAPIBurst, "Trips API request burst size when rate limited")
	cmd.Flags().String(LogLevelKey, DefaultLogLevel, "Log level (debug, info, warn, error)")
	cmd.Flags().String(LogFormatKey, string(DefaultLogFormat), "Log format (text, json)")
}

var (
	ErrAPIBaseURLRequired   = errors.New("API base URL is required")
	ErrAPIBaseURLInvalid    = errors.New("API base URL must be an absolute http(s) URL")
	ErrAPITimeoutInvalid    = errors.New("API timeout must be positive")
	ErrAPIRateLimitInvalid  = errors.New("API rate limit must not be negative")
	ErrOTLPEndpointRequired = errors.New("OTLP endpoint is required when tracing is enabled")
	ErrLogLevelInvalid      = errors.New("Log level must be one of debug, info, warn, error")
	ErrLogFormatInvalid     = errors.New("Log format must be one of text, json")
)

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrAPIBaseURLRequired
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrAPIBaseURLInvalid
	}
	if c.API.Timeout <= 0 {
		return ErrAPITimeoutInvalid
	}
	if c.API.RateLimit < 0 {
		return ErrAPIRateLimitInvalid
	}
	if c.HTTP.Tracing.Enabled && c.HTTP.Tracing.OTLPEndpoint == "" {
		return ErrOTLPEndpointRequired
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return ErrLogLevelInvalid
	}
	if c.Log.Format != LogFormatText && c.Log.Format != LogFormatJSON {
		return ErrLogFormatInvalid
	}

	return nil
}

// SlogLevel parses the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

func LoadConfig(cmd *cobra.Command) (*Config, error) {
	var config Config

	// Load flags from envs
	ctx, cancel := context.WithCancelCause(cmd.Context())
	defer cancel(nil)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if ctx.Err() != nil {
			return
		}
		optName := strings.ReplaceAll(strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_"), ".", "__")
		if val, ok := os.LookupEnv(optName); !f.Changed && ok {
			if err := f.Value.Set(val); err != nil {
				cancel(err)
			}
			f.Changed = true
		}
	})
	if ctx.Err() != nil {
		return &config, fmt.Errorf("failed to load env: %w", context.Cause(ctx))
	}

	configPath, err := cmd.Flags().GetString(ConfigFileKey)
	if err != nil {
		return &config, fmt.Errorf("failed to get config path: %w", err)
	}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return &config, fmt.Errorf("failed to read config: %w", err)
		} else if err == nil {
			if err := yaml.Unmarshal(data, &config); err != nil {
				return &config, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	err = overrideFlags(&config, cmd)
	if err != nil {
		return &config, fmt.Errorf("failed to override flags: %w", err)
	}

	// Defaults
	if config.HTTP.IPV4Host == "" {
		config.HTTP.IPV4Host = DefaultHTTPIPV4Host
	}
	if config.HTTP.IPV6Host == "" {
		config.HTTP.IPV6Host = DefaultHTTPIPV6Host
	}
	if config.HTTP.Port == 0 {
		config.HTTP.Port = DefaultHTTPPort
	}
	if config.HTTP.Metrics.IPV4Host == "" {
		config.HTTP.Metrics.IPV4Host = DefaultHTTPMetricsIPV4Host
	}
	if config.HTTP.Metrics.IPV6Host == "" {
		config.HTTP.Metrics.IPV6Host = DefaultHTTPMetricsIPV6Host
	}
	if config.HTTP.Metrics.Port == 0 {
		config.HTTP.Metrics.Port = DefaultHTTPMetricsPort
	}
	if config.HTTP.MaxUploadBytes == 0 {
		config.HTTP.MaxUploadBytes = DefaultHTTPMaxUploadBytes
	}
	if config.API.BaseURL == "" {
		config.API.BaseURL = DefaultAPIBaseURL
	}
	if config.API.Timeout == 0 {
		config.API.Timeout = DefaultAPITimeout
	}
	if config.API.Burst == 0 {
		config.API.Burst = DefaultAPIBurst
	}
	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}
	if config.Log.Format == "" {
		config.Log.Format = DefaultLogFormat
	}

	return &config, nil
}

func overrideFlags(config *Config, cmd *cobra.Command) error {
	var err error
	if cmd.Flags().Changed(HTTPIPV4HostKey) {
		config.HTTP.IPV4Host, err = cmd.Flags().GetString(HTTPIPV4HostKey)
		if err != nil {
			return fmt.Errorf("failed to get HTTP IPv4 host: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPIPV6HostKey) {
		config.HTTP.IPV6Host, err = cmd.Flags().GetString(HTTPIPV6HostKey)
		if err != nil {
			return fmt.Errorf("failed to get HTTP IPv6 host: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPPortKey) {
		config.HTTP.Port, err = cmd.Flags().GetUint16(HTTPPortKey)
		if err != nil {
			return fmt.Errorf("failed to get HTTP port: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPPProfEnabledKey) {
		config.HTTP.PProf.Enabled, err = cmd.Flags().GetBool(HTTPPProfEnabledKey)
		if err != nil {
			return fmt.Errorf("failed to get pprof enabled: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPTrustedProxiesKey) {
		config.HTTP.TrustedProxies, err = cmd.Flags().GetStringSlice(HTTPTrustedProxiesKey)
		if err != nil {
			return fmt.Errorf("failed to get trusted proxies: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPMetricsEnabledKey) {
		config.HTTP.Metrics.Enabled, err = cmd.Flags().GetBool(HTTPMetricsEnabledKey)
		if err != nil {
			return fmt.Errorf("failed to get metrics enabled: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPMetricsIPV4HostKey) {
		config.HTTP.Metrics.IPV4Host, err = cmd.Flags().GetString(HTTPMetricsIPV4HostKey)
		if err != nil {
			return fmt.Errorf("failed to get metrics IPv4 host: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPMetricsIPV6HostKey) {
		config.HTTP.Metrics.IPV6Host, err = cmd.Flags().GetString(HTTPMetricsIPV6HostKey)
		if err != nil {
			return fmt.Errorf("failed to get metrics IPv6 host: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPMetricsPortKey) {
		config.HTTP.Metrics.Port, err = cmd.Flags().GetUint16(HTTPMetricsPortKey)
		if err != nil {
			return fmt.Errorf("failed to get metrics port: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPTracingEnabledKey) {
		config.HTTP.Tracing.Enabled, err = cmd.Flags().GetBool(HTTPTracingEnabledKey)
		if err != nil {
			return fmt.Errorf("failed to get tracing enabled: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPTracingOTLPEndKey) {
		config.HTTP.Tracing.OTLPEndpoint, err = cmd.Flags().GetString(HTTPTracingOTLPEndKey)
		if err != nil {
			return fmt.Errorf("failed to get tracing OTLP endpoint: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPCORSHostsKey) {
		config.HTTP.CORSHosts, err = cmd.Flags().GetStringSlice(HTTPCORSHostsKey)
		if err != nil {
			return fmt.Errorf("failed to get CORS hosts: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPMaxUploadBytesKey) {
		config.HTTP.MaxUploadBytes, err = cmd.Flags().GetInt64(HTTPMaxUploadBytesKey)
		if err != nil {
			return fmt.Errorf("failed to get max upload bytes: %w", err)
		}
	}

	if cmd.Flags().Changed(APIBaseURLKey) {
		config.API.BaseURL, err = cmd.Flags().GetString(APIBaseURLKey)
		if err != nil {
			return fmt.Errorf("failed to get API base URL: %w", err)
		}
	}

	if cmd.Flags().Changed(APITimeoutKey) {
		config.API.Timeout, err = cmd.Flags().GetDuration(APITimeoutKey)
		if err != nil {
			return fmt.Errorf("failed to get API timeout: %w", err)
		}
	}

	if cmd.Flags().Changed(APIRateLimitKey) {
		config.API.RateLimit, err = cmd.Flags().GetFloat64(APIRateLimitKey)
		if err != nil {
			return fmt.Errorf("failed to get API rate limit: %w", err)
		}
	}

	if cmd.Flags().Changed(APIBurstKey) {
		config.API.Burst, err = cmd.Flags().GetInt(APIBurstKey)
		if err != nil {
			return fmt.Errorf("failed to get API burst: %w", err)
		}
	}

	if cmd.Flags().Changed(LogLevelKey) {
		config.Log.Level, err = cmd.Flags().GetString(LogLevelKey)
		if err != nil {
			return fmt.Errorf("failed to get log level: %w", err)
		}
	}

	if cmd.Flags().Changed(LogFormatKey) {
		format, err := cmd.Flags().GetString(LogFormatKey)
		if err != nil {
			return fmt.Errorf("failed to get log format: %w", err)
		}
		config.Log.Format = LogFormat(strings.ToLower(format))
	}

	return nil
}
