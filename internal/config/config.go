// Package config builds ec2ctl configuration from the process environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvAccessKeyID  = "AWS_CLI_ID"
	EnvSecretKey    = "AWS_CLI_SECRET"
	EnvRegion       = "AWS_REGION"
	EnvLogLevel     = "EC2CTL_LOG_LEVEL"
	EnvOTELEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOTELInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
)

var required = []string{EnvAccessKeyID, EnvSecretKey, EnvRegion}

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Config is the root configuration structure.
type Config struct {
	AWS  AWSConfig
	OTEL OTELConfig
	Log  LogConfig
}

// AWSConfig holds credentials and region for the provider client.
type AWSConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// OTELConfig holds OpenTelemetry settings.
type OTELConfig struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

// Enabled reports whether telemetry should be exported.
func (c OTELConfig) Enabled() bool {
	return c.Endpoint != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// MissingEnvError is returned when required variables are unset.
type MissingEnvError struct {
	Missing []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("Set ENV entries: %s (missing: %s)",
		strings.Join(required, " , "), strings.Join(e.Missing, ", "))
}

// FromEnv reads and validates the configuration.
func FromEnv(lookup LookupFunc) (*Config, error) {
	var missing []string
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		AWS: AWSConfig{
			AccessKeyID:     get(EnvAccessKeyID),
			SecretAccessKey: get(EnvSecretKey),
			Region:          get(EnvRegion),
		},
	}
	if len(missing) > 0 {
		return nil, &MissingEnvError{Missing: missing}
	}

	cfg.Log.Level, _ = lookup(EnvLogLevel)
	cfg.OTEL.Endpoint, _ = lookup(EnvOTELEndpoint)
	if raw, ok := lookup(EnvOTELInsecure); ok && raw != "" {
		insecure, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", EnvOTELInsecure, raw, err)
		}
		cfg.OTEL.Insecure = insecure
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.OTEL.ServiceName == "" {
		cfg.OTEL.ServiceName = "ec2ctl"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}

// Validate checks the configuration is valid.
func (c *Config) Validate() error {
	if c.AWS.Region == "" {
		return fmt.Errorf("aws: %s must not be empty", EnvRegion)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	return nil
}
