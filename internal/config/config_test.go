package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func validEnv() map[string]string {
	return map[string]string{
		EnvAccessKeyID: "AKIDEXAMPLE",
		EnvSecretKey:   "secret",
		EnvRegion:      "eu-west-1",
	}
}

func TestFromEnv_Valid(t *testing.T) {
	cfg, err := FromEnv(envLookup(validEnv()))

	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", cfg.AWS.AccessKeyID)
	assert.Equal(t, "secret", cfg.AWS.SecretAccessKey)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envLookup(validEnv()))

	require.NoError(t, err)
	assert.Equal(t, "ec2ctl", cfg.OTEL.ServiceName)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.OTEL.Enabled())
}

func TestFromEnv_Optional(t *testing.T) {
	env := validEnv()
	env[EnvLogLevel] = "debug"
	env[EnvOTELEndpoint] = "localhost:4317"
	env[EnvOTELInsecure] = "true"

	cfg, err := FromEnv(envLookup(env))

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "localhost:4317", cfg.OTEL.Endpoint)
	assert.True(t, cfg.OTEL.Insecure)
	assert.True(t, cfg.OTEL.Enabled())
}

func TestFromEnv_MissingRequired(t *testing.T) {
	for _, key := range []string{EnvAccessKeyID, EnvSecretKey, EnvRegion} {
		t.Run(key, func(t *testing.T) {
			env := validEnv()
			delete(env, key)

			_, err := FromEnv(envLookup(env))

			require.Error(t, err)
			var missing *MissingEnvError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, []string{key}, missing.Missing)
			assert.Contains(t, err.Error(), "Set ENV entries")
		})
	}
}

func TestFromEnv_MissingAll(t *testing.T) {
	_, err := FromEnv(envLookup(map[string]string{}))

	var missing *MissingEnvError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{EnvAccessKeyID, EnvSecretKey, EnvRegion}, missing.Missing)
}

func TestFromEnv_InvalidInsecure(t *testing.T) {
	env := validEnv()
	env[EnvOTELInsecure] = "maybe"

	_, err := FromEnv(envLookup(env))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{AWS: AWSConfig{Region: "us-east-1"}, Log: LogConfig{Level: "info"}},
			wantErr: false,
		},
		{
			name:    "empty region",
			cfg:     Config{Log: LogConfig{Level: "info"}},
			wantErr: true,
		},
		{
			name:    "bad level",
			cfg:     Config{AWS: AWSConfig{Region: "us-east-1"}, Log: LogConfig{Level: "loud"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
