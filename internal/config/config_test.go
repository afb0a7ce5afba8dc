package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvEmptyValues(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := LoadEnv()

	assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 25, cfg.MySQL.MaxIdleConns)
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"LOGGER_ENCODING", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadEnv()

	// The logger preset for the environment picks the encoder.
	assert.Equal(t, "", cfg.Logger.Encoding)
	assert.Nil(t, cfg.Server.TrustedProxies)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("NUMERIC_POLICY", "strict")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")

	cfg := LoadEnv()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 7, cfg.MySQL.MaxOpenConns)
	assert.True(t, cfg.Storage.MinioUseSSL)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "strict", cfg.Payload.NumericPolicy)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.Server.TrustedProxies)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid local", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.SecretKey = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "s3" }, wantErr: true},
		{name: "minio without keys", mutate: func(c *Config) { c.Storage.Driver = "minio" }, wantErr: true},
		{name: "trusted proxy cidr", mutate: func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.0/8", "::1"} }},
		{name: "bad trusted proxy", mutate: func(c *Config) { c.Server.TrustedProxies = []string{"proxy.local"} }, wantErr: true},
		{
			name: "minio with keys",
			mutate: func(c *Config) {
				c.Storage.Driver = "minio"
				c.Storage.MinioAccessKey = "a"
				c.Storage.MinioSecretKey = "b"
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{
				JWT:     JWTConfig{SecretKey: "secret"},
				Storage: StorageConfig{Driver: "local"},
			}
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
