// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogama/reqster"
	"github.com/gogama/reqster/hooks"
	"github.com/gogama/reqster/request"
	"github.com/gogama/reqster/retry"
	"github.com/gogama/reqster/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleYAML = `
base_url: https://api.example.com
timeout: 2s
headers:
  X-Api-Key: k
retry:
  max: 3
  statuses: [503]
log:
  level: debug
`

func TestLoad(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "reqster.yml", sampleYAML))

		require.NoError(t, err)
		assert.Equal(t, &Config{
			BaseURL: "https://api.example.com",
			Timeout: 2 * time.Second,
			Headers: map[string]string{"x-api-key": "k"},
			Retry: RetryConfig{
				Max:      3,
				Statuses: []int{503},
				BaseWait: DefaultBaseWait,
				MaxWait:  DefaultMaxWait,
			},
			Log: LogConfig{Level: "debug", Format: DefaultLogFormat},
		}, cfg)
	})
	t.Run("JSON file", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "reqster.json", `{"base_url":"http://localhost:8080","rate_limit":{"rps":2.5}}`))

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, 2.5, cfg.RateLimit.RPS)
		assert.Equal(t, 1, cfg.RateLimit.Burst)
		assert.Equal(t, DefaultRetryStatuses, cfg.Retry.Statuses)
	})
	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("REQSTER_BASE_URL", "http://env.example.com")
		t.Setenv("REQSTER_RETRY_MAX", "7")
		t.Setenv("REQSTER_LOG_FORMAT", "console")

		cfg, err := Load(writeFile(t, "reqster.yml", sampleYAML))

		require.NoError(t, err)
		assert.Equal(t, "http://env.example.com", cfg.BaseURL)
		assert.Equal(t, 7, cfg.Retry.Max)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})
	t.Run("env file", func(t *testing.T) {
		t.Setenv("REQSTER_LOG_LEVEL", "error")
		envFile := writeFile(t, ".env", "REQSTER_TIMEOUT=3s\nREQSTER_LOG_LEVEL=warn\nOTHER=x\n")

		cfg, err := Load(writeFile(t, "reqster.yml", sampleYAML), WithEnvFile(envFile))

		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Equal(t, "error", cfg.Log.Level)
		_, set := os.LookupEnv("REQSTER_TIMEOUT")
		assert.False(t, set)
	})
	t.Run("environment only", func(t *testing.T) {
		t.Setenv("REQSTER_BASE_URL", "http://only.env")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "http://only.env", cfg.BaseURL)
		assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	})
	t.Run("errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.ErrorContains(t, err, "config: read")

		_, err = Load(writeFile(t, "bad.yml", "base_url: [unclosed"))
		assert.ErrorContains(t, err, "config: read")

		_, err = Load(writeFile(t, "x.yml", sampleYAML), WithEnvFile(filepath.Join(t.TempDir(), ".env")))
		assert.ErrorContains(t, err, "config: read")

		_, err = Load(writeFile(t, "nobase.yml", "timeout: 1s\n"))
		assert.EqualError(t, err, "config: base_url is required")

		_, err = Load(writeFile(t, "dur.yml", "base_url: http://h\ntimeout: forever\n"))
		assert.ErrorContains(t, err, "config: decode")
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Config{BaseURL: "http://h"}
		c.ApplyDefaults()
		return c
	}
	testCases := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"relative URL", func(c *Config) { c.BaseURL = "/api" }, "config: base_url must be an absolute URL"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "config: timeout must satisfy gte=0"},
		{"negative retries", func(c *Config) { c.Retry.Max = -1 }, "config: retry.max must satisfy gte=0"},
		{"bad status", func(c *Config) { c.Retry.Statuses = []int{99} }, "config: retry.statuses[0] must satisfy gte=100"},
		{"waits", func(c *Config) { c.Retry.MaxWait = time.Millisecond }, "config: retry.max_wait must be at least base_wait"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "config: log.level must be one of [trace debug info warn error disabled]"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "config: log.format must be one of [json console]"},
		{"two", func(c *Config) { c.BaseURL = ""; c.RateLimit.RPS = -1 }, "config: base_url is required; rate_limit.rps must satisfy gte=0"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := valid()
			testCase.mutate(&c)
			err := c.Validate()
			if testCase.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, testCase.errMsg)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	assert.Equal(t, DefaultLogLevel, c.Log.Level)
	assert.Equal(t, DefaultLogFormat, c.Log.Format)
	assert.Equal(t, DefaultRetryStatuses, c.Retry.Statuses)
	assert.Equal(t, DefaultBaseWait, c.Retry.BaseWait)
	assert.Equal(t, DefaultMaxWait, c.Retry.MaxWait)
	assert.Equal(t, 0, c.RateLimit.Burst)

	c.Retry.Statuses[0] = 1
	assert.Equal(t, 429, DefaultRetryStatuses[0])
}

func TestWriteYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "reqster.yml", sampleYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "base_url: https://api.example.com\n")
	assert.Contains(t, buf.String(), "timeout: 2s\n")
	assert.Contains(t, buf.String(), "statuses: [503]\n")
	assert.Contains(t, buf.String(), "base_wait: 50ms\n")

	again, err := Load(writeFile(t, "again.yml", buf.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestSettings(t *testing.T) {
	c := Config{Timeout: time.Second, Headers: map[string]string{"a": "b"}}
	s := c.Settings()
	assert.Equal(t, request.Headers{"a": "b"}, s.Headers)
	assert.Equal(t, time.Second, s.Timeout)
	s.Headers["c"] = "d"
	assert.Equal(t, map[string]string{"a": "b"}, c.Headers)
	assert.Nil(t, s.TransformResponse)
}

func TestLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		c := Config{Log: LogConfig{Level: "warn", Format: "json"}}
		l := c.Logger(&buf)
		l.Info().Msg("hidden")
		l.Warn().Msg("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), `"message":"shown"`)
	})
	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		c := Config{Log: LogConfig{Level: "debug", Format: "console"}}
		l := c.Logger(&buf)
		l.Debug().Str("k", "v").Msg("hello")
		assert.Contains(t, buf.String(), "DBG")
		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "k=v")
	})
	t.Run("fallback level", func(t *testing.T) {
		c := Config{}
		assert.Equal(t, zerolog.InfoLevel, c.Logger(&bytes.Buffer{}).GetLevel())
		c.Log.Level = "disabled"
		assert.Equal(t, zerolog.Disabled, c.Logger(&bytes.Buffer{}).GetLevel())
	})
}

func TestRetryPolicy(t *testing.T) {
	c := Config{BaseURL: "http://h"}
	c.ApplyDefaults()
	assert.False(t, c.RetryPolicy().Decide(&retry.Attempt{Response: transport.NewResponse(503, nil, nil)}))

	c.Retry.Max = 2
	p := c.RetryPolicy()
	a := &retry.Attempt{Response: transport.NewResponse(503, nil, nil)}
	assert.True(t, p.Decide(a))
	a.Index = 2
	assert.False(t, p.Decide(a))
	assert.False(t, p.Decide(&retry.Attempt{Response: transport.NewResponse(500, nil, nil)}))
	assert.LessOrEqual(t, p.Wait(&retry.Attempt{Index: 10}), c.Retry.MaxWait)
}

func TestLimiter(t *testing.T) {
	c := Config{}
	assert.Nil(t, c.Limiter())
	c.RateLimit = RateLimitConfig{RPS: 5, Burst: 2}
	l := c.Limiter()
	require.NotNil(t, l)
	assert.Equal(t, 2, l.Burst())
}

func TestNewClient(t *testing.T) {
	c := Config{
		BaseURL:   "http://h",
		Headers:   map[string]string{"accept": "application/json"},
		Retry:     RetryConfig{Max: 2, BaseWait: time.Millisecond, MaxWait: time.Millisecond},
		RateLimit: RateLimitConfig{RPS: 1000},
	}
	c.ApplyDefaults()
	var seen []*request.Parameters
	statuses := []int{503, 200}
	x := reqster.ExecutorFunc(func(_ context.Context, url string, p *request.Parameters) (request.Response, error) {
		assert.Equal(t, "http://h/ping", url)
		seen = append(seen, p)
		return transport.NewResponse(statuses[len(seen)-1], nil, []byte(`{"pong":true}`)), nil
	})
	var buf bytes.Buffer

	client := c.NewClient(x, zerolog.New(&buf))
	v, err := client.Get(context.Background(), "/ping", nil)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"pong": true}, v)
	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0].Headers[hooks.HeaderRequestID])
	assert.Equal(t, "application/json", seen[1].Headers["accept"])
	assert.Equal(t, 3, client.Interceptors.Request.Len())
	assert.Equal(t, 2, client.Interceptors.Response.Len())
	assert.Contains(t, buf.String(), `"status":503`)
}

func TestWithOverride(t *testing.T) {
	cfg, err := Load("",
		WithOverride(func(c *Config) { c.BaseURL = "http://flag" }),
		WithOverride(func(c *Config) {
			assert.Equal(t, "", c.Log.Level)
			c.Log.Level = "warn"
		}))

	require.NoError(t, err)
	assert.Equal(t, "http://flag", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}
