// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gogama/reqster/request"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a client. Header names read from a
// file are lowercased by the loader; header names are case-insensitive
// on the wire.
type Config struct {
	BaseURL   string            `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration     `mapstructure:"timeout" validate:"gte=0"`
	Headers   map[string]string `mapstructure:"headers"`
	Retry     RetryConfig       `mapstructure:"retry"`
	RateLimit RateLimitConfig   `mapstructure:"rate_limit"`
	Log       LogConfig         `mapstructure:"log"`
}

// RetryConfig configures status based retries. Max is the number of
// retries allowed per call; zero disables retries.
type RetryConfig struct {
	Max      int           `mapstructure:"max" validate:"gte=0"`
	Statuses []int         `mapstructure:"statuses" validate:"dive,gte=100,lte=599"`
	BaseWait time.Duration `mapstructure:"base_wait" validate:"gt=0"`
	MaxWait  time.Duration `mapstructure:"max_wait" validate:"gtefield=BaseWait"`
}

// RateLimitConfig configures a token bucket limiting the rate of
// attempts. A zero RPS disables rate limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" validate:"gte=0"`
	Burst int     `mapstructure:"burst" validate:"gte=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Default values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultBaseWait  = 50 * time.Millisecond
	DefaultMaxWait   = time.Second
)

// DefaultRetryStatuses are the statuses retried when none are
// configured.
var DefaultRetryStatuses = []int{429, 502, 503, 504}

// ApplyDefaults fills in zero values with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if len(c.Retry.Statuses) == 0 {
		c.Retry.Statuses = append([]int(nil), DefaultRetryStatuses...)
	}
	if c.Retry.BaseWait == 0 {
		c.Retry.BaseWait = DefaultBaseWait
	}
	if c.Retry.MaxWait == 0 {
		c.Retry.MaxWait = DefaultMaxWait
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 1
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		})
	})
	return validate
}

// Validate checks c against its constraints. Call ApplyDefaults first.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldName(e)+" "+describe(e))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

// fieldName turns "Config.retry.max" into "retry.max".
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be an absolute URL"
	case "oneof":
		return "must be one of [" + e.Param() + "]"
	case "gtefield":
		return "must be at least " + snake(e.Param())
	default:
		return "must satisfy " + e.Tag() + "=" + e.Param()
	}
}

// snake turns a Go field name such as BaseWait into base_wait.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Settings returns the client settings described by c. Transforms and
// validators are left unset, so the client defaults apply.
func (c *Config) Settings() request.Settings {
	return request.Settings{
		Headers: request.Headers(c.Headers).Clone(),
		Timeout: c.Timeout,
	}
}

// Logger returns a logger writing to w at the configured level and in
// the configured format.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	if c.Log.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type fileConfig struct {
	BaseURL   string            `yaml:"base_url"`
	Timeout   string            `yaml:"timeout,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	Retry     fileRetry         `yaml:"retry"`
	RateLimit RateLimitConfig   `yaml:"rate_limit"`
	Log       LogConfig         `yaml:"log"`
}

type fileRetry struct {
	Max      int    `yaml:"max"`
	Statuses []int  `yaml:"statuses,flow"`
	BaseWait string `yaml:"base_wait"`
	MaxWait  string `yaml:"max_wait"`
}

// WriteYAML writes c to w in the format Load reads, with durations
// written in time.Duration notation.
func (c *Config) WriteYAML(w io.Writer) error {
	fc := fileConfig{
		BaseURL: c.BaseURL,
		Headers: c.Headers,
		Retry: fileRetry{
			Max:      c.Retry.Max,
			Statuses: c.Retry.Statuses,
			BaseWait: c.Retry.BaseWait.String(),
			MaxWait:  c.Retry.MaxWait.String(),
		},
		RateLimit: c.RateLimit,
		Log:       c.Log,
	}
	if c.Timeout > 0 {
		fc.Timeout = c.Timeout.String()
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&fc); err != nil {
		return fmt.Errorf("config: write yaml: %w", err)
	}
	return enc.Close()
}
