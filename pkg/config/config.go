// Package config reads hosting defaults for forms from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/goliatone/go-questions/pkg/form"
	"github.com/goliatone/go-questions/pkg/resources"
)

// ErrInvalid reports a configuration value outside its allowed set.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the settings shared by the CLI and embedded servers. Every
// field has a default so an empty environment decodes cleanly.
type Config struct {
	// ENV: QUESTIONS_RESOURCE_URL
	ResourceURL string `env:"QUESTIONS_RESOURCE_URL,default=https://unpkg.com"`
	// ENV: QUESTIONS_PLATFORM
	Platform string `env:"QUESTIONS_PLATFORM,default=jquery"`
	// ENV: QUESTIONS_THEME
	Theme string `env:"QUESTIONS_THEME,default=defaultV2"`
	// ENV: QUESTIONS_HTML_ID
	HTMLID string `env:"QUESTIONS_HTML_ID,default=questions_form"`
	// Where completed answers are posted. ENV: QUESTIONS_ACTION
	Action string `env:"QUESTIONS_ACTION"`
	// Listen address for serve. ENV: QUESTIONS_ADDR
	Addr string `env:"QUESTIONS_ADDR,default=:8080"`
	// debug, info, warn or error. ENV: QUESTIONS_LOG_LEVEL
	LogLevel slog.Level `env:"QUESTIONS_LOG_LEVEL,default=info"`
	// text or json. ENV: QUESTIONS_LOG_FORMAT
	LogFormat string `env:"QUESTIONS_LOG_FORMAT,default=text"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ResourceURL: resources.CDN,
		Platform:    form.DefaultPlatform,
		Theme:       form.DefaultTheme,
		HTMLID:      form.DefaultHTMLID,
		Addr:        ":8080",
		LogLevel:    slog.LevelInfo,
		LogFormat:   "text",
	}
}

// FromEnv decodes the configuration from QUESTIONS_* variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the platform and log format.
func (c Config) Validate() error {
	if !resources.ValidPlatform(c.Platform) {
		return fmt.Errorf("%w: platform %q", ErrInvalid, c.Platform)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// Logger builds a slog logger writing to w in the configured format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// FormOptions maps the configuration onto form options.
func (c Config) FormOptions() []form.Option {
	return []form.Option{
		form.WithResourceURL(c.ResourceURL),
		form.WithPlatform(c.Platform),
		form.WithTheme(c.Theme),
		form.WithHTMLID(c.HTMLID),
		form.WithAction(c.Action),
	}
}
