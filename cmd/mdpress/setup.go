package main

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
)

// Environment variables read when the matching flag is unset.
const (
	envConfig = "MDPRESS_CONFIG"
	envAssets = "MDPRESS_ASSETS"
)

// loadConfig loads the named config, falling back to MDPRESS_CONFIG and
// then to defaults. The asset path flag or MDPRESS_ASSETS overrides the file.
func loadConfig(f commonFlags, env *Environment) (*config.Config, error) {
	name := f.config
	if name == "" {
		name = env.Getenv(envConfig)
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	switch {
	case f.assetPath != "":
		cfg.Assets.BasePath = f.assetPath
	case cfg.Assets.BasePath == "":
		cfg.Assets.BasePath = env.Getenv(envAssets)
	}

	return cfg, nil
}

// applyTimeout overrides the render timeout with a flag value.
func applyTimeout(cfg *config.Config, timeout string) error {
	if timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(timeout)
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: invalid timeout %q", ErrUsage, timeout)
	}
	cfg.Render.Timeout = timeout
	return nil
}

// newLogger builds a development logger with --verbose and a production
// logger at the configured level otherwise. --quiet keeps errors only.
func newLogger(f commonFlags, level string) (*zap.Logger, error) {
	if f.verbose {
		return zap.NewDevelopment()
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
		}
		lvl = parsed
	}
	if f.quiet {
		lvl = zapcore.ErrorLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// converterOptions maps config onto converter options.
func converterOptions(cfg *config.Config, logger *zap.Logger) []mdpress.Option {
	return []mdpress.Option{
		mdpress.WithTimeout(cfg.TimeoutDuration()),
		mdpress.WithAssetPath(cfg.Assets.BasePath),
		mdpress.WithLogger(logger),
		mdpress.WithFontURLPrefix(cfg.Server.FontURLPrefix),
		mdpress.WithHighlightStyle(cfg.Render.HighlightStyle),
		mdpress.WithSkipCodeFences(cfg.Glyphs.SkipCodeFences),
	}
}

// profileFromConfig returns the configured default style profile.
func profileFromConfig(cfg *config.Config) mdpress.StyleProfile {
	return mdpress.StyleProfile{
		FontFamily:      cfg.Profile.Font,
		SizeLevel:       cfg.Profile.Size,
		Spacing:         mdpress.Spacing(cfg.Profile.Spacing),
		AutoWidthTables: cfg.Profile.AutoWidthTables,
		IncludeIndex:    cfg.TOC.Enabled,
		AddPageBreaks:   cfg.Profile.PageBreaks,
	}
}
