package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpress/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxFontLength      = 64   // Family name
	MaxSpacingLength   = 20   // "comfortable"
	MaxPathLength      = 4096 // PATH_MAX
	MaxTOCTitleLength  = 100  // TOC title
	MaxStyleLength     = 50   // Chroma style name
	MaxAddrLength      = 255  // host:port
	MaxURLPrefixLength = 255  // "/fonts/"
)

// Default values applied by DefaultConfig.
const (
	DefaultFont          = "Inter"
	DefaultSize          = 3
	DefaultSpacing       = "default"
	DefaultTimeout       = "30s"
	DefaultAddr          = ":8080"
	DefaultFontURLPrefix = "/fonts/"
	DefaultMaxBodyBytes  = 10 << 20
	DefaultLogLevel      = "info"
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-mdpress"

// Config holds all configuration for document generation and serving.
type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	TOC     TOCConfig     `yaml:"toc"`
	Glyphs  GlyphsConfig  `yaml:"glyphs"`
	Log     LogConfig     `yaml:"log"`
}

// ProfileConfig defines the default style profile.
type ProfileConfig struct {
	Font            string `yaml:"font"`            // Catalog family (default: Inter)
	Size            int    `yaml:"size"`            // 1-5 (default: 3)
	Spacing         string `yaml:"spacing"`         // "default", "compact", "spacious" or an alias
	AutoWidthTables bool   `yaml:"autoWidthTables"` // default: true
	PageBreaks      bool   `yaml:"pageBreaks"`      // Page break before every h1 but the first
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded styles, no font files
}

// RenderConfig defines PDF rendering options.
type RenderConfig struct {
	Timeout        string `yaml:"timeout"`        // Go duration (default: "30s")
	Workers        int    `yaml:"workers"`        // Browser pool size, 0 = auto
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style for code (default: "github")
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Addr          string `yaml:"addr"`          // Listen address (default: ":8080")
	FontURLPrefix string `yaml:"fontURLPrefix"` // Preview font URL prefix (default: "/fonts/")
	MaxBodyBytes  int64  `yaml:"maxBodyBytes"`  // Request body limit (default: 10 MiB)
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"` // Empty = "Table of Contents"
}

// GlyphsConfig defines glyph sanitization options.
type GlyphsConfig struct {
	SkipCodeFences bool `yaml:"skipCodeFences"` // Leave fenced code untouched
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	// Validate profile fields
	if err := validateFieldLength("profile.font", c.Profile.Font, MaxFontLength); err != nil {
		return err
	}
	if err := validateFieldLength("profile.spacing", c.Profile.Spacing, MaxSpacingLength); err != nil {
		return err
	}
	if c.Profile.Size != 0 && (c.Profile.Size < 1 || c.Profile.Size > 5) {
		return fmt.Errorf("%w: profile.size must be between 1 and 5, got %d", ErrInvalidValue, c.Profile.Size)
	}

	// Validate assets fields
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	// Validate render fields
	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil {
			return fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: render.timeout must be positive, got %s", ErrInvalidValue, c.Render.Timeout)
		}
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: render.workers must not be negative, got %d", ErrInvalidValue, c.Render.Workers)
	}
	if err := validateFieldLength("render.highlightStyle", c.Render.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}

	// Validate server fields
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.fontURLPrefix", c.Server.FontURLPrefix, MaxURLPrefixLength); err != nil {
		return err
	}
	if c.Server.FontURLPrefix != "" && !strings.HasSuffix(c.Server.FontURLPrefix, "/") {
		return fmt.Errorf("%w: server.fontURLPrefix must end with /, got %q", ErrInvalidValue, c.Server.FontURLPrefix)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.maxBodyBytes must not be negative", ErrInvalidValue)
	}

	// Validate TOC fields
	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}

	// Validate log fields
	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}

	return nil
}

// TimeoutDuration returns the render timeout, or the default when unset.
// Call after Validate.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// LoadConfig decodes files on top of these values.
func DefaultConfig() *Config {
	return &Config{
		Profile: ProfileConfig{
			Font:            DefaultFont,
			Size:            DefaultSize,
			Spacing:         DefaultSpacing,
			AutoWidthTables: true,
		},
		Render: RenderConfig{Timeout: DefaultTimeout},
		Server: ServerConfig{
			Addr:          DefaultAddr,
			FontURLPrefix: DefaultFontURLPrefix,
			MaxBodyBytes:  DefaultMaxBodyBytes,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdpress/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
