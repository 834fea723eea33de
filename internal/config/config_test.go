package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Profile.Font != DefaultFont {
		t.Errorf("Profile.Font = %q, want %q", cfg.Profile.Font, DefaultFont)
	}
	if cfg.Profile.Size != DefaultSize {
		t.Errorf("Profile.Size = %d, want %d", cfg.Profile.Size, DefaultSize)
	}
	if cfg.Profile.Spacing != DefaultSpacing {
		t.Errorf("Profile.Spacing = %q, want %q", cfg.Profile.Spacing, DefaultSpacing)
	}
	if !cfg.Profile.AutoWidthTables {
		t.Error("Profile.AutoWidthTables = false, want true")
	}
	if cfg.Profile.PageBreaks {
		t.Error("Profile.PageBreaks = true, want false")
	}
	if cfg.TOC.Enabled {
		t.Error("TOC.Enabled = true, want false")
	}
	if cfg.Glyphs.SkipCodeFences {
		t.Error("Glyphs.SkipCodeFences = true, want false")
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.FontURLPrefix != DefaultFontURLPrefix {
		t.Errorf("Server.FontURLPrefix = %q, want %q", cfg.Server.FontURLPrefix, DefaultFontURLPrefix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error = %v, want field name %q", err, tt.fieldName)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	long := func(n int) string { return strings.Repeat("x", n) }

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "defaults valid", mutate: func(c *Config) {}},
		{name: "zero size means default", mutate: func(c *Config) { c.Profile.Size = 0 }},
		{name: "size 1 valid", mutate: func(c *Config) { c.Profile.Size = 1 }},
		{name: "size 5 valid", mutate: func(c *Config) { c.Profile.Size = 5 }},
		{name: "size 6 invalid", mutate: func(c *Config) { c.Profile.Size = 6 }, wantErr: ErrInvalidValue},
		{name: "negative size invalid", mutate: func(c *Config) { c.Profile.Size = -1 }, wantErr: ErrInvalidValue},
		{name: "font too long", mutate: func(c *Config) { c.Profile.Font = long(MaxFontLength + 1) }, wantErr: ErrFieldTooLong},
		{name: "spacing too long", mutate: func(c *Config) { c.Profile.Spacing = long(MaxSpacingLength + 1) }, wantErr: ErrFieldTooLong},
		{name: "base path too long", mutate: func(c *Config) { c.Assets.BasePath = long(MaxPathLength + 1) }, wantErr: ErrFieldTooLong},
		{name: "empty timeout valid", mutate: func(c *Config) { c.Render.Timeout = "" }},
		{name: "bad timeout", mutate: func(c *Config) { c.Render.Timeout = "soon" }, wantErr: ErrInvalidValue},
		{name: "zero timeout", mutate: func(c *Config) { c.Render.Timeout = "0s" }, wantErr: ErrInvalidValue},
		{name: "negative workers", mutate: func(c *Config) { c.Render.Workers = -1 }, wantErr: ErrInvalidValue},
		{name: "highlight style too long", mutate: func(c *Config) { c.Render.HighlightStyle = long(MaxStyleLength + 1) }, wantErr: ErrFieldTooLong},
		{name: "addr too long", mutate: func(c *Config) { c.Server.Addr = long(MaxAddrLength + 1) }, wantErr: ErrFieldTooLong},
		{name: "prefix without trailing slash", mutate: func(c *Config) { c.Server.FontURLPrefix = "/static/fonts" }, wantErr: ErrInvalidValue},
		{name: "prefix absolute URL valid", mutate: func(c *Config) { c.Server.FontURLPrefix = "https://cdn.test/fonts/" }},
		{name: "negative body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = -1 }, wantErr: ErrInvalidValue},
		{name: "toc title too long", mutate: func(c *Config) { c.TOC.Title = long(MaxTOCTitleLength + 1) }, wantErr: ErrFieldTooLong},
		{name: "log level case insensitive", mutate: func(c *Config) { c.Log.Level = "DEBUG" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_TimeoutDuration(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{name: "explicit", timeout: "45s", want: 45 * time.Second},
		{name: "minutes", timeout: "2m", want: 2 * time.Minute},
		{name: "empty falls back", timeout: "", want: 30 * time.Second},
		{name: "invalid falls back", timeout: "later", want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Render.Timeout = tt.timeout
			if got := cfg.TimeoutDuration(); got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		configPath := writeConfig(t, "test.yaml", `profile:
  font: "Roboto"
  size: 4
  spacing: "spacious"
  pageBreaks: true
toc:
  enabled: true
  title: "Contents"
glyphs:
  skipCodeFences: true
render:
  timeout: "1m"
  workers: 2
  highlightStyle: "monokai"
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Profile.Font != "Roboto" {
			t.Errorf("Profile.Font = %q, want %q", cfg.Profile.Font, "Roboto")
		}
		if cfg.Profile.Size != 4 {
			t.Errorf("Profile.Size = %d, want 4", cfg.Profile.Size)
		}
		if cfg.Profile.Spacing != "spacious" {
			t.Errorf("Profile.Spacing = %q, want %q", cfg.Profile.Spacing, "spacious")
		}
		if !cfg.Profile.PageBreaks {
			t.Error("Profile.PageBreaks = false, want true")
		}
		if !cfg.TOC.Enabled || cfg.TOC.Title != "Contents" {
			t.Errorf("TOC = %+v, want enabled with title Contents", cfg.TOC)
		}
		if !cfg.Glyphs.SkipCodeFences {
			t.Error("Glyphs.SkipCodeFences = false, want true")
		}
		if cfg.TimeoutDuration() != time.Minute {
			t.Errorf("TimeoutDuration() = %v, want 1m", cfg.TimeoutDuration())
		}
		if cfg.Render.Workers != 2 {
			t.Errorf("Render.Workers = %d, want 2", cfg.Render.Workers)
		}
		if cfg.Render.HighlightStyle != "monokai" {
			t.Errorf("Render.HighlightStyle = %q, want monokai", cfg.Render.HighlightStyle)
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		configPath := writeConfig(t, "partial.yaml", "profile:\n  size: 2\n")

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Profile.Font != DefaultFont {
			t.Errorf("Profile.Font = %q, want default %q", cfg.Profile.Font, DefaultFont)
		}
		if !cfg.Profile.AutoWidthTables {
			t.Error("Profile.AutoWidthTables = false, want default true")
		}
		if cfg.Server.Addr != DefaultAddr {
			t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, DefaultAddr)
		}
	})

	t.Run("explicit false overrides default true", func(t *testing.T) {
		configPath := writeConfig(t, "tables.yaml", "profile:\n  autoWidthTables: false\n")

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Profile.AutoWidthTables {
			t.Error("Profile.AutoWidthTables = true, want false")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		_, err := LoadConfig("no-such-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-name.yaml") {
			t.Errorf("error = %v, want tried paths listed", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, "invalid.yaml", "profile: [unclosed")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, "empty.yaml", "")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		configPath := writeConfig(t, "unknown.yaml", "profile:\n  font: Inter\nunknownField: \"should fail\"\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown nested field returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, "nested.yaml", "profile:\n  colour: red\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("oversized input returns ErrConfigParse", func(t *testing.T) {
		content := "toc:\n  title: \"x\"\n" + strings.Repeat("# padding\n", maxInputSize/10+1)
		configPath := writeConfig(t, "huge.yaml", content)

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
		if !strings.Contains(err.Error(), ErrInputTooLarge.Error()) {
			t.Errorf("error = %v, want input size message", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		configPath := writeConfig(t, "toolong.yaml", "toc:\n  title: \""+strings.Repeat("x", MaxTOCTitleLength+1)+"\"\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("invalid value returns ErrInvalidValue", func(t *testing.T) {
		configPath := writeConfig(t, "badsize.yaml", "profile:\n  size: 9\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("root can read any file")
		}
		configPath := writeConfig(t, "unreadable.yaml", "toc:\n  enabled: true\n")
		if err := os.Chmod(configPath, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(configPath, 0600)

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want read error", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, "team.yml"), []byte("profile:\n  font: Lato\n"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Profile.Font != "Lato" {
		t.Errorf("Profile.Font = %q, want Lato", cfg.Profile.Font)
	}
}

func TestResolveConfigPath_PrefersYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	for _, name := range []string{"both.yaml", "both.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("log:\n  level: debug\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	got, err := resolveConfigPath("both")
	if err != nil {
		t.Fatalf("resolveConfigPath() error = %v", err)
	}
	if got != "both.yaml" {
		t.Errorf("resolveConfigPath() = %q, want both.yaml", got)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		var cfg Config
		if err := unmarshalStrict(nil, &cfg); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("error = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("at size limit is accepted", func(t *testing.T) {
		data := []byte("log:\n  level: info\n#")
		data = append(data, []byte(strings.Repeat("x", maxInputSize-len(data)))...)
		var cfg Config
		if err := unmarshalStrict(data, &cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("over size limit", func(t *testing.T) {
		data := make([]byte, maxInputSize+1)
		var cfg Config
		if err := unmarshalStrict(data, &cfg); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
