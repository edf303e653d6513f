package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	DBPath  string       `mapstructure:"db_path"`
	Log     LogConfig    `mapstructure:"log"`
	Engine  EngineConfig `mapstructure:"engine"`
	Intent  IntentConfig `mapstructure:"intent"`
	Search  SearchConfig `mapstructure:"search"`

	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// EngineConfig selects the rendering collaborator. Kind is "memory" or "chrome".
type EngineConfig struct {
	Kind     string `mapstructure:"kind"`
	CDPURL   string `mapstructure:"cdp_url"`
	Headless bool   `mapstructure:"headless"`
}

type IntentConfig struct {
	Listen string `mapstructure:"listen"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SearchConfig struct {
	URLTemplate string `mapstructure:"url_template"`
}

const (
	EngineMemory = "memory"
	EngineChrome = "chrome"
)

// Load reads an optional .env, then <dataDir>/config.yaml (or $TVSHELL_CONFIG),
// then TVSHELL_* environment overrides.
func Load(dataDir string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	if dataDir == "" {
		dataDir = os.Getenv("TVSHELL_DATA_DIR")
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share", "tvshell")
	}

	v := viper.New()
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("db_path", filepath.Join(dataDir, "tvshell.db"))
	v.SetDefault("log.path", filepath.Join(dataDir, "logs", "tvshell.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("engine.kind", EngineMemory)
	v.SetDefault("engine.cdp_url", "")
	v.SetDefault("engine.headless", true)
	v.SetDefault("intent.listen", "127.0.0.1:7821")
	v.SetDefault("search.url_template", "https://duckduckgo.com/?q=%s")
	v.SetDefault("telemetry.enabled", true)

	v.SetConfigType("yaml")
	if path := os.Getenv("TVSHELL_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(dataDir)
		v.SetConfigName("config")
	}
	v.SetEnvPrefix("TVSHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	switch c.Engine.Kind {
	case EngineMemory, EngineChrome:
	default:
		return fmt.Errorf("unsupported engine kind %q", c.Engine.Kind)
	}
	if !strings.Contains(c.Search.URLTemplate, "%s") {
		return fmt.Errorf("search url template must contain %%s")
	}
	return nil
}

// ThumbnailDir is where pinned-tile screenshots are kept.
func (c Config) ThumbnailDir() string {
	return filepath.Join(c.DataDir, "thumbnails")
}

func (c Config) TelemetryPath() string {
	return filepath.Join(c.DataDir, "telemetry", "events.jsonl")
}
