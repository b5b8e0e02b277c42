// Package config provides configuration loading.
//
// Values are resolved in order: built-in defaults, the TOML config file, a
// dotenv file, then BILVISNING_* environment variables. Invalid values fall
// back to their defaults and are reported in Config.Warnings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "BILVISNING_"
	// FileExtTOML is the file extension for TOML configuration files.
	FileExtTOML = ".toml"

	DefaultFeedURL          = "data/cars.json"
	DefaultFallbackURL      = "https://www.finn.no/mobility/search/car?orgId=1031027521"
	DefaultPageSize         = 9
	DefaultPlaceholderImage = "assets/images/placeholder.jpg"
	DefaultHeaderThreshold  = 100
)

// Config is the resolved application configuration.
type Config struct {
	FeedURL          string
	FallbackURL      string
	PageSize         int
	PlaceholderImage string
	HeaderThreshold  int
	LogLevel         string
	LogFile          string
	MCP              MCP

	// Warnings lists values that were rejected during validation.
	Warnings []string
	// Source is the config file that was read, if any.
	Source string
}

// MCP holds settings for the MCP server binaries.
type MCP struct {
	Port               string
	AllowedOrigins     []string
	Stateless          bool
	EnableAdmin        bool
	APIKey             string
	RPS                float64
	Burst              int
	SessionTimeout     time.Duration
	CacheClearInterval time.Duration
}

// Options controls where Load looks for its inputs.
type Options struct {
	// Path is an explicit config file. Empty means the default location,
	// which is optional.
	Path string
	// EnvFile is a dotenv file. Empty means ".env" in the working directory,
	// which is optional.
	EnvFile string
}

// Load resolves the configuration.
func Load(opts Options) (Config, error) {
	values := defaults()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		path = filepath.Join(values["config_dir"], "config"+FileExtTOML)
	}
	source, err := loadFile(values, path, explicit)
	if err != nil {
		return Config{}, err
	}

	envFile, explicitEnv := opts.EnvFile, opts.EnvFile != ""
	if !explicitEnv {
		envFile = ".env"
	}
	if err := loadDotenv(values, envFile, explicitEnv); err != nil {
		return Config{}, err
	}

	loadFromEnv(values, os.Environ())

	cfg := build(values)
	cfg.Source = source
	return cfg, nil
}

// Default returns the configuration with no file or environment applied.
func Default() Config {
	return build(defaults())
}

func defaults() map[string]string {
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(home, ".local", "state")
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	return map[string]string{
		"config_dir":               filepath.Join(xdgConfigHome, "bilvisning"),
		"feed_url":                 DefaultFeedURL,
		"fallback_url":             DefaultFallbackURL,
		"page_size":                strconv.Itoa(DefaultPageSize),
		"placeholder_image":        DefaultPlaceholderImage,
		"header_threshold":         strconv.Itoa(DefaultHeaderThreshold),
		"log_level":                "info",
		"log_file":                 filepath.Join(xdgStateHome, "bilvisning", "bilvisning.log"),
		"mcp_port":                 port,
		"mcp_allowed_origins":      "",
		"mcp_stateless":            "false",
		"mcp_enable_admin":         "false",
		"mcp_api_key":              "",
		"mcp_rps":                  "2",
		"mcp_burst":                "5",
		"mcp_session_timeout":      "15m",
		"mcp_cache_clear_interval": "30m",
	}
}

// loadFile merges a TOML file into values. Nested tables are flattened with
// "_", so [mcp] port = "9000" sets mcp_port.
func loadFile(values map[string]string, path string, required bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read config file %s: %w", path, err)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != FileExtTOML {
		return "", fmt.Errorf("unsupported config file extension %q", ext)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := flatten(values, "", raw); err != nil {
		return "", fmt.Errorf("config file %s: %w", path, err)
	}
	return path, nil
}

func flatten(values map[string]string, prefix string, raw map[string]any) error {
	for k, v := range raw {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "_" + key
		}
		if table, ok := v.(map[string]any); ok {
			if err := flatten(values, key, table); err != nil {
				return err
			}
			continue
		}
		converted, ok := coerceConfigValue(v)
		if !ok {
			return fmt.Errorf("unsupported value type for %s: %T", key, v)
		}
		values[key] = converted
	}
	return nil
}

// coerceConfigValue converts a TOML value to its string representation.
func coerceConfigValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := coerceConfigValue(item)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}

func loadDotenv(values map[string]string, path string, required bool) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for k, v := range env {
		applyEnv(values, k, v)
	}
	return nil
}

func loadFromEnv(values map[string]string, environ []string) {
	for _, env := range environ {
		k, v, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		applyEnv(values, k, v)
	}
}

func applyEnv(values map[string]string, name, value string) {
	if !strings.HasPrefix(name, EnvPrefix) {
		return
	}
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	values[key] = value
}
