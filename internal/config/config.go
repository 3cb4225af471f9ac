// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.askdocs/config.yaml, or ./config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// A .env file in the working directory is loaded into the environment
// before anything else, so GEMINI_API_KEY can live there instead of the
// shell profile.
//
// Security: the API key is read from the environment only, never from the
// config file, and is masked in MarshalJSON/String.
//
// Error Handling:
//   - Uses sentinel errors for Go-idiomatic error checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the Gemini API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidThinkingBudget indicates the thinking budget is out of range.
	ErrInvalidThinkingBudget = errors.New("invalid thinking budget")

	// ErrInvalidStorePrefix indicates the store display-name prefix is invalid.
	ErrInvalidStorePrefix = errors.New("invalid store prefix")

	// ErrInvalidFilesDir indicates the upload directory setting is invalid.
	ErrInvalidFilesDir = errors.New("invalid files directory")

	// ErrInvalidExportDir indicates the export directory setting is invalid.
	ErrInvalidExportDir = errors.New("invalid export directory")
)

const (
	// DefaultModelName is the Gemini model used when none is configured.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultStorePrefix prefixes generated file-search store display names.
	DefaultStorePrefix = "file-search-chat"

	// DefaultThinkingBudget means "let the model decide". Any non-negative
	// value is sent explicitly; -1 omits the parameter.
	DefaultThinkingBudget = -1

	// MaxThinkingBudget is the largest budget accepted by current Gemini
	// models. Reference: https://ai.google.dev/gemini-api/docs/thinking
	MaxThinkingBudget = 32768

	// DefaultSystemInstruction guides the model toward grounded, cited answers.
	DefaultSystemInstruction = `You are a helpful AI assistant with access to a knowledge base through file search.
When answering questions, use the information from the uploaded documents to provide accurate and relevant answers.
Always cite your sources when using information from the documents.`
)

// Config stores application configuration.
// SECURITY: APIKey is masked in MarshalJSON(); keep it that way when
// adding new sensitive fields.
type Config struct {
	// Gemini API key. Environment only (GEMINI_API_KEY), never the config file.
	APIKey string `mapstructure:"-" json:"api_key"`

	// Model configuration
	ModelName         string `mapstructure:"model_name" json:"model_name"`
	SystemInstruction string `mapstructure:"system_instruction" json:"system_instruction"`

	// Thinking configuration. When ThinkingEnabled is false the request
	// carries an explicit zero budget; when enabled, ThinkingBudget -1
	// omits the parameter and lets the model decide.
	ThinkingEnabled bool  `mapstructure:"thinking_enabled" json:"thinking_enabled"`
	ThinkingBudget  int32 `mapstructure:"thinking_budget" json:"thinking_budget"`

	// File search configuration
	FilesDir    string `mapstructure:"files_dir" json:"files_dir"`
	StorePrefix string `mapstructure:"store_prefix" json:"store_prefix"`

	// Transcript export configuration
	ExportDir string `mapstructure:"export_dir" json:"export_dir"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".askdocs")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.APIKey = os.Getenv("GEMINI_API_KEY")

	// CRITICAL: Validate immediately (fail-fast)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("system_instruction", DefaultSystemInstruction)
	v.SetDefault("thinking_enabled", true)
	v.SetDefault("thinking_budget", DefaultThinkingBudget)
	v.SetDefault("files_dir", "files")
	v.SetDefault("store_prefix", DefaultStorePrefix)
	v.SetDefault("export_dir", "exports")
}

// bindEnvVariables binds runtime override variables explicitly.
// GEMINI_API_KEY is read directly from the environment in Load, not via
// viper, so it can never be written back to a config file.
func bindEnvVariables(v *viper.Viper) {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail).
	// If this panics, it's a BUG in our code, not a runtime error.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("model_name", "ASKDOCS_MODEL_NAME")
	mustBind("files_dir", "ASKDOCS_FILES_DIR")
	mustBind("export_dir", "ASKDOCS_EXPORT_DIR")
	mustBind("store_prefix", "ASKDOCS_STORE_PREFIX")
}

// maskedValue is the placeholder for masked sensitive data.
// Full-width blocks (U+2588) avoid accidental substring matches against
// real key material.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Secrets of 8 characters or fewer are fully masked; longer ones keep the
// first and last 2 characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.APIKey = maskSecret(a.APIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
