package config

import (
	"errors"
	"testing"
)

// validBaseConfig returns a Config with all required fields set.
func validBaseConfig() *Config {
	return &Config{
		APIKey:            "test-api-key",
		ModelName:         DefaultModelName,
		SystemInstruction: DefaultSystemInstruction,
		ThinkingEnabled:   true,
		ThinkingBudget:    DefaultThinkingBudget,
		FilesDir:          "files",
		StorePrefix:       DefaultStorePrefix,
		ExportDir:         "exports",
	}
}

func TestValidateSuccess(t *testing.T) {
	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error with valid config: %v", err)
	}
}

// TestValidateMissingAPIKey checks the only fatal startup condition:
// validation must fail when the API key is absent regardless of other
// option values, and succeed otherwise.
func TestValidateMissingAPIKey(t *testing.T) {
	cfg := validBaseConfig()
	cfg.APIKey = ""
	err := cfg.Validate()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate() = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidateNilConfig(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Errorf("Validate() on nil = %v, want ErrConfigNil", err)
	}
}

func TestValidateFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty model name", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"whitespace model name", func(c *Config) { c.ModelName = "   " }, ErrInvalidModelName},
		{"thinking budget below range", func(c *Config) { c.ThinkingBudget = -2 }, ErrInvalidThinkingBudget},
		{"thinking budget above range", func(c *Config) { c.ThinkingBudget = MaxThinkingBudget + 1 }, ErrInvalidThinkingBudget},
		{"empty store prefix", func(c *Config) { c.StorePrefix = "" }, ErrInvalidStorePrefix},
		{"empty files dir", func(c *Config) { c.FilesDir = "" }, ErrInvalidFilesDir},
		{"empty export dir", func(c *Config) { c.ExportDir = "" }, ErrInvalidExportDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateThinkingBudgetBoundaries(t *testing.T) {
	for _, budget := range []int32{-1, 0, MaxThinkingBudget} {
		cfg := validBaseConfig()
		cfg.ThinkingBudget = budget
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with budget %d: unexpected error %v", budget, err)
		}
	}
}
