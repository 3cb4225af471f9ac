package config

import (
	"fmt"
	"strings"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	// API key is required for every remote operation. Validation is the
	// only startup gate; all other options have workable defaults.
	if c.APIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required\n"+
			"Get your API key at: https://ai.google.dev/gemini-api/docs/api-key",
			ErrMissingAPIKey)
	}

	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	// -1 means "omit the parameter"; anything else is sent verbatim and
	// must be in the range the API accepts.
	if c.ThinkingBudget < DefaultThinkingBudget || c.ThinkingBudget > MaxThinkingBudget {
		return fmt.Errorf("%w: must be between -1 and %d, got %d",
			ErrInvalidThinkingBudget, MaxThinkingBudget, c.ThinkingBudget)
	}

	if strings.TrimSpace(c.StorePrefix) == "" {
		return fmt.Errorf("%w: store_prefix cannot be empty", ErrInvalidStorePrefix)
	}

	if strings.TrimSpace(c.FilesDir) == "" {
		return fmt.Errorf("%w: files_dir cannot be empty", ErrInvalidFilesDir)
	}

	if strings.TrimSpace(c.ExportDir) == "" {
		return fmt.Errorf("%w: export_dir cannot be empty", ErrInvalidExportDir)
	}

	return nil
}
