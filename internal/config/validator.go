package config

import (
	"fmt"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

// Validator validates a Config and fills in defaults, mirroring the
// teacher's config.Validator (standardbeagle/lci internal/config/validator.go).
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator { return &Validator{} }

// ValidateAndSetDefaults validates cfg and applies smart defaults in place.
// A schema version newer than CurrentVersion is reported as a
// StoreIntegrity *errors.Error; the other failures (non-positive
// MaxFileSize, unsupported language) are plain errors, since spec §7 has
// no dedicated "invalid config" kind.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}
	if cfg.Version > CurrentVersion {
		return cgerrors.New(cgerrors.StoreIntegrity, "validate_config",
			fmt.Errorf("config schema version %d is newer than supported %d", cfg.Version, CurrentVersion))
	}

	if cfg.MaxFileSize <= 0 {
		return fmt.Errorf("MaxFileSize must be positive, got %d", cfg.MaxFileSize)
	}

	for _, lang := range cfg.Languages {
		if !isSupported(lang) {
			return fmt.Errorf("unsupported language in config: %q", lang)
		}
	}

	if len(cfg.Include) == 0 {
		cfg.Include = Default().Include
	}

	return nil
}

func isSupported(lang string) bool {
	for _, l := range SupportedLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}
