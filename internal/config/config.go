// Package config defines the project configuration document (spec §6)
// and its atomic read/write, following the teacher's internal/config
// package shape (standardbeagle/lci): a typed struct tree, a Validator
// that fills in defaults, and a KDL-backed document on disk.
package config

import "github.com/codegraphhq/codegraph/internal/types"

// CurrentVersion is the config schema version this build writes.
const CurrentVersion = 1

// Config is the project configuration document living at
// <project>/.codegraph/config.kdl (spec §6).
type Config struct {
	Version           int
	ProjectName       string
	Languages         []string // empty -> all supported, auto-detected
	Include           []string
	Exclude           []string
	Frameworks        []string
	MaxFileSize       int64
	EnableEmbeddings  bool
}

// Default returns a Config with spec §6's documented defaults.
func Default() *Config {
	return &Config{
		Version:          CurrentVersion,
		ProjectName:      "",
		Languages:        nil,
		Include:          []string{"**/*"},
		Exclude:          []string{"**/node_modules/**", "**/.git/**", "**/vendor/**", "**/dist/**", "**/build/**"},
		Frameworks:       nil,
		MaxFileSize:      types.DefaultMaxFileSize,
		EnableEmbeddings: false,
	}
}
