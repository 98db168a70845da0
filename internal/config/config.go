// Package config provides the cells tool configuration model and defaults.
package config

// CellsConfig represents the cells configuration model.
// All fields are optional (zero value = not set). CLI flags take precedence.
type CellsConfig struct {
	// CellsFile is a JSON cell mapping as printed by `buck2 audit cell --json`.
	// Relative paths are resolved against the directory of the config file.
	CellsFile string `yaml:"cellsFile,omitempty"`

	// Buck is the command used to run the build system.
	Buck string `yaml:"buck,omitempty"`

	// FromBuck asks buck for the cell mapping instead of reading CellsFile.
	FromBuck *bool `yaml:"fromBuck,omitempty"`

	// Absolute makes resolve print physical paths.
	Absolute *bool `yaml:"absolute,omitempty"`

	// Output
	LogLevel string `yaml:"logLevel,omitempty"` // debug, info, warn, error, silent
	Prefix   *bool  `yaml:"prefix,omitempty"`   // pointer to distinguish unset from false
}

const (
	// DefaultBuck is the build system command used when none is configured.
	DefaultBuck = "buck2"

	// DirName is the per-user configuration directory under $HOME.
	DirName = ".cells"

	// EnvCellsFile overrides CellsFile from the environment.
	EnvCellsFile = "CELLS_FILE"
)

// BoolValue dereferences an optional flag, falling back to def when unset.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// BuckCommand returns the configured build command or DefaultBuck.
func (c CellsConfig) BuckCommand() string {
	if c.Buck == "" {
		return DefaultBuck
	}
	return c.Buck
}
