// Package config provides configuration management for the squeeze
// parameter tuner.
package config

// Default configuration values for squeeze.
const (
	// DefaultBinary is the compressor binary looked up on PATH.
	DefaultBinary = "7z"

	// DefaultRoot is the working directory holding the directories to
	// compress.
	DefaultRoot = "."

	// DefaultProbe is the size-probe strategy ("du" or "native").
	DefaultProbe = "du"

	// DefaultFormat is the output format for the final report.
	DefaultFormat = "pretty"
)

// DefaultExclusions contains directory names never considered for
// compression. Hidden directories are excluded unconditionally.
var DefaultExclusions = []string{
	"venv",
}
