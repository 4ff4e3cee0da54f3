// Package resolveconfig loads project configuration for the resolution
// core: which languages to index, which files to include/exclude, and
// warm-start cache settings. Modeled on the teacher's internal/config
// package — a plain Config struct with sane defaults, optionally overridden
// by a project-local file.
package resolveconfig

// Config is the resolved project configuration, after defaults and any
// .ariadne.kdl override have been merged.
type Config struct {
	Version int

	Project   Project
	Languages Languages
	Watch     Watch
	Cache     Cache

	Include []string
	Exclude []string
}

// Project carries project-root information, including the Python-specific
// override a pyproject.toml can supply (spec.md §4.2 project-root
// heuristic).
type Project struct {
	Root       string
	PythonRoot string // overrides the Python resolver's discovered project root, if set
}

// Languages holds per-language toggles for the four supported languages.
// Nothing in this repository reads them: files are indexed by extension
// whatever these values are.
type Languages struct {
	JavaScript bool
	TypeScript bool
	Python     bool
	Rust       bool
}

// Watch configures the live file watcher (internal/watch).
type Watch struct {
	Enabled    bool
	DebounceMs int
}

// Cache holds settings for the optional warm-start on-disk cache.
// internal/coordinator's WarmStart takes its entries from its caller and
// does not read these settings.
type Cache struct {
	Enabled bool
	Dir     string
}

// Default returns the baseline configuration used when no .ariadne.kdl file
// is present, or as the starting point a found file's values are merged
// into.
func Default(projectRoot string) *Config {
	return &Config{
		Version: 1,
		Project: Project{Root: projectRoot},
		Languages: Languages{
			JavaScript: true,
			TypeScript: true,
			Python:     true,
			Rust:       true,
		},
		Watch: Watch{
			Enabled:    true,
			DebounceMs: 100,
		},
		Cache: Cache{
			Enabled: true,
			Dir:     ".ariadne-cache",
		},
		Include: []string{},
		Exclude: defaultExclusions(),
	}
}

func defaultExclusions() []string {
	return []string{
		"**/.*/**",
		"**/node_modules/**",
		"**/vendor/**",
		"**/venv/**",
		"**/.venv/**",
		"**/__pycache__/**",
		"**/*.pyc",
		"**/target/**",
		"**/dist/**",
		"**/build/**",
		"**/out/**",
		"**/.git/**",
	}
}
