package resolveconfig

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// PythonOverrides are the Python-specific settings a pyproject.toml's
// [tool.ariadne] table can supply, read the same loosely-typed-map way the
// teacher's build_artifact_detector.go reads Cargo.toml.
type PythonOverrides struct {
	ProjectRoot string // overrides PythonResolver.ProjectRoot's own heuristic
}

// LoadPyProjectOverrides reads <dir>/pyproject.toml's [tool.ariadne] table,
// if present. A missing file or missing table is not an error: it returns a
// zero-value PythonOverrides, leaving the Python resolver's own project-root
// heuristic (spec.md §4.2) in charge.
func LoadPyProjectOverrides(dir string) (PythonOverrides, error) {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if os.IsNotExist(err) {
		return PythonOverrides{}, nil
	}
	if err != nil {
		return PythonOverrides{}, err
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return PythonOverrides{}, err
	}

	tool, ok := doc["tool"].(map[string]interface{})
	if !ok {
		return PythonOverrides{}, nil
	}
	ariadne, ok := tool["ariadne"].(map[string]interface{})
	if !ok {
		return PythonOverrides{}, nil
	}

	overrides := PythonOverrides{}
	if root, ok := ariadne["project_root"].(string); ok {
		overrides.ProjectRoot = filepath.Join(dir, root)
	}
	return overrides, nil
}
