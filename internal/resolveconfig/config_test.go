package resolveconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/proj")
	assert.Equal(t, "/proj", cfg.Project.Root)
	assert.True(t, cfg.Languages.JavaScript)
	assert.True(t, cfg.Languages.Rust)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 100, cfg.Watch.DebounceMs)
	assert.True(t, cfg.Cache.Enabled)
	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
}

func TestLoadKDL_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadKDL(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), cfg)
}

func TestLoadKDL_OverridesMerge(t *testing.T) {
	dir := t.TempDir()
	content := `
project {
    python_root "src"
}
languages {
    rust false
}
watch {
    enabled false
    debounce_ms 250
}
cache {
    dir ".cache"
}
exclude "**/fixtures/**"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ariadne.kdl"), []byte(content), 0o644))

	cfg, err := LoadKDL(dir)
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.Project.PythonRoot)
	assert.False(t, cfg.Languages.Rust)
	assert.True(t, cfg.Languages.JavaScript, "languages not mentioned keep their default")
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
	assert.Equal(t, ".cache", cfg.Cache.Dir)
	assert.Equal(t, []string{"**/fixtures/**"}, cfg.Exclude)
}

func TestLoadPyProjectOverrides_Missing(t *testing.T) {
	dir := t.TempDir()
	overrides, err := LoadPyProjectOverrides(dir)
	require.NoError(t, err)
	assert.Equal(t, PythonOverrides{}, overrides)
}

func TestLoadPyProjectOverrides_ToolAriadneTable(t *testing.T) {
	dir := t.TempDir()
	content := `
[project]
name = "demo"

[tool.ariadne]
project_root = "src"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0o644))

	overrides, err := LoadPyProjectOverrides(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src"), overrides.ProjectRoot)
}

func TestLoadPyProjectOverrides_NoToolTable(t *testing.T) {
	dir := t.TempDir()
	content := `
[project]
name = "demo"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0o644))

	overrides, err := LoadPyProjectOverrides(dir)
	require.NoError(t, err)
	assert.Equal(t, PythonOverrides{}, overrides)
}

func TestLoad_PyProjectFillsUnsetPythonRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(`
[tool.ariadne]
project_root = "lib"
`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lib"), cfg.Project.PythonRoot)
}

func TestLoad_KDLPythonRootTakesPrecedenceOverPyProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(`
[tool.ariadne]
project_root = "lib"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ariadne.kdl"), []byte(`
project {
    python_root "explicit"
}
`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Project.PythonRoot)
}
