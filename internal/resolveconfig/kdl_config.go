package resolveconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL loads .ariadne.kdl from projectRoot, merging it over Default. A
// missing file is not an error — it returns Default(projectRoot) unchanged,
// matching the teacher's "no file -> defaults" fallback in
// internal/config/kdl_config.go.
func LoadKDL(projectRoot string) (*Config, error) {
	cfg := Default(projectRoot)

	kdlPath := filepath.Join(projectRoot, ".ariadne.kdl")
	content, err := os.ReadFile(kdlPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read .ariadne.kdl: %w", err)
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse .ariadne.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) {
					if filepath.IsAbs(v) {
						cfg.Project.Root = v
					} else {
						cfg.Project.Root = filepath.Clean(filepath.Join(projectRoot, v))
					}
				})
				assignSimpleString(cn, "python_root", func(v string) { cfg.Project.PythonRoot = v })
			}
		case "languages":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "javascript":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Languages.JavaScript = b
					}
				case "typescript":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Languages.TypeScript = b
					}
				case "python":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Languages.Python = b
					}
				case "rust":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Languages.Rust = b
					}
				}
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		case "cache":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Cache.Enabled = b
					}
				case "dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Cache.Dir = s
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}

	return cfg, nil
}

// Load is LoadKDL followed by a pyproject.toml [tool.ariadne] merge: a
// project_root override found there fills Project.PythonRoot whenever the
// .ariadne.kdl file left it unset, matching the teacher's layered
// defaults-then-file-then-language-marker precedence in
// internal/config/config.go.
func Load(projectRoot string) (*Config, error) {
	cfg, err := LoadKDL(projectRoot)
	if err != nil {
		return nil, err
	}
	overrides, err := LoadPyProjectOverrides(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read pyproject.toml: %w", err)
	}
	if cfg.Project.PythonRoot == "" && overrides.ProjectRoot != "" {
		cfg.Project.PythonRoot = overrides.ProjectRoot
	}
	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
