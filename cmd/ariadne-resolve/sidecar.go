package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/CRJFisher/ariadne/internal/coordinator"
	"github.com/CRJFisher/ariadne/internal/resolveconfig"
	"github.com/CRJFisher/ariadne/internal/types"
)

// sidecarSuffix is the fixed naming convention a SemanticIndex JSON file
// must follow to be picked up for a source file: "foo.ts" is indexed by
// "foo.ts.semindex.json" sitting next to it. Producing that file is an
// external collaborator's job (spec.md §13 Non-goals: parsing source text is
// out of scope for this core) — this command only ever consumes it.
const sidecarSuffix = ".semindex.json"

// sidecarPath returns the sidecar file a source file would be indexed from.
func sidecarPath(sourceFile string) string {
	return sourceFile + sidecarSuffix
}

// sourceFromSidecar strips the sidecar suffix back off, the inverse of
// sidecarPath.
func sourceFromSidecar(sidecar string) (string, bool) {
	if !strings.HasSuffix(sidecar, sidecarSuffix) {
		return "", false
	}
	return strings.TrimSuffix(sidecar, sidecarSuffix), true
}

// languageFromExt guesses a source file's language from its extension.
// buildCoordinator and coordIndexer use it for every sidecar; the
// SemanticIndex's own Language field is not consulted.
func languageFromExt(path string) (types.Language, bool) {
	switch filepath.Ext(path) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return types.LanguageJavaScript, true
	case ".ts", ".tsx", ".mts", ".cts":
		return types.LanguageTypeScript, true
	case ".py", ".pyi":
		return types.LanguagePython, true
	case ".rs":
		return types.LanguageRust, true
	default:
		return "", false
	}
}

// loadSidecar reads and decodes one file's SemanticIndex JSON sidecar.
func loadSidecar(path string) (*types.SemanticIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var index types.SemanticIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &index, nil
}

// walkSidecars finds every *.semindex.json file under root, skipping
// anything cfg.Exclude rules out, and returns the source path each one
// belongs to.
func walkSidecars(root string, cfg *resolveconfig.Config) ([]string, error) {
	var sources []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if shouldExcludeDir(root, path, cfg) {
				return filepath.SkipDir
			}
			return nil
		}
		source, ok := sourceFromSidecar(path)
		if !ok {
			return nil
		}
		sources = append(sources, source)
		return nil
	})
	return sources, err
}

func shouldExcludeDir(root, path string, cfg *resolveconfig.Config) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range cfg.Exclude {
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// buildCoordinator walks cfg.Project.Root for sidecar files and loads every
// one it finds into a fresh Coordinator. Returns the number of files
// indexed and the first hard decode error encountered, if any; a file whose
// language can't be determined from its extension is skipped rather than
// treated as fatal.
func buildCoordinator(cfg *resolveconfig.Config) (*coordinator.Coordinator, int, error) {
	coord := coordinator.New()
	coord.ApplyConfig(cfg)

	sources, err := walkSidecars(cfg.Project.Root, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("scanning %s for sidecar indexes: %w", cfg.Project.Root, err)
	}

	loaded := 0
	for _, source := range sources {
		lang, ok := languageFromExt(source)
		if !ok {
			continue
		}
		index, err := loadSidecar(sidecarPath(source))
		if err != nil {
			return nil, loaded, err
		}
		if err := coord.UpdateFileIndex(types.FilePath(source), lang, index); err != nil {
			return nil, loaded, fmt.Errorf("indexing %s: %w", source, err)
		}
		loaded++
	}
	return coord, loaded, nil
}
