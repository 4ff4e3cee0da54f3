package main

import (
	"fmt"

	"github.com/CRJFisher/ariadne/internal/coordinator"
	"github.com/CRJFisher/ariadne/internal/types"
)

// coordIndexer adapts a Coordinator to internal/watch's Indexer interface:
// a changed source file is re-read from its sidecar and pushed through
// UpdateFileIndex, a removed one is deregistered. The sidecar itself must
// already have been regenerated by the external indexer by the time the
// watcher's debounce window fires — this command never produces one.
type coordIndexer struct {
	coord *coordinator.Coordinator
}

func (ix *coordIndexer) IndexFile(path string) error {
	lang, ok := languageFromExt(path)
	if !ok {
		return nil
	}
	index, err := loadSidecar(sidecarPath(path))
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return ix.coord.UpdateFileIndex(types.FilePath(path), lang, index)
}

func (ix *coordIndexer) RemoveFile(path string) error {
	ix.coord.DeregisterFile(types.FilePath(path))
	return nil
}
