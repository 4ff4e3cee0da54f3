package coordinator

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/CRJFisher/ariadne/internal/types"
)

// CachedFile is one entry of the optional on-disk warm-start cache: a
// file's SemanticIndex as last indexed, tagged with a digest of the source
// bytes it was computed from, so a stale entry can be detected cheaply
// before the indexing layer re-parses anything (spec.md §6 "Persisted state
// layout").
type CachedFile struct {
	File     types.FilePath
	Language types.Language
	Digest   uint64
	Index    *types.SemanticIndex
}

// Digest hashes a file's current source bytes the same way a CachedFile's
// Digest field was computed, so a caller can decide whether a cache entry
// is still valid without re-running the indexer.
func Digest(sourceBytes []byte) uint64 {
	return xxhash.Sum64(sourceBytes)
}

// WarmStart loads a batch of previously cached file indexes at startup.
// currentDigest is called once per entry, concurrently via errgroup (since
// hashing source bytes is pure CPU work independent of any registry state),
// to check whether the entry is still fresh. Stale entries are skipped and
// returned in the second result so the caller can schedule a real re-index;
// valid entries are applied sequentially through the normal UpdateFileIndex
// path so the pipeline ordering invariants still hold.
func (c *Coordinator) WarmStart(entries []CachedFile, currentDigest func(file types.FilePath) (uint64, bool)) (loaded int, stale []types.FilePath, err error) {
	fresh := make([]bool, len(entries))

	g, _ := errgroup.WithContext(context.Background())
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			digest, ok := currentDigest(entry.File)
			fresh[i] = ok && digest == entry.Digest
			return nil
		})
	}
	if waitErr := g.Wait(); waitErr != nil {
		return 0, nil, waitErr
	}

	for i, entry := range entries {
		if !fresh[i] {
			stale = append(stale, entry.File)
			continue
		}
		if updateErr := c.UpdateFileIndex(entry.File, entry.Language, entry.Index); updateErr != nil {
			// A malformed cached index is itself a stale-cache symptom, not a
			// fatal load failure: treat it the same as a digest miss.
			stale = append(stale, entry.File)
			continue
		}
		loaded++
	}
	return loaded, stale, nil
}
