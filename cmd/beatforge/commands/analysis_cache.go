package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/bloomify/beatforge/pkg/analysis"
	"github.com/bloomify/beatforge/pkg/cache"
)

// openCache opens the on-disk analysis cache. Cache trouble is advisory: the
// caller gets nil and proceeds uncached.
func openCache(dir string) cache.Store {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "cache unavailable: %v\n", err)
		}
		return nil
	}
	store, err := cache.NewBadger(cache.BadgerOptions{Dir: dir})
	if err != nil {
		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "cache unavailable: %v\n", err)
		}
		return nil
	}
	return store
}

// loadAnalysis resolves and parses the analysis sidecar for an audio file,
// consulting the cache first. The cached value is the msgpack encoding of the
// parsed document keyed by a digest of the sidecar bytes, so edits to the
// sidecar naturally miss. Returns the document and whether it came from cache.
func loadAnalysis(ctx context.Context, audioPath string, store cache.Store) (*analysis.Analysis, bool, error) {
	var sidecar string
	for _, p := range analysis.SidecarPaths(audioPath) {
		if _, err := os.Stat(p); err == nil {
			sidecar = p
			break
		}
	}
	if sidecar == "" {
		return nil, false, fmt.Errorf("%w for %s (expected %s)",
			analysis.ErrNoSidecar, audioPath, analysis.SidecarPaths(audioPath)[0])
	}

	data, err := os.ReadFile(sidecar)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", sidecar, err)
	}
	digest := cache.Digest(data)

	if store != nil {
		if cached, err := store.Get(ctx, digest); err == nil {
			if a, err := analysis.ParseBinary(cached); err == nil {
				return a, true, nil
			}
			// A corrupt entry is dropped, then reparsed below.
			store.Delete(ctx, digest)
		}
	}

	a, err := analysis.ParseSidecar(sidecar, data)
	if err != nil {
		return nil, false, err
	}

	if store != nil {
		if bin, err := a.MarshalBinary(); err == nil {
			if err := store.Set(ctx, digest, bin); err != nil && IsVerbose() {
				fmt.Fprintf(os.Stderr, "cache write failed: %v\n", err)
			}
		}
	}
	return a, false, nil
}
