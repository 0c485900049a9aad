package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tycho/internal/core"
	"tycho/internal/fingerprint"
)

// Options controls a scan batch.
type Options struct {
	// Jobs caps fingerprinting parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// ForceLevel overrides the strict level of scanned files when
	// HasForceLevel is set. Files sigiled `ignore` and payload files keep
	// their own level: forcing must not resurrect ignored files or
	// reclassify the payload.
	ForceLevel    core.StrictLevel
	HasForceLevel bool

	// MinErrorLevel sets the per-file diagnostic floor when
	// HasMinErrorLevel is set.
	MinErrorLevel    core.StrictLevel
	HasMinErrorLevel bool

	// Cache, when non-nil, persists fingerprint artifacts across runs.
	Cache *HashCache
}

// FileReport summarizes one scanned file.
type FileReport struct {
	Ref   core.FileRef
	Path  string // censored, stable across build environments
	Sigil core.StrictLevel
	Level core.StrictLevel
	Lines int
	// CacheHit reports that the fingerprint came from the disk cache.
	CacheHit bool
}

// ScanDir admits every source file under dir into the table and scans the
// batch. Results follow the sorted file order.
func ScanDir(ctx context.Context, table *core.FileTable, dir string, opts Options) ([]FileReport, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return ScanFiles(ctx, table, files, opts)
}

// ScanFiles loads the given paths, applies configuration overrides, and
// fingerprints the batch in parallel.
func ScanFiles(ctx context.Context, table *core.FileTable, paths []string, opts Options) ([]FileReport, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	refs := make([]core.FileRef, len(paths))
	for i, path := range paths {
		ref, err := Load(table, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		refs[i] = ref
	}

	// Configuration phase: strict-level and floor writes are plain field
	// stores, so they happen here, before any worker starts.
	for _, ref := range refs {
		f := ref.Resolve(table)
		if opts.HasForceLevel && f.OriginalSigil() != core.StrictIgnore && !f.IsPayload() {
			f.SetStrictLevel(opts.ForceLevel)
		}
		if opts.HasMinErrorLevel {
			f.SetMinErrorLevel(opts.MinErrorLevel)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slot-per-index results, no mutex needed.
	reports := make([]FileReport, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(refs)))
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			f := ref.Resolve(table)
			report, err := fingerprintFile(f, ref, opts.Cache)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func fingerprintFile(f *core.File, ref core.FileRef, cache *HashCache) (FileReport, error) {
	h := fingerprint.Compute(f.Path(), f.Source())

	hit := false
	if cache != nil {
		// Keyed by path and content together: two files sharing content
		// must each get an artifact carrying their own path digest.
		key := h.Key()
		stored, ok, err := cache.Get(key)
		switch {
		case err != nil:
			return FileReport{}, err
		case ok:
			// Reuse the persisted artifact; set-once semantics keep it
			// stable for everyone downstream.
			f.SetFingerprint(stored)
			hit = true
		default:
			f.SetFingerprint(h)
			if err := cache.Put(key, f.Fingerprint()); err != nil {
				return FileReport{}, err
			}
		}
		f.SetCached(true)
	} else {
		f.SetFingerprint(h)
	}

	return FileReport{
		Ref:      ref,
		Path:     core.CensorPath(f.Path()),
		Sigil:    f.OriginalSigil(),
		Level:    f.StrictLevel(),
		Lines:    f.LineCount(),
		CacheHit: hit,
	}, nil
}
