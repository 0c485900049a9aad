package core

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"fortio.org/safecast"

	"tycho/internal/fingerprint"
)

// File is a single immutable source text tracked by the pipeline.
//
// path, source, sourceType, epoch and the original sigil are fixed at
// construction and safe to read from any goroutine without synchronization.
// strictLevel and minErrorLevel are plain fields: the coordinator that owns
// the table serializes writes to them during the configuration phase, and
// concurrent unsynchronized writes are out of contract. The line-break index
// and the fingerprint use the atomic install protocols described on their
// accessors.
type File struct {
	path       string
	source     []byte
	sourceType SourceType
	epoch      uint32

	originalSigil StrictLevel
	strictLevel   StrictLevel
	minErrorLevel StrictLevel

	lineBreaks atomic.Pointer[[]int32]
	hash       atomic.Pointer[fingerprint.FileHash]
	cached     atomic.Bool
}

// NewFile constructs a File, scanning source once for its strictness sigil.
// The scan result becomes both the permanent original sigil and the initial
// strict level. Construction never fails: any byte sequence is a valid file.
func NewFile(path string, source []byte, sourceType SourceType, epoch uint32) *File {
	sigil := FileSigil(source)
	return &File{
		path:          path,
		source:        source,
		sourceType:    sourceType,
		epoch:         epoch,
		originalSigil: sigil,
		strictLevel:   sigil,
	}
}

// Path returns the file's logical path. Valid on any slot, tombstones
// included.
func (f *File) Path() string {
	return f.path
}

// Source returns the file's text. Reading the text of a tombstone or
// not-yet-read slot is a defect in the caller, not a recoverable condition.
func (f *File) Source() []byte {
	if !f.sourceType.readable() {
		panic(fmt.Errorf("source read on %s slot %q", f.sourceType, f.path))
	}
	return f.source
}

func (f *File) SourceType() SourceType {
	return f.sourceType
}

// Epoch returns the generation the file was entered at.
func (f *File) Epoch() uint32 {
	return f.epoch
}

// OriginalSigil returns the sigil scanned at construction. It never changes,
// even when the strict level is later overridden.
func (f *File) OriginalSigil() StrictLevel {
	return f.originalSigil
}

func (f *File) StrictLevel() StrictLevel {
	return f.strictLevel
}

// SetStrictLevel overrides the effective strict level, e.g. from a forced
// command-line level. Configuration-phase only.
func (f *File) SetStrictLevel(level StrictLevel) {
	f.strictLevel = level
}

// MinErrorLevel returns the floor below which diagnostics for this file are
// suppressed.
func (f *File) MinErrorLevel() StrictLevel {
	return f.minErrorLevel
}

// SetMinErrorLevel raises or lowers the diagnostic floor. Configuration-phase
// only.
func (f *File) SetMinErrorLevel(level StrictLevel) {
	f.minErrorLevel = level
}

// LineBreaks returns the file's line-break index: index[0] is -1, interior
// entries are the byte offsets of '\n' characters in increasing order, and
// the last entry is len(source).
//
// The index is built lazily. Source text is immutable, so every build
// produces byte-identical output; first readers race to build and the first
// CAS wins, losers discard their work and read the installed value. No
// locks, and once installed the slice is only ever read.
func (f *File) LineBreaks() []int32 {
	if !f.sourceType.readable() {
		panic(fmt.Errorf("line breaks requested on %s slot %q", f.sourceType, f.path))
	}
	if idx := f.lineBreaks.Load(); idx != nil {
		return *idx
	}
	mine := scanLineBreaks(f.source)
	f.lineBreaks.CompareAndSwap(nil, &mine)
	return *f.lineBreaks.Load()
}

// LineCount returns the number of lines: one more than the number of newline
// bytes, so a trailing newline yields a final empty line.
func (f *File) LineCount() int {
	return len(f.LineBreaks()) - 1
}

// GetLine returns the i-th line (1-based), newline excluded. An index
// outside 1..LineCount() is a caller defect.
func (f *File) GetLine(i int) string {
	breaks := f.LineBreaks()
	if i <= 0 || i >= len(breaks) {
		panic(fmt.Errorf("line %d out of range 1..%d in %q", i, len(breaks)-1, f.path))
	}
	start := breaks[i-1] + 1
	end := breaks[i]
	return string(f.source[start:end])
}

// SetFingerprint installs the file's fingerprint artifact and marks the
// on-disk cache entry stale. The first install wins; later calls are silent
// no-ops so that a reference already handed to another subsystem is never
// invalidated.
func (f *File) SetFingerprint(h *fingerprint.FileHash) {
	if f.hash.CompareAndSwap(nil, h) {
		f.cached.Store(false)
	}
}

// Fingerprint returns the installed artifact, or nil when none has been
// computed yet.
func (f *File) Fingerprint() *fingerprint.FileHash {
	return f.hash.Load()
}

// Cached reports whether the file's fingerprint is known to be persisted in
// the on-disk cache.
func (f *File) Cached() bool {
	return f.cached.Load()
}

func (f *File) SetCached(v bool) {
	f.cached.Store(v)
}

// DeepCopy returns an independent File for staging speculative edits. The
// copy snapshots the line index by value (no shared backing array), carries
// over the strict level and diagnostic floor, and starts with an empty
// fingerprint: a staged variant's fingerprint cannot be assumed identical to
// the original's, it must be recomputed.
func (f *File) DeepCopy() *File {
	cp := NewFile(f.path, slices.Clone(f.source), f.sourceType, f.epoch)
	if idx := f.lineBreaks.Load(); idx != nil {
		snapshot := slices.Clone(*idx)
		cp.lineBreaks.Store(&snapshot)
	}
	cp.strictLevel = f.strictLevel
	cp.minErrorLevel = f.minErrorLevel
	return cp
}

// IsPayload reports whether the file ships inside the checker's payload.
func (f *File) IsPayload() bool {
	return f.sourceType == SourcePayload || f.sourceType == SourcePayloadGeneration
}

// IsPackage reports whether the file is a package declaration file.
func (f *File) IsPackage() bool {
	return f.sourceType == SourcePackage
}

// IsStdlib re-scans the source rather than trusting the current strict
// level: a forced level override must never promote a file into the stdlib
// set.
func (f *File) IsStdlib() bool {
	return FileSigil(f.Source()) == StrictStdlib
}

// IsInterface reports whether the file is an interface stub.
func (f *File) IsInterface() bool {
	return strings.HasSuffix(f.path, ".tyi")
}

func scanLineBreaks(source []byte) []int32 {
	// Checked once up front; interior offsets are strictly smaller.
	length, err := safecast.Conv[int32](len(source))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	out := make([]int32, 0, 16)
	out = append(out, -1)
	for i, b := range source {
		if b == '\n' {
			out = append(out, int32(i))
		}
	}
	out = append(out, length)
	return out
}
