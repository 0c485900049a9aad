// Package core models the immutable source files tracked by the checker
// pipeline.
//
// # Purpose
//
//   - Own the File entity: immutable text plus derived metadata (strictness
//     sigil, line-break index, incremental-build fingerprint).
//   - Hand out stable FileRef handles through the append-only FileTable so
//     every downstream phase addresses files by cheap integer ids.
//   - Scan the `# typed:` sigil sub-grammar that grades how strictly a file
//     is analyzed.
//
// # Scope
//
// Package core performs no IO and never parses the file's actual content
// grammar. Loading and normalization live in internal/driver; the
// fingerprint artifact and its hashing live in internal/fingerprint.
//
// # Concurrency
//
// A File's immutable fields need no synchronization. The line-break index
// and the fingerprint use lock-free install-once protocols and tolerate
// arbitrary first-access races. The strict level and the diagnostic floor
// are plain fields written only during the single-threaded configuration
// phase. The FileTable serializes admission with a mutex of its own.
//
// # Error model
//
// Nothing in this package returns an error. Operations either succeed
// deterministically or panic on caller defects: reading the text of a
// tombstoned or not-yet-read slot, resolving an out-of-range ref, or
// requesting a line outside the file. Absent or misspelled sigils and
// repeated fingerprint installs are not defects and degrade to well-defined
// defaults.
package core
