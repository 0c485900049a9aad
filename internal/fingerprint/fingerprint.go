// Package fingerprint computes the per-file artifacts used for
// incremental-recomputation decisions. Digests are xxh3-128: fast, stable
// across runs, and wide enough that collisions are not a practical concern
// for cache keying.
package fingerprint

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"fortio.org/safecast"
	"github.com/zeebo/xxh3"
)

// Digest is a 128-bit content digest.
type Digest [16]byte

// DigestOf hashes a byte buffer.
func DigestOf(data []byte) Digest {
	return Digest(xxh3.Hash128(data).Bytes())
}

// DigestOfString hashes a string without copying it.
func DigestOfString(s string) Digest {
	return Digest(xxh3.HashString128(s).Bytes())
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether the digest is the all-zero value, which no real
// input produces in practice and which the cache treats as "absent".
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// FileHash is the opaque fingerprint artifact cached once per file.
// Consumers treat it as a value: once a pointer to a FileHash has been
// handed out, the struct is never mutated.
type FileHash struct {
	// Path digests the file's logical path so a rename invalidates
	// downstream artifacts even when content is untouched.
	Path Digest
	// Content digests the file's full text.
	Content Digest
	// Lines snapshots the newline count at hashing time.
	Lines uint32
}

// Compute builds the fingerprint artifact for a file. Pure and total: any
// byte sequence hashes successfully.
func Compute(path string, source []byte) *FileHash {
	lines, err := safecast.Conv[uint32](bytes.Count(source, []byte{'\n'}))
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return &FileHash{
		Path:    DigestOfString(path),
		Content: DigestOf(source),
		Lines:   lines,
	}
}

// Key folds both digests into a single cache key. Files that share content
// but not a path must not collide on each other's stored artifacts.
func (h *FileHash) Key() Digest {
	var buf [32]byte
	copy(buf[:16], h.Path[:])
	copy(buf[16:], h.Content[:])
	return DigestOf(buf[:])
}
