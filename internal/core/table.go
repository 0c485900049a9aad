package core

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// FileTable is the append-only arena owning every File in a pipeline run.
// Slots are addressed by stable integer refs and never physically removed:
// retiring a file transitions its slot to a tombstone so every outstanding
// ref keeps pointing at the slot it was issued for. The table also assigns
// epochs, one per admission, monotonically increasing for its lifetime.
//
// Admission (Enter, Reserve, Commit, Tombstone) may run concurrently with
// reads; the mutex covers the slice and path index only. Files themselves
// manage their own concurrency.
type FileTable struct {
	mu        sync.RWMutex
	files     []*File
	pathIndex map[string]FileRef // path -> latest ref for that path
	epoch     uint32
}

func NewFileTable() *FileTable {
	return &FileTable{
		pathIndex: make(map[string]FileRef),
	}
}

// Enter admits a new file version and returns its ref. A path entered twice
// gets two slots: edits produce new Files, never mutations of old ones.
func (t *FileTable) Enter(path string, source []byte, sourceType SourceType) FileRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	return t.appendLocked(NewFile(path, source, sourceType, t.epoch))
}

// Reserve allocates a not-yet-read placeholder slot so location tracking can
// hand out refs before the file's text is loaded. Commit fills it in.
func (t *FileTable) Reserve(path string) FileRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	return t.appendLocked(&File{
		path:       path,
		sourceType: SourceNotYetRead,
		epoch:      t.epoch,
	})
}

// Commit replaces a reserved slot with the loaded file under a fresh epoch.
// Committing anything but a not-yet-read slot is a caller defect.
func (t *FileTable) Commit(ref FileRef, source []byte, sourceType SourceType) {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot := t.slotLocked(ref)
	if slot.sourceType != SourceNotYetRead {
		panic(fmt.Errorf("commit on %s slot %q", slot.sourceType, slot.path))
	}
	t.epoch++
	t.files[ref.id] = NewFile(slot.path, source, sourceType, t.epoch)
}

// Tombstone retires a slot. The slot keeps its index and path but its text
// is gone; safe resolution of the ref panics from now on.
func (t *FileTable) Tombstone(ref FileRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot := t.slotLocked(ref)
	t.files[ref.id] = &File{
		path:       slot.path,
		sourceType: SourceTombStone,
		epoch:      slot.epoch,
	}
}

// Get returns the slot for a ref with no validity checks. Most callers want
// FileRef.Resolve instead.
func (t *FileTable) Get(ref FileRef) *File {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slotLocked(ref)
}

// Lookup returns the latest ref admitted for a path.
func (t *FileTable) Lookup(path string) (FileRef, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ref, ok := t.pathIndex[path]
	return ref, ok
}

// FilesUsed returns the number of allocated slots, tombstones included.
func (t *FileTable) FilesUsed() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.files)
}

// Epoch returns the most recently assigned generation.
func (t *FileTable) Epoch() uint32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.epoch
}

func (t *FileTable) appendLocked(f *File) FileRef {
	id, err := safecast.Conv[uint32](len(t.files))
	if err != nil {
		panic(fmt.Errorf("file table overflow: %w", err))
	}
	t.files = append(t.files, f)
	ref := FileRef{id: id}
	t.pathIndex[f.path] = ref
	return ref
}

func (t *FileTable) slotLocked(ref FileRef) *File {
	if uint64(ref.id) >= uint64(len(t.files)) {
		panic(fmt.Errorf("file ref %d out of range, table holds %d", ref.id, len(t.files)))
	}
	return t.files[ref.id]
}
