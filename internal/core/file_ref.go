package core

import "fmt"

// FileRef is a stable handle to a slot in a FileTable. It carries only the
// slot index: refs are cheap to copy, comparable, and usable as map keys.
// Two refs address the same file iff their ids match.
type FileRef struct {
	id uint32
}

func NewFileRef(id uint32) FileRef {
	return FileRef{id: id}
}

func (r FileRef) ID() uint32 {
	return r.id
}

// Resolve returns the File behind the handle. It panics when the id is out
// of range, the slot is unpopulated, or the slot is a tombstone or
// not-yet-read placeholder: every one of those is a defect in the caller.
func (r FileRef) Resolve(table *FileTable) *File {
	f := r.ResolveAllowingUnsafe(table)
	if f == nil {
		panic(fmt.Errorf("file ref %d resolves to an unpopulated slot", r.id))
	}
	if !f.sourceType.readable() {
		panic(fmt.Errorf("file ref %d resolves to a %s slot %q", r.id, f.sourceType, f.path))
	}
	return f
}

// ResolveAllowingUnsafe performs only the bounds check. Reload paths use it
// to observe slots legitimately mid-transition (not-yet-read placeholders,
// fresh tombstones).
func (r FileRef) ResolveAllowingUnsafe(table *FileTable) *File {
	used := table.FilesUsed()
	if uint64(r.id) >= uint64(used) {
		panic(fmt.Errorf("file ref %d out of range, table holds %d", r.id, used))
	}
	return table.Get(r)
}
