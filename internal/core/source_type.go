package core

// SourceType classifies what a registry slot holds.
type SourceType uint8

const (
	// SourceNormal is an ordinary user source file.
	SourceNormal SourceType = iota
	// SourcePayload is a file shipped inside the checker's payload.
	SourcePayload
	// SourcePayloadGeneration is a payload file used while regenerating the payload itself.
	SourcePayloadGeneration
	// SourcePackage is a package declaration file.
	SourcePackage
	// SourceTombStone marks a slot whose file was retired. The slot stays
	// allocated so outstanding refs keep their index, but its text must not
	// be read.
	SourceTombStone
	// SourceNotYetRead marks a reserved slot whose text has not been loaded.
	SourceNotYetRead
)

func (t SourceType) String() string {
	switch t {
	case SourceNormal:
		return "normal"
	case SourcePayload:
		return "payload"
	case SourcePayloadGeneration:
		return "payload-generation"
	case SourcePackage:
		return "package"
	case SourceTombStone:
		return "tombstone"
	case SourceNotYetRead:
		return "not-yet-read"
	}
	return "unknown"
}

// readable reports whether the slot's text may legitimately be accessed.
func (t SourceType) readable() bool {
	return t != SourceTombStone && t != SourceNotYetRead
}
