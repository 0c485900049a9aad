package core

import "fmt"

// StrictLevel defines how strictly a file's content is checked.
// Levels are totally ordered; a higher level enables more analysis.
type StrictLevel uint8

const (
	// StrictNone means the file carries no sigil at all.
	StrictNone StrictLevel = iota
	// StrictIgnore excludes the file from analysis entirely.
	StrictIgnore
	StrictFalse
	StrictTrue
	StrictStrict
	StrictStrong
	// StrictAutogenerated marks machine-generated files.
	StrictAutogenerated
	// StrictStdlib is reserved for internally-shipped library definitions.
	// It is not an ordinary strictness grade.
	StrictStdlib
)

func (l StrictLevel) String() string {
	switch l {
	case StrictNone:
		return "none"
	case StrictIgnore:
		return "ignore"
	case StrictFalse:
		return "false"
	case StrictTrue:
		return "true"
	case StrictStrict:
		return "strict"
	case StrictStrong:
		return "strong"
	case StrictAutogenerated:
		return "autogenerated"
	case StrictStdlib:
		return "__STDLIB_INTERNAL"
	}
	return "unknown"
}

// ParseStrictLevel converts a user-supplied level name (config, CLI) into a
// StrictLevel. Unlike in-file sigils, an unknown name here is an error.
func ParseStrictLevel(s string) (StrictLevel, error) {
	switch s {
	case "ignore":
		return StrictIgnore, nil
	case "false":
		return StrictFalse, nil
	case "true":
		return StrictTrue, nil
	case "strict":
		return StrictStrict, nil
	case "strong":
		return StrictStrong, nil
	case "autogenerated":
		return StrictAutogenerated, nil
	case "__STDLIB_INTERNAL":
		return StrictStdlib, nil
	}
	return StrictNone, fmt.Errorf("unknown strict level %q", s)
}
