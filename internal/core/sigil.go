package core

import "bytes"

var sigilNeedle = []byte("typed:")

// FileSigil scans source for a strictness directive of the form
// `# typed: <level>` and returns the level it requests.
//
// Matching is case-sensitive. Only spaces (not tabs) may separate the `#`
// from the `typed:` keyword. The first occurrence that maps to a known level
// wins; an occurrence with an unknown value does not stop the scan, so a
// later well-formed directive still takes effect. With no recognizable
// directive anywhere the result is StrictNone.
func FileSigil(source []byte) StrictLevel {
	start := 0
	for {
		rel := bytes.Index(source[start:], sigilNeedle)
		if rel < 0 {
			return StrictNone
		}
		start += rel

		// Walk back over spaces to find the character introducing this
		// occurrence; anything but `#` means it is not a comment directive.
		commentStart := start
		for commentStart > 0 {
			commentStart--
			if source[commentStart] != ' ' {
				break
			}
		}
		if source[commentStart] != '#' {
			start++
			continue
		}

		start += len(sigilNeedle)
		for start < len(source) && source[start] == ' ' {
			start++
		}
		if start >= len(source) {
			return StrictNone
		}

		end := start + 1
		for end < len(source) && source[end] != ' ' && source[end] != '\n' {
			end++
		}

		switch string(source[start:end]) {
		case "ignore":
			return StrictIgnore
		case "false":
			return StrictFalse
		case "true":
			return StrictTrue
		case "strict":
			return StrictStrict
		case "strong":
			return StrictStrong
		case "autogenerated":
			return StrictAutogenerated
		case "__STDLIB_INTERNAL":
			return StrictStdlib
		}

		// Unknown value: resume after the token. Typo reporting belongs to a
		// phase that can emit diagnostics; this scanner never fails.
		start = end
	}
}
