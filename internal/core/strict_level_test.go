package core

import "testing"

func TestStrictLevelOrdering(t *testing.T) {
	ordered := []StrictLevel{
		StrictNone, StrictIgnore, StrictFalse, StrictTrue,
		StrictStrict, StrictStrong, StrictAutogenerated, StrictStdlib,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("%v must order below %v", ordered[i-1], ordered[i])
		}
	}
}

func TestParseStrictLevel(t *testing.T) {
	for _, level := range []StrictLevel{
		StrictIgnore, StrictFalse, StrictTrue, StrictStrict,
		StrictStrong, StrictAutogenerated, StrictStdlib,
	} {
		got, err := ParseStrictLevel(level.String())
		if err != nil {
			t.Errorf("ParseStrictLevel(%q) failed: %v", level.String(), err)
			continue
		}
		if got != level {
			t.Errorf("ParseStrictLevel(%q) = %v, want %v", level.String(), got, level)
		}
	}

	for _, bad := range []string{"", "none", "Strict", "maximum"} {
		if _, err := ParseStrictLevel(bad); err == nil {
			t.Errorf("ParseStrictLevel(%q) accepted an unknown level", bad)
		}
	}
}
