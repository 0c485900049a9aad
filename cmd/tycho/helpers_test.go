package main

import (
	"testing"

	"github.com/fatih/color"

	"tycho/internal/core"
)

func TestRenderLevelBuckets(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	cases := []struct {
		level core.StrictLevel
		want  string
	}{
		{core.StrictNone, "none"},
		{core.StrictIgnore, "ignore"},
		{core.StrictFalse, "false"},
		{core.StrictStrict, "strict"},
		{core.StrictStdlib, "__STDLIB_INTERNAL"},
	}
	for _, tc := range cases {
		if got := renderLevel(tc.level); got != tc.want {
			t.Errorf("renderLevel(%v) = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestValueOrUnknown(t *testing.T) {
	if got := valueOrUnknown(""); got != "unknown" {
		t.Errorf("valueOrUnknown(\"\") = %q", got)
	}
	if got := valueOrUnknown("abc123"); got != "abc123" {
		t.Errorf("valueOrUnknown(abc123) = %q", got)
	}
}

func TestCollectVersionInfoNeverEmpty(t *testing.T) {
	info := collectVersionInfo()
	if info.Version == "" {
		t.Error("version must never render empty")
	}
}
