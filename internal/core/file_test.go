package core

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"tycho/internal/fingerprint"
)

func TestLineBreaksInvariants(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []int32
	}{
		{"empty", "", []int32{-1, 0}},
		{"no newline", "abc", []int32{-1, 3}},
		{"single newline", "ab\n", []int32{-1, 2, 3}},
		{"two lines", "ab\ncd", []int32{-1, 2, 5}},
		{"leading newline", "\nx", []int32{-1, 0, 2}},
		{"consecutive newlines", "a\n\n\nb", []int32{-1, 1, 2, 3, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFile("test.ty", []byte(tc.source), SourceNormal, 1)
			got := f.LineBreaks()
			if len(got) != len(tc.want) {
				t.Fatalf("LineBreaks(%q) = %v, want %v", tc.source, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("LineBreaks(%q) = %v, want %v", tc.source, got, tc.want)
				}
			}
			if got[0] != -1 {
				t.Error("first entry must be the -1 sentinel")
			}
			if int(got[len(got)-1]) != len(tc.source) {
				t.Errorf("last entry = %d, want source length %d", got[len(got)-1], len(tc.source))
			}
			wantLines := strings.Count(tc.source, "\n") + 1
			if f.LineCount() != wantLines {
				t.Errorf("LineCount() = %d, want %d", f.LineCount(), wantLines)
			}
		})
	}
}

func TestGetLineReconstructsSource(t *testing.T) {
	source := "first\nsecond\n\nfourth"
	f := NewFile("test.ty", []byte(source), SourceNormal, 1)

	wantLines := []string{"first", "second", "", "fourth"}
	if f.LineCount() != len(wantLines) {
		t.Fatalf("LineCount() = %d, want %d", f.LineCount(), len(wantLines))
	}
	for i, want := range wantLines {
		if got := f.GetLine(i + 1); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i+1, got, want)
		}
	}
}

func TestGetLineOutOfRangePanics(t *testing.T) {
	f := NewFile("test.ty", []byte("one\ntwo\n"), SourceNormal, 1)
	for _, i := range []int{-1, 0, 4} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("GetLine(%d) did not panic", i)
				}
			}()
			f.GetLine(i)
		}()
	}
}

func TestLineBreaksConcurrentFirstAccess(t *testing.T) {
	source := []byte(strings.Repeat("line\n", 500))
	f := NewFile("test.ty", source, SourceNormal, 1)

	const readers = 32
	results := make([][]int32, readers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(readers)
	for i := 0; i < readers; i++ {
		i := i
		go func() {
			defer done.Done()
			start.Wait()
			results[i] = f.LineBreaks()
		}()
	}
	start.Done()
	done.Wait()

	// Everyone must observe the one installed index, not their own build.
	installed := f.LineBreaks()
	for i, got := range results {
		if &got[0] != &installed[0] {
			t.Fatalf("reader %d observed a different index instance", i)
		}
	}
	if len(installed) != 502 {
		t.Errorf("index length = %d, want 502", len(installed))
	}
}

func TestSourceAccessOnDeadSlotsPanics(t *testing.T) {
	for _, typ := range []SourceType{SourceTombStone, SourceNotYetRead} {
		f := &File{path: "dead.ty", sourceType: typ}
		for name, access := range map[string]func(){
			"Source":     func() { f.Source() },
			"LineBreaks": func() { f.LineBreaks() },
			"GetLine":    func() { f.GetLine(1) },
		} {
			func() {
				defer func() {
					if recover() == nil {
						t.Errorf("%s on %s slot did not panic", name, typ)
					}
				}()
				access()
			}()
		}
		// Path stays readable on any slot.
		if f.Path() != "dead.ty" {
			t.Errorf("Path() on %s slot = %q", typ, f.Path())
		}
	}
}

func TestOriginalSigilSurvivesOverride(t *testing.T) {
	f := NewFile("test.ty", []byte("# typed: false\n"), SourceNormal, 1)
	if f.OriginalSigil() != StrictFalse || f.StrictLevel() != StrictFalse {
		t.Fatalf("construction: original=%v strict=%v, want false/false", f.OriginalSigil(), f.StrictLevel())
	}
	f.SetStrictLevel(StrictStrict)
	if f.StrictLevel() != StrictStrict {
		t.Errorf("StrictLevel() = %v after override, want strict", f.StrictLevel())
	}
	if f.OriginalSigil() != StrictFalse {
		t.Errorf("OriginalSigil() = %v after override, want false", f.OriginalSigil())
	}
}

func TestFingerprintFirstSetWins(t *testing.T) {
	f := NewFile("test.ty", []byte("x\n"), SourceNormal, 1)
	if f.Fingerprint() != nil {
		t.Fatal("fresh file must have no fingerprint")
	}
	a := fingerprint.Compute("test.ty", []byte("x\n"))
	b := fingerprint.Compute("other.ty", []byte("y\n"))
	f.SetFingerprint(a)
	f.SetFingerprint(b)
	if f.Fingerprint() != a {
		t.Error("second SetFingerprint must be a no-op")
	}
}

func TestFingerprintConcurrentSetters(t *testing.T) {
	f := NewFile("test.ty", []byte("x\n"), SourceNormal, 1)

	const setters = 16
	hashes := make([]*fingerprint.FileHash, setters)
	for i := range hashes {
		hashes[i] = fingerprint.Compute(fmt.Sprintf("%d.ty", i), []byte("x\n"))
	}

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(setters)
	for i := 0; i < setters; i++ {
		i := i
		go func() {
			defer done.Done()
			start.Wait()
			f.SetFingerprint(hashes[i])
		}()
	}
	start.Done()
	done.Wait()

	got := f.Fingerprint()
	found := false
	for _, h := range hashes {
		if got == h {
			found = true
			break
		}
	}
	if !found {
		t.Error("installed fingerprint is not one of the racing candidates")
	}
}

func TestDeepCopy(t *testing.T) {
	src := []byte("# typed: true\na = 1\n")
	f := NewFile("test.ty", src, SourceNormal, 7)
	f.SetStrictLevel(StrictStrong)
	f.SetMinErrorLevel(StrictFalse)
	f.SetFingerprint(fingerprint.Compute("test.ty", src))
	originalIdx := f.LineBreaks()

	cp := f.DeepCopy()

	if cp.Path() != f.Path() || !bytes.Equal(cp.Source(), f.Source()) {
		t.Error("copy must carry path and source")
	}
	if cp.SourceType() != f.SourceType() || cp.Epoch() != f.Epoch() {
		t.Error("copy must carry source type and epoch")
	}
	if cp.StrictLevel() != StrictStrong || cp.MinErrorLevel() != StrictFalse {
		t.Errorf("copy levels = %v/%v, want strong/false", cp.StrictLevel(), cp.MinErrorLevel())
	}
	if cp.OriginalSigil() != StrictTrue {
		t.Errorf("copy original sigil = %v, want true", cp.OriginalSigil())
	}
	if cp.Fingerprint() != nil {
		t.Error("copy must start with an empty fingerprint")
	}
	copyIdx := cp.LineBreaks()
	if &copyIdx[0] == &originalIdx[0] {
		t.Error("copy must not share line index storage with the original")
	}
	if len(copyIdx) != len(originalIdx) {
		t.Errorf("copy index length = %d, want %d", len(copyIdx), len(originalIdx))
	}
}

func TestDeepCopyWithoutBuiltIndex(t *testing.T) {
	f := NewFile("test.ty", []byte("a\nb\n"), SourceNormal, 1)
	cp := f.DeepCopy()
	// The original never built its index; the copy builds its own lazily.
	if got := cp.LineCount(); got != 2 {
		t.Errorf("LineCount() = %d, want 2", got)
	}
}

func TestFilePredicates(t *testing.T) {
	payload := NewFile("lib/base.tyi", []byte("# typed: __STDLIB_INTERNAL\n"), SourcePayload, 1)
	if !payload.IsPayload() || payload.IsPackage() {
		t.Error("payload classification wrong")
	}
	if !payload.IsStdlib() {
		t.Error("stdlib sigil not detected")
	}
	if !payload.IsInterface() {
		t.Error(".tyi must classify as interface stub")
	}

	forced := NewFile("user.ty", []byte("x = 1\n"), SourceNormal, 2)
	forced.SetStrictLevel(StrictStdlib)
	if forced.IsStdlib() {
		t.Error("forced level must not promote a file into the stdlib set")
	}

	gen := NewFile("gen.ty", nil, SourcePayloadGeneration, 3)
	if !gen.IsPayload() {
		t.Error("payload-generation files are payload files")
	}
	pkg := NewFile("__package.ty", nil, SourcePackage, 4)
	if !pkg.IsPackage() || pkg.IsPayload() {
		t.Error("package classification wrong")
	}
}
