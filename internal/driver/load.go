package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"tycho/internal/core"
)

// Load reads a source file from disk, normalizes BOM and CRLF, and admits it
// into the table under a cleaned slash-separated path.
func Load(table *core.FileTable, path string) (core.FileRef, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return core.FileRef{}, err
	}
	content = stripBOM(content)
	content = normalizeCRLF(content)
	return table.Enter(normalizePath(path), content, sourceTypeFor(path)), nil
}

// listSourceFiles returns every .ty and .tyi file under dir, sorted for a
// deterministic scan order.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && (strings.HasSuffix(path, ".ty") || strings.HasSuffix(path, ".tyi")) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func sourceTypeFor(path string) core.SourceType {
	if filepath.Base(path) == "__package.ty" {
		return core.SourcePackage
	}
	return core.SourceNormal
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func stripBOM(content []byte) []byte {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:]
	}
	return content
}

// normalizeCRLF rewrites \r\n to \n, leaving lone \r untouched.
func normalizeCRLF(content []byte) []byte {
	if !slices.Contains(content, '\r') {
		return content
	}
	out := make([]byte, 0, len(content))
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out
}
