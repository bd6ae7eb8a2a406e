package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const hiddenMarker = "."

// Scan descends into every subdirectory, following symlinked directories.
// There is no cycle detection: a symlink loop never terminates.
func (s *implScanner) Scan(root string) (Result, error) {
	var res Result
	if err := s.walk(root, &res); err != nil {
		return Result{}, err
	}
	sort.Strings(res.Subdirectories)
	sort.Strings(res.Files)
	return res, nil
}

func (s *implScanner) walk(dir string, res *Result) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := resolveType(path, entry)

		switch {
		case mode.IsDir():
			subdirs = append(subdirs, path)
		case mode.IsRegular() && s.Match(entry.Name()):
			res.Files = append(res.Files, path)
		}
	}

	res.Subdirectories = append(res.Subdirectories, subdirs...)
	for _, sub := range subdirs {
		if err := s.walk(sub, res); err != nil {
			return err
		}
	}
	return nil
}

// Match applies the hidden-file and extension rules to a bare file name.
func (s *implScanner) Match(name string) bool {
	if strings.HasPrefix(name, hiddenMarker) {
		return false
	}
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// resolveType follows symlinks. A dangling link is neither a file nor a
// directory.
func resolveType(path string, entry fs.DirEntry) fs.FileMode {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type()
	}
	info, err := os.Stat(path)
	if err != nil {
		return fs.ModeSymlink
	}
	return info.Mode().Type()
}
