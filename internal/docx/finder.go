package docx

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Finder discovers candidate documents for a batch run.
type Finder struct {
	validator *Validator
}

// NewFinder creates a finder with the specified size constraint.
func NewFinder(maxFileSize int64) *Finder {
	return &Finder{validator: NewValidator(maxFileSize)}
}

// FindInDirectory walks dir recursively and returns the paths of all
// docx files that pass validation, in sorted order. Files that fail
// validation are skipped silently; the walk itself failing is an error.
func (f *Finder) FindInDirectory(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Continue walking even if one entry is unreadable.
			return nil //nolint:nilerr
		}
		if d.IsDir() {
			// Word lock files and temp copies start with ~$ and are
			// not directories, but skip hidden directories outright.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") && path != absDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsDocxFile(d.Name()) || strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		if err := f.validator.ValidateFile(path); err != nil {
			return nil //nolint:nilerr
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadListFile reads one document path per line from listPath. Blank
// lines and lines starting with '#' are ignored. The listed paths are
// returned as-is, without validation; the batch driver validates each
// document when it processes it.
func (f *Finder) ReadListFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	return paths, nil
}

// CountInDirectory returns the number of valid docx files under dir.
func (f *Finder) CountInDirectory(dir string) (int, error) {
	paths, err := f.FindInDirectory(dir)
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}
