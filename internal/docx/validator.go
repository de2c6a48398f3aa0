package docx

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// zipMagic is the local file header signature every ZIP container
// starts with. A docx file that does not start with it is not worth
// opening.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// Validator performs cheap pre-flight checks on candidate files so the
// batch driver can skip obvious junk without paying for a full parse.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the specified size cap.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// ValidateFile checks that path points at a plausible docx container.
func (v *Validator) ValidateFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !IsDocxFile(path) {
		return fmt.Errorf("file is not a docx document: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if info.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			info.Size(), v.maxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(zipMagic))
	if _, err := f.Read(header); err != nil {
		return fmt.Errorf("cannot read file header: %w", err)
	}
	if !bytes.Equal(header, zipMagic) {
		return fmt.Errorf("not a ZIP container: %s", path)
	}
	return nil
}

// IsDocxFile reports whether the file name carries the docx extension.
func IsDocxFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".docx")
}
