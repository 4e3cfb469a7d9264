package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds person IDs and display names.
const maxIdentifierLength = 256

// ValidatePersonID validates a person ID for use as a graph key.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDataset, "person id cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidDataset, "person id too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "person id %q contains control characters", id)
		}
	}
	return nil
}

// ValidateSelectionInput validates a name received from a selection control.
// Empty input is allowed and means no selection.
func ValidateSelectionInput(name string) error {
	if len(name) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid characters")
		}
	}
	return nil
}

// datasetExtensions lists the file extensions the dataset loader can decode.
var datasetExtensions = []string{".json", ".yaml", ".yml"}

// ValidateDatasetPath validates a dataset file path.
// It ensures the path is non-empty and has a supported extension.
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "dataset path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "dataset path contains invalid characters")
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range datasetExtensions {
		if ext == e {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported dataset extension %q (want .json, .yaml or .yml)", ext)
}

// ValidateOutputPath validates an export destination.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "output path contains invalid characters")
	}
	return nil
}
