// Package errors provides shared error helpers and sentinels for qpack.
package errors

import "fmt"

// Common error types.
var (
	// Project errors.
	ErrNoProject          = fmt.Errorf("no project descriptor found")
	ErrProjectParse       = fmt.Errorf("failed to parse project descriptor")
	ErrProjectSerialize   = fmt.Errorf("failed to serialize project descriptor")
	ErrProjectUnsupported = fmt.Errorf("unsupported project file type")

	// Packaging errors.
	ErrPackageOutput  = fmt.Errorf("failed to prepare package output directory")
	ErrPackageArchive = fmt.Errorf("failed to build package archive")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
