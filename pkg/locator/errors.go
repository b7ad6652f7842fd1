package locator

import "fmt"

// Common locator errors.
var (
	// ErrNotFound is returned when every resolution strategy has been
	// exhausted without finding the file. This is an expected outcome for
	// stale references, not a fault.
	ErrNotFound = fmt.Errorf("file not found")
)
