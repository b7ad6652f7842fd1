package reference

import "fmt"

// Common reference errors.
var (
	// ErrInvalidContainerRef is returned when a reference carries the container
	// prefix but no container file can be located inside it.
	ErrInvalidContainerRef = fmt.Errorf("invalid container reference")
)
