package copier

import "fmt"

// Common copier errors.
var (
	// ErrIncompleteDataset is returned when none of a dataset's component
	// files exist next to the primary file. Copying nothing would produce a
	// package that references an empty dataset.
	ErrIncompleteDataset = fmt.Errorf("dataset component files missing")
)
