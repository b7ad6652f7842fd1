package project

import "fmt"

// Common project errors.
var (
	// ErrMissingFields is returned when a layer entry lacks the provider or
	// datasource needed to package it.
	ErrMissingFields = fmt.Errorf("layer entry missing provider or datasource")

	// ErrNoVersion is returned when the descriptor does not carry a version
	// attribute.
	ErrNoVersion = fmt.Errorf("descriptor has no version attribute")
)
