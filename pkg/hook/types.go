// Package hook runs optional Tengo scripts around a packaging run.
package hook

// Type represents the type of hook.
type Type string

// Supported hook types.
const (
	PrePackage  Type = "pre-package"
	PostPackage Type = "post-package"
)

// Context contains information passed to hooks.
type Context struct {
	ProjectName string
	ProjectPath string
	OutputDir   string
	Vars        map[string]interface{}
}

// Manager defines the interface for managing hooks.
type Manager interface {
	// Execute runs the specified hook type with the given context
	Execute(hookType Type, ctx Context) error

	// AddScript adds or replaces the script for a hook type
	AddScript(hookType Type, script string)

	// HasScript checks if a script of the specified type exists
	HasScript(hookType Type) bool
}
