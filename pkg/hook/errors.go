package hook

import "fmt"

// Common hook errors.
var (
	// ErrExecution is returned when there's an error executing a hook.
	ErrExecution = fmt.Errorf("error executing hook")

	// ErrScript is returned when a hook script reports an error itself.
	ErrScript = fmt.Errorf("hook script error")

	// ErrLoad is returned when there's an error loading a hook.
	ErrLoad = fmt.Errorf("failed to load hook")
)

// ErrUnsupportedHookType is returned when a hook file names an unknown type.
func ErrUnsupportedHookType(name string) error {
	return fmt.Errorf("unsupported hook type: %s", name)
}
