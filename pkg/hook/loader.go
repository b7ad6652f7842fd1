package hook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/qpack-dev/qpack/pkg/errors"
)

// scriptExtension is the only supported hook file extension.
const scriptExtension = ".tengo"

// LoadFromProjectDir loads hook scripts found next to the project file.
// It looks for <type>.tengo files in the following locations:
// - <projectDir>/.qpack/hooks/
// - <projectDir>/hooks/
func LoadFromProjectDir(manager Manager, projectDir string) error {
	for _, dir := range []string{
		filepath.Join(projectDir, ".qpack", "hooks"),
		filepath.Join(projectDir, "hooks"),
	} {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := loadFromDir(manager, dir); err != nil {
			return errors.Wrapf(err, "loading hooks from %s", dir)
		}
	}
	return nil
}

// loadFromDir loads all hook files from a directory.
func loadFromDir(manager Manager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(ErrLoad, "reading hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != scriptExtension {
			continue
		}

		hookType := Type(strings.TrimSuffix(entry.Name(), scriptExtension))
		switch hookType {
		case PrePackage, PostPackage:
		default:
			return ErrUnsupportedHookType(string(hookType))
		}

		script, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return errors.Wrapf(ErrLoad, "reading hook %s: %v", entry.Name(), err)
		}
		manager.AddScript(hookType, string(script))
	}
	return nil
}
