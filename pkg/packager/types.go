//go:generate mockgen -destination=./mocks/packager.go -package=mocks . FileLocator,ResourceCopier

package packager

import (
	"github.com/qpack-dev/qpack/pkg/locator"
)

// FileLocator is the subset of the locator used by the packager.
type FileLocator interface {
	Resolve(path string) (locator.Resolved, error)
}

// ResourceCopier is the subset of the copier used by the packager.
type ResourceCopier interface {
	CopyFile(src, dest string) error
	CopySidecars(src, dest string) ([]string, error)
}

// Options control a packaging run.
type Options struct {
	// SkipProviders lists provider tags whose layers are skipped outright.
	SkipProviders []string
}

// State is the mutable bookkeeping of one packaging run. It is owned by the
// packager and discarded when the run ends.
type State struct {
	Processed int
	Skipped   int
}

// Result summarizes a completed run.
type Result struct {
	// OutputDir is the package directory, <project>_packaged.
	OutputDir string
	// DescriptorPath is the rewritten descriptor inside OutputDir.
	DescriptorPath string
	// ArchivePath is the final zip of the whole package directory.
	ArchivePath string

	Processed int
	Skipped   int
}
