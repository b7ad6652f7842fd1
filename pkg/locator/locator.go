// Package locator recovers filesystem paths from possibly stale layer
// references. Projects routinely move between machines, so a recorded path
// may be absolute on another host, relative to a directory that no longer
// exists, or prefixed with leftover relative markers. The locator runs an
// ordered chain of strategies and returns the first hit.
package locator

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	qerrors "github.com/qpack-dev/qpack/pkg/errors"
	"github.com/qpack-dev/qpack/pkg/fsutil"
)

// DefaultSearchDepth is how many ancestor directories of the project folder
// are used as fallback search roots.
const DefaultSearchDepth = 3

// Kind classifies a resolved resource for the copier.
type Kind string

// Resource kinds.
const (
	// KindRegular is a plain single-file resource.
	KindRegular Kind = "regular"
	// KindSidecarSet is a dataset made of co-located sidecar files sharing a
	// base name (shapefiles).
	KindSidecarSet Kind = "sidecar-set"
	// KindContainer is a zip archive copied as a whole.
	KindContainer Kind = "container"
)

// Resolved is the result of a successful resolution: an absolute path plus
// its classification.
type Resolved struct {
	Path string
	Kind Kind
}

// Options configure a Locator.
type Options struct {
	// SearchDepth is the number of ancestor levels added as search roots.
	// Zero means DefaultSearchDepth.
	SearchDepth int

	// ExtraRoots are additional search roots tried after the ancestors.
	ExtraRoots []string
}

// Locator resolves reference paths against a project directory and a set of
// fallback search roots.
type Locator struct {
	projectDir string
	roots      []string
	strategies []strategy
}

// A strategy attempts one way of resolving a path. It reports the absolute
// path and whether it succeeded.
type strategy func(path string) (string, bool)

// New creates a Locator for the given project directory.
func New(projectDir string, opts Options) *Locator {
	depth := opts.SearchDepth
	if depth <= 0 {
		depth = DefaultSearchDepth
	}

	l := &Locator{
		projectDir: projectDir,
		roots:      append(SearchRoots(projectDir, depth), opts.ExtraRoots...),
	}
	l.strategies = []strategy{
		l.absolutePath,
		l.projectRelative,
		l.basenameSearch,
		l.cleanedJoin,
	}
	return l
}

// SearchRoots returns projectDir followed by up to depth ancestors, nearest
// first. Ancestry stops at the filesystem root.
func SearchRoots(projectDir string, depth int) []string {
	roots := []string{projectDir}
	dir := projectDir
	for i := 0; i < depth; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		roots = append(roots, parent)
		dir = parent
	}
	return roots
}

// Resolve runs the strategy chain over the given reference path. The first
// strategy that produces an existing file wins; the others are not consulted.
// When nothing matches, the returned error wraps ErrNotFound and the caller
// is expected to skip the resource and continue.
//
// When duplicate filenames exist under the search roots, the basename search
// returns the first match in directory traversal order. That order is
// implementation-defined across filesystems; callers must not rely on a
// specific duplicate being chosen.
func (l *Locator) Resolve(path string) (Resolved, error) {
	for _, try := range l.strategies {
		if abs, ok := try(path); ok {
			return Resolved{Path: abs, Kind: Classify(abs)}, nil
		}
	}
	return Resolved{}, qerrors.Wrapf(ErrNotFound, "resolving %s", path)
}

// Classify tags a resolved path by the copy behavior it needs.
func Classify(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return KindSidecarSet
	case ".zip":
		return KindContainer
	default:
		return KindRegular
	}
}

// absolutePath accepts the path as-is when it is absolute and exists.
func (l *Locator) absolutePath(path string) (string, bool) {
	if filepath.IsAbs(path) && fsutil.FileExists(path) {
		return path, true
	}
	return "", false
}

// projectRelative joins the path to the project directory and normalizes it.
func (l *Locator) projectRelative(path string) (string, bool) {
	resolved := filepath.Clean(filepath.Join(l.projectDir, path))
	if fsutil.FileExists(resolved) {
		return resolved, true
	}
	return "", false
}

// errFoundFile aborts a walk once a match is found.
var errFoundFile = errors.New("found file")

// basenameSearch walks every search root looking for a file with the
// reference's base filename. Roots are tried in order; within a root the
// first match in traversal order wins.
func (l *Locator) basenameSearch(path string) (string, bool) {
	filename := filepath.Base(filepath.ToSlash(path))
	if filename == "." || filename == string(filepath.Separator) {
		return "", false
	}

	for _, root := range l.roots {
		var match string
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped, not fatal.
				return nil
			}
			if !d.IsDir() && d.Name() == filename {
				match = p
				return errFoundFile
			}
			return nil
		})
		if errors.Is(err, errFoundFile) {
			return match, true
		}
	}
	return "", false
}

// cleanedJoin strips leading relative-directory markers from the path and
// joins the remainder to each search root in order.
func (l *Locator) cleanedJoin(path string) (string, bool) {
	clean := stripRelativeMarkers(filepath.ToSlash(path))
	if clean == "" {
		return "", false
	}

	for _, root := range l.roots {
		candidate := filepath.Join(root, filepath.FromSlash(clean))
		if fsutil.FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func stripRelativeMarkers(path string) string {
	for {
		switch {
		case strings.HasPrefix(path, "./"):
			path = path[2:]
		case strings.HasPrefix(path, "../"):
			path = path[3:]
		case strings.HasPrefix(path, "/"):
			path = path[1:]
		default:
			return path
		}
	}
}
