// Package layout allocates collision-free destination paths inside the
// package's Links directory. It keeps one level of directory context when the
// source file's parent directory carries meaning, which is usually enough to
// tell apart same-named files from different datasets without recreating the
// whole original tree.
package layout

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// LinksDirName is the subdirectory of the package root that holds every
// copied resource. Rewritten references are rooted here.
const LinksDirName = "Links"

// genericDirNames are parent directory names that carry no dataset context
// and are therefore not reflected in the output layout.
var genericDirNames = map[string]struct{}{
	"Documents":     {},
	"Desktop":       {},
	"Downloads":     {},
	"Users":         {},
	"home":          {},
	"tmp":           {},
	"temp":          {},
	"Program Files": {},
	"Windows":       {},
	"System32":      {},
}

// Allocated pairs the absolute destination of a copy with the forward-slash
// package-relative form used in rewritten references.
type Allocated struct {
	Dest string
	Rel  string
}

// Allocator computes unique destination paths under a Links directory.
// Uniqueness is per packaging run: the caller marks a destination as used
// once the copy succeeds.
type Allocator struct {
	linksDir string
	used     map[string]struct{}
}

// New creates an Allocator rooted at the given Links directory.
func New(linksDir string) *Allocator {
	return &Allocator{
		linksDir: linksDir,
		used:     make(map[string]struct{}),
	}
}

// Allocate computes the destination for a resolved source path. Distinct
// sources processed in the same run never share a destination: when the
// candidate is already used, a numeric suffix is inserted before the file
// extension, counting up from 1 until a free name is found.
func (a *Allocator) Allocate(resolvedPath string) Allocated {
	filename := filepath.Base(resolvedPath)
	parentName := filepath.Base(filepath.Dir(resolvedPath))

	var dest, rel string
	if keepParent(parentName) {
		dest = filepath.Join(a.linksDir, parentName, filename)
		rel = path.Join(LinksDirName, parentName, filename)
	} else {
		dest = filepath.Join(a.linksDir, filename)
		rel = path.Join(LinksDirName, filename)
	}

	candidate := Allocated{Dest: dest, Rel: rel}
	for counter := 1; a.IsUsed(candidate.Dest); counter++ {
		candidate = Allocated{
			Dest: suffixed(dest, counter),
			Rel:  suffixed(rel, counter),
		}
	}
	return candidate
}

// MarkUsed records a destination so later allocations avoid it. Call it only
// after the copy to dest actually succeeded.
func (a *Allocator) MarkUsed(dest string) {
	a.used[dest] = struct{}{}
}

// IsUsed reports whether a destination has been claimed this run.
func (a *Allocator) IsUsed(dest string) bool {
	_, ok := a.used[dest]
	return ok
}

// keepParent reports whether a parent directory name is meaningful enough to
// preserve in the output layout.
func keepParent(name string) bool {
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return false
	}
	if _, generic := genericDirNames[name]; generic {
		return false
	}
	return true
}

// suffixed inserts _n before the path's extension: data.csv -> data_1.csv.
func suffixed(p string, n int) string {
	ext := filepath.Ext(p)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(p, ext), n, ext)
}
