// Package copier performs the physical copy step for packaged resources,
// including multi-file datasets that must move as a unit.
package copier

import (
	"path/filepath"
	"strings"

	"github.com/qpack-dev/qpack/pkg/errors"
	"github.com/qpack-dev/qpack/pkg/fsutil"
)

// DefaultSidecarExtensions is the set of extensions that make up a shapefile
// dataset. All sidecars share the primary file's base name.
var DefaultSidecarExtensions = []string{
	".shp", ".dbf", ".shx", ".prj", ".cpg", ".qix",
	".sbn", ".sbx", ".shp.xml", ".fix", ".qpj",
}

// Copier copies resources into their allocated destinations.
type Copier struct {
	sidecarExts []string
}

// New creates a Copier. With no extensions given, DefaultSidecarExtensions
// is used.
func New(sidecarExts ...string) *Copier {
	if len(sidecarExts) == 0 {
		sidecarExts = DefaultSidecarExtensions
	}
	return &Copier{sidecarExts: sidecarExts}
}

// CopyFile copies a single regular file (or a whole container archive) to
// dest, creating destination directories on demand. The underlying copy is
// staged through a temporary file so an interrupted run never leaves a
// truncated file at dest.
func (c *Copier) CopyFile(src, dest string) error {
	if err := fsutil.CopyFile(src, dest); err != nil {
		return errors.Wrapf(err, "copying %s", src)
	}
	return nil
}

// CopySidecars copies every existing sidecar of the dataset rooted at src to
// the directory and base name of dest. Missing sidecars are skipped silently.
// The returned slice holds the filenames actually copied; when it would be
// empty the dataset is unusable and ErrIncompleteDataset is returned.
func (c *Copier) CopySidecars(src, dest string) ([]string, error) {
	srcBase := trimExt(src)
	destBase := trimExt(dest)

	var copied []string
	for _, ext := range c.sidecarExts {
		srcFile := srcBase + ext
		if !fsutil.FileExists(srcFile) {
			continue
		}
		destFile := destBase + ext
		if err := fsutil.CopyFile(srcFile, destFile); err != nil {
			return nil, errors.Wrapf(err, "copying sidecar %s", srcFile)
		}
		copied = append(copied, filepath.Base(destFile))
	}

	if len(copied) == 0 {
		return nil, errors.Wrapf(ErrIncompleteDataset, "dataset %s", src)
	}
	return copied, nil
}

// trimExt removes the last extension only, so "parcels.shp" keeps its base
// "parcels" and the ".shp.xml" sidecar still attaches correctly.
func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
