// Package project loads and rewrites QGIS project descriptors. A descriptor
// is a .qgs XML document, optionally stored as the sole well-known member of
// a .qgz zip archive. The document is kept as a full XML tree so datasource
// rewrites touch nothing else in the file.
package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	goversion "github.com/hashicorp/go-version"
	"github.com/qpack-dev/qpack/pkg/archive"
	"github.com/qpack-dev/qpack/pkg/errors"
)

// Project file extensions.
const (
	ExtQGS = ".qgs"
	ExtQGZ = ".qgz"
)

// MinSupportedVersion is the oldest descriptor version qpack is known to
// handle. Older projects are still processed, with a warning from the caller.
const MinSupportedVersion = "3.0.0"

// Entry is one map layer entry of the descriptor.
type Entry struct {
	// Provider is the layer's data provider tag (ogr, gdal, delimitedtext...).
	Provider string
	// Source is the raw datasource reference string.
	Source string
	// Name is the display name, "unnamed" when the descriptor has none.
	Name string

	elem *etree.Element
}

// SetSource rewrites the entry's datasource both in the XML tree and on the
// Entry itself.
func (e *Entry) SetSource(source string) {
	if ds := e.elem.SelectElement("datasource"); ds != nil {
		ds.SetText(source)
	}
	e.Source = source
}

// Project is a loaded descriptor plus where it came from.
type Project struct {
	// Path is the original project file, .qgs or .qgz.
	Path string
	// Dir is the directory containing the project file.
	Dir string
	// Name is the project base name without extension.
	Name string
	// FromArchive reports whether the descriptor was extracted from a .qgz.
	FromArchive bool

	doc *etree.Document
}

// Load reads a project descriptor from path. For .qgz archives the
// <name>.qgs member is extracted to a temporary file first.
func Load(ctx context.Context, path string) (*Project, error) {
	if path == "" {
		return nil, errors.ErrNoProject
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrNoProject, "%s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	p := &Project{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: name,
	}

	descriptorPath := path
	switch ext {
	case ExtQGS:
	case ExtQGZ:
		p.FromArchive = true
		tmpDir, err := os.MkdirTemp("", "qpack-*")
		if err != nil {
			return nil, errors.Wrap(err, "creating temporary directory")
		}
		defer func() { _ = os.RemoveAll(tmpDir) }()

		descriptorPath = filepath.Join(tmpDir, name+ExtQGS)
		if err := archive.NewManager().ExtractFile(ctx, path, name+ExtQGS, descriptorPath); err != nil {
			return nil, errors.Wrapf(err, "extracting descriptor from %s", path)
		}
	default:
		return nil, errors.Wrapf(errors.ErrProjectUnsupported, "%s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(descriptorPath); err != nil {
		return nil, errors.Wrapf(errors.ErrProjectParse, "%s: %v", descriptorPath, err)
	}
	p.doc = doc

	return p, nil
}

// Entries returns every map layer entry of the descriptor, in document
// order. Mutating an Entry via SetSource updates the in-memory tree.
func (p *Project) Entries() []*Entry {
	elems := p.doc.FindElements("//maplayer")
	entries := make([]*Entry, 0, len(elems))
	for _, el := range elems {
		entry := &Entry{
			Provider: childText(el, "provider"),
			Source:   childText(el, "datasource"),
			Name:     childText(el, "layername"),
			elem:     el,
		}
		if entry.Name == "" {
			entry.Name = "unnamed"
		}
		entries = append(entries, entry)
	}
	return entries
}

// Version parses the descriptor's version attribute, e.g. "3.28.11-Firenze".
func (p *Project) Version() (*goversion.Version, error) {
	root := p.doc.Root()
	if root == nil {
		return nil, ErrNoVersion
	}
	raw := root.SelectAttrValue("version", "")
	if raw == "" {
		return nil, ErrNoVersion
	}
	v, err := goversion.NewVersion(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing descriptor version %q", raw)
	}
	return v, nil
}

// BelowMinVersion reports whether the descriptor predates
// MinSupportedVersion. Descriptors without a parseable version are not
// flagged.
func (p *Project) BelowMinVersion() bool {
	v, err := p.Version()
	if err != nil {
		return false
	}
	return v.LessThan(goversion.Must(goversion.NewVersion(MinSupportedVersion)))
}

// WriteTo serializes the descriptor to path.
func (p *Project) WriteTo(path string) error {
	if err := p.doc.WriteToFile(path); err != nil {
		return errors.Wrapf(errors.ErrProjectSerialize, "%s: %v", path, err)
	}
	return nil
}

// RebuildArchive packs the descriptor at qgsPath into a fresh .qgz at
// qgzPath, stored under the project's descriptor member name.
func (p *Project) RebuildArchive(ctx context.Context, qgsPath, qgzPath string) error {
	files := map[string]string{qgsPath: p.Name + ExtQGS}
	if err := archive.NewManager().CreateFromFiles(ctx, files, qgzPath); err != nil {
		return errors.Wrapf(err, "rebuilding %s", qgzPath)
	}
	return nil
}

func childText(el *etree.Element, name string) string {
	if child := el.SelectElement(name); child != nil {
		return child.Text()
	}
	return ""
}
