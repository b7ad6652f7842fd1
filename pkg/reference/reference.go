// Package reference parses and rewrites layer datasource references.
//
// A reference is the raw string stored in a project descriptor entry. It is
// either a plain filesystem path or a container-addressed path of the form
//
//	/vsizip/<path-to-zip>[/<inner-path>][|<qualifier>]
//
// The qualifier (everything after the first '|', e.g. "layername=roads") is
// opaque to qpack and preserved verbatim across a rewrite.
package reference

import "strings"

const (
	// ContainerPrefix marks a reference that addresses into a zip container.
	ContainerPrefix = "/vsizip/"

	// containerMarker locates the container file inside an addressed path.
	// Splitting happens on the first occurrence.
	containerMarker = ".zip"

	// qualifierSep separates the path from the opaque trailing qualifier.
	qualifierSep = "|"

	// relIndicator prefixes rewritten container paths so consumers resolve
	// them against the descriptor location.
	relIndicator = "./"
)

// Ref is a reference decomposed into its addressable parts.
type Ref struct {
	// Path is the filesystem path portion. For container references this is
	// the path of the container file itself.
	Path string

	// Inner is the path inside the container. Empty for plain references and
	// for "whole container, default member" references.
	Inner string

	// Qualifier is the raw suffix after the first qualifier separator,
	// without the separator. Empty when the reference had none.
	Qualifier string

	// Container reports whether the reference used container addressing.
	Container bool
}

// Parse decomposes a raw reference string.
//
// A reference is container-addressed if and only if it starts with
// ContainerPrefix. A prefixed reference without a container marker in its
// path is malformed and yields ErrInvalidContainerRef.
func Parse(raw string) (Ref, error) {
	path := raw
	qualifier := ""
	if idx := strings.Index(raw, qualifierSep); idx >= 0 {
		path = raw[:idx]
		qualifier = raw[idx+len(qualifierSep):]
	}

	if !strings.HasPrefix(path, ContainerPrefix) {
		return Ref{Path: path, Qualifier: qualifier}, nil
	}

	body := path[len(ContainerPrefix):]
	idx := strings.Index(body, containerMarker)
	if idx < 0 {
		return Ref{}, ErrInvalidContainerRef
	}

	end := idx + len(containerMarker)
	return Ref{
		Path:      body[:end],
		Inner:     strings.TrimLeft(body[end:], "/"),
		Qualifier: qualifier,
		Container: true,
	}, nil
}

// Rewrite produces the reference string pointing at relPath instead of the
// original path, keeping the inner path and qualifier intact. relPath must be
// a forward-slash package-relative path.
//
// Parsing the rewritten reference yields the same inner path and qualifier
// that r carries.
func (r Ref) Rewrite(relPath string) string {
	var b strings.Builder
	if r.Container {
		b.WriteString(ContainerPrefix)
		b.WriteString(relIndicator)
	}
	b.WriteString(relPath)
	if r.Container && r.Inner != "" {
		b.WriteString("/")
		b.WriteString(r.Inner)
	}
	if r.Qualifier != "" {
		b.WriteString(qualifierSep)
		b.WriteString(r.Qualifier)
	}
	return b.String()
}
