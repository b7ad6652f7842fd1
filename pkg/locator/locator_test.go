package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
}

func TestSearchRoots(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "a", "b", "projects", "demo")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))

	roots := SearchRoots(projectDir, 3)

	require.Len(t, roots, 4)
	assert.Equal(t, projectDir, roots[0])
	assert.Equal(t, filepath.Dir(projectDir), roots[1])
	assert.Equal(t, filepath.Dir(filepath.Dir(projectDir)), roots[2])
}

func TestSearchRoots_StopsAtFilesystemRoot(t *testing.T) {
	roots := SearchRoots(string(filepath.Separator), 3)
	assert.Equal(t, []string{string(filepath.Separator)}, roots)
}

func TestResolve_AbsolutePath(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	target := filepath.Join(tempDir, "elsewhere", "elevation.tif")
	writeFile(t, target)
	require.NoError(t, os.MkdirAll(projectDir, 0o755))

	l := New(projectDir, Options{})

	resolved, err := l.Resolve(target)
	require.NoError(t, err)
	assert.Equal(t, target, resolved.Path)
	assert.Equal(t, KindRegular, resolved.Kind)
}

func TestResolve_ProjectRelative(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	writeFile(t, filepath.Join(projectDir, "data", "parcels.shp"))

	l := New(projectDir, Options{})

	resolved, err := l.Resolve("data/parcels.shp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(projectDir, "data", "parcels.shp"), resolved.Path)
	assert.Equal(t, KindSidecarSet, resolved.Kind)
}

func TestResolve_BasenameSearchUnderAncestors(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "work", "projects", "demo")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))

	// The recorded absolute path does not exist; the file lives in a sibling
	// tree reachable from an ancestor root.
	target := filepath.Join(tempDir, "work", "shared", "rasters", "hillshade.tif")
	writeFile(t, target)

	l := New(projectDir, Options{})

	resolved, err := l.Resolve("/mnt/gis/old/hillshade.tif")
	require.NoError(t, err)
	assert.Equal(t, target, resolved.Path)
}

func TestResolve_CleanedRelativeMarkers(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "projects", "demo")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))

	// data/ lives next to the project directory, so "../data/..." only works
	// once the markers are stripped and the remainder joined to an ancestor.
	target := filepath.Join(tempDir, "projects", "data", "wells.csv")
	writeFile(t, target)

	l := New(projectDir, Options{})

	resolved, err := l.Resolve("../../../data/wells.csv")
	require.NoError(t, err)
	assert.Equal(t, target, resolved.Path)
}

func TestResolve_ExtraRoots(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))

	shared := filepath.Join(t.TempDir(), "shared")
	target := filepath.Join(shared, "basemap.tif")
	writeFile(t, target)

	// Depth 1 so the hit can only come from the extra root.
	l := New(projectDir, Options{SearchDepth: 1, ExtraRoots: []string{shared}})

	resolved, err := l.Resolve("basemap.tif")
	require.NoError(t, err)
	assert.Equal(t, target, resolved.Path)
}

func TestResolve_NotFound(t *testing.T) {
	tempDir := t.TempDir()
	projectDir := filepath.Join(tempDir, "project")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))

	// Depth 1 keeps the walk inside the test sandbox.
	l := New(projectDir, Options{SearchDepth: 1})

	_, err := l.Resolve("missing-f3a91c.tif")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"/data/parcels.shp", KindSidecarSet},
		{"/data/PARCELS.SHP", KindSidecarSet},
		{"/data/archive.zip", KindContainer},
		{"/data/elevation.tif", KindRegular},
		{"/data/table.csv", KindRegular},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.path), "path %s", tt.path)
	}
}
