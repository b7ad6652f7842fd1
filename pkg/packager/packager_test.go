package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/qpack-dev/qpack/pkg/copier"
	"github.com/qpack-dev/qpack/pkg/locator"
	"github.com/qpack-dev/qpack/pkg/packager/mocks"
	"github.com/qpack-dev/qpack/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeProject(t *testing.T, dir string, layers ...[3]string) *project.Project {
	t.Helper()

	body := ""
	for _, l := range layers {
		body += fmt.Sprintf(`    <maplayer>
      <layername>%s</layername>
      <datasource>%s</datasource>
      <provider>%s</provider>
    </maplayer>
`, l[0], l[1], l[2])
	}
	content := `<?xml version="1.0" encoding="utf-8"?>
<qgis version="3.28.11-Firenze">
  <projectlayers>
` + body + `  </projectlayers>
</qgis>
`
	path := filepath.Join(dir, "demo.qgs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	proj, err := project.Load(context.Background(), path)
	require.NoError(t, err)
	return proj
}

func TestRun_SkipsEntriesWithMissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	proj := writeProject(t, tempDir,
		[3]string{"nameless", "", ""},
		[3]string{"no-provider", "data.csv", ""},
	)

	loc := mocks.NewMockFileLocator(ctrl)
	cop := mocks.NewMockResourceCopier(ctrl)

	result, err := New(loc, cop, nil).Run(context.Background(), proj, Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 2, result.Skipped)
}

func TestRun_SkipsExcludedProviders(t *testing.T) {
	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	proj := writeProject(t, tempDir,
		[3]string{"basemap", "url=https://tile.example/{z}/{x}/{y}.png", "xyz"},
	)

	loc := mocks.NewMockFileLocator(ctrl)
	cop := mocks.NewMockResourceCopier(ctrl)

	result, err := New(loc, cop, nil).Run(context.Background(), proj, Options{SkipProviders: []string{"xyz"}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "url=https://tile.example/{z}/{x}/{y}.png", proj.Entries()[0].Source)
}

func TestRun_UnresolvableReferenceLeavesEntryUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	proj := writeProject(t, tempDir,
		[3]string{"ghost", "missing.tif", "gdal"},
	)

	loc := mocks.NewMockFileLocator(ctrl)
	loc.EXPECT().Resolve("missing.tif").Return(locator.Resolved{}, locator.ErrNotFound)
	cop := mocks.NewMockResourceCopier(ctrl)

	result, err := New(loc, cop, nil).Run(context.Background(), proj, Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "missing.tif", proj.Entries()[0].Source)
}

func TestRun_InvalidContainerReferenceSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	proj := writeProject(t, tempDir,
		[3]string{"broken", "/vsizip//data/archive.tar/roads.shp", "ogr"},
	)

	result, err := New(mocks.NewMockFileLocator(ctrl), mocks.NewMockResourceCopier(ctrl), nil).
		Run(context.Background(), proj, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
}

func TestRun_ContainerCopiedOncePerDestination(t *testing.T) {
	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	proj := writeProject(t, tempDir,
		[3]string{"roads", "/vsizip//data/archive.zip/roads.shp|layername=roads", "ogr"},
		[3]string{"rivers", "/vsizip//data/archive.zip/rivers.shp|layername=rivers", "ogr"},
	)

	loc := mocks.NewMockFileLocator(ctrl)
	loc.EXPECT().Resolve("/data/archive.zip").
		Return(locator.Resolved{Path: "/data/archive.zip", Kind: locator.KindContainer}, nil).
		Times(2)

	cop := mocks.NewMockResourceCopier(ctrl)
	// One physical copy for two references.
	cop.EXPECT().CopyFile("/data/archive.zip", gomock.Any()).Return(nil).Times(1)

	result, err := New(loc, cop, nil).Run(context.Background(), proj, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Skipped)

	entries := proj.Entries()
	assert.Equal(t, "/vsizip/./Links/data/archive.zip/roads.shp|layername=roads", entries[0].Source)
	assert.Equal(t, "/vsizip/./Links/data/archive.zip/rivers.shp|layername=rivers", entries[1].Source)
}

func TestRun_IncompleteDatasetSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	proj := writeProject(t, tempDir,
		[3]string{"parcels", "/data/gis/parcels.shp", "ogr"},
	)

	loc := mocks.NewMockFileLocator(ctrl)
	loc.EXPECT().Resolve("/data/gis/parcels.shp").
		Return(locator.Resolved{Path: "/data/gis/parcels.shp", Kind: locator.KindSidecarSet}, nil)

	cop := mocks.NewMockResourceCopier(ctrl)
	cop.EXPECT().CopySidecars("/data/gis/parcels.shp", gomock.Any()).
		Return(nil, copier.ErrIncompleteDataset)

	result, err := New(loc, cop, nil).Run(context.Background(), proj, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "/data/gis/parcels.shp", proj.Entries()[0].Source)
}

func TestRun_CopyFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	tempDir := t.TempDir()

	proj := writeProject(t, tempDir,
		[3]string{"elevation", "/data/elevation.tif", "gdal"},
	)

	loc := mocks.NewMockFileLocator(ctrl)
	loc.EXPECT().Resolve("/data/elevation.tif").
		Return(locator.Resolved{Path: "/data/elevation.tif", Kind: locator.KindRegular}, nil)

	cop := mocks.NewMockResourceCopier(ctrl)
	cop.EXPECT().CopyFile("/data/elevation.tif", gomock.Any()).
		Return(fmt.Errorf("disk full"))

	_, err := New(loc, cop, nil).Run(context.Background(), proj, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
