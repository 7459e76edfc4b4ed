package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
}

func TestDiscoveryFirst(t *testing.T) {
	root := t.TempDir()
	d := NewDiscovery(root, DefaultLayout())
	touch(t, d.Dir(models.SourceContext), ".hidden.xlsx", "~$context.xlsx", "b.xlsx", "a.xlsx", "notes.txt")

	path, err := d.First(models.SourceContext, ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, "a.xlsx", filepath.Base(path))

	_, err = d.First(models.SourcePyrolysis, ".csv")
	assert.ErrorIs(t, err, models.ErrSourceNotFound)
}

func TestDiscoveryDir(t *testing.T) {
	d := NewDiscovery("/data", Layout{Online: "gc/online", Offline: "/abs/offline"})
	assert.Equal(t, filepath.Join("/data", "gc/online"), d.Dir(models.SourceOnline))
	assert.Equal(t, "/abs/offline", d.Dir(models.SourceOffline))
	assert.Equal(t, "/data", d.Dir(models.SourceResume))
}

func TestOfflinePair(t *testing.T) {
	root := t.TempDir()
	d := NewDiscovery(root, DefaultLayout())
	dir := d.Dir(models.SourceOffline)
	touch(t, dir, "run_R1.xlsx", "run_r2.XLSX", "run_R3.xlsx")

	r1, r2, err := d.OfflinePair()
	require.NoError(t, err)
	assert.Equal(t, "run_R1.xlsx", filepath.Base(r1))
	assert.Equal(t, "run_r2.XLSX", filepath.Base(r2))

	touch(t, dir, "other_R1.xlsx")
	_, _, err = d.OfflinePair()
	assert.ErrorIs(t, err, models.ErrAmbiguousSource)
}

func TestOfflinePairMissing(t *testing.T) {
	root := t.TempDir()
	d := NewDiscovery(root, DefaultLayout())
	touch(t, d.Dir(models.SourceOffline), "run_R1.xlsx")

	_, _, err := d.OfflinePair()
	assert.ErrorIs(t, err, models.ErrSourceNotFound)
}
