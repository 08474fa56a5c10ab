package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"datasets/methane_o2/1.5A/struc.xyz": "7\n\nC 0 0 0\n",
		"results/charges_ct_methaneo2.csv":   "CID,Atom number\n",
		"scripts/methods.yaml":               "methods: []\n",
	}
	writeTree(t, src, files)

	archive := filepath.Join(t.TempDir(), "si_data.tar.zst")
	require.NoError(t, Pack(src, archive, nil))

	dst := t.TempDir()
	require.NoError(t, Unpack(archive, dst))
	for name, content := range files {
		data, err := os.ReadFile(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}
}

func TestPackSkipsMissingDirs(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"results/energies.csv": "CID,Method,Energy\n"})
	archive := filepath.Join(t.TempDir(), "out.tar.zst")
	require.NoError(t, Pack(src, archive, nil))
	info, err := os.Stat(archive)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPackEmpty(t *testing.T) {
	err := Pack(t.TempDir(), filepath.Join(t.TempDir(), "out.tar.zst"), nil)
	require.Error(t, err)
}

func TestPackDeterministic(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"results/b.csv": "b\n",
		"results/a.csv": "a\n",
	})
	dir := t.TempDir()
	a1 := filepath.Join(dir, "one.tar.zst")
	a2 := filepath.Join(dir, "two.tar.zst")
	require.NoError(t, Pack(src, a1, nil))
	require.NoError(t, Pack(src, a2, nil))
	d1, err := os.ReadFile(a1)
	require.NoError(t, err)
	d2, err := os.ReadFile(a2)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestUnpackRejectsEscape(t *testing.T) {
	_, err := safePath("/tmp/x", "../../etc/passwd")
	require.Error(t, err)
	_, err = safePath("/tmp/x", "/etc/passwd")
	require.Error(t, err)
	dest, err := safePath("/tmp/x", "results/a.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/x", "results", "a.csv"), dest)
}
