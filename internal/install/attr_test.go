package install

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldx/internal/common"
)

// makeInstall builds a minimal valid installation layout under a temp
// dir and returns its root.
func makeInstall(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{
		filepath.Join(root, "vms", "customizeConfigs"),
		filepath.Join(root, "vms", "recommendConfigs"),
		filepath.Join(root, "vms", "operationRecords"),
		filepath.Join(root, "vms", "config"),
	} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "dnconsole.exe"), []byte{}, 0755))
	return root
}

func TestNewValidatesLayout(t *testing.T) {
	t.Parallel()
	root := makeInstall(t)

	a, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, root, a.Path)
}

func TestNewRejectsBareDirectory(t *testing.T) {
	t.Parallel()
	_, err := New(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNoInstall))
}

func TestValidateDetectsMissingConfigDir(t *testing.T) {
	t.Parallel()
	root := makeInstall(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "vms", "config")))

	err := NewUnchecked(root).Validate()
	assert.True(t, errors.Is(err, common.ErrNoInstall))
}

func TestPathGetters(t *testing.T) {
	t.Parallel()
	a := NewUnchecked("/opt/ldplayer")

	assert.Equal(t, filepath.Join("/opt/ldplayer", "dnconsole.exe"), a.DNConsole())
	assert.Equal(t, filepath.Join("/opt/ldplayer", "ldconsole.exe"), a.LDConsole())
	assert.Equal(t, filepath.Join("/opt/ldplayer", "vms", "config"), a.ConfigDir())
	assert.Equal(t, filepath.Join("/opt/ldplayer", "vms", "customizeConfigs"), a.CustomizeConfigs())
	assert.Equal(t, filepath.Join("/opt/ldplayer", "vms", "recommendConfigs"), a.RecommendedConfigs())
	assert.Equal(t, filepath.Join("/opt/ldplayer", "vms", "operationRecords"), a.OperationRecords())
}

func TestDiscoverFallsBackToCandidates(t *testing.T) {
	t.Parallel()
	root := makeInstall(t)

	// First candidate is bogus; discovery must skip it.
	a, err := Discover(context.Background(), []string{"/nonexistent/ld", root})
	require.NoError(t, err)
	assert.Equal(t, root, a.Path)
}

func TestDiscoverNoCandidates(t *testing.T) {
	t.Parallel()
	_, err := Discover(context.Background(), nil)
	assert.True(t, errors.Is(err, common.ErrNoInstall))
}
