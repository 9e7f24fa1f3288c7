package ldconfig

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldx/internal/cache"
	"ldx/internal/common"
	"ldx/internal/install"
)

// newTestClient builds a fake installation layout and a client over it.
func newTestClient(t *testing.T) *Client {
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
	attr := install.NewUnchecked(root)
	fs := osfs.New("/")
	return NewClient(attr, cache.NewStore(fs, 0), fs)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const instanceFixture = `{
    "propertySettings.phoneIMEI": "860000000000001",
    "propertySettings.phoneModel": "Pixel 5",
    "statusSettings.playerName": "Farm-03",
    "statusSettings.closeOption": 0,
    "basicSettings.left": 100,
    "basicSettings.top": 50,
    "basicSettings.verticalSync": true,
    "basicSettings.fps": 60,
    "networkSettings.networkEnable": true,
    "networkSettings.networkDNS1": "8.8.8.8",
    "advancedSettings.resolution": {"width": 960, "height": 540},
    "advancedSettings.cpuCount": 2,
    "advancedSettings.memorySize": 4096
}`

func TestInstanceGet(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewInstanceFiles(c)
	writeFile(t, f.Path(0), instanceFixture)

	cfg, err := f.Get(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.ID)
	assert.Equal(t, "Farm-03", cfg.StatusSettings.PlayerName)
	assert.Equal(t, "860000000000001", cfg.PropertySettings.PhoneIMEI)
	assert.Equal(t, 100, cfg.BasicSettings.Left)
	assert.True(t, cfg.BasicSettings.VerticalSync)
	assert.Equal(t, 60, cfg.BasicSettings.FPS)
	assert.Equal(t, "8.8.8.8", cfg.NetworkSettings.NetworkDNS1)
	require.NotNil(t, cfg.AdvancedSettings)
	assert.Equal(t, 960, cfg.AdvancedSettings.Resolution.Width)
	assert.Equal(t, 2, cfg.AdvancedSettings.CPUCount)
	assert.Nil(t, cfg.HotkeySettings)
}

func TestInstanceGetMissing(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewInstanceFiles(c)

	_, err := f.Get(context.Background(), 42)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestInstanceList(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewInstanceFiles(c)

	writeFile(t, f.Path(0), `{}`)
	writeFile(t, f.Path(3), `{}`)
	writeFile(t, filepath.Join(c.attr.ConfigDir(), "leidians.config"), `{}`)
	writeFile(t, filepath.Join(c.attr.ConfigDir(), "notes.txt"), "x")

	paths, err := f.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{f.Path(0), f.Path(3)}, paths)
}

func TestInstanceResolve(t *testing.T) {
	t.Parallel()
	f := NewInstanceFiles(newTestClient(t))

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"12", 12, false},
		{"leidian7", 7, false},
		{"leidian", 0, true},
		{"banana", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		got, err := f.Resolve(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "Resolve(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "Resolve(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestInstanceGetMany(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewInstanceFiles(c)
	writeFile(t, f.Path(0), `{"statusSettings.playerName": "a"}`)
	writeFile(t, f.Path(1), `{"statusSettings.playerName": "b"}`)

	cfgs, err := f.GetMany(context.Background(), []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "a", cfgs[0].StatusSettings.PlayerName)
	assert.Equal(t, "b", cfgs[1].StatusSettings.PlayerName)

	_, err = f.GetMany(context.Background(), []int{0, 9})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestInstanceDumpWritesDottedKeysAndInvalidates(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewInstanceFiles(c)
	ctx := context.Background()

	writeFile(t, f.Path(0), instanceFixture)
	cfg, err := f.Get(ctx, 0)
	require.NoError(t, err)

	cfg.StatusSettings.PlayerName = "renamed"
	require.NoError(t, f.Dump(cfg))

	// On-disk format is flat dotted keys.
	raw, err := os.ReadFile(f.Path(0))
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "renamed", flat["statusSettings.playerName"])
	assert.NotContains(t, flat, "statusSettings")

	// The write bypassed the cache but invalidated the path, so the next
	// read sees the new value even within mtime resolution.
	reread, err := f.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "renamed", reread.StatusSettings.PlayerName)
}

func TestSharedStoreAcrossManagers(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	instances := NewInstanceFiles(c)
	global := NewGlobalFile(c)
	ctx := context.Background()

	writeFile(t, instances.Path(0), `{"statusSettings.playerName": "a"}`)
	writeFile(t, global.Path(), `{"framesPerSecond": 120}`)

	_, err := instances.Get(ctx, 0)
	require.NoError(t, err)
	_, err = global.Get(ctx)
	require.NoError(t, err)

	// Both managers populate the same bounded store.
	assert.Equal(t, 2, c.store.Size())
}
