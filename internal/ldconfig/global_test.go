package ldconfig

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalGetAppliesDefaults(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewGlobalFile(c)
	writeFile(t, f.Path(), `{"languageId": "en", "mulTab": true}`)

	cfg, err := f.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.LanguageID)
	assert.True(t, cfg.MulTab)
	assert.Equal(t, 60, cfg.FramesPerSecond, "absent field keeps emulator default")
	assert.Equal(t, 5, cfg.BatchStartInterval)
}

func TestGlobalGetDottedKeys(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewGlobalFile(c)
	writeFile(t, f.Path(), `{
        "basicSettings.lastIp": "10.0.0.2",
        "windowsOrigin.x": 5,
        "windowsOrigin.y": 7,
        "framesPerSecond": 30
    }`)

	cfg, err := f.Get(context.Background())
	require.NoError(t, err)

	require.NotNil(t, cfg.BasicSettings)
	require.NotNil(t, cfg.BasicSettings.LastIP)
	assert.Equal(t, "10.0.0.2", *cfg.BasicSettings.LastIP)
	require.NotNil(t, cfg.WindowsOrigin)
	assert.Equal(t, 5, cfg.WindowsOrigin.X)
	assert.Equal(t, 30, cfg.FramesPerSecond)
}

func TestGlobalDumpRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	f := NewGlobalFile(c)
	ctx := context.Background()

	cfg := DefaultGlobalConfig()
	cfg.LanguageID = "en"
	cfg.WindowsRowCount = 2
	cfg.WindowsOrigin = &WindowsPosition{X: 10, Y: 20}
	require.NoError(t, f.Dump(cfg))

	raw, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, float64(10), flat["windowsOrigin.x"])
	assert.Equal(t, float64(60), flat["framesPerSecond"])

	loaded, err := f.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.LanguageID, loaded.LanguageID)
	assert.Equal(t, 2, loaded.WindowsRowCount)
	require.NotNil(t, loaded.WindowsOrigin)
	assert.Equal(t, 20, loaded.WindowsOrigin.Y)
}
