package ldconfig

import (
	"context"
	"path/filepath"
)

// GlobalFile manages leidians.config, the single global configuration
// shared by all instances.
type GlobalFile struct {
	client *Client
}

// NewGlobalFile creates the global-config manager on the client.
func NewGlobalFile(c *Client) *GlobalFile {
	return &GlobalFile{client: c}
}

// Path returns the global config path.
func (f *GlobalFile) Path() string {
	return filepath.Join(f.client.attr.ConfigDir(), globalFileName)
}

// Get loads the global config. Fields absent from the file keep the
// emulator's defaults.
func (f *GlobalFile) Get(ctx context.Context) (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()
	if err := f.client.loadInto(ctx, f.Path(), KindGlobal, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetRaw returns the flat dotted-key view of the global config.
func (f *GlobalFile) GetRaw(ctx context.Context) (map[string]any, error) {
	return f.client.loadFlat(ctx, f.Path(), KindGlobal)
}

// SetRaw updates one dotted key in the global config and writes the
// file back. A nil value deletes the key.
func (f *GlobalFile) SetRaw(ctx context.Context, key string, value any) error {
	flat, err := f.GetRaw(ctx)
	if err != nil {
		return err
	}
	if value == nil {
		delete(flat, key)
	} else {
		flat[key] = value
	}
	return f.client.dumpJSON(f.Path(), flat)
}

// Dump writes cfg back to leidians.config in the emulator's dotted key
// format. Bypasses the cache; the written path is invalidated.
func (f *GlobalFile) Dump(cfg *GlobalConfig) error {
	nested := make(map[string]any)
	if err := decode(cfg, &nested); err != nil {
		return err
	}
	return f.client.dumpJSON(f.Path(), FlattenDotted(nested))
}
