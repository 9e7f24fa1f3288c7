package ldconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"ldx/internal/common"
)

const (
	instancePrefix = "leidian"
	configExt      = ".config"
	globalFileName = "leidians.config"
)

// InstanceFiles manages the per-instance leidian<N>.config files.
type InstanceFiles struct {
	client *Client
}

// NewInstanceFiles creates an instance-config manager on the client.
func NewInstanceFiles(c *Client) *InstanceFiles {
	return &InstanceFiles{client: c}
}

// Path returns the config path for an instance id.
func (f *InstanceFiles) Path(id int) string {
	return filepath.Join(f.client.attr.ConfigDir(),
		fmt.Sprintf("%s%d%s", instancePrefix, id, configExt))
}

// List returns the paths of all instance config files, excluding the
// global leidians.config.
func (f *InstanceFiles) List() ([]string, error) {
	names, err := listByExt(f.client.fs, f.client.attr.ConfigDir(), configExt)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, name := range names {
		if strings.HasPrefix(name, instancePrefix) && name != globalFileName {
			paths = append(paths, filepath.Join(f.client.attr.ConfigDir(), name))
		}
	}
	return paths, nil
}

// Resolve maps a caller-facing identifier to an instance id. Accepted
// forms: a bare id ("3") or a file stem ("leidian3").
func (f *InstanceFiles) Resolve(idOrName string) (int, error) {
	s := strings.TrimPrefix(idOrName, instancePrefix)
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: not an instance identifier: %q", common.ErrInvalidPath, idOrName)
	}
	return id, nil
}

// Get loads the config for one instance id.
func (f *InstanceFiles) Get(ctx context.Context, id int) (*InstanceConfig, error) {
	var cfg InstanceConfig
	if err := f.client.loadInto(ctx, f.Path(id), KindInstance, &cfg); err != nil {
		return nil, err
	}
	cfg.ID = id
	return &cfg, nil
}

// GetMany loads the configs for several instance ids.
func (f *InstanceFiles) GetMany(ctx context.Context, ids []int) (map[int]*InstanceConfig, error) {
	out := make(map[int]*InstanceConfig, len(ids))
	for _, id := range ids {
		cfg, err := f.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", id, err)
		}
		out[id] = cfg
	}
	return out, nil
}

// GetRaw returns the flat dotted-key view of an instance config.
func (f *InstanceFiles) GetRaw(ctx context.Context, id int) (map[string]any, error) {
	return f.client.loadFlat(ctx, f.Path(id), KindInstance)
}

// SetRaw updates one dotted key in an instance config and writes the
// file back. A nil value deletes the key.
func (f *InstanceFiles) SetRaw(ctx context.Context, id int, key string, value any) error {
	flat, err := f.GetRaw(ctx, id)
	if err != nil {
		return err
	}
	if value == nil {
		delete(flat, key)
	} else {
		flat[key] = value
	}
	return f.client.dumpJSON(f.Path(id), flat)
}

// Dump writes cfg back to its instance file, flattened to the dotted
// key format the emulator reads. Bypasses the cache; the written path
// is invalidated.
func (f *InstanceFiles) Dump(cfg *InstanceConfig) error {
	nested := make(map[string]any)
	if err := decode(cfg, &nested); err != nil {
		return err
	}
	return f.client.dumpJSON(f.Path(cfg.ID), FlattenDotted(nested))
}
