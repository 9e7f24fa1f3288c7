package ldconfig

import (
	"context"
	"strings"
)

const profileExt = ".smp"

// ProfileFiles manages settings metadata profiles (.smp) in the
// customize and recommended directories.
type ProfileFiles struct {
	client *Client
}

// NewProfileFiles creates a profile manager on the client.
func NewProfileFiles(c *Client) *ProfileFiles {
	return &ProfileFiles{client: c}
}

// ListCustomize returns the .smp file names in customizeConfigs.
func (f *ProfileFiles) ListCustomize() ([]string, error) {
	return listByExt(f.client.fs, f.client.attr.CustomizeConfigs(), profileExt)
}

// GetCustomize loads a customized profile by name, with or without the
// .smp extension. A profile the user never customized does not exist
// yet; callers treat ErrNotFound as an expected outcome.
func (f *ProfileFiles) GetCustomize(ctx context.Context, name string) (*Profile, error) {
	return f.get(ctx, f.client.attr.CustomizeConfigs(), name)
}

// GetRecommended loads a bundled recommended profile by name.
func (f *ProfileFiles) GetRecommended(ctx context.Context, name string) (*Profile, error) {
	return f.get(ctx, f.client.attr.RecommendedConfigs(), name)
}

func (f *ProfileFiles) get(ctx context.Context, dir, name string) (*Profile, error) {
	var p Profile
	if err := f.client.loadInto(ctx, joinName(dir, name, profileExt), KindProfile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Dump writes a profile. A relative path is resolved against
// customizeConfigs.
func (f *ProfileFiles) Dump(path string, p *Profile) error {
	if !strings.HasSuffix(path, profileExt) {
		path += profileExt
	}
	return f.client.dumpJSON(resolvePath(f.client.attr.CustomizeConfigs(), path), p)
}
