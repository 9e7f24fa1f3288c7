package ldconfig

import (
	"context"
	"strings"
)

// Keyboard mapping (.kmp) files: how keyboard input is translated into
// touch actions, per game package and resolution.

// Point is a 2D screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CurvePoint is a point along a gesture path with its timing offset in
// milliseconds.
type CurvePoint struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Timing int `json:"timing"`
}

// ResolutionPattern scopes a mapping to a screen resolution.
type ResolutionPattern struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// KeyboardData is one binding's payload. Point-style fields and the
// curve are mutually exclusive: a non-empty Curve makes the entry a
// gesture, otherwise it is a single-point touch.
type KeyboardData struct {
	Key             int    `json:"key"`
	SecondKey       int    `json:"secondKey"`
	ExtraData       string `json:"extraData"`
	Description     string `json:"description"`
	MoreDescription string `json:"moreDescription"`
	HintVisible     bool   `json:"hintVisible"`
	HintOffset      Point  `json:"hintOffset"`

	Point          *Point       `json:"point,omitempty"`
	Type           int          `json:"type,omitempty"`
	DownDuration   int          `json:"downDuration,omitempty"`
	UpDuration     int          `json:"upDuration,omitempty"`
	DownDurationEx int          `json:"downDurationEx,omitempty"`
	UpDurationEx   int          `json:"upDurationEx,omitempty"`
	Curve          []CurvePoint `json:"curve,omitempty"`
}

// KeyboardEntry is one binding: its class name plus the payload.
type KeyboardEntry struct {
	Class string       `json:"class"`
	Data  KeyboardData `json:"data"`
}

// IsCurve reports whether the entry is a gesture binding.
func (e *KeyboardEntry) IsCurve() bool {
	return len(e.Data.Curve) > 0
}

// ConfigInfo identifies the game and resolution a mapping applies to.
type ConfigInfo struct {
	Version            int               `json:"version"`
	VersionMessage     string            `json:"versionMessage"`
	PackageNameType    int               `json:"packageNameType"`
	PackageNamePattern string            `json:"packageNamePattern"`
	ResolutionType     int               `json:"resolutionType"`
	ResolutionPattern  ResolutionPattern `json:"resolutionPattern"`
	Priority           int               `json:"priority"`
	Search             string            `json:"search"`
}

// KeyboardConfig holds mapping-wide mouse and overlay behavior.
type KeyboardConfig struct {
	MouseCenter       Point  `json:"mouseCenter"`
	MouseScrollType   int    `json:"mouseScrollType"`
	DiscType          int    `json:"discType"`
	Advertising       bool   `json:"advertising"`
	AdvertiseDuration int    `json:"advertiseDuration"`
	AdvertiseText     string `json:"advertiseText"`
	CancelPoint       Point  `json:"cancelPoint"`
	CancelKey         int    `json:"cancelKey"`
	CancelMode        int    `json:"cancelMode"`
	Cursor            string `json:"cursor"`
	ExtraData         string `json:"extraData"`
}

// KeyboardMapping is one .kmp file.
type KeyboardMapping struct {
	ConfigInfo       ConfigInfo      `json:"configInfo"`
	KeyboardConfig   KeyboardConfig  `json:"keyboardConfig"`
	KeyboardMappings []KeyboardEntry `json:"keyboardMappings"`
}

// MappingFiles manages .kmp files in the customize and recommended
// directories.
type MappingFiles struct {
	client *Client
}

// NewMappingFiles creates a keyboard-mapping manager on the client.
func NewMappingFiles(c *Client) *MappingFiles {
	return &MappingFiles{client: c}
}

// ListCustomize returns the .kmp file names in customizeConfigs.
func (f *MappingFiles) ListCustomize() ([]string, error) {
	return listByExt(f.client.fs, f.client.attr.CustomizeConfigs(), ".kmp")
}

// GetCustomize loads a customized mapping by name, with or without the
// .kmp extension.
func (f *MappingFiles) GetCustomize(ctx context.Context, name string) (*KeyboardMapping, error) {
	return f.get(ctx, f.client.attr.CustomizeConfigs(), name)
}

// GetRecommended loads a bundled recommended mapping by name.
func (f *MappingFiles) GetRecommended(ctx context.Context, name string) (*KeyboardMapping, error) {
	return f.get(ctx, f.client.attr.RecommendedConfigs(), name)
}

func (f *MappingFiles) get(ctx context.Context, dir, name string) (*KeyboardMapping, error) {
	var m KeyboardMapping
	if err := f.client.loadInto(ctx, joinName(dir, name, ".kmp"), KindMapping, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Dump writes a mapping. A relative path is resolved against
// customizeConfigs.
func (f *MappingFiles) Dump(path string, m *KeyboardMapping) error {
	if !strings.HasSuffix(path, ".kmp") {
		path += ".kmp"
	}
	return f.client.dumpJSON(resolvePath(f.client.attr.CustomizeConfigs(), path), m)
}
