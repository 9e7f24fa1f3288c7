// Copyright 2025 ldx Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ldconfig reads and writes the JSON configuration files of an
// LDPlayer installation: per-instance configs, the global config,
// settings profiles, keyboard mappings, and operation records.
//
// All reads go through the shared cache store; writes serialize the
// typed record straight to disk and invalidate the written path, so the
// next read reloads it.
package ldconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	billy "github.com/go-git/go-billy/v5"

	"ldx/internal/cache"
	"ldx/internal/common"
	"ldx/internal/install"
	"ldx/internal/util"
)

// Payload kinds. One kind per config-file family; the store rejects a
// hit requested under a different kind than it was cached under.
const (
	KindInstance cache.Kind = "instance-config"
	KindGlobal   cache.Kind = "global-config"
	KindProfile  cache.Kind = "profile"
	KindMapping  cache.Kind = "keyboard-mapping"
	KindRecord   cache.Kind = "operation-record"
)

// Client is the capability every config-file manager composes: it
// resolves paths through the installation attributes and is the only
// way managers reach the cache store.
type Client struct {
	attr  *install.Attr
	store *cache.Store
	fs    billy.Filesystem
}

// NewClient creates the client capability. All managers built from the
// same client share one store and therefore one bounded cache.
func NewClient(attr *install.Attr, store *cache.Store, fs billy.Filesystem) *Client {
	return &Client{attr: attr, store: store, fs: fs}
}

// Attr returns the installation attributes paths are resolved against.
func (c *Client) Attr() *install.Attr {
	return c.attr
}

// LoadJSON returns the cached payload for path, retrying briefly on
// parse failures: the emulator writes its configs in place, so a read
// can catch a file mid-write.
func (c *Client) LoadJSON(ctx context.Context, path string, kind cache.Kind) (any, error) {
	return util.RetryWithResult(ctx, func() (any, error) {
		return c.store.Load(path, kind)
	}, util.ConfigRetryOptions(ctx)...)
}

// loadFlat returns the flat dotted-key view of a config file. The
// returned map is rebuilt from the cached payload, so callers may
// mutate it freely.
func (c *Client) loadFlat(ctx context.Context, path string, kind cache.Kind) (map[string]any, error) {
	payload, err := c.LoadJSON(ctx, path, kind)
	if err != nil {
		return nil, err
	}
	flat, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: top level is not an object", common.ErrParse, path)
	}
	return FlattenDotted(ExpandDotted(flat)), nil
}

// loadInto loads path and decodes its payload into dst after expanding
// dotted keys.
func (c *Client) loadInto(ctx context.Context, path string, kind cache.Kind, dst any) error {
	payload, err := c.LoadJSON(ctx, path, kind)
	if err != nil {
		return err
	}
	if flat, ok := payload.(map[string]any); ok {
		payload = ExpandDotted(flat)
	}
	return decode(payload, dst)
}

// decode maps a raw JSON payload onto a typed record by round-tripping
// through encoding/json. The payload stays untouched; dst gets a copy.
func decode(payload any, dst any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// marshalIndented serializes v the way the emulator writes its own
// files: 4-space indent, non-ASCII preserved.
func marshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
