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

// Package cache provides the shared file-backed JSON cache used by all
// config-file managers.
//
// Design principles:
// 1. One store per process - every manager reads through the same Store
// 2. Staleness by mtime equality - any on-disk change (including a clock
//    set backward) forces a reload
// 3. Bounded memory - LFU eviction keeps the entry count at or below the
//    configured capacity after every operation
//
// Writers never update the store in place. A write goes straight to disk
// and the next Load observes the changed mtime; writers owned by this
// process additionally call InvalidatePath to close the coarse-mtime
// window.
package cache

import "os"

// Disabled controls whether caching is bypassed entirely.
// Set via LDX_CACHE=0 environment variable.
// When true, Load reads and parses the file on every call and the
// entries map is never touched.
//
// This is useful for isolating cache-related bugs: behavior with the
// cache disabled is the reference behavior.
var Disabled = os.Getenv("LDX_CACHE") == "0"

// Invalidator is implemented by all caches that support full invalidation.
type Invalidator interface {
	// Invalidate clears all entries from the cache.
	Invalidate()
}

// Kind tags a cached payload with the shape its loader expects.
// The store is keyed only by path; two managers that disagree about a
// path's shape would otherwise silently share one payload. A hit whose
// stored kind differs from the requested kind fails instead.
type Kind string
