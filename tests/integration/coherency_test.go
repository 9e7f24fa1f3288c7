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

// Package integration exercises the config cache against an external
// writer, the way the emulator itself rewrites config files while ldx
// is reading them.
package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	. "github.com/onsi/gomega"

	"ldx/internal/cache"
	"ldx/internal/install"
	"ldx/internal/ldconfig"
)

// newEnv builds a fake installation layout and a client with the given
// cache capacity.
func newEnv(t *testing.T, capacity int) (*ldconfig.Client, *cache.Store, string) {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{
		filepath.Join(root, "vms", "customizeConfigs"),
		filepath.Join(root, "vms", "recommendConfigs"),
		filepath.Join(root, "vms", "operationRecords"),
		filepath.Join(root, "vms", "config"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	fs := osfs.New("/")
	store := cache.NewStore(fs, capacity)
	return ldconfig.NewClient(install.NewUnchecked(root), store, fs), store, root
}

func writeInstanceConfig(t *testing.T, f *ldconfig.InstanceFiles, id int, name string) {
	t.Helper()
	content := fmt.Sprintf(`{"statusSettings.playerName": %q}`, name)
	if err := os.WriteFile(f.Path(id), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExternalWriterCoherency(t *testing.T) {
	g := NewWithT(t)
	client, _, _ := newEnv(t, 0)
	f := ldconfig.NewInstanceFiles(client)
	ctx := context.Background()

	writeInstanceConfig(t, f, 0, "original")
	cfg, err := f.Get(ctx, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.StatusSettings.PlayerName).To(Equal("original"))

	// The emulator rewrites the file behind our back. The cached entry
	// goes stale as soon as the mtime moves.
	go func() {
		time.Sleep(50 * time.Millisecond)
		content := []byte(`{"statusSettings.playerName": "rewritten"}`)
		_ = os.WriteFile(f.Path(0), content, 0644)
	}()

	g.Eventually(func() string {
		cfg, err := f.Get(ctx, 0)
		if err != nil {
			return ""
		}
		return cfg.StatusSettings.PlayerName
	}).WithTimeout(5 * time.Second).WithPolling(100 * time.Millisecond).
		Should(Equal("rewritten"))
}

func TestMidWriteReaderRetries(t *testing.T) {
	g := NewWithT(t)
	client, _, _ := newEnv(t, 0)
	f := ldconfig.NewInstanceFiles(client)

	// Torn write: the file exists but is not yet valid JSON. The reader
	// retries briefly, long enough for the writer to finish.
	if err := os.WriteFile(f.Path(0), []byte(`{"statusSettings.play`), 0644); err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(30 * time.Millisecond)
		content := []byte(`{"statusSettings.playerName": "complete"}`)
		_ = os.WriteFile(f.Path(0), content, 0644)
	}()

	cfg, err := f.Get(context.Background(), 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.StatusSettings.PlayerName).To(Equal("complete"))
}

func TestBoundedStoreUnderManyInstances(t *testing.T) {
	g := NewWithT(t)
	client, store, _ := newEnv(t, 5)
	f := ldconfig.NewInstanceFiles(client)
	ctx := context.Background()

	for id := 0; id < 20; id++ {
		writeInstanceConfig(t, f, id, fmt.Sprintf("player-%d", id))
	}
	for round := 0; round < 3; round++ {
		for id := 0; id < 20; id++ {
			cfg, err := f.Get(ctx, id)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(cfg.StatusSettings.PlayerName).To(Equal(fmt.Sprintf("player-%d", id)))
		}
	}

	g.Expect(store.Size()).To(BeNumerically("<=", 5))
}

func TestWriteInvalidateReadCycle(t *testing.T) {
	g := NewWithT(t)
	client, _, _ := newEnv(t, 0)
	instances := ldconfig.NewInstanceFiles(client)
	global := ldconfig.NewGlobalFile(client)
	ctx := context.Background()

	writeInstanceConfig(t, instances, 0, "before")
	if err := os.WriteFile(global.Path(), []byte(`{"framesPerSecond": 30}`), 0644); err != nil {
		t.Fatal(err)
	}

	// Warm the cache through both managers, then edit through ldx and
	// read back immediately. Invalidate-on-write makes the new value
	// visible even when the rewrite lands within mtime resolution.
	for i := 0; i < 10; i++ {
		cfg, err := instances.Get(ctx, 0)
		g.Expect(err).NotTo(HaveOccurred())

		cfg.StatusSettings.PlayerName = fmt.Sprintf("edit-%d", i)
		g.Expect(instances.Dump(cfg)).To(Succeed())

		reread, err := instances.Get(ctx, 0)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(reread.StatusSettings.PlayerName).To(Equal(fmt.Sprintf("edit-%d", i)))
	}

	g.Expect(global.SetRaw(ctx, "framesPerSecond", 120)).To(Succeed())
	cfg, err := global.Get(ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.FramesPerSecond).To(Equal(120))
}
