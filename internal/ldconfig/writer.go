package ldconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"ldx/internal/common"
)

// dumpJSON serializes v and writes it to path through a uniquely named
// temp file in the same directory, renamed over the target. The written
// path is invalidated in the store; the cache is never updated in
// place.
func (c *Client) dumpJSON(path string, v any) error {
	data, err := marshalIndented(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp-" + uuid.NewString()[:8]
	if err := billyutil.WriteFile(c.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrIO, tmp, err)
	}
	if err := c.fs.Rename(tmp, path); err != nil {
		_ = c.fs.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %v", common.ErrIO, path, err)
	}

	c.store.InvalidatePath(path)
	log.WithField("path", path).Debug("ldconfig: dumped")
	return nil
}

// listByExt returns the file names in dir with the given extension.
// A missing directory is reported as ErrNotFound.
func listByExt(fs billy.Filesystem, dir, ext string) ([]string, error) {
	infos, err := fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("%w: readdir %s: %v", common.ErrIO, dir, err)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), ext) {
			names = append(names, info.Name())
		}
	}
	return names, nil
}

// joinName joins dir and name, appending ext when name lacks it.
func joinName(dir, name, ext string) string {
	if !strings.HasSuffix(name, ext) {
		name += ext
	}
	return filepath.Join(dir, name)
}

// resolvePath resolves a possibly relative path against base.
func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
