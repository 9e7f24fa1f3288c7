package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	billy "github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
	log "github.com/sirupsen/logrus"

	"ldx/internal/common"
)

// DefaultCapacity is the default maximum number of cached files.
const DefaultCapacity = 1000

// Store caches parsed JSON config files keyed by absolute path.
// Staleness is detected by mtime equality; when full, the least
// frequently used entries are evicted (ties broken by insertion order).
//
// Thread-safe: a single mutex guards the whole Load sequence, including
// the file I/O. Eviction-then-insert is not safe to interleave, so the
// lock is held from the stat through the insert.
type Store struct {
	mu       sync.Mutex
	fs       billy.Filesystem
	capacity int
	entries  map[string]*entry
	seq      uint64 // monotonically increasing insertion counter
}

type entry struct {
	payload  any
	mtime    time.Time
	kind     Kind
	accesses int
	seq      uint64
}

// NewStore creates a store reading through fs.
// capacity <= 0 selects DefaultCapacity. The capacity is fixed for the
// lifetime of the store.
func NewStore(fs billy.Filesystem, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		fs:       fs,
		capacity: capacity,
		entries:  make(map[string]*entry, 64),
	}
}

// Load returns the parsed JSON payload for the file at path.
//
// The call is one atomic sequence: if the file is gone, any cached entry
// is dropped and ErrNotFound is returned; if the cached mtime equals the
// current mtime the cached payload is served without reading the file;
// otherwise the file is re-read, re-parsed, and inserted with its access
// count reset. A failed reload leaves the store exactly as it was.
//
// The returned payload is owned by the store and must be treated as
// read-only; a later call may evict or replace it.
func (s *Store) Load(path string, kind Kind) (any, error) {
	if Disabled {
		payload, err := s.readAndParse(path)
		if os.IsNotExist(err) {
			// Same error taxonomy as the caching path.
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
		}
		return payload, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fi, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// The file can no longer be trusted: it must not occupy a
			// capacity slot or show up as an eviction candidate.
			delete(s.entries, path)
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", common.ErrIO, path, err)
	}
	mtime := fi.ModTime()

	if e, ok := s.entries[path]; ok && e.mtime.Equal(mtime) {
		if e.kind != kind {
			return nil, fmt.Errorf("%w: %s cached as %q, requested as %q",
				common.ErrKindMismatch, path, e.kind, kind)
		}
		e.accesses++
		return e.payload, nil
	}

	payload, err := s.readAndParse(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Vanished between the stat and the read.
			delete(s.entries, path)
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
		}
		return nil, err
	}

	if len(s.entries) >= s.capacity {
		s.evictLocked(len(s.entries) - s.capacity + 1)
	}

	s.seq++
	s.entries[path] = &entry{
		payload:  payload,
		mtime:    mtime,
		kind:     kind,
		accesses: 1,
		seq:      s.seq,
	}
	log.WithFields(log.Fields{"path": path, "kind": kind}).Debug("cache: loaded")
	return payload, nil
}

// readAndParse reads the full file and parses it as JSON.
// The top-level value must be an object or an array.
func (s *Store) readAndParse(path string) (any, error) {
	data, err := billyutil.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrIO, path, err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrParse, path, err)
	}
	switch payload.(type) {
	case map[string]any, []any:
		return payload, nil
	default:
		return nil, fmt.Errorf("%w: %s: top-level value is not an object or array",
			common.ErrParse, path)
	}
}

// evictLocked removes the n least frequently used entries.
// Ties are broken by insertion order, earliest first, so eviction is
// reproducible for identical call sequences. Caller holds s.mu.
func (s *Store) evictLocked(n int) {
	type candidate struct {
		path string
		e    *entry
	}
	cands := make([]candidate, 0, len(s.entries))
	for p, e := range s.entries {
		cands = append(cands, candidate{p, e})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].e.accesses != cands[j].e.accesses {
			return cands[i].e.accesses < cands[j].e.accesses
		}
		return cands[i].e.seq < cands[j].e.seq
	})
	if n > len(cands) {
		n = len(cands)
	}
	for _, c := range cands[:n] {
		delete(s.entries, c.path)
		log.WithFields(log.Fields{"path": c.path, "accesses": c.e.accesses}).
			Debug("cache: evicted")
	}
}

// Invalidate clears all entries from the cache.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 {
		s.entries = make(map[string]*entry, 64)
	}
}

// InvalidatePath removes a specific path from the cache.
// Called by writers after a successful dump so a read on the heels of a
// write cannot be served a pre-write payload by coarse mtime resolution.
func (s *Store) InvalidatePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, path)
}

// Size returns the current number of entries in the cache.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats describes the current occupancy of a store.
type Stats struct {
	Size     int
	Capacity int
}

// Stats returns current cache statistics.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Size:     len(s.entries),
		Capacity: s.capacity,
	}
}

var _ Invalidator = (*Store)(nil)
