package rubik3d

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BuiltinPrefix marks asset paths that are generated instead of read from
// disk. "builtin:cubie" is a unit cubie, "builtin:cubie:2.5" one with edge
// 2.5.
const BuiltinPrefix = "builtin:"

// LoaderFunc loads the model behind an asset path.
type LoaderFunc func(path string) (*Model, error)

// Loaded is a finished load handed back to the UI thread by Poll.
type Loaded struct {
	Path  string
	Model *Model
	Err   error
}

// AssetCache loads models by path on background goroutines. Finished loads
// are queued until Poll collects them on the caller's thread, so scene state
// is only touched from one place.
type AssetCache struct {
	load     LoaderFunc
	group    *errgroup.Group
	inflight sync.WaitGroup

	mu       sync.Mutex
	models   map[string]*Model
	pending  map[string]bool
	failed   map[string]error
	finished []Loaded
}

// NewAssetCache creates a cache running at most workers loads at a time.
// A nil loader uses DefaultLoader.
func NewAssetCache(workers int, loader LoaderFunc) *AssetCache {
	if loader == nil {
		loader = DefaultLoader
	}
	g := &errgroup.Group{}
	if workers > 0 {
		g.SetLimit(workers)
	}
	return &AssetCache{
		load:    loader,
		group:   g,
		models:  make(map[string]*Model),
		pending: make(map[string]bool),
		failed:  make(map[string]error),
	}
}

// Preload starts loading every path up front.
func (a *AssetCache) Preload(paths ...string) {
	for _, p := range paths {
		a.Request(p)
	}
}

// Request starts loading path unless it is loaded, loading or has failed.
// It never blocks on the load itself.
func (a *AssetCache) Request(path string) {
	a.mu.Lock()
	if a.models[path] != nil || a.pending[path] || a.failed[path] != nil {
		a.mu.Unlock()
		return
	}
	a.pending[path] = true
	a.mu.Unlock()

	// The errgroup only bounds concurrency. Go blocks once the limit is
	// reached, so it runs on its own goroutine and inflight tracks completion
	// instead of group.Wait. Errors travel to Poll with each result.
	a.inflight.Add(1)
	go a.group.Go(func() error {
		defer a.inflight.Done()
		m, err := a.load(path)
		if err == nil && m == nil {
			err = fmt.Errorf("loader returned no model")
		}
		a.mu.Lock()
		a.finished = append(a.finished, Loaded{Path: path, Model: m, Err: err})
		a.mu.Unlock()
		return nil
	})
}

// Poll collects every load that finished since the last call. Failed loads
// are logged and not retried.
func (a *AssetCache) Poll() []Loaded {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.finished
	a.finished = nil
	for _, l := range out {
		delete(a.pending, l.Path)
		if l.Err != nil {
			a.failed[l.Path] = l.Err
			log.Printf("asset: could not load %s: %v", l.Path, l.Err)
			continue
		}
		a.models[l.Path] = l.Model
	}
	return out
}

// Get returns the model for path if it has been collected by Poll.
func (a *AssetCache) Get(path string) (*Model, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.models[path]
	return m, ok
}

// Pending reports how many loads have not been collected yet.
func (a *AssetCache) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Wait blocks until every started load has finished. Results still need a
// Poll to be collected.
func (a *AssetCache) Wait() {
	a.inflight.Wait()
}

// DefaultLoader reads PLY and DXF files and builds builtin cubies.
func DefaultLoader(path string) (*Model, error) {
	if strings.HasPrefix(path, BuiltinPrefix) {
		return loadBuiltin(strings.TrimPrefix(path, BuiltinPrefix))
	}
	return LoadModelFromFile(path, FACE_NORMAL)
}

func loadBuiltin(name string) (*Model, error) {
	parts := strings.Split(name, ":")
	if parts[0] != "cubie" {
		return nil, fmt.Errorf("unknown builtin asset %q", name)
	}
	size := 1.0
	if len(parts) > 1 {
		s, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || s <= 0 {
			return nil, fmt.Errorf("invalid cubie size %q", parts[1])
		}
		size = s
	}
	return NewCubieModel(BuiltinPrefix+name, size, StickerColors), nil
}
