package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml
var defaultYAML []byte

// Default returns the catalog that ships with the binary.
func Default() (*Catalog, error) {
	d, err := parseYAML(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return New(d)
}

// MustDefault is Default for tests and tools; the embedded data is validated
// by the test suite, so a failure here is a build defect.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Paths helper for base/overlay files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/catalog
}

func (p Paths) BasePath() string {
	return filepath.Join(p.BaseDir, "catalog.yaml")
}

func (p Paths) OverlayDir() string {
	return filepath.Join(p.BaseDir, "overlays")
}

// OverlayPaths lists overlay files in lexical order.
func (p Paths) OverlayPaths() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(p.OverlayDir(), "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Loader reads YAML catalogs and merges base → overlays.
// An empty BaseDir or a missing catalog.yaml falls back to the embedded data.
type Loader struct {
	paths Paths

	mu     sync.Mutex
	cached *Catalog
}

// NewLoader creates a catalog loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

func (l *Loader) Paths() Paths { return l.paths }

// WatchPaths is every file whose change should trigger a reload.
func (l *Loader) WatchPaths() []string {
	if l.paths.BaseDir == "" {
		return nil
	}
	out := []string{l.paths.BasePath()}
	overlays, _ := l.paths.OverlayPaths()
	return append(out, overlays...)
}

// Load returns the merged, validated catalog, using the cache when warm.
func (l *Loader) Load() (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil {
		return l.cached, nil
	}

	merged, err := l.readMerged()
	if err != nil {
		return nil, err
	}
	c, err := New(merged)
	if err != nil {
		return nil, err
	}
	l.cached = c
	return c, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

func (l *Loader) readMerged() (Data, error) {
	base, err := parseYAML(defaultYAML)
	if err != nil {
		return Data{}, fmt.Errorf("parse embedded catalog: %w", err)
	}
	if l.paths.BaseDir == "" {
		return base, nil
	}

	fileBase, found, err := readYAML(l.paths.BasePath())
	if err != nil {
		return Data{}, fmt.Errorf("read base: %w", err)
	}
	if found {
		base = fileBase
	}

	overlays, err := l.paths.OverlayPaths()
	if err != nil {
		return Data{}, fmt.Errorf("list overlays: %w", err)
	}
	merged := base
	for _, p := range overlays {
		o, _, err := readYAML(p)
		if err != nil {
			return Data{}, fmt.Errorf("read overlay %s: %w", filepath.Base(p), err)
		}
		merged = mergeData(merged, o)
	}
	return merged, nil
}

// readYAML loads a YAML file into Data. Missing files return zero data, no error.
func readYAML(path string) (Data, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Data{}, false, nil
		}
		return Data{}, false, err
	}
	d, err := parseYAML(b)
	if err != nil {
		return Data{}, false, err
	}
	return d, true, nil
}

func parseYAML(b []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Data{}, err
	}
	return d, nil
}

// mergeData layers b over a: an entry whose id already exists replaces it in
// place, a new id is appended. Scalars in b override when non-empty.
func mergeData(a, b Data) Data {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	out.Frames = mergeByID(a.Frames, b.Frames, func(f Frame) string { return f.ID })
	out.Parts = mergeByID(a.Parts, b.Parts, func(p Part) string { return p.ID })
	out.Missions = mergeByID(a.Missions, b.Missions, func(m Mission) string { return m.ID })
	out.Banners = mergeByID(a.Banners, b.Banners, func(bn Banner) string { return bn.ID })
	return out
}

func mergeByID[T any](base, over []T, id func(T) string) []T {
	out := append([]T(nil), base...)
	pos := make(map[string]int, len(out))
	for i, v := range out {
		pos[id(v)] = i
	}
	for _, v := range over {
		if i, ok := pos[id(v)]; ok {
			out[i] = v
			continue
		}
		pos[id(v)] = len(out)
		out = append(out, v)
	}
	return out
}
