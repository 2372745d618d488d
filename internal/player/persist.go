package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// ErrCorruptSave marks a save that exists but cannot be decoded. Load still
// returns a usable default state alongside it.
var ErrCorruptSave = errors.New("corrupt save")

// Store loads and saves one State.
type Store interface {
	Load() (*State, error)
	Save(s *State) error
}

// FileStore keeps the state as a JSON document on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (st *FileStore) Path() string { return st.path }

// Load reads the save. A missing file yields a fresh default state; a
// partial one is backfilled from defaults.
func (st *FileStore) Load() (*State, error) {
	b, err := os.ReadFile(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save %s: %w", st.path, err)
	}
	s, err := MergeWithDefaults(b)
	if err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", ErrCorruptSave, st.path, err)
	}
	return s, nil
}

// Save writes atomically: a temp file in the same directory is renamed over
// the target.
func (st *FileStore) Save(s *State) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpPath, st.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// MergeWithDefaults decodes a save on top of Default(). The player,
// currencies, missions, gacha and stats objects merge key by key; every
// other top-level field replaces the default wholesale when present.
func MergeWithDefaults(raw []byte) (*State, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, err
	}
	s := Default()

	// json.Unmarshal into a populated struct or map only overwrites the keys
	// present in the input, which is exactly the per-key merge.
	merged := map[string]any{
		"version":       &s.Version,
		"player":        &s.Player,
		"currencies":    &s.Currencies,
		"activeFrameId": &s.ActiveFrameID,
		"missions":      &s.Missions,
		"gacha":         &s.Gacha,
		"stats":         &s.Stats,
	}
	for key, dst := range merged {
		if msg, ok := top[key]; ok && string(msg) != "null" {
			if err := json.Unmarshal(msg, dst); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
		}
	}

	if msg, ok := top["ownedFrames"]; ok && string(msg) != "null" {
		var frames map[string]*OwnedFrame
		if err := json.Unmarshal(msg, &frames); err != nil {
			return nil, fmt.Errorf("ownedFrames: %w", err)
		}
		s.OwnedFrames = frames
	}
	if msg, ok := top["inventory"]; ok && string(msg) != "null" {
		var inv map[string]int
		if err := json.Unmarshal(msg, &inv); err != nil {
			return nil, fmt.Errorf("inventory: %w", err)
		}
		s.Inventory = inv
	}

	s.normalize()
	if len(s.OwnedFrames) == 0 {
		s.OwnedFrames[StartFrame] = Default().OwnedFrames[StartFrame]
	}
	if !s.OwnsFrame(s.ActiveFrameID) {
		s.ActiveFrameID = slices.Sorted(maps.Keys(s.OwnedFrames))[0]
	}
	return s, nil
}
