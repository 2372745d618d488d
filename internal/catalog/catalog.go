package catalog

import (
	"fmt"
	"slices"
)

// Catalog is the immutable reference data every other component reads.
// Slices keep declaration order; ordering matters for mission unlocks and
// for the uniform part drop.
type Catalog struct {
	version  string
	frames   []Frame
	parts    []Part
	missions []Mission
	banners  []Banner

	frameIdx   map[string]int
	partIdx    map[string]int
	missionIdx map[string]int
	bannerIdx  map[string]int
}

// New validates d and builds a Catalog from it.
func New(d Data) (*Catalog, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	c := &Catalog{
		version:    d.Version,
		frames:     append([]Frame(nil), d.Frames...),
		parts:      append([]Part(nil), d.Parts...),
		missions:   append([]Mission(nil), d.Missions...),
		banners:    make([]Banner, len(d.Banners)),
		frameIdx:   make(map[string]int, len(d.Frames)),
		partIdx:    make(map[string]int, len(d.Parts)),
		missionIdx: make(map[string]int, len(d.Missions)),
		bannerIdx:  make(map[string]int, len(d.Banners)),
	}
	for i, f := range c.frames {
		c.frameIdx[f.ID] = i
	}
	for i, p := range c.parts {
		c.partIdx[p.ID] = i
	}
	for i, m := range c.missions {
		c.missionIdx[m.ID] = i
	}
	for i, b := range d.Banners {
		if b.Currency == "" {
			b.Currency = CurrencyDollars
		}
		c.banners[i] = b
		c.bannerIdx[b.ID] = i
	}
	return c, nil
}

func (c *Catalog) Version() string { return c.version }

// The list accessors return copies in declaration order. Maps and slices
// nested inside an element are shared and must not be modified.
func (c *Catalog) Frames() []Frame     { return slices.Clone(c.frames) }
func (c *Catalog) Parts() []Part       { return slices.Clone(c.parts) }
func (c *Catalog) Missions() []Mission { return slices.Clone(c.missions) }
func (c *Catalog) Banners() []Banner   { return slices.Clone(c.banners) }

func (c *Catalog) Frame(id string) (Frame, bool) {
	i, ok := c.frameIdx[id]
	if !ok {
		return Frame{}, false
	}
	return c.frames[i], true
}

func (c *Catalog) Part(id string) (Part, bool) {
	i, ok := c.partIdx[id]
	if !ok {
		return Part{}, false
	}
	return c.parts[i], true
}

func (c *Catalog) Mission(id string) (Mission, bool) {
	i, ok := c.missionIdx[id]
	if !ok {
		return Mission{}, false
	}
	return c.missions[i], true
}

func (c *Catalog) Banner(id string) (Banner, bool) {
	i, ok := c.bannerIdx[id]
	if !ok {
		return Banner{}, false
	}
	return c.banners[i], true
}

// MissionIndex returns the position of id in unlock order, or -1.
func (c *Catalog) MissionIndex(id string) int {
	i, ok := c.missionIdx[id]
	if !ok {
		return -1
	}
	return i
}

// Must* lookups are for ids that came out of this catalog. A miss means the
// caller broke the contract, so they panic instead of returning an error.

func (c *Catalog) MustFrame(id string) Frame {
	f, ok := c.Frame(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown frame %q", id))
	}
	return f
}

func (c *Catalog) MustPart(id string) Part {
	p, ok := c.Part(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown part %q", id))
	}
	return p
}

func (c *Catalog) MustMission(id string) Mission {
	m, ok := c.Mission(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown mission %q", id))
	}
	return m
}

func (c *Catalog) MustBanner(id string) Banner {
	b, ok := c.Banner(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown banner %q", id))
	}
	return b
}

// ItemRarity resolves the rarity of a banner pool entry.
func (c *Catalog) ItemRarity(b Banner, id string) (Rarity, bool) {
	if b.FrameBanner {
		f, ok := c.Frame(id)
		return f.Rarity, ok
	}
	p, ok := c.Part(id)
	return p.Rarity, ok
}
