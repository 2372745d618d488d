package gacha

// PitySystem handles a "hard pity": the pull that brings Count up to Pity is
// forced to rare-or-better and resets the counter.
type PitySystem struct {
	Pity  int // threshold; <= 0 disables pity
	Count int // pulls since the last forced pull
}

// NewPitySystem resumes a counter at count with the given threshold.
func NewPitySystem(pity, count int) *PitySystem {
	if count < 0 {
		count = 0
	}
	return &PitySystem{Pity: pity, Count: count}
}

// Advance records one pull and reports whether it is the forced one.
// - Count increments first.
// - If Count reaches Pity, Count resets to 0 and Advance returns true.
func (ps *PitySystem) Advance() bool {
	ps.Count++
	if ps.Pity > 0 && ps.Count >= ps.Pity {
		ps.Count = 0
		return true
	}
	return false
}

// Remaining is how many pulls are left until the next forced pull.
func (ps *PitySystem) Remaining() int {
	if ps.Pity <= 0 {
		return -1
	}
	return ps.Pity - ps.Count
}
