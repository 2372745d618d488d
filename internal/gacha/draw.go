package gacha

import (
	"errors"

	"github.com/xtding233/formula-front/internal/rng"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw under p, return if it is hit
// p <= 0 => no hit. p >= 1 => must hit. otherwise, r.Float64() < p
// Only the last case consumes a value from r.
func Draw(p float64, r rng.Source) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	return r.Float64() < p, nil
}
