package gacha

import (
	"math"

	"github.com/xtding233/formula-front/internal/catalog"
)

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// rollRarity walks rates in declaration order and returns the first tier whose
// cumulative rate exceeds roll. ok is false when rounding leaves roll past the
// last cumulative sum.
func rollRarity(rates []catalog.RarityRate, roll float64) (r catalog.Rarity, ok bool) {
	cum := 0.0
	for _, rr := range rates {
		cum += rr.Rate
		if roll < cum {
			return rr.Rarity, true
		}
	}
	return "", false
}
