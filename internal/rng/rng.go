package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"time"
)

// Source abstract

type Source interface {
	Float64() float64 // [0, 1]
}

// LCG constants. Replays depend on these exact values.
const (
	lcgMul  = 1103515245
	lcgInc  = 12345
	lcgMask = 0x7fffffff // 2^31 - 1
)

// LCG is the linear-congruential generator every battle and pull runs on:
// state = (state*1103515245 + 12345) mod 2^31, draw = state / (2^31 - 1).
type LCG struct {
	state uint64
}

// NewLCG seeds a generator. Any int64 is accepted; only the low 31 bits of
// the state ever matter after the first step.
func NewLCG(seed int64) *LCG {
	return &LCG{state: uint64(seed)}
}

// Float64 advances the state and returns it normalised by 2^31-1.
// The largest reachable state maps to exactly 1.
func (g *LCG) Float64() float64 {
	// uint64 wrap-around keeps the low 31 bits exact.
	g.state = (g.state*lcgMul + lcgInc) & lcgMask
	return float64(g.state) / lcgMask
}

// State exposes the current internal state, mostly for replay checks.
func (g *LCG) State() uint64 { return g.state }

// IntRange draws a uniform integer in [lo, hi] from src.
// A draw of exactly 1 is folded into hi. It always consumes one draw, even
// for a single-value range, so replays stay aligned.
func IntRange(src Source, lo, hi int) int {
	n := int(src.Float64()*float64(hi-lo+1)) + lo
	if hi <= lo {
		return lo
	}
	if n > hi {
		n = hi
	}
	return n
}

// NewSeed returns a 31-bit seed for callers that do not supply one.
// crypto random first, wall clock as fallback.
func NewSeed() int64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return time.Now().UnixNano() & lcgMask
	}
	return int64(binary.BigEndian.Uint64(buf[:]) & lcgMask)
}
