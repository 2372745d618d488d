package gacha

import "github.com/xtding233/formula-front/internal/catalog"

//go:generate go tool mockgen -destination=./mocks/mock_progression.go -package=mocks . Progression

// Progression is the slice of player state the engine mutates. The engine
// calls CanAfford and SpendCurrency before anything else, so a rejected pull
// never reaches the other methods.
type Progression interface {
	CanAfford(c catalog.Currency, amount int) bool
	SpendCurrency(c catalog.Currency, amount int) bool
	AddCurrency(c catalog.Currency, amount int)
	// AddPart adds one unit and returns the resulting quantity.
	AddPart(id string) int
	// AddFrame reports whether the frame was newly added.
	AddFrame(id string) bool
	// PityCount returns the banner's counter, creating it with
	// defaultThreshold when the player has none yet.
	PityCount(bannerID string, defaultThreshold int) (pulls, threshold int)
	SetPityCount(bannerID string, pulls int)
	RecordPull()
}
