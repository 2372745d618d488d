package combat

// EntryType tags a battle log line for playback.
type EntryType string

const (
	EntryStart   EntryType = "start"
	EntryInfo    EntryType = "info"
	EntryPlayer  EntryType = "player"
	EntryEnemy   EntryType = "enemy"
	EntryMiss    EntryType = "miss"
	EntryStatus  EntryType = "status"
	EntryVictory EntryType = "victory"
	EntryDefeat  EntryType = "defeat"
	EntryReward  EntryType = "reward"
)

// Entry is one line of the battle log. Damage is set only on hits, including
// hits that rolled zero.
type Entry struct {
	Type   EntryType `json:"type"`
	Text   string    `json:"text"`
	Detail string    `json:"detail,omitempty"`
	Damage *int      `json:"damage,omitempty"`
}

// Log is ordered; playback depends on the order exactly as produced.
type Log []Entry

func (l *Log) add(t EntryType, text string) {
	*l = append(*l, Entry{Type: t, Text: text})
}

func (l *Log) hit(t EntryType, text string, dmg int) {
	*l = append(*l, Entry{Type: t, Text: text, Damage: &dmg})
}

// Count returns how many entries have type t.
func (l Log) Count(t EntryType) int {
	n := 0
	for _, e := range l {
		if e.Type == t {
			n++
		}
	}
	return n
}
