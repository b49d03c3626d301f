package output

import "strings"

// Category is the cosmetic display class of a process. It only selects
// colors; it never affects tree structure.
type Category int

const (
	CategoryDefault Category = iota
	CategoryRunning
	CategoryZombie
)

// Classify maps a free-form status code onto a display category. Collectors
// report either single-letter kernel states ("R", "Z") or spelled-out words
// ("running", "zombie"); both forms land in the same bucket. Anything else
// is the neutral default.
func Classify(status string) Category {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "r", "running":
		return CategoryRunning
	case "z", "zombie":
		return CategoryZombie
	}
	return CategoryDefault
}
