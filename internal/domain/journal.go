package domain

import (
	"fmt"
	"time"
)

// JournalContext binds a capture to the lesson it was written in.
type JournalContext struct {
	PathTag   string // progress key of the path, "{categoryId}_{pathId}"
	Category  string
	PathTitle string
	Day       int
	DayTitle  string
}

// JournalEntry is one saved journal capture. Entries are append-only.
type JournalEntry struct {
	ID        string
	PathTag   string
	Category  string
	PathTitle string
	Day       int
	DayTitle  string
	Date      string // YYYY-MM-DD in local time
	Content   string
	Mood      Mood
	Timestamp time.Time
}

// ValidateMood checks that the mood tag is one of ValidMoods.
func (e *JournalEntry) ValidateMood() error {
	if !ValidMoods[string(e.Mood)] {
		return fmt.Errorf("unknown mood %q", e.Mood)
	}
	return nil
}

// JournalFilter narrows a journal listing. Zero values mean "any".
type JournalFilter struct {
	PathTag string
	Day     int
	Limit   int
}
