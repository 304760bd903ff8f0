package domain

import "fmt"

// PathDay is one lesson within a guided path.
type PathDay struct {
	Day    int
	Title  string
	Lesson *Lesson
}

// GuidedPath is an ordered sequence of path days within a category.
type GuidedPath struct {
	ID         string
	CategoryID string
	Title      string
	Summary    string
	TotalDays  int
	Order      int
	Days       []PathDay
}

// Category groups guided paths (e.g. "Mindset", "Finance").
type Category struct {
	ID    string
	Title string
	Order int
	Paths []*GuidedPath
}

// ProgressKey returns the "{categoryId}_{pathId}" key used for the path's
// progress counter.
func ProgressKey(categoryID, pathID string) string {
	return categoryID + "_" + pathID
}

// Key returns the path's progress counter key.
func (p *GuidedPath) Key() string {
	return ProgressKey(p.CategoryID, p.ID)
}

// Ref returns the "category/path" reference accepted on the command line.
func (p *GuidedPath) Ref() string {
	return p.CategoryID + "/" + p.ID
}

// DayNumber returns the day with the given number.
func (p *GuidedPath) DayNumber(n int) (*PathDay, error) {
	for i := range p.Days {
		if p.Days[i].Day == n {
			return &p.Days[i], nil
		}
	}
	return nil, fmt.Errorf("path %s has no day %d", p.Ref(), n)
}
