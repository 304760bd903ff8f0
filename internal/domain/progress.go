package domain

import "time"

// PathProgress is the days-completed counter for one guided path.
type PathProgress struct {
	Key           string
	DaysCompleted int
	UpdatedAt     time.Time
}

// IsComplete reports whether count has reached the path's total day count.
func IsComplete(count, totalDays int) bool {
	return totalDays > 0 && count >= totalDays
}

// NextDay returns the next day to play given the completed count, capped at
// totalDays. A finished path replays its last day.
func NextDay(count, totalDays int) int {
	next := count + 1
	if next < 1 {
		next = 1
	}
	if totalDays > 0 && next > totalDays {
		return totalDays
	}
	return next
}

// QuizResult records the outcome of a matching game screen.
type QuizResult struct {
	LessonID   string    `json:"lessonId"`
	ScreenID   string    `json:"screenId"`
	Attempts   int       `json:"attempts"`
	Solved     bool      `json:"solved"`
	RecordedAt time.Time `json:"recordedAt"`
}
