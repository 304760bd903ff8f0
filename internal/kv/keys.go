package kv

import "fmt"

// Fixed keys.
const (
	// KeyRecentPaths holds the list of recently played path refs, newest last.
	KeyRecentPaths = "recent_paths"
	// KeyLastPlayed holds the path ref and day of the last opened lesson.
	KeyLastPlayed = "last_played"
)

// QuizResultPrefix prefixes every quiz result key.
const QuizResultPrefix = "quiz_result:"

// QuizResultKey returns the key for a matching game's result.
func QuizResultKey(lessonID, screenID string) string {
	return fmt.Sprintf("%s%s:%s", QuizResultPrefix, lessonID, screenID)
}
