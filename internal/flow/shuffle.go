package flow

import (
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/alexanderramin/encore/internal/domain"
)

// Shuffle returns a permutation of items determined by seed. items is not
// modified.
func Shuffle[T any](items []T, seed uint64) []T {
	out := slices.Clone(items)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

var (
	ErrAlreadyMatched = errors.New("item already matched")
	ErrOutOfRange     = errors.New("selection out of range")
)

// MatchBoard is one session of a matching game. Left items keep their
// authored order; the right column is shuffled by the session seed.
type MatchBoard struct {
	pairs        []domain.Pair
	rights       []string
	matchedLeft  []bool
	matchedRight []bool
	attempts     int
}

func NewMatchBoard(pairs []domain.Pair, seed uint64) *MatchBoard {
	rights := make([]string, len(pairs))
	for i, p := range pairs {
		rights[i] = p.Right
	}
	return &MatchBoard{
		pairs:        pairs,
		rights:       Shuffle(rights, seed),
		matchedLeft:  make([]bool, len(pairs)),
		matchedRight: make([]bool, len(pairs)),
	}
}

func (b *MatchBoard) Len() int { return len(b.pairs) }

func (b *MatchBoard) Left(i int) string { return b.pairs[i].Left }

func (b *MatchBoard) Right(i int) string { return b.rights[i] }

// Rights returns the shuffled right column.
func (b *MatchBoard) Rights() []string { return slices.Clone(b.rights) }

func (b *MatchBoard) LeftMatched(i int) bool  { return b.matchedLeft[i] }
func (b *MatchBoard) RightMatched(i int) bool { return b.matchedRight[i] }

func (b *MatchBoard) Attempts() int { return b.attempts }

// Try pairs left item l with right item r. Every valid try counts as an
// attempt; a correct one locks both items.
func (b *MatchBoard) Try(l, r int) (bool, error) {
	if l < 0 || l >= len(b.pairs) || r < 0 || r >= len(b.rights) {
		return false, ErrOutOfRange
	}
	if b.matchedLeft[l] || b.matchedRight[r] {
		return false, ErrAlreadyMatched
	}
	b.attempts++
	if b.pairs[l].Right != b.rights[r] {
		return false, nil
	}
	b.matchedLeft[l] = true
	b.matchedRight[r] = true
	return true, nil
}

// Solved reports whether every pair has been matched.
func (b *MatchBoard) Solved() bool {
	return !slices.Contains(b.matchedLeft, false)
}

// Result summarizes the board for persistence.
func (b *MatchBoard) Result(lessonID, screenID string) domain.QuizResult {
	return domain.QuizResult{
		LessonID: lessonID,
		ScreenID: screenID,
		Attempts: b.attempts,
		Solved:   b.Solved(),
	}
}
