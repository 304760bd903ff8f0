package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/flow"
	tea "github.com/charmbracelet/bubbletea"
)

// Match boards hold at most 9 pairs: digits pick the left column and the
// letters a-i pick the right one.
const maxBoardPairs = 9

type quizSavedMsg struct {
	result domain.QuizResult
	err    error
}

// syncBoard builds a fresh board when the controller lands on a match
// screen and drops it when it leaves. Returning to a match screen replays
// it from scratch.
func (v *lessonView) syncBoard() {
	screen, ok := v.ctrl.Current()
	if !ok || v.ctrl.State() != flow.StateInProgress || screen.Kind != domain.ScreenMatch {
		v.board, v.boardScreen, v.pickedLeft = nil, "", -1
		return
	}
	if v.board != nil && v.boardScreen == screen.ID {
		return
	}
	pairs := screen.Pairs
	if len(pairs) > maxBoardPairs {
		pairs = pairs[:maxBoardPairs]
	}
	v.board = flow.NewMatchBoard(pairs, v.state.Seed^seedFor(screen.ID))
	v.boardScreen = screen.ID
	v.pickedLeft = -1
}

// seedFor mixes a screen ID into the session seed so two match screens of
// one session are shuffled differently.
func seedFor(id string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(id); i++ {
		h ^= uint64(id[i])
		h *= 1099511628211
	}
	return h
}

func (v *lessonView) handleMatchKey(screen domain.Screen, k string) (tea.Cmd, bool) {
	v.syncBoard()
	b := v.board
	if b == nil || len(k) != 1 {
		return nil, false
	}
	c := k[0]
	switch {
	case c >= '1' && c <= '9':
		i := int(c - '1')
		if i >= b.Len() || b.LeftMatched(i) {
			return nil, true
		}
		v.pickedLeft = i
		return nil, true

	case c >= 'a' && c <= 'i':
		r := int(c - 'a')
		if r >= b.Len() {
			return nil, false
		}
		if v.pickedLeft < 0 {
			v.notice = formatter.Dim("Pick a number on the left first.")
			return nil, true
		}
		ok, err := b.Try(v.pickedLeft, r)
		v.pickedLeft = -1
		switch {
		case err != nil:
			v.notice = formatter.Dim("That one is already matched.")
			return nil, true
		case !ok:
			v.notice = formatter.StyleYellow.Render("Not quite. Try again.")
			return nil, true
		}
		if !b.Solved() {
			v.notice = formatter.Success("Match!")
			return nil, true
		}
		v.notice = formatter.Success(fmt.Sprintf("All matched in %d attempts.", b.Attempts()))
		return v.saveQuiz(b.Result(v.ctrl.Lesson().ID, screen.ID)), true
	}
	return nil, false
}

func (v *lessonView) saveQuiz(r domain.QuizResult) tea.Cmd {
	app := v.state.App
	r.RecordedAt = app.now()
	return func() tea.Msg {
		ctx := context.Background()
		err := app.Quiz.RecordMatch(ctx, r)
		if err != nil {
			app.logger().ErrorContext(ctx, "saving match result failed", "lesson", r.LessonID, "screen", r.ScreenID, "error", err)
		}
		return quizSavedMsg{result: r, err: err}
	}
}

func (v *lessonView) renderBoard() string {
	b := v.board
	if b == nil {
		return ""
	}
	width := 0
	for i := range b.Len() {
		width = max(width, len([]rune(b.Left(i))))
	}

	var sb strings.Builder
	for i := range b.Len() {
		left := fmt.Sprintf("%d) %s", i+1, padRight(b.Left(i), width))
		switch {
		case b.LeftMatched(i):
			left = formatter.StyleGreen.Render(left)
		case i == v.pickedLeft:
			left = formatter.StyleYellowBold.Render(left)
		}
		right := fmt.Sprintf("%c) %s", 'a'+i, b.Right(i))
		if b.RightMatched(i) {
			right = formatter.StyleGreen.Render(right)
		}
		sb.WriteString("  " + left + "    " + right + "\n")
	}
	if b.Solved() {
		sb.WriteString("\n  " + formatter.Dim("enter: continue") + "\n")
	} else {
		sb.WriteString("\n  " + formatter.Dim(fmt.Sprintf("attempts: %d", b.Attempts())) + "\n")
	}
	return sb.String()
}
