package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceLesson() *Lesson {
	return &Lesson{
		ID: "timing",
		Screens: []Screen{
			{ID: "s1", Kind: ScreenStep},
			{ID: "c1", Kind: ScreenChoice, BranchKey: "timing", Options: []Option{
				{ID: "now", Text: "I want to start my career change now"},
				{ID: "later", Text: "I want to keep dancing a while longer"},
			}},
			{ID: "c2", Kind: ScreenChoice, BranchKey: "support", Options: []Option{
				{ID: "alone", Text: "On my own"},
				{ID: "mentor", Text: "With a mentor"},
			}},
			{ID: "story1", Kind: ScreenStory, BranchKey: "timing"},
			{ID: "story2", Kind: ScreenStory},
		},
		Final: Screen{ID: "final", Kind: ScreenFinal},
	}
}

func TestLesson_LastChoiceIndex(t *testing.T) {
	l := choiceLesson()
	assert.Equal(t, 2, l.LastChoiceIndex())

	noChoices := &Lesson{Screens: []Screen{{Kind: ScreenStep}}}
	assert.Equal(t, -1, noChoices.LastChoiceIndex())
}

func TestLesson_StoryStartIndex(t *testing.T) {
	l := choiceLesson()
	assert.Equal(t, 3, l.StoryStartIndex())

	trailingChoice := &Lesson{Screens: []Screen{{Kind: ScreenStep}, {Kind: ScreenChoice}}}
	assert.Equal(t, -1, trailingChoice.StoryStartIndex())
}

func TestLesson_OptionIDFor(t *testing.T) {
	l := choiceLesson()

	id, ok := l.OptionIDFor("timing", "I want to start my career change now")
	require.True(t, ok)
	assert.Equal(t, "now", id)

	_, ok = l.OptionIDFor("timing", "something else")
	assert.False(t, ok)

	_, ok = l.OptionIDFor("unknown", "On my own")
	assert.False(t, ok)
}

func TestLesson_ScreenAtBounds(t *testing.T) {
	l := choiceLesson()

	_, ok := l.ScreenAt(-1)
	assert.False(t, ok)
	_, ok = l.ScreenAt(l.Len())
	assert.False(t, ok)

	s, ok := l.ScreenAt(0)
	require.True(t, ok)
	assert.Equal(t, "s1", s.ID)
}

func TestLesson_MarkerScreen(t *testing.T) {
	l := choiceLesson()

	_, ok := l.MarkerScreen(MarkerReflection)
	assert.False(t, ok, "lesson without reflection has no reflection screen")

	final, ok := l.MarkerScreen(MarkerFinal)
	require.True(t, ok)
	assert.Equal(t, "final", final.ID)

	l.Reflection = &Screen{ID: "reflect", Kind: ScreenReflection}
	r, ok := l.MarkerScreen(MarkerReflection)
	require.True(t, ok)
	assert.Equal(t, "reflect", r.ID)
}

func TestScreen_ButtonDefaults(t *testing.T) {
	assert.Equal(t, "Begin", Screen{Kind: ScreenIntro}.Button())
	assert.Equal(t, "Complete", Screen{Kind: ScreenFinal}.Button())
	assert.Equal(t, "Continue", Screen{Kind: ScreenStep}.Button())
	assert.Equal(t, "Let's go", Screen{Kind: ScreenStep, ButtonText: "Let's go"}.Button())
}
