// Package flow drives a lesson's content table: forward and back navigation
// over the main screen sequence, out-of-band marker screens, the choice
// record and the completion handshake with the parent path tracker.
package flow

import (
	"fmt"
	"maps"
	"slices"

	"github.com/alexanderramin/encore/internal/domain"
)

// Controller is a lesson's screen flow. It is not safe for concurrent use;
// one controller belongs to one mounted lesson view.
type Controller struct {
	lesson    *domain.Lesson
	history   []Position
	choices   map[string]string
	completed bool
	listeners []Listener
}

// New validates the lesson's content table and returns a controller in the
// not-started state.
func New(lesson *domain.Lesson) (*Controller, error) {
	if err := checkLesson(lesson); err != nil {
		return nil, err
	}
	return &Controller{
		lesson:  lesson,
		choices: make(map[string]string),
	}, nil
}

func checkLesson(l *domain.Lesson) error {
	if l == nil {
		return &ConfigError{Problems: []string{"lesson is nil"}}
	}
	var problems []string
	if len(l.Screens) == 0 {
		problems = append(problems, "content table is empty")
	}
	seen := make(map[string]bool, len(l.Screens))
	for i, s := range l.Screens {
		if s.ID == "" {
			problems = append(problems, fmt.Sprintf("screen %d has no id", i))
		} else if seen[s.ID] {
			problems = append(problems, fmt.Sprintf("screen id %q is duplicated", s.ID))
		}
		seen[s.ID] = true
		if !domain.SequenceKinds[s.Kind] {
			problems = append(problems, fmt.Sprintf("screen %q: kind %q cannot appear in the main sequence", s.ID, s.Kind))
		}
		if s.Kind == domain.ScreenChoice {
			if len(s.Options) != 2 {
				problems = append(problems, fmt.Sprintf("screen %q: choice needs exactly 2 options, has %d", s.ID, len(s.Options)))
			}
			if s.BranchKey == "" {
				problems = append(problems, fmt.Sprintf("screen %q: choice has no branch key", s.ID))
			}
		}
	}
	if l.Final.Kind != domain.ScreenFinal {
		problems = append(problems, "final screen is missing")
	}
	if l.StoryIntro != nil && l.LastChoiceIndex() < 0 {
		problems = append(problems, "story intro defined without any choice screen")
	}
	if len(problems) > 0 {
		return &ConfigError{Lesson: l.ID, Problems: problems}
	}
	return nil
}

// Subscribe registers l for every subsequent event and returns a function
// that removes it.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	c.listeners = append(c.listeners, l)
	idx := len(c.listeners) - 1
	return func() {
		if idx < len(c.listeners) {
			c.listeners[idx] = nil
		}
	}
}

func (c *Controller) emit(ev Event) Event {
	if ev.Kind == EventNone {
		return ev
	}
	for _, l := range c.listeners {
		if l != nil {
			l(ev)
		}
	}
	return ev
}

func (c *Controller) push(p Position) {
	c.history = append(c.history, p)
}

func (c *Controller) top() Position {
	if len(c.history) == 0 {
		return Intro
	}
	return c.history[len(c.history)-1]
}

// Start clears history and shows the first screen of the main sequence.
// It is a no-op once the lesson is completed.
func (c *Controller) Start() Event {
	if c.completed {
		return Event{}
	}
	from := c.top()
	c.history = c.history[:0]
	to := Position{Index: 0}
	c.push(to)
	return c.emit(Event{Kind: EventStarted, From: from, To: to})
}

// Advance moves forward one screen. Past the end of the main sequence it
// pushes the reflection screen when the lesson has one, then the final
// screen. On the final screen it does nothing.
func (c *Controller) Advance() Event {
	switch c.State() {
	case StateNotStarted:
		return c.Start()
	case StateFinal, StateCompleted:
		return Event{}
	}
	from := c.top()
	to, ok := c.next(from)
	if !ok {
		return Event{}
	}
	c.push(to)
	return c.emit(Event{Kind: EventAdvanced, From: from, To: to})
}

func (c *Controller) next(from Position) (Position, bool) {
	switch from.Marker {
	case domain.MarkerNone:
		if from.Index < c.lesson.Len()-1 {
			return Position{Index: from.Index + 1}, true
		}
		return c.afterSequence(), true
	case domain.MarkerStoryIntro:
		if start := c.lesson.StoryStartIndex(); start >= 0 {
			return Position{Index: start}, true
		}
		return c.afterSequence(), true
	case domain.MarkerReflection:
		return Position{Marker: domain.MarkerFinal, Index: -1}, true
	}
	return Position{}, false
}

func (c *Controller) afterSequence() Position {
	if c.lesson.Reflection != nil && !c.inHistory(domain.MarkerReflection) {
		return Position{Marker: domain.MarkerReflection, Index: -1}
	}
	return Position{Marker: domain.MarkerFinal, Index: -1}
}

func (c *Controller) inHistory(m domain.Marker) bool {
	return slices.ContainsFunc(c.history, func(p Position) bool { return p.Marker == m })
}

// GoBack pops one history entry. On the first screen it returns to the
// intro and clears history; on the intro it reports EventExited so the
// parent can leave the lesson. The choice record is never touched.
func (c *Controller) GoBack() Event {
	if c.completed {
		return Event{}
	}
	from := c.top()
	switch len(c.history) {
	case 0:
		return c.emit(Event{Kind: EventExited, From: Intro, To: Intro})
	case 1:
		c.history = c.history[:0]
		return c.emit(Event{Kind: EventReset, From: from, To: Intro})
	}
	c.history = c.history[:len(c.history)-1]
	return c.emit(Event{Kind: EventWentBack, From: from, To: c.top()})
}

// RecordChoice stores value under key and moves on. On the last choice
// screen of a lesson with a story intro it jumps to the story intro instead
// of the next screen.
func (c *Controller) RecordChoice(key, value string) (Event, error) {
	screen, ok := c.Current()
	if c.State() != StateInProgress || !ok || screen.Kind != domain.ScreenChoice {
		return Event{}, ErrNotChoice
	}
	c.choices[key] = value
	c.emit(Event{Kind: EventChoice, From: c.top(), To: c.top(), Key: key, Value: value})

	if c.lesson.StoryIntro != nil && c.top().Index == c.lesson.LastChoiceIndex() {
		return c.JumpTo(domain.MarkerStoryIntro)
	}
	return c.Advance(), nil
}

// Choose records the text of option n (0 or 1) of the current choice screen
// under the screen's branch key.
func (c *Controller) Choose(n int) (Event, error) {
	screen, ok := c.Current()
	if c.State() != StateInProgress || !ok || screen.Kind != domain.ScreenChoice {
		return Event{}, ErrNotChoice
	}
	if n < 0 || n >= len(screen.Options) {
		return Event{}, fmt.Errorf("%w: %d", ErrUnknownOption, n)
	}
	return c.RecordChoice(screen.BranchKey, screen.Options[n].Text)
}

// JumpTo pushes the out-of-band screen for marker.
func (c *Controller) JumpTo(marker domain.Marker) (Event, error) {
	switch c.State() {
	case StateNotStarted:
		return Event{}, ErrNotStarted
	case StateCompleted:
		return Event{}, ErrAlreadyCompleted
	}
	if _, ok := c.lesson.MarkerScreen(marker); !ok || marker == domain.MarkerNone {
		return Event{}, fmt.Errorf("%w %q", ErrUnknownMarker, marker)
	}
	from := c.top()
	to := Position{Marker: marker, Index: -1}
	c.push(to)
	return c.emit(Event{Kind: EventJumped, From: from, To: to}), nil
}

// Complete confirms the final screen. EventCompleted is emitted exactly once
// per controller.
func (c *Controller) Complete() (Event, error) {
	if c.completed {
		return Event{}, ErrAlreadyCompleted
	}
	if c.State() != StateFinal {
		return Event{}, ErrNotFinal
	}
	c.completed = true
	p := c.top()
	return c.emit(Event{Kind: EventCompleted, From: p, To: p}), nil
}

func (c *Controller) State() State {
	if c.completed {
		return StateCompleted
	}
	if len(c.history) == 0 {
		return StateNotStarted
	}
	switch c.top().Marker {
	case domain.MarkerStoryIntro:
		return StateStoryIntro
	case domain.MarkerReflection:
		return StateReflection
	case domain.MarkerFinal:
		return StateFinal
	default:
		return StateInProgress
	}
}

// Position returns the top history entry, or Intro before Start.
func (c *Controller) Position() Position {
	return c.top()
}

// Current returns the screen to render.
func (c *Controller) Current() (domain.Screen, bool) {
	p := c.top()
	if len(c.history) == 0 {
		return c.lesson.Intro, true
	}
	if p.IsSentinel() {
		return c.lesson.MarkerScreen(p.Marker)
	}
	return c.lesson.ScreenAt(p.Index)
}

// Lesson returns the content table being driven.
func (c *Controller) Lesson() *domain.Lesson {
	return c.lesson
}

// Choices returns a copy of the choice record.
func (c *Controller) Choices() map[string]string {
	return maps.Clone(c.choices)
}

// History returns a copy of the navigation history, oldest first.
func (c *Controller) History() []Position {
	return slices.Clone(c.history)
}

// StepNumber returns the 1-based main-sequence step being shown and the
// sequence length. Marker screens report the full length; the intro
// reports zero.
func (c *Controller) StepNumber() (step, total int) {
	total = c.lesson.Len()
	switch c.State() {
	case StateNotStarted:
		return 0, total
	case StateInProgress:
		return c.top().Index + 1, total
	default:
		return total, total
	}
}
