package domain

// Option is one side of a binary choice screen.
type Option struct {
	ID   string
	Text string
}

// Pair is a left/right match for a matching game screen.
type Pair struct {
	Left  string
	Right string
}

// Link is an outbound call-to-action.
type Link struct {
	Label string
	URL   string
}

// Screen is one immutable record of a lesson's content table.
type Screen struct {
	ID         string
	Kind       ScreenKind
	Title      string
	Body       string
	ButtonText string
	BranchKey  string            // choice: record key; story: key selecting Branches
	Options    []Option          // choice
	Branches   map[string]string // story: option ID -> narrative paragraph
	Pairs      []Pair            // match
	Prompt     string            // journal
	Link       *Link             // final
}

// Button returns the label for the screen's primary action.
func (s Screen) Button() string {
	if s.ButtonText != "" {
		return s.ButtonText
	}
	switch s.Kind {
	case ScreenIntro:
		return "Begin"
	case ScreenFinal:
		return "Complete"
	case ScreenJournal:
		return "Write"
	default:
		return "Continue"
	}
}

// Lesson is the content table for one path day. Screens is the ordered main
// sequence; the remaining screens are out-of-band and addressed by Marker.
type Lesson struct {
	ID         string
	Title      string
	Intro      Screen
	Screens    []Screen
	StoryIntro *Screen
	Reflection *Screen
	Final      Screen
}

// Len returns the number of screens in the main sequence.
func (l *Lesson) Len() int {
	return len(l.Screens)
}

// ScreenAt returns the main-sequence screen at index i.
func (l *Lesson) ScreenAt(i int) (Screen, bool) {
	if i < 0 || i >= len(l.Screens) {
		return Screen{}, false
	}
	return l.Screens[i], true
}

// MarkerScreen returns the out-of-band screen for a marker, if the lesson
// defines one.
func (l *Lesson) MarkerScreen(m Marker) (Screen, bool) {
	switch m {
	case MarkerStoryIntro:
		if l.StoryIntro != nil {
			return *l.StoryIntro, true
		}
	case MarkerReflection:
		if l.Reflection != nil {
			return *l.Reflection, true
		}
	case MarkerFinal:
		return l.Final, true
	}
	return Screen{}, false
}

// LastChoiceIndex returns the index of the final choice screen, or -1 when
// the lesson has no choice screens.
func (l *Lesson) LastChoiceIndex() int {
	for i := len(l.Screens) - 1; i >= 0; i-- {
		if l.Screens[i].Kind == ScreenChoice {
			return i
		}
	}
	return -1
}

// StoryStartIndex returns the index of the first screen after the choice
// phase, or -1 when nothing follows the last choice.
func (l *Lesson) StoryStartIndex() int {
	last := l.LastChoiceIndex()
	if last < 0 || last+1 >= len(l.Screens) {
		return -1
	}
	return last + 1
}

// OptionIDFor maps a recorded choice value back to the option ID of the choice
// screen that owns branchKey.
func (l *Lesson) OptionIDFor(branchKey, value string) (string, bool) {
	for _, s := range l.Screens {
		if s.Kind != ScreenChoice || s.BranchKey != branchKey {
			continue
		}
		for _, o := range s.Options {
			if o.Text == value {
				return o.ID, true
			}
		}
	}
	return "", false
}
