package domain

type ScreenKind string

const (
	ScreenIntro      ScreenKind = "intro"
	ScreenStep       ScreenKind = "step"
	ScreenChoice     ScreenKind = "choice"
	ScreenStory      ScreenKind = "story"
	ScreenMatch      ScreenKind = "match"
	ScreenJournal    ScreenKind = "journal"
	ScreenReflection ScreenKind = "reflection"
	ScreenFinal      ScreenKind = "final"
)

// ValidScreenKinds is the canonical set of accepted screen kind strings.
var ValidScreenKinds = map[string]bool{
	"intro": true, "step": true, "choice": true, "story": true,
	"match": true, "journal": true, "reflection": true, "final": true,
}

// SequenceKinds are the kinds allowed inside a lesson's main screen sequence.
// Intro, reflection and final screens live outside the sequence.
var SequenceKinds = map[ScreenKind]bool{
	ScreenStep: true, ScreenChoice: true, ScreenStory: true,
	ScreenMatch: true, ScreenJournal: true,
}

// Marker identifies an out-of-band screen that is not addressed by index.
type Marker string

const (
	MarkerNone       Marker = ""
	MarkerStoryIntro Marker = "story_intro"
	MarkerReflection Marker = "reflection"
	MarkerFinal      Marker = "final"
)

type Mood string

const (
	MoodNone       Mood = ""
	MoodHopeful    Mood = "hopeful"
	MoodCalm       Mood = "calm"
	MoodAnxious    Mood = "anxious"
	MoodDetermined Mood = "determined"
	MoodTired      Mood = "tired"
)

// ValidMoods is the canonical set of accepted mood tags. The empty mood is
// always accepted.
var ValidMoods = map[string]bool{
	"": true, "hopeful": true, "calm": true, "anxious": true,
	"determined": true, "tired": true,
}

// AllMoods lists mood tags in display order.
var AllMoods = []Mood{MoodHopeful, MoodCalm, MoodAnxious, MoodDetermined, MoodTired}
