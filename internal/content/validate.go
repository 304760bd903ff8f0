package content

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/flow"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidationError lists every problem found in one content file.
type ValidationError struct {
	File     string
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("%s: %d problem(s): %s", e.File, len(e.Problems), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Validate checks a parsed path file and returns every problem found.
func Validate(pf *PathFile) []error {
	var errs []error

	errs = append(errs, validateIdentity("category", pf.Category.ID, pf.Category.Title)...)
	errs = append(errs, validateIdentity("path", pf.Path.ID, pf.Path.Title)...)
	if strings.Contains(pf.Category.ID, "_") || strings.Contains(pf.Path.ID, "_") {
		errs = append(errs, fmt.Errorf("category and path ids must not contain '_' (used in progress keys)"))
	}

	if len(pf.Days) == 0 {
		errs = append(errs, fmt.Errorf("path.days: at least one day is required"))
	}
	if pf.Path.TotalDays < 0 {
		errs = append(errs, fmt.Errorf("path.total_days must not be negative"))
	}
	if pf.Path.TotalDays > 0 && pf.Path.TotalDays < len(pf.Days) {
		errs = append(errs, fmt.Errorf("path.total_days (%d) is less than the number of days (%d)", pf.Path.TotalDays, len(pf.Days)))
	}

	seenDays := make(map[int]bool)
	for i, d := range pf.Days {
		prefix := fmt.Sprintf("days[%d]", i)
		if d.Day != i+1 {
			errs = append(errs, fmt.Errorf("%s: day must be %d, got %d", prefix, i+1, d.Day))
		}
		if seenDays[d.Day] {
			errs = append(errs, fmt.Errorf("%s: duplicate day %d", prefix, d.Day))
		}
		seenDays[d.Day] = true
		if d.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateLesson(prefix+".lesson", &d.Lesson)...)
	}

	return errs
}

func validateIdentity(prefix, id, title string) []error {
	var errs []error
	if id == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	} else if !idPattern.MatchString(id) {
		errs = append(errs, fmt.Errorf("%s.id %q must be lowercase letters, digits and dashes", prefix, id))
	}
	if title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	return errs
}

func validateLesson(prefix string, l *LessonDef) []error {
	var errs []error

	if l.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	}
	if len(l.Screens) == 0 {
		errs = append(errs, fmt.Errorf("%s.screens: content table is empty", prefix))
	}

	ids := make(map[string]bool)
	options := make(map[string]map[string]bool) // branch key -> option ids
	checkID := func(p string, s *ScreenDef) {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", p))
			return
		}
		if ids[s.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate screen id %q", p, s.ID))
		}
		ids[s.ID] = true
	}

	checkID(prefix+".intro", &l.Intro)
	if l.Intro.Kind != string(domain.ScreenIntro) {
		errs = append(errs, fmt.Errorf("%s.intro.kind must be %q", prefix, domain.ScreenIntro))
	}

	lastChoice := -1
	for i := range l.Screens {
		s := &l.Screens[i]
		p := fmt.Sprintf("%s.screens[%d]", prefix, i)
		checkID(p, s)
		if !domain.SequenceKinds[domain.ScreenKind(s.Kind)] {
			errs = append(errs, fmt.Errorf("%s.kind %q is not allowed in the main sequence", p, s.Kind))
			continue
		}
		errs = append(errs, validateScreenBody(p, s)...)
		switch s.Kind {
		case string(domain.ScreenChoice):
			lastChoice = i
			if s.BranchKey != "" {
				set := options[s.BranchKey]
				if set == nil {
					set = make(map[string]bool)
					options[s.BranchKey] = set
				}
				for _, o := range s.Options {
					set[o.ID] = true
				}
			}
		case string(domain.ScreenStory):
			// Branches may only reference options of an earlier choice.
			if len(s.Branches) == 0 {
				continue
			}
			set, ok := options[s.BranchKey]
			if !ok {
				errs = append(errs, fmt.Errorf("%s.branch_key %q matches no choice screen before it", p, s.BranchKey))
				continue
			}
			for optID := range s.Branches {
				if !set[optID] {
					errs = append(errs, fmt.Errorf("%s.branches: %q is not an option of %q", p, optID, s.BranchKey))
				}
			}
		}
	}

	if l.StoryIntro != nil {
		checkID(prefix+".story_intro", l.StoryIntro)
		if lastChoice < 0 {
			errs = append(errs, fmt.Errorf("%s.story_intro requires at least one choice screen", prefix))
		}
	}
	if l.Reflection != nil {
		checkID(prefix+".reflection", l.Reflection)
		if l.Reflection.Kind != string(domain.ScreenReflection) {
			errs = append(errs, fmt.Errorf("%s.reflection.kind must be %q", prefix, domain.ScreenReflection))
		}
	}

	checkID(prefix+".final", &l.Final)
	if l.Final.Kind != string(domain.ScreenFinal) {
		errs = append(errs, fmt.Errorf("%s.final.kind must be %q", prefix, domain.ScreenFinal))
	}
	if l.Final.Link != nil {
		errs = append(errs, validateLink(prefix+".final.link", l.Final.Link)...)
	}

	return errs
}

func validateScreenBody(p string, s *ScreenDef) []error {
	var errs []error
	switch domain.ScreenKind(s.Kind) {
	case domain.ScreenChoice:
		if len(s.Options) != 2 {
			errs = append(errs, fmt.Errorf("%s: choice needs exactly 2 options, has %d", p, len(s.Options)))
		}
		if s.BranchKey == "" {
			errs = append(errs, fmt.Errorf("%s.branch_key is required for choice screens", p))
		}
		for j, o := range s.Options {
			if o.ID == "" || strings.TrimSpace(o.Text) == "" {
				errs = append(errs, fmt.Errorf("%s.options[%d] needs an id and text", p, j))
			}
		}
		if len(s.Options) == 2 && s.Options[0].ID == s.Options[1].ID {
			errs = append(errs, fmt.Errorf("%s: option ids must differ", p))
		}
	case domain.ScreenStory:
		if _, err := flow.Placeholders(s.Body); err != nil {
			errs = append(errs, fmt.Errorf("%s.body: %w", p, err))
		}
		for id, text := range s.Branches {
			if _, err := flow.Placeholders(text); err != nil {
				errs = append(errs, fmt.Errorf("%s.branches[%s]: %w", p, id, err))
			}
		}
	case domain.ScreenMatch:
		if len(s.Pairs) < 2 {
			errs = append(errs, fmt.Errorf("%s: match needs at least 2 pairs", p))
		}
		for j, pr := range s.Pairs {
			if pr.Left == "" || pr.Right == "" {
				errs = append(errs, fmt.Errorf("%s.pairs[%d] needs both sides", p, j))
			}
		}
	case domain.ScreenJournal:
		if strings.TrimSpace(s.Prompt) == "" {
			errs = append(errs, fmt.Errorf("%s.prompt is required for journal screens", p))
		}
	}
	return errs
}

func validateLink(p string, l *LinkDef) []error {
	var errs []error
	if l.Label == "" {
		errs = append(errs, fmt.Errorf("%s.label is required", p))
	}
	u, err := url.Parse(l.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s.url %q must be an absolute http(s) URL", p, l.URL))
	}
	return errs
}
