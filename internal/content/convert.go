package content

import "github.com/alexanderramin/encore/internal/domain"

// Convert turns a validated path file into domain values. Call Validate
// first; Convert assumes the file is well formed.
func Convert(pf *PathFile) (*domain.Category, *domain.GuidedPath) {
	cat := &domain.Category{
		ID:    pf.Category.ID,
		Title: pf.Category.Title,
		Order: pf.Category.Order,
	}

	total := pf.Path.TotalDays
	if total == 0 {
		total = len(pf.Days)
	}
	path := &domain.GuidedPath{
		ID:         pf.Path.ID,
		CategoryID: pf.Category.ID,
		Title:      pf.Path.Title,
		Summary:    pf.Path.Summary,
		TotalDays:  total,
		Order:      pf.Path.Order,
		Days:       make([]domain.PathDay, 0, len(pf.Days)),
	}
	for _, d := range pf.Days {
		path.Days = append(path.Days, domain.PathDay{
			Day:    d.Day,
			Title:  d.Title,
			Lesson: convertLesson(&d.Lesson, d.Title),
		})
	}
	return cat, path
}

func convertLesson(l *LessonDef, fallbackTitle string) *domain.Lesson {
	title := l.Title
	if title == "" {
		title = fallbackTitle
	}
	out := &domain.Lesson{
		ID:      l.ID,
		Title:   title,
		Intro:   convertScreen(&l.Intro),
		Screens: make([]domain.Screen, len(l.Screens)),
		Final:   convertScreen(&l.Final),
	}
	for i := range l.Screens {
		out.Screens[i] = convertScreen(&l.Screens[i])
	}
	if l.StoryIntro != nil {
		s := convertScreen(l.StoryIntro)
		if s.Kind == "" {
			s.Kind = domain.ScreenStory
		}
		out.StoryIntro = &s
	}
	if l.Reflection != nil {
		s := convertScreen(l.Reflection)
		out.Reflection = &s
	}
	return out
}

func convertScreen(s *ScreenDef) domain.Screen {
	out := domain.Screen{
		ID:         s.ID,
		Kind:       domain.ScreenKind(s.Kind),
		Title:      s.Title,
		Body:       s.Body,
		ButtonText: s.Button,
		BranchKey:  s.BranchKey,
		Prompt:     s.Prompt,
	}
	for _, o := range s.Options {
		out.Options = append(out.Options, domain.Option{ID: o.ID, Text: o.Text})
	}
	if len(s.Branches) > 0 {
		out.Branches = make(map[string]string, len(s.Branches))
		for k, v := range s.Branches {
			out.Branches[k] = v
		}
	}
	for _, p := range s.Pairs {
		out.Pairs = append(out.Pairs, domain.Pair{Left: p.Left, Right: p.Right})
	}
	if s.Link != nil {
		out.Link = &domain.Link{Label: s.Link.Label, URL: s.Link.URL}
	}
	return out
}
