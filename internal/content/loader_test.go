package content

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
category: {id: mindset, title: Mindset}
path: {id: tiny, title: Tiny}
days:
  - day: 1
    title: Only day
    lesson:
      id: only
      intro: {id: intro, kind: intro}
      screens:
        - {id: s1, kind: step, body: hello}
      final: {id: final, kind: final}
`

const minimalJSON = `{
  "category": {"id": "finance", "title": "Finance", "order": 2},
  "path": {"id": "json-path", "title": "From JSON"},
  "days": [{
    "day": 1, "title": "One",
    "lesson": {
      "id": "one",
      "intro": {"id": "intro", "kind": "intro"},
      "screens": [{"id": "s1", "kind": "step"}],
      "final": {"id": "final", "kind": "final"}
    }
  }]
}`

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	cat, err := Default(context.Background())
	require.NoError(t, err)

	cats := cat.Categories()
	require.GreaterOrEqual(t, len(cats), 2)
	assert.Equal(t, "mindset", cats[0].ID, "categories sorted by order")

	p, err := cat.Path("mindset/next-stage")
	require.NoError(t, err)
	assert.Equal(t, len(p.Days), p.TotalDays)
	day1, err := p.DayNumber(1)
	require.NoError(t, err)
	require.NotNil(t, day1.Lesson.StoryIntro)
	assert.Equal(t, domain.ScreenChoice, day1.Lesson.Screens[1].Kind)
}

func TestDefault_SameLessonIDInTwoCategoriesStaysDistinct(t *testing.T) {
	cat, err := Default(context.Background())
	require.NoError(t, err)

	mindset, err := cat.Path("mindset/next-stage")
	require.NoError(t, err)
	finance, err := cat.Path("finance/money-moves")
	require.NoError(t, err)

	var a, b *domain.Lesson
	for _, d := range mindset.Days {
		if d.Lesson.ID == "know-your-worth" {
			a = d.Lesson
		}
	}
	for _, d := range finance.Days {
		if d.Lesson.ID == "know-your-worth" {
			b = d.Lesson
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a.Screens[0].Body, b.Screens[0].Body)
}

func TestLoadFS_YAMLAndJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"mindset/tiny.yaml": {Data: []byte(minimalYAML)},
		"finance/path.json": {Data: []byte(minimalJSON)},
		"README.md":         {Data: []byte("ignored")},
	}
	cat, err := LoadFS(context.Background(), fsys)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	p, err := cat.Path("finance_json-path")
	require.NoError(t, err, "progress keys resolve too")
	assert.Equal(t, "From JSON", p.Title)
	assert.Equal(t, 1, p.TotalDays)
}

func TestLoadFS_ReportsEveryBadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml":   {Data: []byte(minimalYAML)},
		"broken.yaml": {Data: []byte("category: [")},
		"empty.json": {Data: []byte(`{"category":{"id":"x","title":"X"},"path":{"id":"p","title":"P"},
			"days":[{"day":1,"title":"D","lesson":{"id":"l","intro":{"id":"i","kind":"intro"},"screens":[],"final":{"id":"f","kind":"final"}}}]}`)},
	}
	_, err := LoadFS(context.Background(), fsys)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "broken.yaml")
	assert.Contains(t, err.Error(), "empty.json")
	assert.Contains(t, err.Error(), "content table is empty")
	assert.NotContains(t, err.Error(), "good.yaml")
}

func TestLoadFS_UnknownFieldRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"typo.yaml": {Data: []byte(minimalYAML + "\nextra: true\n")},
	}
	_, err := LoadFS(context.Background(), fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")
}

func TestLoadFS_DuplicatePathRef(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(minimalYAML)},
		"b.yaml": {Data: []byte(minimalYAML)},
	}
	_, err := LoadFS(context.Background(), fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined twice")
}

func TestLoadFS_Empty(t *testing.T) {
	_, err := LoadFS(context.Background(), fstest.MapFS{})
	assert.Error(t, err)
}

func TestCatalog_PathNotFound(t *testing.T) {
	cat, err := Default(context.Background())
	require.NoError(t, err)
	_, err = cat.Path("nope/nothing")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestCheckFile(t *testing.T) {
	fsys := fstest.MapFS{"tiny.yaml": {Data: []byte(minimalYAML)}}
	assert.Empty(t, CheckFile(fsys, "tiny.yaml"))
	assert.NotEmpty(t, CheckFile(fsys, "missing.yaml"))
}
