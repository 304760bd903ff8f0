package cli

import (
	"testing"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/teatest"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with access to appModel internals: the
// view stack, shared state and the lesson being played.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the app model at the dashboard, sizes the terminal
// and drains Init (which loads dashboard data synchronously from the
// in-memory database).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return newTestDriverWith(t, newAppModel(app))
}

// NewLessonDriver starts the app model with the lesson for day of ref as
// its only view, the way `encore play` does.
func NewLessonDriver(t *testing.T, app *App, ref string, day int) *TestDriver {
	t.Helper()
	path, err := app.Catalog.Path(ref)
	require.NoError(t, err)
	m := newAppModelWith(app, func(s *SharedState) View {
		v, err := newLessonView(s, path, day)
		require.NoError(t, err)
		return v
	})
	return newTestDriverWith(t, m)
}

func newTestDriverWith(t *testing.T, m appModel) *TestDriver {
	t.Helper()
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

// ── encore-specific inspection ───────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	v := d.appModel().activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports whether the model or a tea.Quit command asked to stop.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the text shown in the output pane.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// Lesson returns the lesson view on top of the stack. The test fails when
// the top view is something else.
func (d *TestDriver) Lesson() *lessonView {
	d.T.Helper()
	lv, ok := d.appModel().activeView().(*lessonView)
	require.True(d.T, ok, "top view is %T, not a lesson", d.appModel().activeView())
	return lv
}

// CurrentScreen returns the screen the top lesson is showing.
func (d *TestDriver) CurrentScreen() domain.Screen {
	d.T.Helper()
	s, ok := d.Lesson().ctrl.Current()
	require.True(d.T, ok)
	return s
}
