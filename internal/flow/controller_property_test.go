package flow_test

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/flow"
	"github.com/alexanderramin/encore/internal/testutil"
	"pgregory.net/rapid"
)

func genStepLesson(t *rapid.T) *domain.Lesson {
	n := rapid.IntRange(1, 12).Draw(t, "steps")
	opts := []testutil.LessonOption{testutil.WithSteps(n)}
	if rapid.Bool().Draw(t, "reflection") {
		opts = append(opts, testutil.WithReflection())
	}
	return testutil.NewTestLesson("prop", opts...)
}

func TestProperty_AdvanceVisitsEveryIndexOnceThenFinal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := genStepLesson(t)
		c, err := flow.New(l)
		if err != nil {
			t.Fatal(err)
		}
		c.Start()
		for i := 0; i < l.Len()-1; i++ {
			c.Advance()
		}
		for i, p := range c.History() {
			if p != (flow.Position{Index: i}) {
				t.Fatalf("history[%d] = %+v, want index %d", i, p, i)
			}
		}

		c.Advance()
		if l.Reflection != nil {
			if c.State() != flow.StateReflection {
				t.Fatalf("state = %s after last step, want reflection", c.State())
			}
			c.Advance()
		}
		if c.State() != flow.StateFinal {
			t.Fatalf("state = %s, want final", c.State())
		}
	})
}

func TestProperty_GoBackRestoresPreviousIndex(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := genStepLesson(t)
		c, _ := flow.New(l)
		c.Start()
		steps := rapid.IntRange(0, l.Len()-1).Draw(t, "advances")
		for range steps {
			c.Advance()
		}
		before := c.Choices()

		c.GoBack()
		if steps == 0 {
			if c.State() != flow.StateNotStarted || len(c.History()) != 0 {
				t.Fatalf("back from index 0: state %s, history %v", c.State(), c.History())
			}
			return
		}
		if got := c.Position(); got != (flow.Position{Index: steps - 1}) {
			t.Fatalf("back from %d landed on %+v", steps, got)
		}
		if fmt.Sprint(before) != fmt.Sprint(c.Choices()) {
			t.Fatalf("choices changed on back: %v -> %v", before, c.Choices())
		}
	})
}

func TestProperty_ChoiceRecordIsLastWriteWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := testutil.NewTestLesson("choices", testutil.WithChoice("k", "first", "second"), testutil.WithSteps(1))
		c, _ := flow.New(l)
		c.Start()

		values := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{1,12}`), 1, 8).Draw(t, "values")
		for _, v := range values {
			if _, err := c.RecordChoice("k", v); err != nil {
				t.Fatal(err)
			}
			c.GoBack()
		}
		if got := c.Choices()["k"]; got != values[len(values)-1] {
			t.Fatalf("choice = %q, want %q", got, values[len(values)-1])
		}
	})
}

// Random operation sequences never fire completion more than once, only
// from the final screen, and never index outside the content table.
func TestProperty_RandomWalk(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := testutil.NewTestLesson("walk",
			testutil.WithSteps(rapid.IntRange(0, 3).Draw(t, "lead")),
			testutil.WithChoice("a", "one", "two"),
			testutil.WithSteps(rapid.IntRange(1, 3).Draw(t, "tail")),
			testutil.WithStoryIntro(),
			testutil.WithReflection(),
		)
		c, err := flow.New(l)
		if err != nil {
			t.Fatal(err)
		}
		completions := 0
		c.Subscribe(func(ev flow.Event) {
			if ev.Kind == flow.EventCompleted {
				completions++
			}
		})

		ops := rapid.SliceOfN(rapid.IntRange(0, 4), 1, 60).Draw(t, "ops")
		for _, op := range ops {
			stateBefore := c.State()
			switch op {
			case 0:
				c.Advance()
			case 1:
				c.GoBack()
			case 2:
				_, _ = c.Choose(0)
			case 3:
				_, _ = c.JumpTo(domain.MarkerReflection)
			case 4:
				_, err := c.Complete()
				if err == nil && stateBefore != flow.StateFinal {
					t.Fatalf("completed from %s", stateBefore)
				}
			}
			if completions > 1 {
				t.Fatalf("completed %d times", completions)
			}
			for _, p := range c.History() {
				if !p.IsSentinel() && (p.Index < 0 || p.Index >= l.Len()) {
					t.Fatalf("history index %d out of range [0,%d)", p.Index, l.Len())
				}
			}
			if _, ok := c.Current(); !ok {
				t.Fatalf("no current screen in state %s at %+v", c.State(), c.Position())
			}
		}
	})
}
