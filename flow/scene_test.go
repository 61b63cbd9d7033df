package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screen(text string) StepFunc {
	return func(ctx context.Context, s *Session, ev Event) (Render, error) {
		return Render{Text: text}, nil
	}
}

// testScene builds a three-step dialog with a branch at step "target":
// the "mode" flag decides whether "final" goes back to "coin" or "list".
func testScene(t *testing.T, e *Engine) *Scene {
	t.Helper()
	sc := MustScene("demo",
		Step{Name: "target", Render: screen("pick a target")},
		Step{Name: "coin", Render: screen("coin screen")},
		Step{Name: "list", Render: screen("list screen")},
		Step{
			Name:   "final",
			Render: screen("final screen"),
			OnText: func(ctx context.Context, s *Session, ev Event) (Render, error) {
				s.Set("note", ev.Text)
				return Render{Text: "noted"}, nil
			},
			Back: func(s *Session) string {
				if s.GetString("mode") == "coin" {
					return "coin"
				}
				return "list"
			},
		},
	)
	sc.Router.Handle("demo_coin", func(ctx context.Context, s *Session, ev Event) (Render, error) {
		s.Set("mode", "coin")
		return e.Goto(ctx, s, ev, "final")
	})
	sc.Router.Handle("demo_list", func(ctx context.Context, s *Session, ev Event) (Render, error) {
		s.Set("mode", "list")
		return e.Goto(ctx, s, ev, "final")
	})
	sc.Router.Handle("demo_fail", func(ctx context.Context, s *Session, ev Event) (Render, error) {
		return Render{}, errors.New("service exploded")
	})
	require.NoError(t, e.Register(sc))
	return sc
}

func newTestEngine() *Engine {
	return NewEngine(EngineOptions{
		OnExit: func(ctx context.Context, s *Session, ev Event) (Render, error) {
			return Render{Text: "main menu", Keyboard: [][]Button{{Btn("Search", "menu_search")}}}, nil
		},
		ErrorText: "oops",
	})
}

func TestEnterRendersFirstStep(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}

	out, err := e.Enter(context.Background(), s, "demo", nil)
	require.NoError(t, err)
	assert.Equal(t, "pick a target", out.Text)
	assert.Equal(t, 0, s.Dialog().Cursor)
}

func TestEnterSeedsParameters(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}

	_, err := e.Enter(context.Background(), s, "demo", map[string]any{"mode": "coin"})
	require.NoError(t, err)
	assert.Equal(t, "coin", s.GetString("mode"))
}

func TestCallbackRoutesThroughSceneRouter(t *testing.T) {
	e := newTestEngine()
	sc := testScene(t, e)
	s := &Session{ChatID: 1}
	ctx := context.Background()

	_, err := e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)

	out, err := e.HandleEvent(ctx, s, CallbackEvent(1, 1, "demo_coin"))
	require.NoError(t, err)
	assert.Equal(t, "final screen", out.Text)

	idx, _ := sc.StepIndex("final")
	assert.Equal(t, idx, s.Dialog().Cursor)
}

func TestTextFallsBackToCurrentStep(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}
	ctx := context.Background()

	_, err := e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)

	// Step "target" has no OnText: ignored.
	out, err := e.HandleEvent(ctx, s, TextEvent(1, 1, "hello"))
	require.NoError(t, err)
	assert.True(t, out.IsZero())

	// Advance to "final", which stores text.
	_, err = e.HandleEvent(ctx, s, CallbackEvent(1, 1, "demo_list"))
	require.NoError(t, err)
	out, err = e.HandleEvent(ctx, s, TextEvent(1, 1, "remember this"))
	require.NoError(t, err)
	assert.Equal(t, "noted", out.Text)
	assert.Equal(t, "remember this", s.GetString("note"))
}

func TestUnmatchedTriggerIsSilentNoop(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}
	ctx := context.Background()

	_, err := e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)

	out, err := e.HandleEvent(ctx, s, CallbackEvent(1, 1, "stale_button_press"))
	require.NoError(t, err)
	assert.True(t, out.IsZero())
	assert.True(t, s.InDialog(), "stale trigger must not disturb the dialog")
}

func TestBackUsesBranchFlag(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}
	ctx := context.Background()

	_, err := e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)
	_, err = e.HandleEvent(ctx, s, CallbackEvent(1, 1, "demo_coin"))
	require.NoError(t, err)

	out, err := e.HandleEvent(ctx, s, CallbackEvent(1, 1, TriggerBack))
	require.NoError(t, err)
	assert.Equal(t, "coin screen", out.Text, "back from final must honor the coin branch")

	// Same walk through the other branch.
	_, err = e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)
	_, err = e.HandleEvent(ctx, s, CallbackEvent(1, 1, "demo_list"))
	require.NoError(t, err)
	out, err = e.HandleEvent(ctx, s, CallbackEvent(1, 1, TriggerBack))
	require.NoError(t, err)
	assert.Equal(t, "list screen", out.Text)
}

func TestBackAtEntryStepLeavesDialog(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}
	ctx := context.Background()

	_, err := e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)

	out, err := e.HandleEvent(ctx, s, CallbackEvent(1, 1, TriggerBack))
	require.NoError(t, err)
	assert.Equal(t, "main menu", out.Text)
	assert.False(t, s.InDialog())
}

func TestStepFailureAbandonsDialogWithGenericError(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}
	ctx := context.Background()

	_, err := e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)

	out, err := e.HandleEvent(ctx, s, CallbackEvent(1, 1, "demo_fail"))
	require.NoError(t, err, "service failures are absorbed, not propagated")
	assert.Equal(t, "oops", out.Text)
	assert.NotEmpty(t, out.Keyboard, "error screen keeps the top-level menu buttons")
	assert.False(t, s.InDialog())
}

func TestIdleSessionEventsAreNoops(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}

	out, err := e.HandleEvent(context.Background(), s, TextEvent(1, 1, "hi"))
	require.NoError(t, err)
	assert.True(t, out.IsZero())
}

func TestNoopTriggerIsIgnored(t *testing.T) {
	e := newTestEngine()
	testScene(t, e)
	s := &Session{ChatID: 1}
	ctx := context.Background()

	_, err := e.Enter(ctx, s, "demo", nil)
	require.NoError(t, err)
	out, err := e.HandleEvent(ctx, s, CallbackEvent(1, 1, TriggerNoop))
	require.NoError(t, err)
	assert.True(t, out.IsZero())
	assert.Equal(t, 0, s.Dialog().Cursor)
}

func TestSceneValidation(t *testing.T) {
	_, err := NewScene("")
	assert.Error(t, err)

	_, err = NewScene("x", Step{Name: "a", Render: screen("a")}, Step{Name: "a", Render: screen("b")})
	assert.Error(t, err, "duplicate step names must be rejected")

	_, err = NewScene("x", Step{Name: "a"})
	assert.Error(t, err, "steps must render")
}
