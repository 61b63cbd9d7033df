package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glennakiN/Buynoculars-sub000/core/logger"
)

// StepFunc renders a screen and/or processes input for one dialog position.
type StepFunc func(ctx context.Context, s *Session, ev Event) (Render, error)

// Step is one named position inside a scene. Steps are addressed by name,
// not by raw index, so reordering or inserting steps cannot silently break
// navigation.
type Step struct {
	Name string
	// Render draws this step's screen. Required.
	Render StepFunc
	// OnText handles free text while this step is active. Nil ignores text.
	OnText StepFunc
	// Back names the predecessor screen, consulting branch flags stored in
	// the dialog parameters when the path forked. Nil means the positionally
	// previous step; returning "" leaves the dialog. Together with the
	// cursor==0 rule this makes the predecessor relation total.
	Back func(s *Session) string
}

// Scene is a named, ordered list of steps plus the dialog-scoped callback
// router. A scene definition is immutable after registration; all per-user
// state lives in the session.
type Scene struct {
	ID     string
	Router *Router

	// OnLeave runs right before the dialog state is discarded.
	OnLeave func(s *Session)

	steps []Step
	index map[string]int
}

// NewScene builds a scene from ordered steps. Step names must be unique and
// every step must have a Render function.
func NewScene(id string, steps ...Step) (*Scene, error) {
	if id == "" {
		return nil, fmt.Errorf("flow: scene id is required")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("flow: scene %q has no steps", id)
	}
	index := make(map[string]int, len(steps))
	for i, st := range steps {
		if st.Name == "" {
			return nil, fmt.Errorf("flow: scene %q step %d has no name", id, i)
		}
		if st.Render == nil {
			return nil, fmt.Errorf("flow: scene %q step %q has no render", id, st.Name)
		}
		if _, dup := index[st.Name]; dup {
			return nil, fmt.Errorf("flow: scene %q duplicate step %q", id, st.Name)
		}
		index[st.Name] = i
	}
	return &Scene{ID: id, Router: NewRouter(), steps: steps, index: index}, nil
}

// MustScene is NewScene that panics; scene definitions are static wiring.
func MustScene(id string, steps ...Step) *Scene {
	sc, err := NewScene(id, steps...)
	if err != nil {
		panic(err)
	}
	return sc
}

// Len reports the number of steps.
func (sc *Scene) Len() int { return len(sc.steps) }

// Step returns the step at index i, clamped into range.
func (sc *Scene) Step(i int) Step {
	if i < 0 {
		i = 0
	}
	if i >= len(sc.steps) {
		i = len(sc.steps) - 1
	}
	return sc.steps[i]
}

// StepIndex resolves a step name.
func (sc *Scene) StepIndex(name string) (int, bool) {
	i, ok := sc.index[name]
	return i, ok
}

// Engine owns the dialog registry and dispatches events: router entry
// first, then the current step's text handler, otherwise no-op. It is the
// single owner of session dialog state.
type Engine struct {
	scenes map[string]*Scene

	// onExit renders the caller's top-level screen after a dialog is left.
	onExit StepFunc
	// errText is the one generic message shown when a step fails; the
	// dialog is abandoned, no retry.
	errText string
}

// EngineOptions configures engine construction.
type EngineOptions struct {
	OnExit    StepFunc
	ErrorText string
}

// NewEngine constructs an engine with no registered scenes.
func NewEngine(opts EngineOptions) *Engine {
	errText := opts.ErrorText
	if errText == "" {
		errText = "Something went wrong. Please try again."
	}
	return &Engine{
		scenes:  make(map[string]*Scene),
		onExit:  opts.OnExit,
		errText: errText,
	}
}

// Register adds a scene definition. Duplicate ids are a wiring bug.
func (e *Engine) Register(sc *Scene) error {
	if sc == nil || sc.ID == "" {
		return fmt.Errorf("flow: nil or unnamed scene")
	}
	if _, dup := e.scenes[sc.ID]; dup {
		return fmt.Errorf("flow: scene already registered: %s", sc.ID)
	}
	e.scenes[sc.ID] = sc
	return nil
}

// Scene looks up a registered scene by id.
func (e *Engine) Scene(id string) (*Scene, bool) {
	sc, ok := e.scenes[id]
	return sc, ok
}

// Enter starts a dialog for the session: cursor reset to 0, parameters
// replaced by the seed, step 0 rendered. Any previous dialog is discarded.
func (e *Engine) Enter(ctx context.Context, s *Session, dialogID string, seed map[string]any) (Render, error) {
	s.Lock()
	defer s.Unlock()
	return e.Switch(ctx, s, dialogID, seed)
}

// Switch is Enter for use inside a running handler, where the session lock
// is already held.
func (e *Engine) Switch(ctx context.Context, s *Session, dialogID string, seed map[string]any) (Render, error) {
	sc, ok := e.scenes[dialogID]
	if !ok {
		return Render{}, fmt.Errorf("flow: unknown dialog %q", dialogID)
	}
	if prev := s.Dialog(); prev != nil {
		if prevScene, ok := e.scenes[prev.DialogID]; ok && prevScene.OnLeave != nil {
			prevScene.OnLeave(s)
		}
	}
	s.StartDialog(dialogID, seed)
	logger.Debug(ctx, "flow", "dialog.enter",
		slog.String("status", "ok"),
		slog.String("dialog", dialogID),
		slog.Int64("chat_id", s.ChatID),
	)
	ev := Event{Kind: EventCallback, ChatID: s.ChatID, UserID: s.UserID}
	return e.run(ctx, s, sc, ev, sc.steps[0].Render)
}

// HandleEvent processes one inbound event under the session lock. A zero
// Render with nil error means the event was a no-op (idle session, stale
// trigger, text with no handler).
func (e *Engine) HandleEvent(ctx context.Context, s *Session, ev Event) (Render, error) {
	s.Lock()
	defer s.Unlock()
	return e.handleLocked(ctx, s, ev)
}

func (e *Engine) handleLocked(ctx context.Context, s *Session, ev Event) (Render, error) {
	d := s.Dialog()
	if d == nil {
		return Render{}, nil
	}
	sc, ok := e.scenes[d.DialogID]
	if !ok {
		logger.Warn(ctx, "flow", "dialog.orphaned",
			slog.String("status", "skip"),
			slog.String("dialog", d.DialogID),
			slog.Int64("chat_id", s.ChatID),
		)
		s.EndDialog()
		return Render{}, nil
	}

	switch ev.Kind {
	case EventCallback:
		if ev.Trigger == TriggerNoop {
			return Render{}, nil
		}
		if ev.Trigger == TriggerBack {
			return e.back(ctx, s, sc, ev)
		}
		if h, matched := sc.Router.Dispatch(ev.Trigger); matched {
			return e.run(ctx, s, sc, ev, h)
		}
		// Stale or duplicate button press: acknowledge silently.
		logger.Debug(ctx, "flow", "trigger.unmatched",
			slog.String("status", "skip"),
			slog.String("dialog", sc.ID),
			slog.String("trigger", ev.Trigger),
		)
		return Render{}, nil
	case EventText:
		step := sc.Step(d.Cursor)
		if step.OnText == nil {
			return Render{}, nil
		}
		return e.run(ctx, s, sc, ev, step.OnText)
	}
	return Render{}, nil
}

// Goto moves the cursor to a named step and renders it. Used by router
// handlers to advance or rewind within the active dialog.
func (e *Engine) Goto(ctx context.Context, s *Session, ev Event, stepName string) (Render, error) {
	d := s.Dialog()
	if d == nil {
		return Render{}, fmt.Errorf("flow: goto %q with no active dialog", stepName)
	}
	sc, ok := e.scenes[d.DialogID]
	if !ok {
		return Render{}, fmt.Errorf("flow: goto %q in unknown dialog %q", stepName, d.DialogID)
	}
	idx, ok := sc.StepIndex(stepName)
	if !ok {
		return Render{}, fmt.Errorf("flow: dialog %q has no step %q", sc.ID, stepName)
	}
	d.Cursor = idx
	return sc.steps[idx].Render(ctx, s, ev)
}

// Leave abandons the active dialog and renders the caller's top-level
// screen, if one is configured.
func (e *Engine) Leave(ctx context.Context, s *Session, ev Event) (Render, error) {
	d := s.Dialog()
	if d != nil {
		if sc, ok := e.scenes[d.DialogID]; ok && sc.OnLeave != nil {
			sc.OnLeave(s)
		}
		logger.Debug(ctx, "flow", "dialog.leave",
			slog.String("status", "ok"),
			slog.String("dialog", d.DialogID),
			slog.Int64("chat_id", s.ChatID),
		)
	}
	s.EndDialog()
	if e.onExit == nil {
		return Render{}, nil
	}
	return e.onExit(ctx, s, ev)
}

func (e *Engine) back(ctx context.Context, s *Session, sc *Scene, ev Event) (Render, error) {
	d := s.Dialog()
	if d.Cursor == 0 {
		return e.Leave(ctx, s, ev)
	}
	step := sc.Step(d.Cursor)
	var prev string
	if step.Back != nil {
		prev = step.Back(s)
	} else {
		prev = sc.steps[d.Cursor-1].Name
	}
	if prev == "" {
		return e.Leave(ctx, s, ev)
	}
	idx, ok := sc.StepIndex(prev)
	if !ok {
		logger.Error(ctx, "flow", "back.unresolved",
			slog.String("status", "fail"),
			slog.String("dialog", sc.ID),
			slog.String("step", step.Name),
			slog.String("prev", prev),
		)
		return e.Leave(ctx, s, ev)
	}
	d.Cursor = idx
	return e.run(ctx, s, sc, ev, sc.steps[idx].Render)
}

// run executes a handler applying the shared failure policy: a step that
// returns an error produces one generic user-facing message and the dialog
// is left. No retries.
func (e *Engine) run(ctx context.Context, s *Session, sc *Scene, ev Event, h StepFunc) (Render, error) {
	r, err := h(ctx, s, ev)
	if err == nil {
		return r, nil
	}
	logger.Error(ctx, "flow", "step.failed",
		slog.String("status", "fail"),
		slog.String("dialog", sc.ID),
		slog.String("err", err.Error()),
	)
	exit, _ := e.Leave(ctx, s, ev)
	return Render{Text: e.errText, Keyboard: exit.Keyboard}, nil
}
