package component

import (
	"context"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

// TextInput prompts for free text stored verbatim (no validation) into one
// dialog parameter. An optional skip button stores the empty string.
type TextInput struct {
	// Field is the parameter key the raw text lands in.
	Field string
	// SkipTrigger enables the skip button when non-empty.
	SkipTrigger string
}

// Render draws the prompt with the optional skip button and the back row.
func (t TextInput) Render(prompt string) flow.Render {
	r := flow.Render{Text: prompt}
	if t.SkipTrigger != "" {
		r = r.AddRow(flow.Btn("Skip »", t.SkipTrigger))
	}
	return r.AddRow(flow.BackButton())
}

// Store writes the raw text into the field parameter.
func (t TextInput) Store(s *flow.Session, text string) {
	s.Set(t.Field, text)
}

// BindSkip wires the skip trigger: it stores "" and hands off to next.
func (t TextInput) BindSkip(r *flow.Router, next flow.Handler) {
	if t.SkipTrigger == "" {
		return
	}
	trigger := t.SkipTrigger
	field := t.Field
	r.Handle(trigger, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		s.Set(field, "")
		return next(ctx, s, ev)
	})
}
