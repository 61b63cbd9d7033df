package component

import "github.com/glennakiN/Buynoculars-sub000/flow"

// Picker renders a one-shot choice: every option is its own router entry
// that transitions directly to the next step, so the picker itself holds
// no state.
type Picker struct {
	// Key prefixes every option trigger: "<key>_<value>".
	Key     string
	Options []Option
	// PerRow is the button row width; defaults to 1.
	PerRow int
}

// Trigger returns the callback trigger for one option value.
func (p Picker) Trigger(value string) string {
	return p.Key + "_" + value
}

// Render lays out the option buttons plus the implicit back row.
func (p Picker) Render(title string) flow.Render {
	buttons := make([]flow.Button, 0, len(p.Options))
	for _, opt := range p.Options {
		buttons = append(buttons, flow.Btn(opt.Label, p.Trigger(opt.Value)))
	}
	perRow := p.PerRow
	if perRow < 1 {
		perRow = 1
	}
	r := flow.Render{Text: title, Keyboard: chunk(buttons, perRow)}
	return r.AddRow(flow.BackButton())
}

// Bind registers one literal router entry per option. onPick receives the
// picked value and produces the next screen.
func (p Picker) Bind(r *flow.Router, onPick func(value string) flow.StepFunc) {
	for _, opt := range p.Options {
		value := opt.Value
		r.Handle(p.Trigger(value), onPick(value))
	}
}
