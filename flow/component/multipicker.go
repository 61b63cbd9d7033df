package component

import (
	"sort"
	"strings"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

// MultiPickState is the capped multi-select backing state, stored in the
// dialog parameters under a key the owning dialog chooses.
type MultiPickState struct {
	Selected map[string]struct{}
	Category string
}

// NewMultiPickState returns an empty selection for a category.
func NewMultiPickState(category string) *MultiPickState {
	return &MultiPickState{Selected: make(map[string]struct{}), Category: category}
}

// Values returns the selection in stable order.
func (st *MultiPickState) Values() []string {
	out := make([]string, 0, len(st.Selected))
	for v := range st.Selected {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MultiPicker is a toggling multi-select with a hard cap. Trigger grammar:
// "<key>_option_<value>" toggles membership, "<key>_CHOOSE" confirms.
type MultiPicker struct {
	Key     string
	Options []Option
	Limit   int
}

const multiPerRow = 3

// ChooseTrigger is the confirm trigger for this picker.
func (m MultiPicker) ChooseTrigger() string { return m.Key + "_CHOOSE" }

// OptionTrigger returns the toggle trigger for one value.
func (m MultiPicker) OptionTrigger(value string) string { return m.Key + "_option_" + value }

// State fetches the picker state from the dialog parameters, creating a
// fresh one when the backing state was never initialized (or was clobbered)
// so the step can re-prompt from the initial screen instead of failing.
func (m MultiPicker) State(s *flow.Session, paramKey, category string) (*MultiPickState, bool) {
	if v, ok := s.Get(paramKey); ok {
		if st, ok := v.(*MultiPickState); ok && st.Selected != nil {
			return st, false
		}
	}
	st := NewMultiPickState(category)
	s.Set(paramKey, st)
	return st, true
}

// Render lays the options out three per row with a checkmark on selected
// entries, then the trailing back/next row.
func (m MultiPicker) Render(st *MultiPickState, title string) flow.Render {
	buttons := make([]flow.Button, 0, len(m.Options))
	for _, opt := range m.Options {
		label := opt.Label
		if _, on := st.Selected[opt.Value]; on {
			label = checkmark + label
		}
		buttons = append(buttons, flow.Btn(label, m.OptionTrigger(opt.Value)))
	}
	r := flow.Render{Text: title, Keyboard: chunk(buttons, multiPerRow)}
	return r.AddRow(flow.BackButton(), flow.Btn("Next »", m.ChooseTrigger()))
}

// OnEvent applies one trigger to the state.
//
// Confirm with an empty selection is rejected with a warning and no redraw.
// Toggling a new value at the cap leaves the state unchanged and returns
// Redraw=false so the caller does not fake a successful toggle. Toggling an
// existing member always removes it.
func (m MultiPicker) OnEvent(st *MultiPickState, trigger string) Transition {
	if trigger == m.ChooseTrigger() {
		if len(st.Selected) == 0 {
			return Transition{Proceed: false, Redraw: false, Warning: "Pick at least one option first"}
		}
		return Transition{Proceed: true}
	}

	prefix := m.Key + "_option_"
	if !strings.HasPrefix(trigger, prefix) {
		return Transition{}
	}
	value := strings.TrimPrefix(trigger, prefix)

	if _, on := st.Selected[value]; on {
		delete(st.Selected, value)
		return Transition{Redraw: true}
	}
	if m.Limit > 0 && len(st.Selected) >= m.Limit {
		return Transition{Proceed: false, Redraw: false, Warning: "Selection limit reached"}
	}
	st.Selected[value] = struct{}{}
	return Transition{Redraw: true}
}
