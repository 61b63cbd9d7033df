// Package component provides the reusable selection sub-machines composed
// into dialogs: single pick, capped multi-pick, pair/timeframe pick,
// confirmation, free-text prompt, and a ranked search list. Each one is a
// small state→render→transition unit whose state lives inside the owning
// dialog's parameter bag.
package component

import "github.com/glennakiN/Buynoculars-sub000/flow"

// Option is one selectable entry: Value goes into the trigger, Label onto
// the button.
type Option struct {
	Value string
	Label string
}

// Opts builds options whose label equals the value.
func Opts(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

// Transition is the outcome of feeding a trigger to a sub-machine.
// Proceed means the selection is final and the dialog may advance.
// Redraw=false on a rejected action tells the caller NOT to re-render:
// redrawing an unchanged screen reads as false feedback.
type Transition struct {
	Proceed bool
	Redraw  bool
	Warning string
}

const checkmark = "✅ "

// chunk splits buttons into rows of at most n, matching the fixed-width
// keyboard layout used across the bot.
func chunk(buttons []flow.Button, n int) [][]flow.Button {
	if n < 1 {
		n = 1
	}
	var rows [][]flow.Button
	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return rows
}
