package component

import "github.com/glennakiN/Buynoculars-sub000/flow"

// Confirmation is the two-button yes/no screen: a caller-supplied confirm
// trigger and the fixed go-back trigger.
type Confirmation struct {
	Trigger string
	Label   string
}

// Render draws the summary text with the confirm and back buttons.
func (c Confirmation) Render(text string) flow.Render {
	label := c.Label
	if label == "" {
		label = "✔ Confirm"
	}
	return flow.Render{
		Text: text,
		Keyboard: [][]flow.Button{
			{flow.Btn(label, c.Trigger), flow.BackButton()},
		},
	}
}

// Bind wires the confirm trigger into the dialog's router.
func (c Confirmation) Bind(r *flow.Router, onConfirm flow.Handler) {
	r.Handle(c.Trigger, onConfirm)
}
