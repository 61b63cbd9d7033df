package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

func indicatorPicker(limit int) MultiPicker {
	return MultiPicker{
		Key:     "alert_ind",
		Options: Opts("RSI", "MACD", "EMA", "SMA", "BBANDS"),
		Limit:   limit,
	}
}

func TestMultiPickerToggleOnOff(t *testing.T) {
	m := indicatorPicker(3)
	st := NewMultiPickState("indicators")

	tr := m.OnEvent(st, "alert_ind_option_RSI")
	assert.True(t, tr.Redraw)
	assert.Contains(t, st.Selected, "RSI")

	tr = m.OnEvent(st, "alert_ind_option_RSI")
	assert.True(t, tr.Redraw)
	assert.NotContains(t, st.Selected, "RSI")
}

func TestMultiPickerCapRejectsNewValueWithoutRedraw(t *testing.T) {
	m := indicatorPicker(3)
	st := NewMultiPickState("indicators")
	for _, v := range []string{"RSI", "MACD", "EMA"} {
		m.OnEvent(st, m.OptionTrigger(v))
	}
	require.Len(t, st.Selected, 3)

	tr := m.OnEvent(st, "alert_ind_option_SMA")
	assert.False(t, tr.Redraw, "a rejected toggle must not trigger a re-render")
	assert.False(t, tr.Proceed)
	assert.NotEmpty(t, tr.Warning)
	assert.Len(t, st.Selected, 3)
	assert.NotContains(t, st.Selected, "SMA")

	// Removing an existing member still works at the cap.
	tr = m.OnEvent(st, "alert_ind_option_RSI")
	assert.True(t, tr.Redraw)
	assert.Len(t, st.Selected, 2)
}

func TestMultiPickerConfirmEmptyGuard(t *testing.T) {
	m := indicatorPicker(3)
	st := NewMultiPickState("indicators")

	tr := m.OnEvent(st, m.ChooseTrigger())
	assert.False(t, tr.Proceed)
	assert.False(t, tr.Redraw)
	assert.NotEmpty(t, tr.Warning)

	m.OnEvent(st, m.OptionTrigger("MACD"))
	tr = m.OnEvent(st, m.ChooseTrigger())
	assert.True(t, tr.Proceed)
}

func TestMultiPickerForeignTriggerIsIgnored(t *testing.T) {
	m := indicatorPicker(3)
	st := NewMultiPickState("indicators")
	tr := m.OnEvent(st, "something_else")
	assert.Equal(t, Transition{}, tr)
	assert.Empty(t, st.Selected)
}

func TestMultiPickerRenderLayout(t *testing.T) {
	m := indicatorPicker(3)
	st := NewMultiPickState("indicators")
	m.OnEvent(st, m.OptionTrigger("MACD"))

	r := m.Render(st, "Pick indicators")
	assert.Equal(t, "Pick indicators", r.Text)
	// 5 options in rows of 3 -> 3+2, plus the back/next row.
	require.Len(t, r.Keyboard, 3)
	assert.Len(t, r.Keyboard[0], 3)
	assert.Len(t, r.Keyboard[1], 2)
	assert.Len(t, r.Keyboard[2], 2)

	assert.Equal(t, checkmark+"MACD", r.Keyboard[0][1].Label)
	assert.Equal(t, "RSI", r.Keyboard[0][0].Label)
	assert.Equal(t, flow.TriggerBack, r.Keyboard[2][0].Trigger)
	assert.Equal(t, m.ChooseTrigger(), r.Keyboard[2][1].Trigger)
}

func TestMultiPickerStateReinitializesWhenMissing(t *testing.T) {
	m := indicatorPicker(3)
	s := &flow.Session{}
	s.StartDialog("d", nil)

	st, fresh := m.State(s, "inds", "indicators")
	assert.True(t, fresh)
	require.NotNil(t, st)

	again, fresh := m.State(s, "inds", "indicators")
	assert.False(t, fresh)
	assert.Same(t, st, again)

	// A clobbered key re-prompts from the initial state instead of failing.
	s.Set("inds", "garbage")
	_, fresh = m.State(s, "inds", "indicators")
	assert.True(t, fresh)
}
