package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

func pairTime() PairTimePicker {
	return PairTimePicker{
		Key:        "alert_pt",
		Pairings:   []string{"USDT", "BTC", "ETH"},
		Timeframes: []string{"15m", "1h", "4h", "1d"},
	}
}

func TestPairTimeAxesAreIndependent(t *testing.T) {
	p := pairTime()
	st := &PairTimeState{}

	tr := p.OnEvent(st, "alert_pt_pair_USDT")
	assert.True(t, tr.Redraw)
	assert.Equal(t, "USDT", st.Pairing)
	assert.Empty(t, st.Timeframe)

	tr = p.OnEvent(st, "alert_pt_time_4h")
	assert.True(t, tr.Redraw)
	assert.Equal(t, "USDT", st.Pairing)
	assert.Equal(t, "4h", st.Timeframe)

	// Switching one axis leaves the other alone.
	p.OnEvent(st, "alert_pt_pair_BTC")
	assert.Equal(t, "BTC", st.Pairing)
	assert.Equal(t, "4h", st.Timeframe)
}

func TestPairTimeChooseRequiresBothAxes(t *testing.T) {
	p := pairTime()
	st := &PairTimeState{}

	tr := p.OnEvent(st, p.ChooseTrigger())
	assert.False(t, tr.Proceed)
	assert.NotEmpty(t, tr.Warning)

	p.OnEvent(st, p.PairTrigger("USDT"))
	p.OnEvent(st, p.TimeTrigger("1h"))
	tr = p.OnEvent(st, p.ChooseTrigger())
	assert.True(t, tr.Proceed)
}

func TestPairTimeRepickSameValueNeedsNoRedraw(t *testing.T) {
	p := pairTime()
	st := &PairTimeState{}
	p.OnEvent(st, p.PairTrigger("USDT"))

	tr := p.OnEvent(st, p.PairTrigger("USDT"))
	assert.False(t, tr.Redraw, "unchanged axis must not re-render")
}

func TestPairTimeRenderRows(t *testing.T) {
	p := pairTime()
	st := &PairTimeState{Pairing: "BTC", Timeframe: "1h"}

	r := p.Render(st, "Pair and timeframe")
	require.Len(t, r.Keyboard, 3)
	assert.Len(t, r.Keyboard[0], 3, "all pairings on one row")
	assert.Len(t, r.Keyboard[1], 4, "all timeframes on one row")

	assert.Equal(t, checkmark+"BTC", r.Keyboard[0][1].Label)
	assert.Equal(t, "USDT", r.Keyboard[0][0].Label)
	assert.Equal(t, checkmark+"1h", r.Keyboard[1][1].Label)
	assert.Equal(t, flow.TriggerBack, r.Keyboard[2][0].Trigger)
}
