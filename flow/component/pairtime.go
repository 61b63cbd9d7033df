package component

import (
	"strings"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

// PairTimeState holds the two independent single-selects of the
// pair/timeframe picker. Empty string means not chosen yet.
type PairTimeState struct {
	Pairing   string
	Timeframe string
}

// PairTimePicker selects a trading pairing and a timeframe on two
// independent axes, finalized by an explicit confirm. Trigger grammar:
// "<key>_pair_<P>", "<key>_time_<T>", "<key>_CHOOSE".
type PairTimePicker struct {
	Key        string
	Pairings   []string
	Timeframes []string
}

// ChooseTrigger is the confirm trigger.
func (p PairTimePicker) ChooseTrigger() string { return p.Key + "_CHOOSE" }

// PairTrigger returns the trigger selecting one pairing.
func (p PairTimePicker) PairTrigger(v string) string { return p.Key + "_pair_" + v }

// TimeTrigger returns the trigger selecting one timeframe.
func (p PairTimePicker) TimeTrigger(v string) string { return p.Key + "_time_" + v }

// State fetches or initializes the picker state under paramKey.
func (p PairTimePicker) State(s *flow.Session, paramKey string) (*PairTimeState, bool) {
	if v, ok := s.Get(paramKey); ok {
		if st, ok := v.(*PairTimeState); ok {
			return st, false
		}
	}
	st := &PairTimeState{}
	s.Set(paramKey, st)
	return st, true
}

// Render shows all pairings on one row and all timeframes on a second,
// marking the active choice on each axis, with back/next on the third.
func (p PairTimePicker) Render(st *PairTimeState, title string) flow.Render {
	pairRow := make([]flow.Button, 0, len(p.Pairings))
	for _, v := range p.Pairings {
		label := v
		if v == st.Pairing {
			label = checkmark + label
		}
		pairRow = append(pairRow, flow.Btn(label, p.PairTrigger(v)))
	}
	timeRow := make([]flow.Button, 0, len(p.Timeframes))
	for _, v := range p.Timeframes {
		label := v
		if v == st.Timeframe {
			label = checkmark + label
		}
		timeRow = append(timeRow, flow.Btn(label, p.TimeTrigger(v)))
	}
	return flow.Render{
		Text: title,
		Keyboard: [][]flow.Button{
			pairRow,
			timeRow,
			{flow.BackButton(), flow.Btn("Next »", p.ChooseTrigger())},
		},
	}
}

// OnEvent updates one axis, or finalizes both on CHOOSE. Confirming before
// both axes are set is rejected with a warning and no redraw.
func (p PairTimePicker) OnEvent(st *PairTimeState, trigger string) Transition {
	if trigger == p.ChooseTrigger() {
		if st.Pairing == "" || st.Timeframe == "" {
			return Transition{Warning: "Pick a pairing and a timeframe first"}
		}
		return Transition{Proceed: true}
	}
	if v, ok := strings.CutPrefix(trigger, p.Key+"_pair_"); ok {
		if st.Pairing == v {
			return Transition{}
		}
		st.Pairing = v
		return Transition{Redraw: true}
	}
	if v, ok := strings.CutPrefix(trigger, p.Key+"_time_"); ok {
		if st.Timeframe == v {
			return Transition{}
		}
		st.Timeframe = v
		return Transition{Redraw: true}
	}
	return Transition{}
}
