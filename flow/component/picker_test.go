package component

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

func TestPickerRender(t *testing.T) {
	p := Picker{Key: "alert_target", Options: []Option{
		{Value: "coin", Label: "A coin"},
		{Value: "watchlist", Label: "A watchlist"},
	}}

	r := p.Render("Alert on what?")
	require.Len(t, r.Keyboard, 3, "one row per option plus the back row")
	assert.Equal(t, "A coin", r.Keyboard[0][0].Label)
	assert.Equal(t, "alert_target_coin", r.Keyboard[0][0].Trigger)
	assert.Equal(t, flow.TriggerBack, r.Keyboard[2][0].Trigger)
}

func TestPickerBindRegistersOneEntryPerOption(t *testing.T) {
	p := Picker{Key: "k", Options: Opts("a", "b", "c")}
	r := flow.NewRouter()
	var picked string
	p.Bind(r, func(value string) flow.StepFunc {
		return func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
			picked = value
			return flow.Render{Text: "picked " + value}, nil
		}
	})
	assert.Equal(t, 3, r.Len())

	h, ok := r.Dispatch("k_b")
	require.True(t, ok)
	out, err := h(context.Background(), &flow.Session{}, flow.Event{})
	require.NoError(t, err)
	assert.Equal(t, "b", picked)
	assert.Equal(t, "picked b", out.Text)
}

func TestTextInputRender(t *testing.T) {
	ti := TextInput{Field: "note", SkipTrigger: "alert_note_skip"}
	r := ti.Render("Add a note?")
	require.Len(t, r.Keyboard, 2)
	assert.Equal(t, "alert_note_skip", r.Keyboard[0][0].Trigger)
	assert.Equal(t, flow.TriggerBack, r.Keyboard[1][0].Trigger)

	bare := TextInput{Field: "name"}
	r = bare.Render("Name it")
	require.Len(t, r.Keyboard, 1, "no skip button without a skip trigger")
}

func TestTextInputStoresVerbatim(t *testing.T) {
	ti := TextInput{Field: "note"}
	s := &flow.Session{}
	s.StartDialog("d", nil)

	ti.Store(s, "  raw text, untrimmed  ")
	assert.Equal(t, "  raw text, untrimmed  ", s.GetString("note"))
}

func TestTextInputSkipStoresEmpty(t *testing.T) {
	ti := TextInput{Field: "note", SkipTrigger: "skip_it"}
	r := flow.NewRouter()
	ti.BindSkip(r, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return flow.Render{Text: "next"}, nil
	})

	s := &flow.Session{}
	s.StartDialog("d", nil)
	s.Set("note", "stale")

	h, ok := r.Dispatch("skip_it")
	require.True(t, ok)
	out, err := h(context.Background(), s, flow.Event{})
	require.NoError(t, err)
	assert.Equal(t, "next", out.Text)

	v, present := s.Get("note")
	assert.True(t, present)
	assert.Equal(t, "", v)
}

func TestConfirmationRenderAndBind(t *testing.T) {
	c := Confirmation{Trigger: "wl_delete_yes"}
	r := c.Render("Really delete?")
	require.Len(t, r.Keyboard, 1)
	require.Len(t, r.Keyboard[0], 2)
	assert.Equal(t, "wl_delete_yes", r.Keyboard[0][0].Trigger)
	assert.Equal(t, flow.TriggerBack, r.Keyboard[0][1].Trigger)

	router := flow.NewRouter()
	c.Bind(router, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return flow.Render{Text: "deleted"}, nil
	})
	h, ok := router.Dispatch("wl_delete_yes")
	require.True(t, ok)
	out, _ := h(context.Background(), &flow.Session{}, flow.Event{})
	assert.Equal(t, "deleted", out.Text)
}
