package component

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

func searchItems(n int) []SearchItem {
	items := make([]SearchItem, n)
	for i := range items {
		items[i] = SearchItem{ID: fmt.Sprintf("coin-%d", i), Label: fmt.Sprintf("Coin %d", i)}
	}
	return items
}

func TestSearchListRenderPagesFivePerPage(t *testing.T) {
	l := SearchList{Key: "search"}
	st := &SearchState{Query: "coin", Results: searchItems(12), Page: 1}

	r := l.Render(st, "Results")
	// 5 result rows + nav row + back row.
	require.Len(t, r.Keyboard, 7)
	assert.Equal(t, "search_pick_coin-0", r.Keyboard[0][0].Trigger)
	assert.Equal(t, "Coin 4", r.Keyboard[4][0].Label)
	assert.Equal(t, flow.TriggerBack, r.Keyboard[6][0].Trigger)
}

func TestSearchListSinglePageHidesControls(t *testing.T) {
	l := SearchList{Key: "search"}
	st := &SearchState{Results: searchItems(3), Page: 1}

	r := l.Render(st, "Results")
	// 3 result rows + back row only.
	assert.Len(t, r.Keyboard, 4)
}

func TestSearchListClampsStoredPage(t *testing.T) {
	l := SearchList{Key: "search"}
	st := &SearchState{Results: searchItems(7), Page: 42}

	r := l.Render(st, "Results")
	assert.Equal(t, 2, st.Page, "stale page is clamped into range")
	assert.NotEmpty(t, r.Keyboard)
}

func TestSearchListTriggers(t *testing.T) {
	l := SearchList{Key: "search"}

	id, ok := l.ParsePick("search_pick_bitcoin")
	require.True(t, ok)
	assert.Equal(t, "bitcoin", id)

	_, ok = l.ParsePick("other_pick_bitcoin")
	assert.False(t, ok)

	page, ok := l.ParsePage("search_page_3")
	require.True(t, ok)
	assert.Equal(t, 3, page)

	_, ok = l.ParsePage("search_page_x")
	assert.False(t, ok)
}

func TestSearchStateReinitializesWhenMissing(t *testing.T) {
	l := SearchList{Key: "search"}
	s := &flow.Session{}
	s.StartDialog("d", nil)

	st, fresh := l.State(s, "search_state")
	assert.True(t, fresh)
	assert.Equal(t, 1, st.Page)

	again, fresh := l.State(s, "search_state")
	assert.False(t, fresh)
	assert.Same(t, st, again)
}
