package component

import (
	"strconv"
	"strings"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

// SearchItem is one ranked result, already scored by the caller.
type SearchItem struct {
	ID    string
	Label string
	Score float64
}

// SearchState backs a free-text search step: the last query, its ranked
// results, the picked item and the current list page.
type SearchState struct {
	Query      string
	Results    []SearchItem
	SelectedID string
	Page       int
}

// SearchList renders ranked results five per page for manual selection,
// with next/prev controls only when applicable. Trigger grammar:
// "<key>_pick_<id>" selects, "<key>_page_<n>" turns the page.
type SearchList struct {
	Key     string
	PerPage int
}

const defaultSearchPerPage = 5

// State fetches or initializes the search state under paramKey.
func (l SearchList) State(s *flow.Session, paramKey string) (*SearchState, bool) {
	if v, ok := s.Get(paramKey); ok {
		if st, ok := v.(*SearchState); ok {
			return st, false
		}
	}
	st := &SearchState{Page: 1}
	s.Set(paramKey, st)
	return st, true
}

// PickTrigger returns the selection trigger for one result id.
func (l SearchList) PickTrigger(id string) string { return l.Key + "_pick_" + id }

// PageTrigger returns the page-turn trigger.
func (l SearchList) PageTrigger(page int) string {
	return l.Key + "_page_" + strconv.Itoa(page)
}

// ParsePick extracts the result id from a pick trigger.
func (l SearchList) ParsePick(trigger string) (string, bool) {
	return strings.CutPrefix(trigger, l.Key+"_pick_")
}

// ParsePage extracts the page number from a page trigger.
func (l SearchList) ParsePage(trigger string) (int, bool) {
	raw, ok := strings.CutPrefix(trigger, l.Key+"_page_")
	if !ok {
		return 0, false
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return page, true
}

// Render draws the current page of results, one button per candidate, page
// controls when there is more than one page, and the back row.
func (l SearchList) Render(st *SearchState, title string) flow.Render {
	perPage := l.PerPage
	if perPage < 1 {
		perPage = defaultSearchPerPage
	}
	window, page := flow.Paginate(st.Results, st.Page, perPage)
	st.Page = page.CurrentPage

	r := flow.Render{Text: title}
	for _, item := range window {
		r = r.AddRow(flow.Btn(item.Label, l.PickTrigger(item.ID)))
	}
	if page.TotalPages() > 1 {
		r.Keyboard = append(r.Keyboard, flow.BuildPageControls(page.CurrentPage, page.TotalPages(), 0, l.PageTrigger)...)
	}
	return r.AddRow(flow.BackButton())
}
