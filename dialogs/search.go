package dialogs

import (
	"context"
	"fmt"

	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/flow/component"
)

const (
	searchStateKey  = "search_state"
	searchAssetKey  = "search_asset_id"
	searchManualKey = "search_manual_pick"

	chartURLBase = "https://www.coingecko.com/en/coins/"
)

// newSearchScene builds the asset lookup dialog: free-text query, ranked
// results with threshold auto-select, asset card with an external chart
// link.
func newSearchScene(d *Deps) *flow.Scene {
	list := component.SearchList{Key: "search", PerPage: d.perPage()}

	renderQuery := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return flow.Render{Text: "Type a coin name or ticker."}, nil
	}

	onQuery := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		items, top, err := d.searchCoins(ctx, ev.Text)
		if err != nil {
			return flow.Render{}, err
		}
		if len(items) == 0 {
			return flow.Render{Text: fmt.Sprintf("No matches for %q. Try another name.", ev.Text)}, nil
		}
		if top != nil {
			s.Set(searchAssetKey, top.ID)
			s.Set(searchManualKey, false)
			return d.Engine.Goto(ctx, s, ev, "card")
		}
		s.Set(searchStateKey, &component.SearchState{Query: ev.Text, Results: items, Page: 1})
		return d.Engine.Goto(ctx, s, ev, "results")
	}

	renderResults := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		st, fresh := list.State(s, searchStateKey)
		if fresh {
			// State was never seeded (stale button): re-prompt instead.
			staleState(ctx, DialogSearch, "results")
			return d.Engine.Goto(ctx, s, ev, "query")
		}
		return list.Render(st, fmt.Sprintf("Results for %q:", st.Query)), nil
	}

	renderCard := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		id := s.GetString(searchAssetKey)
		c, ok := d.Market.Get(ctx, id)
		if !ok {
			return flow.Render{}, fmt.Errorf("search: unknown asset %q", id)
		}
		text := fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
		if c.HasRank() {
			text += fmt.Sprintf("\nMarket cap rank: #%d", c.Rank)
		}
		r := flow.Render{Text: text}
		r = r.AddRow(flow.URLBtn("📈 Chart", chartURLBase+c.ID))
		return r.AddRow(flow.BackButton()), nil
	}

	sc := flow.MustScene(DialogSearch,
		flow.Step{Name: "query", Render: renderQuery, OnText: onQuery},
		flow.Step{Name: "results", Render: renderResults},
		flow.Step{
			Name:   "card",
			Render: renderCard,
			Back: func(s *flow.Session) string {
				if s.GetBool(searchManualKey) {
					return "results"
				}
				return "query"
			},
		},
	)

	sc.Router.HandlePrefix(list.Key+"_pick_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		id, _ := list.ParsePick(ev.Trigger)
		s.Set(searchAssetKey, id)
		s.Set(searchManualKey, true)
		return d.Engine.Goto(ctx, s, ev, "card")
	})
	sc.Router.HandlePrefix(list.Key+"_page_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		page, ok := list.ParsePage(ev.Trigger)
		if !ok {
			return flow.Render{}, nil
		}
		st, fresh := list.State(s, searchStateKey)
		if fresh {
			staleState(ctx, DialogSearch, "results")
			return d.Engine.Goto(ctx, s, ev, "query")
		}
		st.Page = page
		return d.Engine.Goto(ctx, s, ev, "results")
	})
	return sc
}
