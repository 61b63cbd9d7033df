package dialogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/flow/component"
	"github.com/glennakiN/Buynoculars-sub000/services/alert"
	"github.com/glennakiN/Buynoculars-sub000/services/options"
)

const (
	caKindKey      = "ca_target_kind"
	caTargetIDKey  = "ca_target_id"
	caLabelKey     = "ca_target_label"
	caManualKey    = "ca_manual_pick"
	caPairTimeKey  = "ca_pair_time"
	caIndState     = "ca_indicators"
	caCoinStateKey = "ca_coin_state"
	caNoteKey      = "ca_note"

	caNoteSkip = "ca_note_skip"
	caCreate   = "ca_create"
)

// newCreateAlertScene builds the alert creation wizard: target branch
// (coin search vs watchlist pick), pairing and timeframe, capped indicator
// multi-select, optional note, confirmation.
func newCreateAlertScene(d *Deps) *flow.Scene {
	target := component.Picker{
		Key: "ca_target",
		Options: []component.Option{
			{Value: "coin", Label: "🪙 Single coin"},
			{Value: "watchlist", Label: "📋 Watchlist"},
		},
	}
	coinList := component.SearchList{Key: "ca_coin", PerPage: d.perPage()}
	pairTime := component.PairTimePicker{
		Key:        "ca_pt",
		Pairings:   d.Options.Options(options.CategoryPairings),
		Timeframes: d.Options.Options(options.CategoryTimeframes),
	}
	indicators := component.MultiPicker{
		Key:     "ca_ind",
		Options: component.Opts(d.Options.Options(options.CategoryIndicators)...),
		Limit:   d.Alerts.Limits().MaxIndicators,
	}
	note := component.TextInput{Field: caNoteKey, SkipTrigger: caNoteSkip}
	confirm := component.Confirmation{Trigger: caCreate, Label: "✔ Create alert"}

	renderTarget := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return target.Render("Alert on a single coin or a whole watchlist?"), nil
	}

	renderCoinQuery := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return flow.Render{Text: "Type the coin to alert on:"}, nil
	}
	onCoinQuery := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		items, top, err := d.searchCoins(ctx, ev.Text)
		if err != nil {
			return flow.Render{}, err
		}
		if len(items) == 0 {
			return flow.Render{Text: fmt.Sprintf("No matches for %q. Try another name.", ev.Text)}, nil
		}
		if top != nil {
			s.Set(caTargetIDKey, top.ID)
			s.Set(caLabelKey, coinLabel(top.Candidate))
			s.Set(caManualKey, false)
			return d.Engine.Goto(ctx, s, ev, "pair_time")
		}
		s.Set(caCoinStateKey, &component.SearchState{Query: ev.Text, Results: items, Page: 1})
		return d.Engine.Goto(ctx, s, ev, "coin_results")
	}
	renderCoinResults := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		st, fresh := coinList.State(s, caCoinStateKey)
		if fresh {
			staleState(ctx, DialogCreateAlert, "coin_results")
			return d.Engine.Goto(ctx, s, ev, "coin_query")
		}
		return coinList.Render(st, fmt.Sprintf("Results for %q:", st.Query)), nil
	}

	renderPickWatchlist := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		lists, err := d.Watchlists.List(ctx, ownerOf(s))
		if err != nil {
			return flow.Render{}, err
		}
		r := flow.Render{Text: "Which watchlist?"}
		for _, w := range lists {
			r = r.AddRow(flow.Btn(fmt.Sprintf("%s (%d)", w.Name, len(w.Items)), "ca_wl_"+w.ID))
		}
		return r.AddRow(flow.BackButton()), nil
	}

	renderPairTime := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		st, _ := pairTime.State(s, caPairTimeKey)
		return pairTime.Render(st, fmt.Sprintf("Pairing and timeframe for %s:", s.GetString(caLabelKey))), nil
	}

	renderIndicators := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		st, _ := indicators.State(s, caIndState, string(options.CategoryIndicators))
		title := fmt.Sprintf("Pick up to %d indicator(s):", indicators.Limit)
		return indicators.Render(st, title), nil
	}

	renderNote := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return note.Render("Add a note for this alert, or skip:"), nil
	}
	onNote := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		note.Store(s, ev.Text)
		return d.Engine.Goto(ctx, s, ev, "confirm")
	}

	renderConfirm := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		pt, _ := pairTime.State(s, caPairTimeKey)
		ind, _ := indicators.State(s, caIndState, string(options.CategoryIndicators))
		lines := []string{
			"New alert:",
			"• Target: " + s.GetString(caLabelKey),
			"• Pair: " + pt.Pairing + "  • Timeframe: " + pt.Timeframe,
			"• Indicators: " + strings.Join(ind.Values(), ", "),
		}
		if n := s.GetString(caNoteKey); n != "" {
			lines = append(lines, "• Note: "+n)
		}
		return confirm.Render(strings.Join(lines, "\n")), nil
	}

	sc := flow.MustScene(DialogCreateAlert,
		flow.Step{Name: "target", Render: renderTarget},
		flow.Step{Name: "coin_query", Render: renderCoinQuery, OnText: onCoinQuery},
		flow.Step{Name: "coin_results", Render: renderCoinResults},
		flow.Step{
			Name:   "pick_watchlist",
			Render: renderPickWatchlist,
			Back:   func(s *flow.Session) string { return "target" },
		},
		flow.Step{
			Name:   "pair_time",
			Render: renderPairTime,
			Back: func(s *flow.Session) string {
				if s.GetString(caKindKey) == string(alert.TargetWatchlist) {
					return "pick_watchlist"
				}
				if s.GetBool(caManualKey) {
					return "coin_results"
				}
				return "coin_query"
			},
		},
		flow.Step{Name: "indicators", Render: renderIndicators},
		flow.Step{Name: "note", Render: renderNote, OnText: onNote},
		flow.Step{Name: "confirm", Render: renderConfirm},
	)

	target.Bind(sc.Router, func(value string) flow.StepFunc {
		return func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
			s.Set(caKindKey, value)
			if value == string(alert.TargetWatchlist) {
				lists, err := d.Watchlists.List(ctx, ownerOf(s))
				if err != nil {
					return flow.Render{}, err
				}
				if len(lists) == 0 {
					return flow.Notice("You have no watchlists yet — pick a coin instead"), nil
				}
				return d.Engine.Goto(ctx, s, ev, "pick_watchlist")
			}
			return d.Engine.Goto(ctx, s, ev, "coin_query")
		}
	})

	sc.Router.HandlePrefix(coinList.Key+"_pick_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		id, _ := coinList.ParsePick(ev.Trigger)
		c, ok := d.Market.Get(ctx, id)
		if !ok {
			return flow.Render{}, fmt.Errorf("create_alert: unknown asset %q", id)
		}
		s.Set(caTargetIDKey, c.ID)
		s.Set(caLabelKey, coinLabel(c))
		s.Set(caManualKey, true)
		return d.Engine.Goto(ctx, s, ev, "pair_time")
	})
	sc.Router.HandlePrefix(coinList.Key+"_page_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		page, ok := coinList.ParsePage(ev.Trigger)
		if !ok {
			return flow.Render{}, nil
		}
		st, fresh := coinList.State(s, caCoinStateKey)
		if fresh {
			staleState(ctx, DialogCreateAlert, "coin_results")
			return d.Engine.Goto(ctx, s, ev, "coin_query")
		}
		st.Page = page
		return d.Engine.Goto(ctx, s, ev, "coin_results")
	})

	sc.Router.HandlePrefix("ca_wl_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		id := ev.Trigger[len("ca_wl_"):]
		w, err := d.Watchlists.Get(ctx, ownerOf(s), id)
		if err != nil {
			return flow.Render{}, err
		}
		s.Set(caTargetIDKey, w.ID)
		s.Set(caLabelKey, "📋 "+w.Name)
		return d.Engine.Goto(ctx, s, ev, "pair_time")
	})

	sc.Router.HandlePrefix(pairTime.Key+"_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		st, _ := pairTime.State(s, caPairTimeKey)
		tr := pairTime.OnEvent(st, ev.Trigger)
		switch {
		case tr.Proceed:
			return d.Engine.Goto(ctx, s, ev, "indicators")
		case tr.Warning != "":
			return flow.Notice(tr.Warning), nil
		case tr.Redraw:
			return d.Engine.Goto(ctx, s, ev, "pair_time")
		}
		return flow.Render{}, nil
	})

	sc.Router.HandlePrefix(indicators.Key+"_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		st, _ := indicators.State(s, caIndState, string(options.CategoryIndicators))
		tr := indicators.OnEvent(st, ev.Trigger)
		switch {
		case tr.Proceed:
			return d.Engine.Goto(ctx, s, ev, "note")
		case tr.Warning != "":
			return flow.Notice(tr.Warning), nil
		case tr.Redraw:
			return d.Engine.Goto(ctx, s, ev, "indicators")
		}
		return flow.Render{}, nil
	})

	note.BindSkip(sc.Router, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return d.Engine.Goto(ctx, s, ev, "confirm")
	})

	confirm.Bind(sc.Router, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		pt, _ := pairTime.State(s, caPairTimeKey)
		ind, _ := indicators.State(s, caIndState, string(options.CategoryIndicators))
		draft := alert.Draft{
			Owner:       alertOwnerOf(s),
			TargetKind:  alert.TargetKind(s.GetString(caKindKey)),
			TargetID:    s.GetString(caTargetIDKey),
			TargetLabel: s.GetString(caLabelKey),
			Pairing:     pt.Pairing,
			Timeframe:   pt.Timeframe,
			Indicators:  ind.Values(),
			Note:        s.GetString(caNoteKey),
		}
		_, err := d.Alerts.Create(ctx, draft)
		if errors.Is(err, alert.ErrLimitReached) {
			return flow.Notice("Alert limit reached — delete one first"), nil
		}
		if err != nil {
			return flow.Render{}, err
		}
		r, err := d.Engine.Leave(ctx, s, ev)
		if err != nil {
			return flow.Render{}, err
		}
		r.Text = "✅ Alert created.\n\n" + r.Text
		return r, nil
	})
	return sc
}
