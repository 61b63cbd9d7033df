// Package dialogs defines the concrete conversation flows and the registry
// binding string dialog ids to scene definitions.
package dialogs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glennakiN/Buynoculars-sub000/core/logger"
	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/flow/component"
	"github.com/glennakiN/Buynoculars-sub000/services/alert"
	"github.com/glennakiN/Buynoculars-sub000/services/market"
	"github.com/glennakiN/Buynoculars-sub000/services/options"
	"github.com/glennakiN/Buynoculars-sub000/services/watchlist"
)

// Dialog ids exposed to the transport layer.
const (
	DialogMenu        = "menu"
	DialogSearch      = "search"
	DialogWatchlists  = "watchlists"
	DialogAlerts      = "alerts"
	DialogCreateAlert = "create_alert"
)

const (
	defaultSearchThreshold = 2.5
	defaultSearchPerPage   = 5
)

// Deps carries the service boundaries every dialog builds on. Dialogs
// depend only on interfaces; wiring picks the implementations.
type Deps struct {
	Engine     *flow.Engine
	Market     market.Service
	Watchlists watchlist.Service
	Alerts     alert.Service
	Options    options.Service

	// SearchThreshold auto-selects the top search hit when its score
	// reaches it. Zero means the default.
	SearchThreshold float64
	// SearchPerPage sizes the manual selection pages. Zero means the
	// default.
	SearchPerPage int
}

func (d *Deps) threshold() float64 {
	if d.SearchThreshold > 0 {
		return d.SearchThreshold
	}
	return defaultSearchThreshold
}

func (d *Deps) perPage() int {
	if d.SearchPerPage > 0 {
		return d.SearchPerPage
	}
	return defaultSearchPerPage
}

// NewEngine builds the flow engine with every dialog registered and the
// menu as the screen rendered after leaving any dialog.
func NewEngine(d *Deps) (*flow.Engine, error) {
	var e *flow.Engine
	e = flow.NewEngine(flow.EngineOptions{
		OnExit: func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
			return e.Switch(ctx, s, DialogMenu, nil)
		},
	})
	d.Engine = e

	scenes := []*flow.Scene{
		newMenuScene(d),
		newSearchScene(d),
		newWatchlistsScene(d),
		newAlertsScene(d),
		newCreateAlertScene(d),
	}
	for _, sc := range scenes {
		if err := e.Register(sc); err != nil {
			return nil, fmt.Errorf("dialogs: %w", err)
		}
	}
	return e, nil
}

// ownerOf derives the storage owner from the session. Telegram assigns
// negative ids to group chats.
func ownerOf(s *flow.Session) watchlist.Owner {
	return watchlist.Owner{ID: s.ChatID, IsGroup: s.ChatID < 0}
}

func alertOwnerOf(s *flow.Session) alert.Owner {
	return alert.Owner{ID: s.ChatID, IsGroup: s.ChatID < 0}
}

func coinLabel(c market.Candidate) string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
}

// staleState records a results screen reached without its backing search
// state (a stale button after the dialog was re-entered); the caller then
// re-prompts.
func staleState(ctx context.Context, dialog, step string) {
	logger.Warn(ctx, "flow", "state.missing",
		slog.String("status", "skip"),
		slog.String("dialog", dialog),
		slog.String("step", step),
	)
}

// searchCoins runs the catalog search and ranking for one query. The
// returned Scored is non-nil when the top hit clears the confidence
// threshold and manual selection can be skipped.
func (d *Deps) searchCoins(ctx context.Context, query string) ([]component.SearchItem, *market.Scored, error) {
	candidates, err := d.Market.Search(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("coin search: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil, nil
	}
	ranked := market.Rank(query, candidates)
	items := make([]component.SearchItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, component.SearchItem{
			ID:    r.ID,
			Label: coinLabel(r.Candidate),
			Score: r.Score,
		})
	}
	if top, ok := market.AutoSelect(ranked, d.threshold()); ok {
		return items, &top, nil
	}
	return items, nil, nil
}
