package dialogs

import (
	"context"

	"github.com/glennakiN/Buynoculars-sub000/flow"
)

const (
	menuSearch     = "menu_search"
	menuWatchlists = "menu_watchlists"
	menuAlerts     = "menu_alerts"
	menuNewAlert   = "menu_new_alert"
)

// newMenuScene builds the top-level menu. It is also what every other
// dialog lands on when it finishes or is abandoned.
func newMenuScene(d *Deps) *flow.Scene {
	render := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return flow.Render{
			Text: "What would you like to do?",
			Keyboard: [][]flow.Button{
				{flow.Btn("🔍 Search", menuSearch)},
				{flow.Btn("📋 Watchlists", menuWatchlists), flow.Btn("🔔 Alerts", menuAlerts)},
				{flow.Btn("➕ New alert", menuNewAlert)},
			},
		}, nil
	}

	sc := flow.MustScene(DialogMenu, flow.Step{Name: "root", Render: render})

	switchTo := func(dialogID string) flow.Handler {
		return func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
			return d.Engine.Switch(ctx, s, dialogID, nil)
		}
	}
	sc.Router.Handle(menuSearch, switchTo(DialogSearch))
	sc.Router.Handle(menuWatchlists, switchTo(DialogWatchlists))
	sc.Router.Handle(menuAlerts, switchTo(DialogAlerts))
	sc.Router.Handle(menuNewAlert, switchTo(DialogCreateAlert))
	return sc
}
