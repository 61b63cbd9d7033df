package dialogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/flow/component"
	"github.com/glennakiN/Buynoculars-sub000/services/alert"
)

const (
	alIDKey = "al_id"

	alNew           = "al_new"
	alDeleteConfirm = "al_delete_confirm"
)

func alertLine(a alert.Alert) string {
	bell := "🔔"
	if !a.Enabled {
		bell = "🔕"
	}
	return fmt.Sprintf("%s %s %s/%s %s", bell, a.TargetLabel, strings.Join(a.Indicators, "+"), a.Pairing, a.Timeframe)
}

// newAlertsScene builds the alert manager: the configured alerts with
// per-alert enable toggles and deletion, plus the entry into creation.
func newAlertsScene(d *Deps) *flow.Scene {
	renderList := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		alerts, err := d.Alerts.List(ctx, alertOwnerOf(s))
		if err != nil {
			return flow.Render{}, err
		}

		r := flow.Render{Text: "Your alerts:"}
		if len(alerts) == 0 {
			r.Text = "No alerts yet."
		}
		for _, a := range alerts {
			r = r.AddRow(
				flow.Btn(alertLine(a), "al_tg_"+a.ID),
				flow.Btn("🗑", "al_del_"+a.ID),
			)
		}
		r = r.AddRow(flow.Btn("➕ New alert", alNew))
		return r.AddRow(flow.BackButton()), nil
	}

	confirmDelete := component.Confirmation{Trigger: alDeleteConfirm, Label: "🗑 Delete"}
	renderConfirmDelete := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return confirmDelete.Render("Delete this alert?"), nil
	}

	sc := flow.MustScene(DialogAlerts,
		flow.Step{Name: "list", Render: renderList},
		flow.Step{Name: "confirm_delete", Render: renderConfirmDelete},
	)

	sc.Router.Handle(alNew, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return d.Engine.Switch(ctx, s, DialogCreateAlert, nil)
	})
	sc.Router.HandlePrefix("al_tg_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		id := ev.Trigger[len("al_tg_"):]
		if _, err := d.Alerts.Toggle(ctx, alertOwnerOf(s), id); err != nil {
			if errors.Is(err, alert.ErrNotFound) {
				return flow.Notice("That alert is gone"), nil
			}
			return flow.Render{}, err
		}
		return d.Engine.Goto(ctx, s, ev, "list")
	})
	sc.Router.HandlePrefix("al_del_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		s.Set(alIDKey, ev.Trigger[len("al_del_"):])
		return d.Engine.Goto(ctx, s, ev, "confirm_delete")
	})
	confirmDelete.Bind(sc.Router, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		err := d.Alerts.Delete(ctx, alertOwnerOf(s), s.GetString(alIDKey))
		if err != nil && !errors.Is(err, alert.ErrNotFound) {
			return flow.Render{}, err
		}
		return d.Engine.Goto(ctx, s, ev, "list")
	})
	return sc
}
