package dialogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/flow/component"
	"github.com/glennakiN/Buynoculars-sub000/services/watchlist"
)

const (
	wlIDKey        = "wl_id"
	wlListPageKey  = "wl_list_page"
	wlItemsPageKey = "wl_items_page"
	wlAddStateKey  = "wl_add_state"

	wlNew           = "wl_new"
	wlAdd           = "wl_add"
	wlRemove        = "wl_remove"
	wlRename        = "wl_rename"
	wlDelete        = "wl_delete"
	wlDeleteConfirm = "wl_delete_confirm"
)

// newWatchlistsScene builds the watchlist manager: paginated list, item
// view, add-coin search sub-flow, remove picker, rename and delete.
func newWatchlistsScene(d *Deps) *flow.Scene {
	addList := component.SearchList{Key: "wladd", PerPage: d.perPage()}

	renderList := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		lists, err := d.Watchlists.List(ctx, ownerOf(s))
		if err != nil {
			return flow.Render{}, err
		}
		if len(lists) == 0 {
			r := flow.Render{Text: "No watchlists yet."}
			r = r.AddRow(flow.Btn("➕ New watchlist", wlNew))
			return r.AddRow(flow.BackButton()), nil
		}

		page := s.GetInt(wlListPageKey)
		if page < 1 {
			page = 1
		}
		window, ps := flow.Paginate(lists, page, d.perPage())
		s.Set(wlListPageKey, ps.CurrentPage)

		r := flow.Render{Text: "Your watchlists:"}
		for _, w := range window {
			label := fmt.Sprintf("%s (%d)", w.Name, len(w.Items))
			r = r.AddRow(flow.Btn(label, "wl_open_"+w.ID))
		}
		if ps.TotalPages() > 1 {
			r.Keyboard = append(r.Keyboard, flow.BuildPageControls(ps.CurrentPage, ps.TotalPages(), 0, func(p int) string {
				return fmt.Sprintf("wl_page_%d", p)
			})...)
		}
		r = r.AddRow(flow.Btn("➕ New watchlist", wlNew))
		return r.AddRow(flow.BackButton()), nil
	}

	nameInput := component.TextInput{Field: "wl_new_name"}
	renderCreateName := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return nameInput.Render("Name the new watchlist:"), nil
	}
	onCreateName := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		_, err := d.Watchlists.Create(ctx, ownerOf(s), ev.Text)
		switch {
		case errors.Is(err, watchlist.ErrDuplicateName):
			return flow.Render{Text: "You already have a watchlist with that name. Pick another:"}, nil
		case errors.Is(err, watchlist.ErrEmptyName):
			return flow.Render{Text: "A name can't be empty. Try again:"}, nil
		case err != nil:
			return flow.Render{}, err
		}
		return d.Engine.Goto(ctx, s, ev, "list")
	}

	current := func(ctx context.Context, s *flow.Session) (watchlist.Watchlist, error) {
		return d.Watchlists.Get(ctx, ownerOf(s), s.GetString(wlIDKey))
	}

	renderView := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		w, err := current(ctx, s)
		if err != nil {
			return flow.Render{}, err
		}

		r := flow.Render{Text: fmt.Sprintf("📋 %s", w.Name)}
		if len(w.Items) == 0 {
			r.Text += "\nThe list is empty."
		} else {
			page := s.GetInt(wlItemsPageKey)
			if page < 1 {
				page = 1
			}
			window, ps := flow.Paginate(w.Items, page, d.perPage())
			s.Set(wlItemsPageKey, ps.CurrentPage)
			for _, assetID := range window {
				label := assetID
				if c, ok := d.Market.Get(ctx, assetID); ok {
					label = coinLabel(c)
				}
				r = r.AddRow(flow.Btn(label, flow.TriggerNoop))
			}
			if ps.TotalPages() > 1 {
				r.Keyboard = append(r.Keyboard, flow.BuildPageControls(ps.CurrentPage, ps.TotalPages(), 0, func(p int) string {
					return fmt.Sprintf("wl_items_page_%d", p)
				})...)
			}
		}

		r = r.AddRow(flow.Btn("➕ Add coin", wlAdd), flow.Btn("➖ Remove", wlRemove))
		r = r.AddRow(flow.Btn("✏️ Rename", wlRename), flow.Btn("🗑 Delete", wlDelete))
		return r.AddRow(flow.BackButton()), nil
	}

	renderAddQuery := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return flow.Render{Text: "Type the coin to add:"}, nil
	}
	addItem := func(ctx context.Context, s *flow.Session, ev flow.Event, assetID string) (flow.Render, error) {
		err := d.Watchlists.AddItem(ctx, ownerOf(s), s.GetString(wlIDKey), assetID)
		switch {
		case errors.Is(err, watchlist.ErrDuplicateItem):
			if ev.Kind == flow.EventCallback {
				return flow.Notice("Already on the list"), nil
			}
			return flow.Render{Text: "That coin is already on the list. Type another:"}, nil
		case err != nil:
			return flow.Render{}, err
		}
		return d.Engine.Goto(ctx, s, ev, "view")
	}
	onAddQuery := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		items, top, err := d.searchCoins(ctx, ev.Text)
		if err != nil {
			return flow.Render{}, err
		}
		if len(items) == 0 {
			return flow.Render{Text: fmt.Sprintf("No matches for %q. Try another name.", ev.Text)}, nil
		}
		if top != nil {
			return addItem(ctx, s, ev, top.ID)
		}
		s.Set(wlAddStateKey, &component.SearchState{Query: ev.Text, Results: items, Page: 1})
		return d.Engine.Goto(ctx, s, ev, "add_results")
	}
	renderAddResults := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		st, fresh := addList.State(s, wlAddStateKey)
		if fresh {
			staleState(ctx, DialogWatchlists, "add_results")
			return d.Engine.Goto(ctx, s, ev, "add_query")
		}
		return addList.Render(st, "Select the coin to add:"), nil
	}

	renderRemove := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		w, err := current(ctx, s)
		if err != nil {
			return flow.Render{}, err
		}
		if len(w.Items) == 0 {
			return d.Engine.Goto(ctx, s, ev, "view")
		}
		r := flow.Render{Text: "Remove which coin?"}
		for _, assetID := range w.Items {
			label := assetID
			if c, ok := d.Market.Get(ctx, assetID); ok {
				label = coinLabel(c)
			}
			r = r.AddRow(flow.Btn("➖ "+label, "wl_rm_"+assetID))
		}
		return r.AddRow(flow.BackButton()), nil
	}

	renameInput := component.TextInput{Field: "wl_rename_to"}
	renderRename := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		return renameInput.Render("New name for the watchlist:"), nil
	}
	onRename := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		err := d.Watchlists.Rename(ctx, ownerOf(s), s.GetString(wlIDKey), ev.Text)
		switch {
		case errors.Is(err, watchlist.ErrDuplicateName):
			return flow.Render{Text: "That name is taken. Pick another:"}, nil
		case errors.Is(err, watchlist.ErrEmptyName):
			return flow.Render{Text: "A name can't be empty. Try again:"}, nil
		case err != nil:
			return flow.Render{}, err
		}
		return d.Engine.Goto(ctx, s, ev, "view")
	}

	confirmDelete := component.Confirmation{Trigger: wlDeleteConfirm, Label: "🗑 Delete"}
	renderConfirmDelete := func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		w, err := current(ctx, s)
		if err != nil {
			return flow.Render{}, err
		}
		text := fmt.Sprintf("Delete %q with %d coin(s)? This can't be undone.", w.Name, len(w.Items))
		return confirmDelete.Render(text), nil
	}

	backToView := func(s *flow.Session) string { return "view" }

	sc := flow.MustScene(DialogWatchlists,
		flow.Step{Name: "list", Render: renderList},
		flow.Step{Name: "create_name", Render: renderCreateName, OnText: onCreateName},
		flow.Step{
			Name:   "view",
			Render: renderView,
			Back: func(s *flow.Session) string {
				return "list"
			},
		},
		flow.Step{Name: "add_query", Render: renderAddQuery, OnText: onAddQuery, Back: backToView},
		flow.Step{Name: "add_results", Render: renderAddResults},
		flow.Step{Name: "remove", Render: renderRemove, Back: backToView},
		flow.Step{Name: "rename", Render: renderRename, OnText: onRename, Back: backToView},
		flow.Step{Name: "confirm_delete", Render: renderConfirmDelete, Back: backToView},
	)

	gotoStep := func(name string) flow.Handler {
		return func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
			return d.Engine.Goto(ctx, s, ev, name)
		}
	}
	sc.Router.Handle(wlNew, gotoStep("create_name"))
	sc.Router.Handle(wlAdd, gotoStep("add_query"))
	sc.Router.Handle(wlRemove, gotoStep("remove"))
	sc.Router.Handle(wlRename, gotoStep("rename"))
	sc.Router.Handle(wlDelete, gotoStep("confirm_delete"))

	confirmDelete.Bind(sc.Router, func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		err := d.Watchlists.Delete(ctx, ownerOf(s), s.GetString(wlIDKey))
		if err != nil && !errors.Is(err, watchlist.ErrNotFound) {
			return flow.Render{}, err
		}
		return d.Engine.Goto(ctx, s, ev, "list")
	})

	sc.Router.HandlePrefix("wl_open_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		s.Set(wlIDKey, ev.Trigger[len("wl_open_"):])
		s.Set(wlItemsPageKey, 1)
		return d.Engine.Goto(ctx, s, ev, "view")
	})
	sc.Router.HandlePrefix("wl_items_page_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		var page int
		if _, err := fmt.Sscanf(ev.Trigger, "wl_items_page_%d", &page); err != nil {
			return flow.Render{}, nil
		}
		s.Set(wlItemsPageKey, page)
		return d.Engine.Goto(ctx, s, ev, "view")
	})
	sc.Router.HandlePrefix("wl_page_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		var page int
		if _, err := fmt.Sscanf(ev.Trigger, "wl_page_%d", &page); err != nil {
			return flow.Render{}, nil
		}
		s.Set(wlListPageKey, page)
		return d.Engine.Goto(ctx, s, ev, "list")
	})
	sc.Router.HandlePrefix("wl_rm_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		assetID := ev.Trigger[len("wl_rm_"):]
		err := d.Watchlists.RemoveItem(ctx, ownerOf(s), s.GetString(wlIDKey), assetID)
		if err != nil && !errors.Is(err, watchlist.ErrNotFound) {
			return flow.Render{}, err
		}
		return d.Engine.Goto(ctx, s, ev, "view")
	})
	sc.Router.HandlePrefix(addList.Key+"_pick_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		id, _ := addList.ParsePick(ev.Trigger)
		return addItem(ctx, s, ev, id)
	})
	sc.Router.HandlePrefix(addList.Key+"_page_", func(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Render, error) {
		page, ok := addList.ParsePage(ev.Trigger)
		if !ok {
			return flow.Render{}, nil
		}
		st, fresh := addList.State(s, wlAddStateKey)
		if fresh {
			staleState(ctx, DialogWatchlists, "add_results")
			return d.Engine.Goto(ctx, s, ev, "add_query")
		}
		st.Page = page
		return d.Engine.Goto(ctx, s, ev, "add_results")
	})
	return sc
}
