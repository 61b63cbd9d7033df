package dialogs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/services/alert"
	"github.com/glennakiN/Buynoculars-sub000/services/market"
	"github.com/glennakiN/Buynoculars-sub000/services/options"
	"github.com/glennakiN/Buynoculars-sub000/services/watchlist"
)

const testChat = int64(100)

type env struct {
	deps    *Deps
	engine  *flow.Engine
	session *flow.Session
}

func newEnv(t *testing.T) *env {
	t.Helper()
	d := &Deps{
		Market:     market.NewCatalogService(),
		Watchlists: watchlist.NewMemory(),
		Alerts:     alert.NewMemory(alert.DefaultLimits),
		Options:    options.NewStaticService(),
	}
	e, err := NewEngine(d)
	require.NoError(t, err)
	return &env{
		deps:    d,
		engine:  e,
		session: &flow.Session{ChatID: testChat, UserID: 1},
	}
}

func (e *env) enter(t *testing.T, dialogID string) flow.Render {
	t.Helper()
	r, err := e.engine.Enter(context.Background(), e.session, dialogID, nil)
	require.NoError(t, err)
	return r
}

func (e *env) press(t *testing.T, trigger string) flow.Render {
	t.Helper()
	r, err := e.engine.HandleEvent(context.Background(), e.session, flow.CallbackEvent(testChat, 1, trigger))
	require.NoError(t, err)
	return r
}

func (e *env) send(t *testing.T, text string) flow.Render {
	t.Helper()
	r, err := e.engine.HandleEvent(context.Background(), e.session, flow.TextEvent(testChat, 1, text))
	require.NoError(t, err)
	return r
}

func (e *env) step(t *testing.T) string {
	t.Helper()
	d := e.session.Dialog()
	require.NotNil(t, d)
	sc, ok := e.engine.Scene(d.DialogID)
	require.True(t, ok)
	return sc.Step(d.Cursor).Name
}

func findTrigger(r flow.Render, prefix string) (string, bool) {
	for _, row := range r.Keyboard {
		for _, b := range row {
			if strings.HasPrefix(b.Trigger, prefix) {
				return b.Trigger, true
			}
		}
	}
	return "", false
}

func hasTrigger(r flow.Render, trigger string) bool {
	got, ok := findTrigger(r, trigger)
	return ok && got == trigger
}

func TestMenuRoutesToDialogs(t *testing.T) {
	e := newEnv(t)

	r := e.enter(t, DialogMenu)
	assert.True(t, hasTrigger(r, menuWatchlists))

	e.press(t, menuWatchlists)
	assert.Equal(t, DialogWatchlists, e.session.Dialog().DialogID)
}

func TestCreateAlertEndToEnd(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	r := e.enter(t, DialogCreateAlert)
	assert.True(t, hasTrigger(r, "ca_target_coin"))

	r = e.press(t, "ca_target_coin")
	assert.Contains(t, r.Text, "Type the coin")

	// "bitcoin" is an exact id match: auto-select skips manual pick.
	r = e.send(t, "bitcoin")
	assert.Equal(t, "pair_time", e.step(t))
	assert.Contains(t, r.Text, "Bitcoin (BTC)")

	// Confirming before both axes are set is a toast, no redraw.
	r = e.press(t, "ca_pt_CHOOSE")
	assert.NotEmpty(t, r.Notice)
	assert.True(t, r.IsZero())
	assert.Equal(t, "pair_time", e.step(t))

	e.press(t, "ca_pt_pair_USDT")
	e.press(t, "ca_pt_time_1h")
	e.press(t, "ca_pt_CHOOSE")
	assert.Equal(t, "indicators", e.step(t))

	// Empty confirm rejected, then a real selection proceeds.
	r = e.press(t, "ca_ind_CHOOSE")
	assert.NotEmpty(t, r.Notice)
	e.press(t, "ca_ind_option_RSI")
	e.press(t, "ca_ind_CHOOSE")
	assert.Equal(t, "note", e.step(t))

	r = e.send(t, "watch this one")
	assert.Equal(t, "confirm", e.step(t))
	assert.Contains(t, r.Text, "Bitcoin (BTC)")
	assert.Contains(t, r.Text, "RSI")
	assert.Contains(t, r.Text, "watch this one")

	r = e.press(t, caCreate)
	assert.Contains(t, r.Text, "Alert created")
	assert.Equal(t, DialogMenu, e.session.Dialog().DialogID, "lands back on the menu")

	alerts, err := e.deps.Alerts.List(ctx, alert.Owner{ID: testChat})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "bitcoin", alerts[0].TargetID)
	assert.Equal(t, []string{"RSI"}, alerts[0].Indicators)
	assert.True(t, alerts[0].Enabled)
}

func TestCreateAlertNoteSkipStoresEmpty(t *testing.T) {
	e := newEnv(t)

	e.enter(t, DialogCreateAlert)
	e.press(t, "ca_target_coin")
	e.send(t, "bitcoin")
	e.press(t, "ca_pt_pair_USDT")
	e.press(t, "ca_pt_time_4h")
	e.press(t, "ca_pt_CHOOSE")
	e.press(t, "ca_ind_option_MACD")
	e.press(t, "ca_ind_CHOOSE")

	e.press(t, caNoteSkip)
	assert.Equal(t, "confirm", e.step(t))
	note, ok := e.session.Get(caNoteKey)
	require.True(t, ok)
	assert.Equal(t, "", note)
}

func TestCreateAlertBackFollowsBranch(t *testing.T) {
	e := newEnv(t)

	e.enter(t, DialogCreateAlert)
	e.press(t, "ca_target_coin")
	e.send(t, "bitcoin")
	require.Equal(t, "pair_time", e.step(t))

	// Auto-selected target: back skips the never-shown manual pick.
	e.press(t, flow.TriggerBack)
	assert.Equal(t, "coin_query", e.step(t))
}

func TestCreateAlertWatchlistBranch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Picking the watchlist branch with no watchlists is a toast.
	e.enter(t, DialogCreateAlert)
	r := e.press(t, "ca_target_watchlist")
	assert.NotEmpty(t, r.Notice)
	assert.Equal(t, "target", e.step(t))

	w, err := e.deps.Watchlists.Create(ctx, watchlist.Owner{ID: testChat}, "Majors")
	require.NoError(t, err)

	r = e.press(t, "ca_target_watchlist")
	assert.Equal(t, "pick_watchlist", e.step(t))
	assert.True(t, hasTrigger(r, "ca_wl_"+w.ID))

	e.press(t, "ca_wl_"+w.ID)
	assert.Equal(t, "pair_time", e.step(t))

	// Watchlist branch: back returns to the watchlist pick.
	e.press(t, flow.TriggerBack)
	assert.Equal(t, "pick_watchlist", e.step(t))
}

func TestCreateAlertIndicatorCap(t *testing.T) {
	e := newEnv(t)

	e.enter(t, DialogCreateAlert)
	e.press(t, "ca_target_coin")
	e.send(t, "bitcoin")
	e.press(t, "ca_pt_pair_USDT")
	e.press(t, "ca_pt_time_1h")
	e.press(t, "ca_pt_CHOOSE")

	e.press(t, "ca_ind_option_RSI")
	e.press(t, "ca_ind_option_MACD")
	r := e.press(t, "ca_ind_option_Stochastic")
	assert.Empty(t, r.Notice)
	assert.False(t, r.IsZero(), "toggle under the cap redraws")

	// Fourth distinct pick hits the cap: warning, no redraw.
	r = e.press(t, "ca_ind_option_Bollinger")
	assert.NotEmpty(t, r.Notice)
	assert.True(t, r.IsZero())
}

func TestWatchlistDialogRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	r := e.enter(t, DialogWatchlists)
	assert.Contains(t, r.Text, "No watchlists yet")

	e.press(t, wlNew)
	r = e.send(t, "Top DeFi")
	assert.Equal(t, "list", e.step(t))
	assert.Contains(t, r.Keyboard[0][0].Label, "Top DeFi")

	open, ok := findTrigger(r, "wl_open_")
	require.True(t, ok)
	e.press(t, open)
	require.Equal(t, "view", e.step(t))

	e.press(t, wlAdd)
	r = e.send(t, "ethereum")
	assert.Equal(t, "view", e.step(t))
	assert.Contains(t, r.Keyboard[0][0].Label, "Ethereum (ETH)")

	lists, err := e.deps.Watchlists.List(ctx, watchlist.Owner{ID: testChat})
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Top DeFi", lists[0].Name)
	assert.Equal(t, []string{"ethereum"}, lists[0].Items)
}

func TestWatchlistDuplicateItemStaysRecoverable(t *testing.T) {
	e := newEnv(t)

	e.enter(t, DialogWatchlists)
	e.press(t, wlNew)
	e.send(t, "L1s")
	open, ok := findTrigger(e.enter(t, DialogWatchlists), "wl_open_")
	require.True(t, ok)
	e.press(t, open)
	e.press(t, wlAdd)
	e.send(t, "solana")

	e.press(t, wlAdd)
	r := e.send(t, "solana")
	assert.Contains(t, r.Text, "already on the list")
	assert.Equal(t, "add_query", e.step(t), "user can type another coin")
}

func TestWatchlistRemoveRenameDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := watchlist.Owner{ID: testChat}

	w, err := e.deps.Watchlists.Create(ctx, owner, "Edit me")
	require.NoError(t, err)
	require.NoError(t, e.deps.Watchlists.AddItem(ctx, owner, w.ID, "solana"))

	e.enter(t, DialogWatchlists)
	e.press(t, "wl_open_"+w.ID)

	r := e.press(t, wlRemove)
	assert.True(t, hasTrigger(r, "wl_rm_solana"))
	e.press(t, "wl_rm_solana")
	require.Equal(t, "view", e.step(t))

	e.press(t, wlRename)
	e.send(t, "Renamed")
	got, err := e.deps.Watchlists.Get(ctx, owner, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Empty(t, got.Items)

	e.press(t, wlDelete)
	require.Equal(t, "confirm_delete", e.step(t))
	e.press(t, wlDeleteConfirm)
	require.Equal(t, "list", e.step(t))

	lists, err := e.deps.Watchlists.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestSearchDialogAutoSelect(t *testing.T) {
	e := newEnv(t)

	e.enter(t, DialogSearch)
	r := e.send(t, "btc")
	assert.Equal(t, "card", e.step(t))
	assert.Contains(t, r.Text, "Bitcoin (BTC)")
	assert.Contains(t, r.Text, "#1")

	url, ok := findURL(r)
	require.True(t, ok)
	assert.Contains(t, url, "bitcoin")

	// Auto-selected: back returns to the query prompt.
	e.press(t, flow.TriggerBack)
	assert.Equal(t, "query", e.step(t))
}

func TestSearchDialogManualPick(t *testing.T) {
	e := newEnv(t)

	e.enter(t, DialogSearch)
	r := e.send(t, "do")
	require.Equal(t, "results", e.step(t), "ambiguous query needs a manual pick")

	pick, ok := findTrigger(r, "search_pick_")
	require.True(t, ok)
	e.press(t, pick)
	require.Equal(t, "card", e.step(t))

	e.press(t, flow.TriggerBack)
	assert.Equal(t, "results", e.step(t), "manual pick: back returns to the list")
}

func TestSearchDialogNoMatches(t *testing.T) {
	e := newEnv(t)

	e.enter(t, DialogSearch)
	r := e.send(t, "zzzzzzzz")
	assert.Contains(t, r.Text, "No matches")
	assert.Equal(t, "query", e.step(t))
}

func TestSearchStalePageButtonReprompts(t *testing.T) {
	e := newEnv(t)

	// A page press with no seeded results (the dialog was re-entered and
	// the button belongs to the old message) must re-prompt, not draw an
	// empty list.
	e.enter(t, DialogSearch)
	r := e.press(t, "search_page_2")
	assert.Contains(t, r.Text, "Type a coin")
	assert.Equal(t, "query", e.step(t))
}

func TestAlertsDialogToggleAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.deps.Alerts.Create(ctx, alert.Draft{
		Owner:       alert.Owner{ID: testChat},
		TargetKind:  alert.TargetCoin,
		TargetID:    "bitcoin",
		TargetLabel: "Bitcoin (BTC)",
		Pairing:     "USDT",
		Timeframe:   "1h",
		Indicators:  []string{"RSI"},
	})
	require.NoError(t, err)

	r := e.enter(t, DialogAlerts)
	assert.True(t, hasTrigger(r, "al_tg_"+created.ID))

	e.press(t, "al_tg_"+created.ID)
	alerts, err := e.deps.Alerts.List(ctx, alert.Owner{ID: testChat})
	require.NoError(t, err)
	assert.False(t, alerts[0].Enabled)

	e.press(t, "al_del_"+created.ID)
	require.Equal(t, "confirm_delete", e.step(t))
	e.press(t, alDeleteConfirm)

	alerts, err = e.deps.Alerts.List(ctx, alert.Owner{ID: testChat})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func findURL(r flow.Render) (string, bool) {
	for _, row := range r.Keyboard {
		for _, b := range row {
			if b.URL != "" {
				return b.URL, true
			}
		}
	}
	return "", false
}
