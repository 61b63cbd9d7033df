package bot

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glennakiN/Buynoculars-sub000/core/telegram/router"
	"github.com/glennakiN/Buynoculars-sub000/dialogs"
	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/services/alert"
	"github.com/glennakiN/Buynoculars-sub000/services/market"
	"github.com/glennakiN/Buynoculars-sub000/services/options"
	"github.com/glennakiN/Buynoculars-sub000/services/watchlist"
)

func newTestAdapter(t *testing.T) *flowAdapter {
	t.Helper()
	deps := &dialogs.Deps{
		Market:     market.NewCatalogService(),
		Watchlists: watchlist.NewMemory(),
		Alerts:     alert.NewMemory(alert.DefaultLimits),
		Options:    options.NewStaticService(),
	}
	engine, err := dialogs.NewEngine(deps)
	require.NoError(t, err)
	return &flowAdapter{engine: engine, sessions: flow.NewStore()}
}

// Telebot handles updates in parallel goroutines, so the dialog-active
// check must synchronize with event processing for the same chat.
// Run with -race.
func TestActiveSerializesWithEngineEvents(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	s := a.sessions.Get(1, 1)
	_, err := a.engine.Enter(ctx, s, dialogs.DialogMenu, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_, _ = a.engine.HandleEvent(ctx, s, flow.CallbackEvent(1, 1, "menu_search"))
			_, _ = a.engine.HandleEvent(ctx, s, flow.CallbackEvent(1, 1, flow.TriggerBack))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			a.Active(1)
		}
	}()
	wg.Wait()

	// Back at the search entry step leaves into the menu, so a dialog is
	// still active after the churn.
	require.True(t, a.Active(1))
	require.False(t, a.Active(2))
}

func TestMarkupForEncodesTriggersUnderFlowKey(t *testing.T) {
	r := flow.Render{Text: "pick"}.
		AddRow(flow.Btn("Bitcoin", "search_pick_bitcoin"), flow.Btn("»", "search_page_2")).
		AddRow(flow.BackButton())

	m := markupFor(r)
	require.NotNil(t, m)
	require.Len(t, m.InlineKeyboard, 2)
	require.Len(t, m.InlineKeyboard[0], 2)

	first := m.InlineKeyboard[0][0]
	require.Equal(t, "Bitcoin", first.Text)
	require.Equal(t, router.FlowCallbackKey, first.Unique)
	require.Equal(t, "search_pick_bitcoin", first.Data)

	back := m.InlineKeyboard[1][0]
	require.Equal(t, flow.TriggerBack, back.Data)
}

func TestMarkupForURLButton(t *testing.T) {
	r := flow.Render{Text: "card"}.
		AddRow(flow.URLBtn("📈 Chart", "https://www.coingecko.com/en/coins/bitcoin"))

	m := markupFor(r)
	require.NotNil(t, m)
	btn := m.InlineKeyboard[0][0]
	require.Equal(t, "https://www.coingecko.com/en/coins/bitcoin", btn.URL)
	require.Empty(t, btn.Data)
}

func TestMarkupForEmptyKeyboard(t *testing.T) {
	require.Nil(t, markupFor(flow.Render{Text: "plain"}))
}
