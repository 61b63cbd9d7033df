package router

import (
	"time"

	tg "github.com/glennakiN/Buynoculars-sub000/core/telegram"
	"github.com/glennakiN/Buynoculars-sub000/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// TextOptions controls text dispatch.
type TextOptions struct {
	Flow        Flow
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for plain text updates. Commands are
// resolved before the active dialog so the user can always bail out of a
// flow with /start; everything else goes to the dialog's current step,
// then the registry fallback.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if opts.Flow != nil && c.Chat() != nil && opts.Flow.Active(c.Chat().ID) {
			return handleWithSummary(c, "flow.text", start, "", "", func() error {
				return opts.Flow.HandleText(c)
			})
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
