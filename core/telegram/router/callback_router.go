package router

import (
	"time"

	tg "github.com/glennakiN/Buynoculars-sub000/core/telegram"
	"github.com/glennakiN/Buynoculars-sub000/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// FlowCallbackKey is the callback unique under which every dialog button is
// registered; the payload carries the dialog trigger.
const FlowCallbackKey = "flow"

// Flow is the dialog engine boundary the routers dispatch into before
// consulting the registry.
type Flow interface {
	// Active reports whether the chat currently has a dialog running.
	Active(chatID int64) bool
	// HandleCallback feeds one dialog trigger. The implementation answers
	// the callback query itself, with a toast when the action was rejected.
	HandleCallback(c tele.Context, trigger string) error
	// HandleText feeds free text to the active dialog's current step.
	HandleText(c tele.Context) error
}

// CallbackOptions customises callback dispatch.
type CallbackOptions struct {
	Flow     Flow
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks: dialog triggers go
// to the flow engine, everything else through the registry.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key, payload := parseCallback(c.Callback())

		// Flow triggers answer the callback themselves so a rejected
		// action can surface as a toast instead of a blank ack.
		if key == FlowCallbackKey && opts.Flow != nil {
			extras := []slog.Attr{
				slog.String("cb_key", key),
				slog.String("trigger", payload),
			}
			return handleWithSummary(c, "callback.flow", start, "", "", func() error {
				return opts.Flow.HandleCallback(c, payload)
			}, extras...)
		}

		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "", "", func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
