package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/glennakiN/Buynoculars-sub000/core/telegram/helpers"
	"github.com/glennakiN/Buynoculars-sub000/core/telegram/keyboard"
	"github.com/glennakiN/Buynoculars-sub000/core/telegram/router"
	"github.com/glennakiN/Buynoculars-sub000/flow"
)

// flowAdapter bridges Telegram updates into the dialog engine and turns
// render instructions back into messages. It implements router.Flow.
type flowAdapter struct {
	engine   *flow.Engine
	sessions *flow.Store
}

func (a *flowAdapter) session(c tele.Context) *flow.Session {
	var userID int64
	if s := c.Sender(); s != nil {
		userID = s.ID
	}
	return a.sessions.Get(c.Chat().ID, userID)
}

// Active reports whether the chat currently has a dialog running. The
// engine mutates dialog state under the session lock, so the read takes it
// too; otherwise it races a concurrently handled update for the same chat.
func (a *flowAdapter) Active(chatID int64) bool {
	s, ok := a.sessions.Peek(chatID)
	if !ok {
		return false
	}
	s.Lock()
	defer s.Unlock()
	return s.InDialog()
}

// Enter starts a dialog from a command.
func (a *flowAdapter) Enter(c tele.Context, dialogID string) error {
	if c.Chat() == nil {
		return nil
	}
	s := a.session(c)
	r, err := a.engine.Enter(tghelpers.BuildContext(c), s, dialogID, nil)
	if err != nil {
		return err
	}
	return a.deliver(c, r)
}

// HandleCallback feeds one button press into the active dialog.
func (a *flowAdapter) HandleCallback(c tele.Context, trigger string) error {
	if c.Chat() == nil {
		return nil
	}
	s := a.session(c)
	r, err := a.engine.HandleEvent(tghelpers.BuildContext(c), s, flow.CallbackEvent(s.ChatID, s.UserID, trigger))
	if err != nil {
		_ = c.Respond()
		return err
	}
	return a.deliver(c, r)
}

// HandleText feeds free text to the active dialog's current step.
func (a *flowAdapter) HandleText(c tele.Context) error {
	if c.Chat() == nil {
		return nil
	}
	s := a.session(c)
	r, err := a.engine.HandleEvent(tghelpers.BuildContext(c), s, flow.TextEvent(s.ChatID, s.UserID, c.Text()))
	if err != nil {
		return err
	}
	return a.deliver(c, r)
}

// deliver answers the callback query and draws the instruction. A Notice
// surfaces as a toast with the screen untouched; callback-driven redraws
// edit the existing message, text-driven ones send a new message.
func (a *flowAdapter) deliver(c tele.Context, r flow.Render) error {
	if c.Callback() != nil {
		resp := &tele.CallbackResponse{}
		if r.Notice != "" {
			resp.Text = r.Notice
		}
		_ = c.Respond(resp)
	}
	if r.IsZero() {
		return nil
	}
	opts := &tele.SendOptions{ReplyMarkup: markupFor(r)}
	if c.Callback() != nil {
		return c.EditOrSend(r.Text, opts)
	}
	return tghelpers.SendText(c, r.Text, opts)
}

// markupFor converts abstract keyboard rows into inline markup. Every
// trigger rides under the shared flow callback key.
func markupFor(r flow.Render) *tele.ReplyMarkup {
	if len(r.Keyboard) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, 0, len(r.Keyboard))
	for _, row := range r.Keyboard {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				btns = append(btns, keyboard.InlineBtn{Text: b.Label, URL: b.URL})
				continue
			}
			btns = append(btns, keyboard.InlineBtn{
				Text:   b.Label,
				Unique: router.FlowCallbackKey,
				Data:   b.Trigger,
			})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineButtonsRows(rows...)
}
