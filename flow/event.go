// Package flow implements the conversational dialog engine: per-chat
// sessions, per-dialog callback routing, ordered scene steps with explicit
// back navigation, and abstract render instructions that a transport
// adapter turns into actual messages.
package flow

// EventKind discriminates inbound event types.
type EventKind int

const (
	// EventText is a plain text message from the user.
	EventText EventKind = iota
	// EventCallback is a button press carrying an opaque trigger string.
	EventCallback
)

// Event is one inbound update, already stripped of transport details.
type Event struct {
	Kind    EventKind
	ChatID  int64
	UserID  int64
	Text    string
	Trigger string
}

// TextEvent builds a text event.
func TextEvent(chatID, userID int64, text string) Event {
	return Event{Kind: EventText, ChatID: chatID, UserID: userID, Text: text}
}

// CallbackEvent builds a callback event with its trigger string.
func CallbackEvent(chatID, userID int64, trigger string) Event {
	return Event{Kind: EventCallback, ChatID: chatID, UserID: userID, Trigger: trigger}
}

// Button is a single inline keyboard button. Exactly one of Trigger or URL
// should be set; URL buttons open an external link instead of producing a
// callback event.
type Button struct {
	Label   string
	Trigger string
	URL     string
}

// Btn builds a callback button.
func Btn(label, trigger string) Button {
	return Button{Label: label, Trigger: trigger}
}

// URLBtn builds an external link button.
func URLBtn(label, url string) Button {
	return Button{Label: label, URL: url}
}

// Render is the abstract outbound instruction produced by the engine:
// message text plus rows of inline buttons.
type Render struct {
	Text     string
	Keyboard [][]Button
	// Notice is a transient acknowledgment shown without touching the
	// current screen (a callback toast on Telegram). Used for capacity
	// warnings where redrawing would fake a successful action.
	Notice string
}

// IsZero reports whether the instruction carries nothing to draw.
func (r Render) IsZero() bool {
	return r.Text == "" && len(r.Keyboard) == 0
}

// Notice builds a toast-only instruction that leaves the screen as is.
func Notice(text string) Render {
	return Render{Notice: text}
}

// AddRow appends one button row and returns the updated instruction.
func (r Render) AddRow(buttons ...Button) Render {
	r.Keyboard = append(r.Keyboard, buttons)
	return r
}

// TriggerBack is the shared trigger for reconstructing the previous screen.
// Every dialog understands it; at the entry step it leaves the dialog.
const TriggerBack = "go_back"

// TriggerNoop marks buttons that exist for layout only (page indicators,
// ellipsis placeholders). The engine acknowledges and ignores it.
const TriggerNoop = "noop"

// BackButton is the standard back button appended by components.
func BackButton() Button {
	return Btn("« Back", TriggerBack)
}
