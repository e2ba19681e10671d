// Package dialog implements the menu state machine of the bot. It maps
// navigation events onto screens and produces transport-agnostic Render
// values; nothing in this package talks to Telegram directly.
package dialog

// Event is the closed set of navigation events the dialog understands.
// Event values double as callback keys on inline buttons, so they must be
// stable once released.
type Event string

const (
	// EventOpenCalculate shows the input instructions and arms the
	// one-shot free-text input mode.
	EventOpenCalculate Event = "calc_open"
	// EventOpenTests shows the reference-example menu.
	EventOpenTests Event = "tests_open"
	// EventBack returns to the main menu and disarms input mode.
	EventBack Event = "menu_back"
	// EventRunExample runs a fixed reference example; payload selects it.
	EventRunExample Event = "tests_run"
	// EventRunMine replays the user's last stored calculation.
	EventRunMine Event = "tests_mine"
)

// Events lists every dialog event for transport wiring.
func Events() []Event {
	return []Event{
		EventOpenCalculate,
		EventOpenTests,
		EventBack,
		EventRunExample,
		EventRunMine,
	}
}

// StateError reports a navigation event that needs prior state which is
// absent. It is surfaced as a transient alert, not a screen change.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return "dialog: state: " + e.Reason
}

// Code returns the wire error code used by handler summary logs.
func (e *StateError) Code() string { return "STATE_ERROR" }
