package dialog

import (
	"errors"
	"fmt"
	"strings"

	"capturnbot/core/logger"
	"capturnbot/internal/session"
	"capturnbot/internal/turnover"
	"log/slog"
)

// Reference inputs from the assignment, wired to the test menu.
var (
	exampleInput1 = turnover.Input{Revenue: 2000000, AverageAssets: 1000000, EquityCapital: 500000, DebtCapital: 300000, PeriodDays: 365}
	exampleInput2 = turnover.Input{Revenue: 1000000, AverageAssets: 600000, EquityCapital: 300000, DebtCapital: 150000, PeriodDays: 365}
)

// Request is the single internal request type consumed by both the command
// and the free-text entry points.
type Request struct {
	UserID int64
	Tokens []string
}

// Controller drives the menu state machine. It owns no state of its own;
// per-user state lives in the injected session store.
type Controller struct {
	sessions *session.Store
}

// NewController wires the dialog over the given session store.
func NewController(sessions *session.Store) *Controller {
	return &Controller{sessions: sessions}
}

// MainMenu renders the resting screen of the dialog.
func (c *Controller) MainMenu() Render {
	return mainMenuRender()
}

// Navigate applies one menu event for the user and returns the next screen.
// A *StateError is returned when the event needs prior state that is
// absent; the transport shows it as an alert and keeps the current screen.
func (c *Controller) Navigate(userID int64, ev Event, payload string) (Render, error) {
	switch ev {
	case EventOpenCalculate:
		// Arms the one-shot free-text mode; lastCalculation is untouched.
		c.sessions.SetAwaitingInput(userID, true)
		return calculateInstructionsRender(), nil
	case EventOpenTests:
		return testMenuRender(), nil
	case EventBack:
		c.sessions.SetAwaitingInput(userID, false)
		return mainMenuRender(), nil
	case EventRunExample:
		in, title, ok := exampleByKey(payload)
		if !ok {
			return Render{}, fmt.Errorf("dialog: unknown example %q", payload)
		}
		return testResultRender(title, turnover.Calculate(in)), nil
	case EventRunMine:
		calc, ok := c.sessions.LastCalculation(userID)
		if !ok {
			return Render{}, &StateError{Reason: textNoCalculation}
		}
		// Recompute from the stored input; the engine is deterministic,
		// so this matches the stored result exactly.
		return testResultRender(titleMyData, turnover.Calculate(calc.Input)), nil
	}
	return Render{}, fmt.Errorf("dialog: unknown event %q", ev)
}

// SubmitCommand handles a direct command invocation. Without arguments it
// falls back to the main menu, mirroring the command's menu role.
func (c *Controller) SubmitCommand(userID int64, rawArgs string) Render {
	tokens := turnover.Tokenize(rawArgs)
	if len(tokens) == 0 {
		return mainMenuRender()
	}
	return c.Submit(Request{UserID: userID, Tokens: tokens})
}

// SubmitFreeText handles a plain text message sent while the user's
// session awaits input.
func (c *Controller) SubmitFreeText(userID int64, text string) Render {
	return c.Submit(Request{UserID: userID, Tokens: turnover.Tokenize(text)})
}

// Submit validates and computes one calculation request. The awaiting-input
// flag is cleared up front, whether or not the input turns out valid: the
// user gets one input opportunity, not a retry loop. A panic anywhere in the
// pipeline degrades to a generic error screen; the user keeps the dialog.
func (c *Controller) Submit(req Request) (out Render) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(logger.Background(), "dialog", "submit.panic",
				slog.Int64("user_id", req.UserID),
				slog.Any("err", r),
			)
			out = Render{Screen: ScreenError, Text: textUnexpectedError}
		}
	}()

	c.sessions.SetAwaitingInput(req.UserID, false)

	in, err := turnover.Validate(req.Tokens)
	if err != nil {
		var parseErr *turnover.ParseError
		if errors.As(err, &parseErr) {
			return Render{Screen: ScreenError, Text: textInvalidInput}
		}
		res := turnover.Failure(err)
		return Render{
			Screen: ScreenError,
			Text:   textRangeErrorHeader + "\n" + strings.Join(res.Errors, "\n"),
		}
	}

	res := turnover.Calculate(in)
	c.sessions.SetLastCalculation(req.UserID, in, res)
	return Render{
		Screen: ScreenResult,
		Text:   textCalculationDone + "\n\n" + strings.Join(res.Messages, "\n"),
		Rows:   calcResultRows(),
	}
}

func exampleByKey(key string) (turnover.Input, string, bool) {
	switch key {
	case "1":
		return exampleInput1, titleExample1, true
	case "2":
		return exampleInput2, titleExample2, true
	}
	return turnover.Input{}, "", false
}

func testResultRender(title string, res turnover.Result) Render {
	if !res.Success {
		return Render{
			Screen: ScreenError,
			Text:   "*" + title + "*\n\n" + textRangeErrorHeader + "\n" + strings.Join(res.Errors, "\n"),
			Rows:   testResultRows(),
		}
	}
	return Render{
		Screen: ScreenResult,
		Text:   "*" + title + "*\n\n" + strings.Join(res.Messages, "\n"),
		Rows:   testResultRows(),
	}
}
