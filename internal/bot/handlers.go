package bot

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"capturnbot/core/logger"
	tghelpers "capturnbot/core/telegram/helpers"
	"capturnbot/core/telegram/keyboard"
	"capturnbot/internal/dialog"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

func (a *App) startHandler(c tele.Context) error {
	r := a.dialog.MainMenu()
	return tghelpers.SendMD(c, r.Text, renderMarkup(r))
}

// calculateHandler accepts inline arguments; without them it shows the menu,
// matching the button entry point.
func (a *App) calculateHandler(c tele.Context) error {
	var args string
	if msg := c.Message(); msg != nil {
		args = msg.Payload
	}
	tokens := len(strings.Fields(args))
	r := a.dialog.SubmitCommand(senderID(c), args)
	if tokens > 0 && logger.ShouldSampleDebug() {
		logger.LogEvent(tghelpers.BuildContext(c), logger.SVCTurnover, slog.LevelDebug, "calc.submitted",
			slog.Int("tokens", tokens),
			slog.String("screen", r.Screen.String()),
		)
	}
	return tghelpers.SendMD(c, r.Text, renderMarkup(r))
}

func (a *App) statsHandler(c tele.Context) error {
	var sendErrors uint64
	if a.dispatcher != nil {
		sendErrors = a.dispatcher.ErrorCount()
	}
	lines := []string{
		"📈 *Статистика*",
		"",
		"Сессий: " + strconv.Itoa(a.sessions.Len()),
		"Ошибок отправки: " + strconv.FormatUint(sendErrors, 10),
		"Аптайм: " + time.Since(a.startedAt).Round(time.Second).String(),
	}
	return tghelpers.SendMD(c, strings.Join(lines, "\n"))
}

// freeTextHandler consumes the one-shot calculation input.
func (a *App) freeTextHandler(c tele.Context) error {
	text := c.Text()
	r := a.dialog.SubmitFreeText(senderID(c), text)
	if logger.ShouldSampleDebug() {
		logger.LogEvent(tghelpers.BuildContext(c), logger.SVCTurnover, slog.LevelDebug, "calc.submitted",
			slog.Int("tokens", len(strings.Fields(text))),
			slog.String("screen", r.Screen.String()),
		)
	}
	return tghelpers.SendMD(c, r.Text, renderMarkup(r))
}

// callbackHandler adapts one dialog event to a Telegram callback. State
// errors are answered as alerts and leave the current screen untouched;
// every other outcome edits the message in place.
func (a *App) callbackHandler(ev dialog.Event) tele.HandlerFunc {
	return func(c tele.Context) error {
		r, err := a.dialog.Navigate(senderID(c), ev, callbackPayload(c))
		if err == nil && logger.ShouldSampleDebug() {
			logger.LogEvent(tghelpers.BuildContext(c), logger.DLG, slog.LevelDebug, "dialog.navigate",
				slog.String("screen", r.Screen.String()),
			)
		}
		if err != nil {
			var stateErr *dialog.StateError
			if errors.As(err, &stateErr) {
				_ = c.Respond(&tele.CallbackResponse{Text: stateErr.Reason, ShowAlert: true})
				return err
			}
			_ = c.Respond()
			return err
		}
		if err := tghelpers.EditOrSendMD(c, r.Text, renderMarkup(r)); err != nil {
			_ = c.Respond()
			return err
		}
		return c.Respond()
	}
}

// renderMarkup converts dialog button rows into an inline keyboard. Event
// values become callback uniques, so pressed buttons route straight back to
// the matching registered callback.
func renderMarkup(r dialog.Render) *tele.ReplyMarkup {
	if len(r.Rows) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, len(r.Rows))
	for i, row := range r.Rows {
		btns := make([]keyboard.InlineBtn, len(row))
		for j, b := range row {
			btns[j] = keyboard.InlineBtn{
				Text:   b.Label,
				Unique: string(b.Event),
				Data:   b.Payload,
			}
		}
		rows[i] = btns
	}
	return keyboard.InlineButtonsRows(rows...)
}

// callbackPayload extracts the payload regardless of whether telebot already
// split the callback data into unique and payload parts.
func callbackPayload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		return raw[i+1:]
	}
	return ""
}

func senderID(c tele.Context) int64 {
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}
