package router

import (
	"time"

	tg "capturnbot/core/telegram"
	"capturnbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// InputWatcher reports whether a user is expected to send free-form input
// and handles that input when it arrives.
type InputWatcher interface {
	InProgress(userID int64) bool
	HandleInput(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for plain-text routing: pending-input users
// first, then registry command lookup, then fallbacks.
func TextRoutes(watcher InputWatcher, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if watcher != nil && c.Sender() != nil && watcher.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "free_input", start, "", "", func() error {
				return watcher.HandleInput(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
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
