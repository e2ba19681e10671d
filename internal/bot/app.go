// Package bot wires the dialog state machine to Telegram: command and
// callback registration, render delivery, and the app lifecycle hooks.
package bot

import (
	"context"
	"fmt"
	"time"

	corecmd "capturnbot/core/cmd"
	coreconfig "capturnbot/core/config"
	"capturnbot/core/logger"
	tg "capturnbot/core/telegram"
	"capturnbot/core/telegram/commands"
	"capturnbot/core/telegram/router"
	tgsender "capturnbot/core/telegram/sender"
	"capturnbot/internal/dialog"
	"capturnbot/internal/session"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// AppConfig is the full configuration file shape of the bot.
type AppConfig struct {
	Core coreconfig.Config `yaml:",inline"`
}

// CoreConfig exposes the embedded core configuration.
func (c *AppConfig) CoreConfig() *coreconfig.Config { return &c.Core }

// LoadConfig reads and validates the configuration file.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &AppConfig{Core: *cfg}, nil
}

// App owns the bot's long-lived components: the session store, the dialog
// controller over it, and the outbound dispatcher.
type App struct {
	cfg        *coreconfig.Config
	sessions   *session.Store
	dialog     *dialog.Controller
	dispatcher *tgsender.Dispatcher
	startedAt  time.Time
}

// Bootstrap initializes logging and constructs the application.
func Bootstrap(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	core := cfg.CoreConfig()
	if core == nil {
		return nil, fmt.Errorf("bot: nil core config")
	}
	if err := logger.InitLogger(core); err != nil {
		return nil, fmt.Errorf("bot: logger init failed: %w", err)
	}

	sessions := session.NewStore()
	return &App{
		cfg:       core,
		sessions:  sessions,
		dialog:    dialog.NewController(sessions),
		startedAt: time.Now(),
	}, nil
}

// TelegramRunOptions assembles the registry, routes, and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.startHandler,
		Description: "Главное меню",
	})
	reg.RegisterCommand("/calculate", commands.Command{
		Handler:     a.calculateHandler,
		Description: "Расчет оборачиваемости капитала",
		Aliases:     []string{"calc"},
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.statsHandler,
		Description: "Служебная статистика",
		AdminOnly:   true,
		Hidden:      true,
	})

	for _, ev := range dialog.Events() {
		if err := reg.RegisterCallback(string(ev), a.callbackHandler(ev)); err != nil {
			return tg.RunOptions{}, fmt.Errorf("bot: callback wiring failed: %w", err)
		}
	}

	a.dispatcher = tgsender.NewDispatcher(tgsender.Options{})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(inputWatcher{a}, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Dispatcher:  a.dispatcher,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStop:      a.onStop,
	}, nil
}

// onStop drops every user session before the process exits.
func (a *App) onStop(ctx context.Context, rt tg.Runtime) error {
	dropped := a.sessions.Len()
	a.sessions.ClearAll()
	logger.Info(ctx, "app", "sessions.cleared",
		slog.Int("sessions", dropped),
	)
	return nil
}

// inputWatcher routes plain text into the calculation flow for users whose
// session awaits input.
type inputWatcher struct {
	app *App
}

func (w inputWatcher) InProgress(userID int64) bool {
	return w.app.sessions.AwaitingInput(userID)
}

func (w inputWatcher) HandleInput(c tele.Context) error {
	return w.app.freeTextHandler(c)
}
