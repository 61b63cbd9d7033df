package bot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/glennakiN/Buynoculars-sub000/core/bootstrap"
	coretelegram "github.com/glennakiN/Buynoculars-sub000/core/telegram"
	"github.com/glennakiN/Buynoculars-sub000/core/telegram/commands"
	tghelpers "github.com/glennakiN/Buynoculars-sub000/core/telegram/helpers"
	"github.com/glennakiN/Buynoculars-sub000/core/telegram/router"
	"github.com/glennakiN/Buynoculars-sub000/dialogs"
	"github.com/glennakiN/Buynoculars-sub000/flow"
	"github.com/glennakiN/Buynoculars-sub000/services/alert"
	"github.com/glennakiN/Buynoculars-sub000/services/market"
	"github.com/glennakiN/Buynoculars-sub000/services/options"
	"github.com/glennakiN/Buynoculars-sub000/services/watchlist"
)

// App owns the wired application: services, dialog engine, and registry.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	registry *coretelegram.Registry
	flow     *flowAdapter
}

// New bootstraps infrastructure and assembles the application.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}

	boot, err := bootstrap.Run(bootstrap.Options{
		Config:       cfg.CoreConfig(),
		Database:     cfg.Database,
		SkipDatabase: cfg.Storage.Driver != StoragePostgres,
	})
	if err != nil {
		return nil, err
	}

	limits := alert.DefaultLimits
	if cfg.Alerts.MaxAlerts > 0 {
		limits.MaxAlerts = cfg.Alerts.MaxAlerts
	}
	if cfg.Alerts.MaxIndicators > 0 {
		limits.MaxIndicators = cfg.Alerts.MaxIndicators
	}

	var (
		watchlists watchlist.Service
		alerts     alert.Service
	)
	switch cfg.Storage.Driver {
	case StoragePostgres:
		watchlists = watchlist.NewPostgres(boot.DB)
		alerts = alert.NewPostgres(boot.DB, limits)
	default:
		watchlists = watchlist.NewMemory()
		alerts = alert.NewMemory(limits)
	}

	deps := &dialogs.Deps{
		Market:          market.NewCatalogService(),
		Watchlists:      watchlists,
		Alerts:          alerts,
		Options:         options.NewStaticService(),
		SearchThreshold: cfg.Search.AutoSelectThreshold,
		SearchPerPage:   cfg.Search.PageSize,
	}
	engine, err := dialogs.NewEngine(deps)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg: cfg,
		db:  boot.DB,
		flow: &flowAdapter{
			engine:   engine,
			sessions: flow.NewStore(),
		},
	}
	app.registry = app.buildRegistry()
	return app, nil
}

func (a *App) buildRegistry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	enter := func(dialogID string) tele.HandlerFunc {
		return func(c tele.Context) error {
			return a.flow.Enter(c, dialogID)
		}
	}

	reg.RegisterCommand("/start", commands.Command{
		Description: "Open the main menu",
		Handler:     enter(dialogs.DialogMenu),
		Aliases:     []string{"menu"},
	})
	reg.RegisterCommand("/search", commands.Command{
		Description: "Find a coin",
		Handler:     enter(dialogs.DialogSearch),
	})
	reg.RegisterCommand("/watchlists", commands.Command{
		Description: "Manage your watchlists",
		Handler:     enter(dialogs.DialogWatchlists),
	})
	reg.RegisterCommand("/alerts", commands.Command{
		Description: "Manage your alerts",
		Handler:     enter(dialogs.DialogAlerts),
	})
	reg.RegisterCommand("/newalert", commands.Command{
		Description: "Configure a new alert",
		Handler:     enter(dialogs.DialogCreateAlert),
	})

	reg.SetTextFallback(func(c tele.Context) error {
		return tghelpers.SendText(c, "Use /start to open the menu.")
	})
	return reg
}

// TelegramRunOptions builds the transport wiring for the core runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := []coretelegram.Route{
		router.CallbackRoute(a.registry, router.CallbackOptions{Flow: a.flow}),
	}
	routes = append(routes, router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
	})...)
	routes = append(routes, router.TextRoutes(a.registry, router.TextOptions{Flow: a.flow})...)

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(core, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}
