// Package app wires the gatekeeper into the shared Telegram runtime.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/joingate/core/bootstrap"
	corecmd "github.com/m3rciful/joingate/core/cmd"
	coreconfig "github.com/m3rciful/joingate/core/config"
	"github.com/m3rciful/joingate/core/logger"
	tg "github.com/m3rciful/joingate/core/telegram"
	"github.com/m3rciful/joingate/core/telegram/router"
	"github.com/m3rciful/joingate/core/telegram/state"
	"github.com/m3rciful/joingate/internal/gate"
	"github.com/m3rciful/joingate/internal/store"

	tele "gopkg.in/telebot.v4"
)

// App holds the process-wide dependencies of the bot.
type App struct {
	cfg     *coreconfig.Config
	store   *store.Store
	tracker state.Tracker
}

// Load satisfies corecmd.Options.LoadConfig.
func Load(path string) (corecmd.ConfigCarrier, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bootstrap satisfies corecmd.Options.Bootstrap.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()
	res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	return New(cfg, res.Store), nil
}

// New builds an App around an opened store.
func New(cfg *coreconfig.Config, st *store.Store) *App {
	return &App{cfg: cfg, store: st, tracker: state.NewMemoryTracker()}
}

// TelegramRunOptions builds the runtime options; routes are created once the
// bot exists so the gate can call it directly.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	if a.cfg == nil || a.store == nil {
		return tg.RunOptions{}, errors.New("app: not bootstrapped")
	}
	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    tg.NewRegistry(),
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		BuildRoutes: func(bot *tele.Bot, reg *tg.Registry) ([]tg.Route, error) {
			return a.Routes(bot, bot.Me, reg)
		},
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			cfg := a.store.Snapshot()
			attrs := []slog.Attr{
				slog.String("status", "ok"),
				slog.String("path", a.store.Path()),
				slog.Bool("has_channel", cfg.Channel != nil),
			}
			if cfg.Channel != nil {
				attrs = append(attrs, slog.String("channel_title", logger.SanitizeLimit(cfg.Channel.Title, 128)))
			}
			logger.Info(ctx, "gate", "gate.ready", attrs...)
			return nil
		},
	}, nil
}

// Routes registers the gate commands in reg and returns every route the bot serves.
func (a *App) Routes(api gate.API, self *tele.User, reg *tg.Registry) ([]tg.Route, error) {
	g, err := gate.New(gate.Options{
		AdminID: a.cfg.Telegram.AdminID,
		Self:    self,
		API:     api,
		Store:   a.store,
		Tracker: a.tracker,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	g.Register(reg)

	var routes []tg.Route
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: g.Deny,
	})...)
	routes = append(routes, router.MessageRoutes(g, reg, router.MessageOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: g.Deny,
	})...)
	routes = append(routes, router.JoinRequestRoutes(g)...)
	return routes, nil
}
