package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/joingate/core/logger"
	tg "github.com/m3rciful/joingate/core/telegram"
	"github.com/m3rciful/joingate/core/telegram/commands"
	"github.com/m3rciful/joingate/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  wrapCommand(cmd, def, opts),
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(routes)),
	)

	return routes
}

func wrapCommand(name string, def commands.Command, opts CommandRouteOptions) tele.HandlerFunc {
	handlerName := normalizeHandlerName(name)
	inner := def.Handler
	h := func(c tele.Context) error {
		return handleWithSummary(c, handlerName, time.Now(), "", "", func() error {
			return inner(c)
		})
	}
	if def.AdminOnly {
		h = middleware.AdminOnlyMiddleware(middleware.AdminOptions{
			AdminID:  opts.AdminID,
			OnReject: denied(handlerName, opts.OnAdminReject),
		})(h)
	}
	return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
}

// denied logs the rejected attempt before handing off to the reject reply.
func denied(handlerName string, reply tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		if reply == nil {
			logHandlerSummary(c, handlerName, start, "denied", "skip", nil)
			return nil
		}
		return handleWithSummary(c, handlerName, start, "denied", "", func() error {
			return reply(c)
		})
	}
}
