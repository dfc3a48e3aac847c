package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/joingate/core/telegram"
	"github.com/m3rciful/joingate/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Capture consumes freeform admin messages armed by a previous command.
type Capture interface {
	HandleText(c tele.Context) error
	HandlePhoto(c tele.Context) error
}

// MessageOptions controls access checks for text and photo updates.
type MessageOptions struct {
	AdminID int64
	// OnAdminReject answers non-admins invoking a command through an alias.
	OnAdminReject tele.HandlerFunc
}

// MessageRoutes builds the text and photo handlers. Updates from anyone other
// than the admin are dropped without a reply; command-looking text that telebot
// did not match directly is resolved through the registry aliases.
func MessageRoutes(capture Capture, reg *tg.Registry, opts MessageOptions) []tg.Route {
	silent := middleware.AdminOnlyMiddleware(middleware.AdminOptions{AdminID: opts.AdminID})
	cmdOpts := CommandRouteOptions{AdminID: opts.AdminID, OnAdminReject: opts.OnAdminReject}

	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if strings.HasPrefix(text, "/") {
			if reg != nil {
				if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
					return wrapCommand(key, cmd, cmdOpts)(c)
				}
			}
			logHandlerSummary(c, "unknown_command", start, "skip", "ok", nil)
			return nil
		}

		if capture == nil || !middleware.IsAdmin(c, opts.AdminID) {
			logHandlerSummary(c, "text", start, "skip", "ok", nil)
			return nil
		}
		return handleWithSummary(c, "text", start, "", "", func() error {
			return capture.HandleText(c)
		})
	}

	photoHandler := func(c tele.Context) error {
		start := time.Now()
		if capture == nil {
			logHandlerSummary(c, "photo", start, "skip", "ok", nil)
			return nil
		}
		return handleWithSummary(c, "photo", start, "", "", func() error {
			return capture.HandlePhoto(c)
		})
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(textHandler)),
		},
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(silent(photoHandler))),
		},
	}
}
