package gate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m3rciful/joingate/core/logger"
	"github.com/m3rciful/joingate/core/telegram/netutil"
	"github.com/m3rciful/joingate/internal/store"

	tele "gopkg.in/telebot.v4"
)

const (
	placeholderUser    = "{user}"
	placeholderChannel = "{channel}"
)

// Compose substitutes {user} and then {channel} in template. Other braces are
// left as they are and the inserted values are not escaped.
func Compose(template, userName, channelTitle string) string {
	out := strings.ReplaceAll(template, placeholderUser, userName)
	return strings.ReplaceAll(out, placeholderChannel, channelTitle)
}

// Welcome is the message delivered to a newly approved member.
type Welcome struct {
	Text  string
	Photo string
}

// BuildWelcome renders the welcome for user. ok is false when no welcome
// text is configured, in which case nothing must be sent, photo or not.
func BuildWelcome(cfg store.Configuration, userName string) (w Welcome, ok bool) {
	if cfg.WelcomeText == "" || cfg.Channel == nil {
		return Welcome{}, false
	}
	return Welcome{
		Text:  Compose(cfg.WelcomeText, userName, cfg.Channel.Title),
		Photo: cfg.WelcomePic,
	}, true
}

// Sendable returns what to pass to Send: a captioned photo when a photo is set,
// otherwise the plain text.
func (w Welcome) Sendable() interface{} {
	if w.Photo == "" {
		return w.Text
	}
	return &tele.Photo{File: tele.File{FileID: w.Photo}, Caption: w.Text}
}

// deliver sends the welcome privately. Failures are logged and swallowed.
func (g *Gate) deliver(ctx context.Context, user *tele.User, w Welcome) {
	if _, err := g.api.Send(user, w.Sendable()); err != nil {
		logger.Warn(ctx, component, "welcome.send",
			slog.String("status", "fail"),
			slog.Int64("requester_id", user.ID),
			slog.Bool("has_photo", w.Photo != ""),
			slog.String("err", netutil.Redact(err)),
			slog.String("err_kind", netutil.Classify(err)),
		)
		return
	}
	logger.Info(ctx, component, "welcome.send",
		slog.String("status", "ok"),
		slog.Int64("requester_id", user.ID),
		slog.Bool("has_photo", w.Photo != ""),
	)
}
