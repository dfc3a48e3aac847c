package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/joingate/core/logger"
	tghelpers "github.com/m3rciful/joingate/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// recentUpdates keeps a short-lived set of processed update IDs to avoid double logging.
var (
	recentMu     sync.Mutex
	recentUpdate = make(map[int]time.Time)
	keepFor      = 10 * time.Second
)

func alreadyLogged(updateID int) bool {
	now := time.Now()
	recentMu.Lock()
	defer recentMu.Unlock()
	for id, ts := range recentUpdate {
		if now.Sub(ts) > keepFor {
			delete(recentUpdate, id)
		}
	}
	if _, ok := recentUpdate[updateID]; ok {
		return true
	}
	recentUpdate[updateID] = now
	return false
}

// UpdateKind names the update type for logs and rate-limit exclusions.
func UpdateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return "callback"
	case upd.ChatJoinRequest != nil:
		return "join_request"
	case upd.Message != nil:
		return "message"
	}
	return "other"
}

// LoggerMiddleware logs a single receipt line per update and sets rid.
// It deduplicates by update_id so wrapping several branches logs once.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()
		ctx := tghelpers.NewContext(c)

		if alreadyLogged(upd.ID) {
			return next(c)
		}
		attrs := []slog.Attr{
			slog.String("status", "ok"),
			slog.String("kind", UpdateKind(upd)),
		}
		if chat != nil {
			attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
		}
		if user != nil && user.Username != "" {
			attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
		}
		if upd.Message != nil {
			if t := c.Text(); t != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
			}
			if upd.Message.Photo != nil {
				attrs = append(attrs, slog.Bool("has_photo", true))
			}
		}
		logger.LogEvent(ctx, nil, slog.LevelDebug, "update.received", attrs...)

		return next(c)
	}
}
