package router

import (
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/joingate/core/logger"
	tghelpers "github.com/m3rciful/joingate/core/telegram/helpers"
	"github.com/m3rciful/joingate/core/telegram/middleware"
	"github.com/m3rciful/joingate/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

// handleWithSummary runs fn under handlerName and logs one handler.handled line.
func handleWithSummary(c tele.Context, handlerName string, start time.Time, status, outcome string, fn func() error) error {
	tghelpers.WithHandler(c, handlerName)
	err := fn()
	logHandlerSummary(c, handlerName, start, status, outcome, err)
	return err
}

// logHandlerSummary logs the result of a handler. Empty status or outcome
// are derived from err.
func logHandlerSummary(c tele.Context, handlerName string, start time.Time, status, outcome string, err error) {
	ctx := tghelpers.WithHandler(c, handlerName)

	derived := "ok"
	level := slog.LevelInfo
	if err != nil {
		derived = "fail"
		level = slog.LevelError
	}
	if status == "" {
		status = derived
	}
	if outcome == "" {
		outcome = derived
	}

	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", handlerName),
		slog.String("outcome", outcome),
		slog.Int("messages", middleware.GetCounters(c)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(netutil.Redact(err), 256)),
			slog.String("err_kind", netutil.Classify(err)),
		)
	}
	logger.LogEvent(ctx, logger.Component("tg"), level, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}
