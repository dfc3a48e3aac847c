package gate

import (
	"log/slog"
	"strconv"

	"github.com/m3rciful/joingate/core/logger"
	tghelpers "github.com/m3rciful/joingate/core/telegram/helpers"
	"github.com/m3rciful/joingate/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

// HandleJoinRequest approves requests to the managed channel and welcomes the
// requester. Requests for other chats, or arriving while no channel is
// configured, are ignored. Approval is not undone when the welcome fails.
func (g *Gate) HandleJoinRequest(c tele.Context) error {
	req := c.ChatJoinRequest()
	if req == nil || req.Chat == nil || req.Sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	cfg := g.store.Snapshot()

	if cfg.Channel == nil {
		logger.Debug(ctx, component, "join.skip",
			slog.String("status", "skip"),
			slog.String("cause", "no_channel"),
			slog.Int64("requester_id", req.Sender.ID),
		)
		return nil
	}
	if strconv.FormatInt(req.Chat.ID, 10) != cfg.Channel.ID {
		logger.Debug(ctx, component, "join.skip",
			slog.String("status", "skip"),
			slog.String("cause", "foreign_chat"),
			slog.Int64("channel_id", req.Chat.ID),
			slog.Int64("requester_id", req.Sender.ID),
		)
		return nil
	}

	if err := g.api.ApproveJoinRequest(req.Chat, req.Sender); err != nil {
		logger.Error(ctx, component, "join.approve",
			slog.String("status", "fail"),
			slog.Int64("channel_id", req.Chat.ID),
			slog.Int64("requester_id", req.Sender.ID),
			slog.String("err", netutil.Redact(err)),
			slog.String("err_kind", netutil.Classify(err)),
		)
		return nil
	}
	logger.Info(ctx, component, "join.approved",
		slog.String("status", "ok"),
		slog.Int64("channel_id", req.Chat.ID),
		slog.String("channel_title", logger.SanitizeLimit(cfg.Channel.Title, 128)),
		slog.Int64("requester_id", req.Sender.ID),
	)

	w, ok := BuildWelcome(cfg, tghelpers.FullName(req.Sender))
	if !ok {
		logger.Debug(ctx, component, "welcome.send",
			slog.String("status", "skip"),
			slog.String("cause", "no_text"),
			slog.Int64("requester_id", req.Sender.ID),
		)
		return nil
	}
	g.deliver(ctx, req.Sender, w)
	return nil
}
