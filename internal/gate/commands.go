package gate

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/joingate/core/logger"
	"github.com/m3rciful/joingate/core/telegram/format"
	tghelpers "github.com/m3rciful/joingate/core/telegram/helpers"
	"github.com/m3rciful/joingate/core/telegram/netutil"
	"github.com/m3rciful/joingate/core/telegram/state"
	"github.com/m3rciful/joingate/internal/store"

	tele "gopkg.in/telebot.v4"
)

// Start replies with the command overview.
func (g *Gate) Start(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	adminName := fallbackAdmin
	chat, err := g.api.ChatByID(g.adminID)
	switch {
	case err != nil:
		logger.Warn(ctx, component, "admin.lookup",
			slog.String("status", "fail"),
			slog.String("err", netutil.Redact(err)),
			slog.String("err_kind", netutil.Classify(err)),
		)
	case tghelpers.ChatFullName(chat) != "":
		adminName = tghelpers.ChatFullName(chat)
	}

	botName := tghelpers.FullName(g.self)
	if g.self.Username != "" {
		botName = "@" + g.self.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s* approves join requests to one channel and welcomes new members.\n", format.MD(botName))
	fmt.Fprintf(&b, "It is managed by %s.\n\n", format.MD(adminName))
	if g.reg != nil {
		b.WriteString("*Commands*\n")
		for _, item := range g.reg.ListCommands(true) {
			name := "/" + item.Text
			cmd := g.reg.Commands()[name]
			b.WriteString(format.MD(cmd.HelpLine(name)) + "\n")
		}
	}
	return tghelpers.SendMD(c, b.String())
}

// ChannelInfo reports the managed channel and whether a welcome is configured.
func (g *Gate) ChannelInfo(c tele.Context) error {
	cfg := g.store.Snapshot()
	if cfg.Channel == nil {
		return tghelpers.SendText(c, msgNoChannel)
	}
	ch := cfg.Channel

	var b strings.Builder
	fmt.Fprintf(&b, "Channel: %s\n", ch.Title)
	fmt.Fprintf(&b, "ID: %s\n", ch.ID)
	if u := format.DerefString(ch.Username, ""); u != "" {
		fmt.Fprintf(&b, "Username: @%s\n", u)
	}
	if !ch.AddedAt.IsZero() {
		fmt.Fprintf(&b, "Added: %s\n", ch.AddedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintf(&b, "Welcome text: %s\n", setOrNot(cfg.WelcomeText != ""))
	fmt.Fprintf(&b, "Welcome photo: %s", setOrNot(cfg.WelcomePic != ""))
	return tghelpers.SendText(c, b.String())
}

// AddChannel starts managing the channel named by the first argument.
// The bot must be an administrator or the creator of that channel.
func (g *Gate) AddChannel(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	if cfg := g.store.Snapshot(); cfg.Channel != nil {
		return tghelpers.SendText(c, fmt.Sprintf(msgChannelExists, cfg.Channel.Title))
	}
	args := c.Args()
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return tghelpers.SendText(c, msgAddUsage)
	}
	ref := strings.TrimSpace(args[0])

	chat, err := g.lookupChannel(ref)
	if err != nil {
		if errors.Is(err, strconv.ErrSyntax) || errors.Is(err, strconv.ErrRange) {
			return tghelpers.SendText(c, fmt.Sprintf(msgBadChannelID, ref))
		}
		logger.Warn(ctx, component, "channel.lookup",
			slog.String("status", "fail"),
			slog.String("payload", logger.SanitizeLimit(ref, 64)),
			slog.String("err", netutil.Redact(err)),
			slog.String("err_kind", netutil.Classify(err)),
		)
		return tghelpers.SendText(c, msgLookupFailed)
	}

	member, err := g.api.ChatMemberOf(chat, g.self)
	if err != nil {
		logger.Warn(ctx, component, "channel.member",
			slog.Int64("channel_id", chat.ID),
			slog.String("status", "fail"),
			slog.String("err", netutil.Redact(err)),
			slog.String("err_kind", netutil.Classify(err)),
		)
		return tghelpers.SendText(c, msgMemberFailed)
	}
	if member == nil || (member.Role != tele.Administrator && member.Role != tele.Creator) {
		return tghelpers.SendText(c, fmt.Sprintf(msgBotNotAdmin, chat.Title))
	}

	ch := store.Channel{
		ID:       strconv.FormatInt(chat.ID, 10),
		Title:    chat.Title,
		Username: format.StringPtr(chat.Username),
		AddedAt:  g.now().UTC(),
	}
	if err := g.store.AddChannel(ch); err != nil {
		if errors.Is(err, store.ErrChannelConfigured) {
			current := g.store.Snapshot()
			return tghelpers.SendText(c, fmt.Sprintf(msgChannelExists, current.Channel.Title))
		}
		return fmt.Errorf("add channel: %w", err)
	}
	logger.Info(ctx, component, "channel.added",
		slog.String("status", "ok"),
		slog.Int64("channel_id", chat.ID),
		slog.String("channel_title", logger.SanitizeLimit(chat.Title, 128)),
	)
	return tghelpers.SendText(c, fmt.Sprintf(msgChannelAdded, ch.Title, ch.ID))
}

func (g *Gate) lookupChannel(ref string) (*tele.Chat, error) {
	if strings.HasPrefix(ref, "@") {
		return g.api.ChatByUsername(ref)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, err
	}
	return g.api.ChatByID(id)
}

// RemoveChannel clears the channel and its welcome settings.
func (g *Gate) RemoveChannel(c tele.Context) error {
	removed, err := g.store.RemoveChannel()
	if errors.Is(err, store.ErrNoChannel) {
		return tghelpers.SendText(c, msgNothingToRemove)
	}
	if err != nil {
		return fmt.Errorf("remove channel: %w", err)
	}
	g.tracker.Clear(g.adminID)
	logger.Info(tghelpers.BuildContext(c), component, "channel.removed",
		slog.String("status", "ok"),
		slog.String("channel_title", logger.SanitizeLimit(removed.Title, 128)),
	)
	return tghelpers.SendText(c, fmt.Sprintf(msgChannelRemoved, removed.Title))
}

// SetWelcomeText arms the capture of the next admin text message.
func (g *Gate) SetWelcomeText(c tele.Context) error {
	return g.arm(c, state.AwaitingWelcomeText, msgAskText)
}

// SetWelcomePic arms the capture of the next admin photo.
func (g *Gate) SetWelcomePic(c tele.Context) error {
	return g.arm(c, state.AwaitingWelcomePic, msgAskPic)
}

func (g *Gate) arm(c tele.Context, p state.Pending, prompt string) error {
	if g.store.Snapshot().Channel == nil {
		return tghelpers.SendText(c, msgNoChannel)
	}
	g.tracker.Arm(g.adminID, p)
	logger.Debug(tghelpers.BuildContext(c), component, "capture.armed",
		slog.String("pending", p.String()),
	)
	return tghelpers.SendText(c, prompt, tghelpers.ForceReply())
}

func setOrNot(ok bool) string {
	if ok {
		return msgSet
	}
	return msgNotSet
}
