package gate

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/joingate/core/logger"
	tghelpers "github.com/m3rciful/joingate/core/telegram/helpers"
	"github.com/m3rciful/joingate/core/telegram/state"
	"github.com/m3rciful/joingate/internal/store"

	tele "gopkg.in/telebot.v4"
)

// HandleText stores the admin's message as the welcome template when
// /setwelcometext armed a capture. Anything else is ignored.
func (g *Gate) HandleText(c tele.Context) error {
	if !g.isAdmin(c) {
		return nil
	}
	text := c.Text()
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}
	if !g.tracker.Consume(g.adminID, state.AwaitingWelcomeText) {
		return nil
	}

	if err := g.store.SetWelcomeText(text); err != nil {
		return g.captureFailed(c, "welcome_text", err)
	}
	logger.Info(tghelpers.BuildContext(c), component, "welcome.text_set",
		slog.String("status", "ok"),
		slog.Int("bytes", len(text)),
	)
	var title string
	if ch := g.store.Snapshot().Channel; ch != nil {
		title = ch.Title
	}
	preview := Compose(text, tghelpers.FullName(c.Sender()), title)
	return tghelpers.SendText(c, fmt.Sprintf(msgTextSaved, preview))
}

// HandlePhoto stores the file reference of the admin's photo when
// /setwelcomepic armed a capture.
func (g *Gate) HandlePhoto(c tele.Context) error {
	if !g.isAdmin(c) {
		return nil
	}
	msg := c.Message()
	if msg == nil || msg.Photo == nil || msg.Photo.FileID == "" {
		return nil
	}
	if !g.tracker.Consume(g.adminID, state.AwaitingWelcomePic) {
		return nil
	}

	// telebot keeps the largest size of the photo array in Message.Photo.
	if err := g.store.SetWelcomePic(msg.Photo.FileID); err != nil {
		return g.captureFailed(c, "welcome_pic", err)
	}
	logger.Info(tghelpers.BuildContext(c), component, "welcome.pic_set",
		slog.String("status", "ok"),
		slog.Int("photo_width", msg.Photo.Width),
		slog.Int("photo_height", msg.Photo.Height),
	)
	if g.store.Snapshot().WelcomeText == "" {
		return tghelpers.SendText(c, msgPicNoText)
	}
	return tghelpers.SendText(c, msgPicSaved)
}

// captureFailed handles a capture whose channel was removed after arming.
func (g *Gate) captureFailed(c tele.Context, field string, err error) error {
	if errors.Is(err, store.ErrNoChannel) {
		logger.Info(tghelpers.BuildContext(c), component, "welcome.capture",
			slog.String("status", "skip"),
			slog.String("cause", "no_channel"),
			slog.String("path", field),
		)
		return tghelpers.SendText(c, msgNoChannel)
	}
	return fmt.Errorf("set %s: %w", field, err)
}
