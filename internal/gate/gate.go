// Package gate implements the admin commands, the pending-input capture and
// the join request approval flow of the channel gatekeeper.
package gate

import (
	"errors"
	"time"

	tg "github.com/m3rciful/joingate/core/telegram"
	"github.com/m3rciful/joingate/core/telegram/commands"
	"github.com/m3rciful/joingate/core/telegram/state"
	"github.com/m3rciful/joingate/internal/store"

	tele "gopkg.in/telebot.v4"
)

// API is the subset of *tele.Bot the gate calls.
type API interface {
	ChatByID(id int64) (*tele.Chat, error)
	ChatByUsername(name string) (*tele.Chat, error)
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
	ApproveJoinRequest(chat tele.Recipient, user *tele.User) error
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Options wires a Gate.
type Options struct {
	AdminID int64
	// Self is the bot account, used for the membership check on /addchannel.
	Self    *tele.User
	API     API
	Store   *store.Store
	Tracker state.Tracker
	// Now is overridable in tests.
	Now func() time.Time
}

// Gate handles every update the bot reacts to.
type Gate struct {
	adminID int64
	self    *tele.User
	api     API
	store   *store.Store
	tracker state.Tracker
	now     func() time.Time
	reg     *tg.Registry
}

const component = "gate"

// New validates opts and builds a Gate.
func New(opts Options) (*Gate, error) {
	switch {
	case opts.AdminID == 0:
		return nil, errors.New("gate: admin id is required")
	case opts.Self == nil:
		return nil, errors.New("gate: bot user is required")
	case opts.API == nil:
		return nil, errors.New("gate: api is required")
	case opts.Store == nil:
		return nil, errors.New("gate: store is required")
	}
	tracker := opts.Tracker
	if tracker == nil {
		tracker = state.NewMemoryTracker()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Gate{
		adminID: opts.AdminID,
		self:    opts.Self,
		api:     opts.API,
		store:   opts.Store,
		tracker: tracker,
		now:     now,
	}, nil
}

// Register adds the admin commands to reg.
func (g *Gate) Register(reg *tg.Registry) {
	g.reg = reg
	reg.RegisterCommand("/start", commands.Command{
		Handler:     g.Start,
		Description: "Show help",
		AdminOnly:   true,
		Aliases:     []string{"help"},
	})
	reg.RegisterCommand("/channelinfo", commands.Command{
		Handler:     g.ChannelInfo,
		Description: "Show the managed channel and welcome settings",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/addchannel", commands.Command{
		Handler:     g.AddChannel,
		Description: "Manage a channel",
		Usage:       "<channel_id or @username>",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/removechannel", commands.Command{
		Handler:     g.RemoveChannel,
		Description: "Stop managing the channel",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/setwelcometext", commands.Command{
		Handler:     g.SetWelcomeText,
		Description: "Set the welcome text ({user}, {channel})",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/setwelcomepic", commands.Command{
		Handler:     g.SetWelcomePic,
		Description: "Set the welcome photo",
		AdminOnly:   true,
	})
}

// Deny answers a non-admin sender of an admin command.
func (g *Gate) Deny(c tele.Context) error {
	return c.Send(msgDenied)
}

func (g *Gate) isAdmin(c tele.Context) bool {
	sender := c.Sender()
	return sender != nil && sender.ID == g.adminID
}
