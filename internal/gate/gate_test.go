package gate

import (
	"fmt"
	"testing"

	"github.com/m3rciful/joingate/core/telegram/state"
	"github.com/m3rciful/joingate/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func TestJoinFlowScenario(t *testing.T) {
	h := newHarness(t)
	h.api.addChannel(&tele.Chat{ID: 123, Type: tele.ChatChannel, Title: "News"})

	c := h.text(adminUser, "/addchannel 123")
	assert.Contains(t, c.LastText(), "News (123)")
	cfg := h.store.Snapshot()
	require.NotNil(t, cfg.Channel)
	assert.Equal(t, "123", cfg.Channel.ID)
	assert.Equal(t, "News", cfg.Channel.Title)
	assert.Nil(t, cfg.Channel.Username)
	assert.Equal(t, fixedNow, cfg.Channel.AddedAt)

	c = h.text(adminUser, "/setwelcometext")
	assert.Contains(t, c.LastText(), "{user}")
	assert.Contains(t, c.LastText(), "{channel}")
	h.text(adminUser, "Welcome {user}!")
	assert.Equal(t, "Welcome {user}!", h.store.Snapshot().WelcomeText)

	h.join(123, bob)
	assert.Equal(t, []approval{{chatID: 123, userID: bob.ID}}, h.api.approvals)
	require.Len(t, h.api.sent, 1)
	assert.Equal(t, "777", h.api.sent[0].to)
	assert.Equal(t, "Welcome Bob!", h.api.sent[0].what)
}

func TestNonAdminIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	require.NoError(t, h.store.SetWelcomeText("Hi {user}"))
	before := h.store.Snapshot()
	calls := h.api.callCount()

	for _, cmd := range []string{"/start", "/channelinfo", "/addchannel -100999", "/removechannel", "/setwelcometext", "/setwelcomepic", "/help"} {
		c := h.text(eve, cmd)
		assert.Equal(t, msgDenied, c.LastText(), cmd)
		assert.Len(t, c.Replies(), 1, cmd)
	}
	assert.Empty(t, h.text(eve, "Hijacked {user}").Replies())
	assert.Empty(t, h.photo(eve, "AgAC-evil").Replies())

	assert.Equal(t, before, h.store.Snapshot())
	assert.Equal(t, calls, h.api.callCount(), "no transport call for non-admins")
}

func TestAddChannelTwiceKeepsOriginal(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	original := h.store.Snapshot().Channel
	h.api.addChannel(&tele.Chat{ID: 456, Type: tele.ChatChannel, Title: "Other"})

	c := h.text(adminUser, "/addchannel 456")
	assert.Equal(t, fmt.Sprintf(msgChannelExists, "News"), c.LastText())
	assert.Equal(t, original, h.store.Snapshot().Channel)
	assert.Equal(t, original, store.Load(h.store.Path()).Channel)
}

func TestAddChannelValidation(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*fakeAPI)
		cmd   string
		reply string
	}{
		{name: "missing id", cmd: "/addchannel", reply: msgAddUsage},
		{name: "bad id", cmd: "/addchannel news", reply: fmt.Sprintf(msgBadChannelID, "news")},
		{name: "unknown chat", cmd: "/addchannel -100555", reply: msgLookupFailed},
		{
			name:  "lookup transport failure",
			setup: func(f *fakeAPI) { f.lookupErr = errTransport },
			cmd:   "/addchannel 123",
			reply: msgLookupFailed,
		},
		{
			name:  "membership failure",
			setup: func(f *fakeAPI) { f.memberErr = errTransport },
			cmd:   "/addchannel 123",
			reply: msgMemberFailed,
		},
		{
			name:  "bot is a plain member",
			setup: func(f *fakeAPI) { f.role = tele.Member },
			cmd:   "/addchannel 123",
			reply: fmt.Sprintf(msgBotNotAdmin, "News"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.api.addChannel(&tele.Chat{ID: 123, Type: tele.ChatChannel, Title: "News"})
			if tc.setup != nil {
				tc.setup(h.api)
			}
			c := h.text(adminUser, tc.cmd)
			assert.Equal(t, tc.reply, c.LastText())
			assert.Nil(t, h.store.Snapshot().Channel)
		})
	}
}

func TestAddChannelCreatorAndUsername(t *testing.T) {
	h := newHarness(t)
	h.api.role = tele.Creator
	h.api.addChannel(&tele.Chat{ID: -1001234567890, Type: tele.ChatChannel, Title: "Analytics Engine", Username: "engine"})

	h.text(adminUser, "/addchannel @engine")
	ch := h.store.Snapshot().Channel
	require.NotNil(t, ch)
	assert.Equal(t, "-1001234567890", ch.ID)
	require.NotNil(t, ch.Username)
	assert.Equal(t, "engine", *ch.Username)

	h.join(-1001234567890, bob)
	assert.Len(t, h.api.approvals, 1, "join requests match the numeric id")
}

func TestRemoveChannel(t *testing.T) {
	h := newHarness(t)
	c := h.text(adminUser, "/removechannel")
	assert.Equal(t, msgNothingToRemove, c.LastText())

	h.withChannel()
	require.NoError(t, h.store.SetWelcomeText("Hi"))
	require.NoError(t, h.store.SetWelcomePic("AgAC"))
	h.text(adminUser, "/setwelcometext")

	c = h.text(adminUser, "/removechannel")
	assert.Equal(t, fmt.Sprintf(msgChannelRemoved, "News"), c.LastText())
	assert.Equal(t, store.Configuration{}, h.store.Snapshot())
	assert.Equal(t, store.Configuration{}, store.Load(h.store.Path()))

	c = h.text(adminUser, "/channelinfo")
	assert.Equal(t, msgNoChannel, c.LastText())

	h.join(123, bob)
	assert.Empty(t, h.api.approvals, "residual requests for the removed channel are ignored")
}

func TestSetWelcomeRequiresChannel(t *testing.T) {
	h := newHarness(t)
	for _, cmd := range []string{"/setwelcometext", "/setwelcomepic"} {
		c := h.text(adminUser, cmd)
		assert.Equal(t, msgNoChannel, c.LastText())
	}
	assert.Equal(t, state.Idle, h.gate.tracker.Current(adminID))
}

func TestCapturePromptUsesForceReply(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	c := h.text(adminUser, "/setwelcomepic")
	replies := c.Replies()
	require.Len(t, replies, 1)
	require.Len(t, replies[0].Opts, 1)
	markup, ok := replies[0].Opts[0].(*tele.ReplyMarkup)
	require.True(t, ok)
	assert.True(t, markup.ForceReply)
	assert.Equal(t, state.AwaitingWelcomePic, h.gate.tracker.Current(adminID))
}

func TestStartHelp(t *testing.T) {
	h := newHarness(t)
	c := h.text(adminUser, "/start")
	text := c.LastText()
	assert.Contains(t, text, `@join\_gate\_bot`)
	assert.Contains(t, text, "Ada Admin")
	assert.Contains(t, text, "/addchannel")
	assert.Contains(t, text, "/setwelcomepic")

	h.api.lookupErr = errTransport
	c = h.text(adminUser, "/start")
	assert.Contains(t, c.LastText(), fallbackAdmin)
}

func TestChannelInfo(t *testing.T) {
	h := newHarness(t)
	c := h.text(adminUser, "/channelinfo")
	assert.Equal(t, msgNoChannel, c.LastText())

	h.withChannel()
	c = h.text(adminUser, "/channelinfo")
	text := c.LastText()
	assert.Contains(t, text, "Channel: News")
	assert.Contains(t, text, "ID: 123")
	assert.Contains(t, text, "Username: @news")
	assert.Contains(t, text, "Added: 2026-10-14 09:30 UTC")
	assert.Contains(t, text, "Welcome text: not set")
	assert.Contains(t, text, "Welcome photo: not set")

	require.NoError(t, h.store.SetWelcomeText("Hi"))
	c = h.text(adminUser, "/channelinfo")
	assert.Contains(t, c.LastText(), "Welcome text: set")
}

func TestNewValidatesOptions(t *testing.T) {
	st := store.Open(t.TempDir() + "/bot_config.json")
	api := newFakeAPI()
	cases := []Options{
		{Self: botUser, API: api, Store: st},
		{AdminID: adminID, API: api, Store: st},
		{AdminID: adminID, Self: botUser, Store: st},
		{AdminID: adminID, Self: botUser, API: api},
	}
	for i, opts := range cases {
		_, err := New(opts)
		assert.Error(t, err, "case %d", i)
	}
	g, err := New(Options{AdminID: adminID, Self: botUser, API: api, Store: st})
	require.NoError(t, err)
	assert.NotNil(t, g.tracker)
}
