package gate

import (
	"testing"

	"github.com/m3rciful/joingate/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func TestJoinIgnoredWithoutChannel(t *testing.T) {
	h := newHarness(t)
	h.join(123, bob)
	assert.Zero(t, h.api.callCount())
}

func TestJoinIgnoredForOtherChat(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	require.NoError(t, h.store.SetWelcomeText("Hi"))
	calls := h.api.callCount()

	h.join(-100999, bob)
	assert.Equal(t, calls, h.api.callCount())
	assert.Empty(t, h.api.approvals)
}

func TestJoinApproveFailureSkipsWelcome(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	require.NoError(t, h.store.SetWelcomeText("Hi"))
	h.api.approveErr = errTransport

	h.join(123, bob)
	assert.Empty(t, h.api.sent)
}

func TestJoinWithoutTextSendsNothing(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	require.NoError(t, h.store.SetWelcomePic("AgAC"))

	h.join(123, bob)
	assert.Len(t, h.api.approvals, 1)
	assert.Empty(t, h.api.sent, "a photo is never sent without text")
}

func TestJoinSendsCaptionedPhoto(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	require.NoError(t, h.store.SetWelcomeText("Hello {user}, welcome to {channel}"))
	require.NoError(t, h.store.SetWelcomePic("AgAC-pic"))

	h.join(123, &tele.User{ID: 31, FirstName: "Ada", LastName: "Lovelace"})
	require.Len(t, h.api.sent, 1)
	photo, ok := h.api.sent[0].what.(*tele.Photo)
	require.True(t, ok)
	assert.Equal(t, "AgAC-pic", photo.FileID)
	assert.Equal(t, "Hello Ada Lovelace, welcome to News", photo.Caption)
	assert.Equal(t, "31", h.api.sent[0].to)
}

func TestJoinDeliveryFailureIsSwallowed(t *testing.T) {
	h := newHarness(t)
	h.withChannel()
	require.NoError(t, h.store.SetWelcomeText("Hi"))
	h.api.sendErr = errTransport

	h.join(123, bob)
	assert.Len(t, h.api.approvals, 1, "approval stands when delivery fails")
}

func TestCompose(t *testing.T) {
	cases := []struct {
		template, user, channel, want string
	}{
		{"Hi {user}, welcome to {channel}!", "Ada Lovelace", "Analytics Engine", "Hi Ada Lovelace, welcome to Analytics Engine!"},
		{"Hello {user}, welcome to {channel}", "Ada Lovelace", "Analytics Engine", "Hello Ada Lovelace, welcome to Analytics Engine"},
		{"{user} {user}", "Bob", "News", "Bob Bob"},
		{"{User} {chan} {}", "Bob", "News", "{User} {chan} {}"},
		{"plain", "Bob", "News", "plain"},
		{"Hi {user}", "*Bob*_", "News", "Hi *Bob*_"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Compose(tc.template, tc.user, tc.channel), tc.template)
	}
}

func TestBuildWelcome(t *testing.T) {
	ch := &store.Channel{ID: "123", Title: "News"}
	_, ok := BuildWelcome(store.Configuration{Channel: ch, WelcomePic: "AgAC"}, "Bob")
	assert.False(t, ok)

	w, ok := BuildWelcome(store.Configuration{Channel: ch, WelcomeText: "Hi {user}"}, "Bob")
	require.True(t, ok)
	assert.Equal(t, "Hi Bob", w.Sendable())
}
