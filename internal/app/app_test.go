package app

import (
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/joingate/core/config"
	tg "github.com/m3rciful/joingate/core/telegram"
	"github.com/m3rciful/joingate/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

type nopAPI struct{}

func (nopAPI) ChatByID(int64) (*tele.Chat, error)        { return &tele.Chat{}, nil }
func (nopAPI) ChatByUsername(string) (*tele.Chat, error) { return &tele.Chat{}, nil }
func (nopAPI) ChatMemberOf(_, _ tele.Recipient) (*tele.ChatMember, error) {
	return &tele.ChatMember{Role: tele.Administrator}, nil
}
func (nopAPI) ApproveJoinRequest(tele.Recipient, *tele.User) error { return nil }
func (nopAPI) Send(tele.Recipient, interface{}, ...interface{}) (*tele.Message, error) {
	return &tele.Message{}, nil
}

func testApp(t *testing.T) *App {
	cfg := &coreconfig.Config{}
	cfg.Telegram.AdminID = 42
	return New(cfg, store.Open(filepath.Join(t.TempDir(), "bot_config.json")))
}

func TestRoutesCoverEveryEndpoint(t *testing.T) {
	a := testApp(t)
	reg := tg.NewRegistry()
	routes, err := a.Routes(nopAPI{}, &tele.User{ID: 1, Username: "gate_bot"}, reg)
	require.NoError(t, err)

	endpoints := make(map[interface{}]bool)
	for _, r := range routes {
		endpoints[r.Endpoint] = true
	}
	for _, ep := range []interface{}{
		"/start", "/channelinfo", "/addchannel", "/removechannel", "/setwelcometext", "/setwelcomepic",
		tele.OnText, tele.OnPhoto, tele.OnChatJoinRequest,
	} {
		assert.True(t, endpoints[ep], "missing %v", ep)
	}
	assert.Len(t, reg.ListCommands(true), 6)
}

func TestRoutesRequireSelf(t *testing.T) {
	_, err := testApp(t).Routes(nopAPI{}, nil, tg.NewRegistry())
	assert.Error(t, err)
}

func TestTelegramRunOptions(t *testing.T) {
	opts, err := testApp(t).TelegramRunOptions()
	require.NoError(t, err)
	assert.NotNil(t, opts.BuildRoutes)
	assert.NotNil(t, opts.Registry)
	assert.NotEmpty(t, opts.Middlewares)

	_, err = (&App{}).TelegramRunOptions()
	assert.Error(t, err)
}
