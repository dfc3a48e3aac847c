package gate

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tg "github.com/m3rciful/joingate/core/telegram"
	"github.com/m3rciful/joingate/core/telegram/router"
	"github.com/m3rciful/joingate/core/telegram/state"
	"github.com/m3rciful/joingate/core/telegram/teletest"
	"github.com/m3rciful/joingate/internal/store"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

const adminID int64 = 4242

var (
	adminUser = &tele.User{ID: adminID, FirstName: "Ada", LastName: "Admin"}
	botUser   = &tele.User{ID: 999, FirstName: "Gate", Username: "join_gate_bot", IsBot: true}
	bob       = &tele.User{ID: 777, FirstName: "Bob"}
	eve       = &tele.User{ID: 666, FirstName: "Eve"}
	fixedNow  = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	errTransport = errors.New("telegram: Bad Request: chat not found (400)")
)

type approval struct {
	chatID int64
	userID int64
}

type delivery struct {
	to   string
	what interface{}
}

// fakeAPI records every Bot API call made by the gate.
type fakeAPI struct {
	mu sync.Mutex

	chats      map[int64]*tele.Chat
	usernames  map[string]*tele.Chat
	lookupErr  error
	role       tele.MemberStatus
	memberErr  error
	approveErr error
	sendErr    error

	calls     int
	approvals []approval
	sent      []delivery
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		chats: map[int64]*tele.Chat{
			adminID: {ID: adminID, Type: tele.ChatPrivate, FirstName: "Ada", LastName: "Admin"},
		},
		usernames: map[string]*tele.Chat{},
		role:      tele.Administrator,
	}
}

func (f *fakeAPI) addChannel(ch *tele.Chat) {
	f.chats[ch.ID] = ch
	if ch.Username != "" {
		f.usernames["@"+ch.Username] = ch
	}
}

func (f *fakeAPI) ChatByID(id int64) (*tele.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if ch, ok := f.chats[id]; ok {
		return ch, nil
	}
	return nil, errTransport
}

func (f *fakeAPI) ChatByUsername(name string) (*tele.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if ch, ok := f.usernames[name]; ok {
		return ch, nil
	}
	return nil, errTransport
}

func (f *fakeAPI) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	u, _ := user.(*tele.User)
	return &tele.ChatMember{User: u, Role: f.role}, nil
}

func (f *fakeAPI) ApproveJoinRequest(chat tele.Recipient, user *tele.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.approveErr != nil {
		return f.approveErr
	}
	ch, _ := chat.(*tele.Chat)
	f.approvals = append(f.approvals, approval{chatID: ch.ID, userID: user.ID})
	return nil
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, delivery{to: to.Recipient(), what: what})
	return &tele.Message{}, nil
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// harness routes updates through the same registry and routers as the bot.
type harness struct {
	t      *testing.T
	gate   *Gate
	api    *fakeAPI
	store  *store.Store
	routes map[interface{}]tele.HandlerFunc
	update int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := newFakeAPI()
	st := store.Open(filepath.Join(t.TempDir(), "bot_config.json"))
	g, err := New(Options{
		AdminID: adminID,
		Self:    botUser,
		API:     api,
		Store:   st,
		Tracker: state.NewMemoryTracker(),
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	reg := tg.NewRegistry()
	g.Register(reg)
	var routes []tg.Route
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{AdminID: adminID, OnAdminReject: g.Deny})...)
	routes = append(routes, router.MessageRoutes(g, reg, router.MessageOptions{AdminID: adminID, OnAdminReject: g.Deny})...)
	routes = append(routes, router.JoinRequestRoutes(g)...)

	h := &harness{t: t, gate: g, api: api, store: st, routes: make(map[interface{}]tele.HandlerFunc)}
	for _, r := range routes {
		h.routes[r.Endpoint] = r.Handler
	}
	return h
}

// dispatch picks the endpoint the way telebot does and runs its handler.
func (h *harness) dispatch(c *teletest.Context) *teletest.Context {
	h.t.Helper()
	var endpoint interface{}
	switch {
	case c.Upd.ChatJoinRequest != nil:
		endpoint = tele.OnChatJoinRequest
	case c.Upd.Message != nil && c.Upd.Message.Photo != nil:
		endpoint = tele.OnPhoto
	default:
		endpoint = tele.OnText
		if fields := strings.Fields(c.Text()); len(fields) > 0 {
			if _, ok := h.routes[fields[0]]; ok {
				endpoint = fields[0]
			}
		}
	}
	handler, ok := h.routes[endpoint]
	require.True(h.t, ok, "no route for %v", endpoint)
	require.NoError(h.t, handler(c))
	return c
}

func (h *harness) nextID() int {
	h.update++
	return h.update
}

func (h *harness) text(from *tele.User, text string) *teletest.Context {
	return h.dispatch(teletest.TextMessage(h.nextID(), from, text))
}

func (h *harness) photo(from *tele.User, fileID string) *teletest.Context {
	return h.dispatch(teletest.PhotoMessage(h.nextID(), from, fileID))
}

func (h *harness) join(chatID int64, from *tele.User) *teletest.Context {
	chat := &tele.Chat{ID: chatID, Type: tele.ChatChannel}
	return h.dispatch(teletest.JoinRequest(h.nextID(), chat, from))
}

// withChannel configures channel 123 "News" through /addchannel.
func (h *harness) withChannel() {
	h.t.Helper()
	h.api.addChannel(&tele.Chat{ID: 123, Type: tele.ChatChannel, Title: "News", Username: "news"})
	h.text(adminUser, "/addchannel 123")
	require.NotNil(h.t, h.store.Snapshot().Channel)
}
