// Package teletest provides an in-memory tele.Context for handler tests.
package teletest

import (
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Sent records one outgoing reply.
type Sent struct {
	What interface{}
	Opts []interface{}
}

// Text returns the reply body when it was sent as a plain string.
func (s Sent) Text() string {
	text, _ := s.What.(string)
	return text
}

// Context implements the parts of tele.Context used by the bot handlers.
// Calling any other method panics on the nil embedded interface.
type Context struct {
	tele.Context

	Upd     tele.Update
	SendErr error

	mu    sync.Mutex
	sent  []Sent
	store map[string]interface{}
}

// New wraps upd in a Context.
func New(upd tele.Update) *Context {
	return &Context{Upd: upd, store: make(map[string]interface{})}
}

// TextMessage builds a private text message update from user.
func TextMessage(updateID int, from *tele.User, text string) *Context {
	return New(tele.Update{
		ID: updateID,
		Message: &tele.Message{
			Sender: from,
			Chat:   &tele.Chat{ID: from.ID, Type: tele.ChatPrivate},
			Text:   text,
		},
	})
}

// PhotoMessage builds a private photo message update from user.
func PhotoMessage(updateID int, from *tele.User, fileID string) *Context {
	return New(tele.Update{
		ID: updateID,
		Message: &tele.Message{
			Sender: from,
			Chat:   &tele.Chat{ID: from.ID, Type: tele.ChatPrivate},
			Photo:  &tele.Photo{File: tele.File{FileID: fileID}},
		},
	})
}

// JoinRequest builds a chat_join_request update for chat from user.
func JoinRequest(updateID int, chat *tele.Chat, from *tele.User) *Context {
	return New(tele.Update{
		ID:              updateID,
		ChatJoinRequest: &tele.ChatJoinRequest{Chat: chat, Sender: from},
	})
}

func (c *Context) Update() tele.Update {
	return c.Upd
}

func (c *Context) Message() *tele.Message {
	return c.Upd.Message
}

func (c *Context) ChatJoinRequest() *tele.ChatJoinRequest {
	return c.Upd.ChatJoinRequest
}

func (c *Context) Sender() *tele.User {
	switch {
	case c.Upd.Message != nil:
		return c.Upd.Message.Sender
	case c.Upd.ChatJoinRequest != nil:
		return c.Upd.ChatJoinRequest.Sender
	case c.Upd.Callback != nil:
		return c.Upd.Callback.Sender
	}
	return nil
}

func (c *Context) Chat() *tele.Chat {
	switch {
	case c.Upd.Message != nil:
		return c.Upd.Message.Chat
	case c.Upd.ChatJoinRequest != nil:
		return c.Upd.ChatJoinRequest.Chat
	}
	return nil
}

func (c *Context) Text() string {
	if c.Upd.Message == nil {
		return ""
	}
	return c.Upd.Message.Text
}

// Args splits the command payload on whitespace, like telebot does for commands.
func (c *Context) Args() []string {
	fields := strings.Fields(c.Text())
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return fields
	}
	return fields[1:]
}

func (c *Context) Send(what interface{}, opts ...interface{}) error {
	if c.SendErr != nil {
		return c.SendErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, Sent{What: what, Opts: opts})
	return nil
}

func (c *Context) Reply(what interface{}, opts ...interface{}) error {
	return c.Send(what, opts...)
}

func (c *Context) Get(key string) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key]
}

func (c *Context) Set(key string, val interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = val
}

// Replies returns everything sent so far.
func (c *Context) Replies() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sent(nil), c.sent...)
}

// LastText returns the text of the last plain-string reply.
func (c *Context) LastText() string {
	replies := c.Replies()
	if len(replies) == 0 {
		return ""
	}
	return replies[len(replies)-1].Text()
}
