package router

import (
	"time"

	tg "github.com/m3rciful/joingate/core/telegram"
	"github.com/m3rciful/joingate/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// JoinRequestHandler reacts to chat_join_request updates.
type JoinRequestHandler interface {
	HandleJoinRequest(c tele.Context) error
}

// JoinRequestRoutes binds the join request handler. Join requests come from
// arbitrary users, so no admin check is applied.
func JoinRequestRoutes(h JoinRequestHandler) []tg.Route {
	if h == nil {
		return nil
	}
	handler := func(c tele.Context) error {
		return handleWithSummary(c, "join_request", time.Now(), "", "", func() error {
			return h.HandleJoinRequest(c)
		})
	}
	return []tg.Route{{
		Endpoint: tele.OnChatJoinRequest,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}}
}
