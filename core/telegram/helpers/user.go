package helpers

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// FullName joins first and last name the way Telegram clients display them.
func FullName(u *tele.User) string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// ChatFullName is FullName for private chats returned by getChat.
func ChatFullName(c *tele.Chat) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}
