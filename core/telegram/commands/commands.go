package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command is one slash command served by the bot.
type Command struct {
	Handler tele.HandlerFunc
	// Description is shown in the Telegram command menu.
	Description string
	// Usage names the arguments for the help text, e.g. "<channel_id>".
	Usage     string
	AdminOnly bool
	// Hidden commands are routed but left out of the menu and the help text.
	Hidden  bool
	Aliases []string
}

// HelpLine renders "/name usage - description".
func (c Command) HelpLine(name string) string {
	line := name
	if c.Usage != "" {
		line += " " + c.Usage
	}
	return line + " - " + c.Description
}
