package gate

const (
	msgDenied = "You are not allowed to use this bot."

	msgNoChannel       = "No channel is configured. Add one with /addchannel <channel_id>."
	msgChannelExists   = "A channel is already configured: %s. Remove it with /removechannel first."
	msgAddUsage        = "Usage: /addchannel <channel_id or @username>"
	msgBadChannelID    = "%q is not a channel id. Use the numeric id (for example -1001234567890) or @username."
	msgLookupFailed    = "Could not fetch that channel. Check the id and make sure the bot was added to it."
	msgMemberFailed    = "Could not check the bot's status in that channel. Try again later."
	msgBotNotAdmin     = "The bot is not an administrator of %s. Promote it with the \"Add members\" right and try again."
	msgChannelAdded    = "Channel added: %s (%s).\nNext: /setwelcometext and, optionally, /setwelcomepic."
	msgChannelRemoved  = "Channel %s removed. The welcome text and photo were cleared."
	msgNothingToRemove = "Nothing to remove: no channel is configured."

	msgAskText = "Send the welcome text as your next message.\n" +
		"Placeholders: {user} is replaced with the member's name, {channel} with the channel title."
	msgAskPic     = "Send the welcome photo as your next message. It is delivered with the welcome text as its caption."
	msgTextSaved  = "Welcome text saved. Preview:\n\n%s"
	msgPicSaved   = "Welcome photo saved."
	msgPicNoText  = "Welcome photo saved. Set a welcome text too: the photo is only sent together with it."
	msgNotSet     = "not set"
	msgSet        = "set"
	fallbackAdmin = "the administrator"
)
