package commands

import "testing"

func TestHelpLine(t *testing.T) {
	cmd := Command{Description: "Manage a channel", Usage: "<channel_id>"}
	if got := cmd.HelpLine("/addchannel"); got != "/addchannel <channel_id> - Manage a channel" {
		t.Fatalf("HelpLine = %q", got)
	}
	cmd.Usage = ""
	if got := cmd.HelpLine("/start"); got != "/start - Manage a channel" {
		t.Fatalf("HelpLine without usage = %q", got)
	}
}
