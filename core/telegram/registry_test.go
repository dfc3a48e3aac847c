package telegram

import (
	"errors"
	"testing"

	"github.com/m3rciful/joingate/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/addchannel", commands.Command{Handler: noop, Description: "Add channel", AdminOnly: true, Aliases: []string{"add"}})
	reg.RegisterCommand("nostart", commands.Command{Handler: noop, Description: "skipped"})
	reg.RegisterCommand("/empty", commands.Command{Handler: noop})
	reg.RegisterCommand("/addchannel", commands.Command{Handler: noop, Description: "duplicate"})

	if got := len(reg.Commands()); got != 1 {
		t.Fatalf("commands = %d, want 1", got)
	}

	cases := []string{"/addchannel", "/addchannel -100123", "/addchannel@gate_bot -100123", "/add", "addchannel"}
	for _, text := range cases {
		key, cmd, ok := reg.LookupCommand(text)
		if !ok || key != "/addchannel" {
			t.Fatalf("lookup %q = %q, %v", text, key, ok)
		}
		if cmd.Description != "Add channel" {
			t.Fatalf("lookup %q kept duplicate description %q", text, cmd.Description)
		}
	}
	if _, _, ok := reg.LookupCommand("/unknown"); ok {
		t.Fatal("unknown command should not resolve")
	}
	if _, _, ok := reg.LookupCommand("   "); ok {
		t.Fatal("blank text should not resolve")
	}
}

func TestRegistryListCommands(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Help"})
	reg.RegisterCommand("/channelinfo", commands.Command{Handler: noop, Description: "Info"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "Hidden", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 2 || visible[0].Text != "channelinfo" || visible[1].Text != "start" {
		t.Fatalf("visible commands = %+v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 3 {
		t.Fatalf("all commands = %d, want 3", len(all))
	}
}

type fakeCommandSetter struct {
	got []interface{}
	err error
}

func (f *fakeCommandSetter) SetCommands(opts ...interface{}) error {
	f.got = opts
	return f.err
}

func TestSetupCommandsPublishesVisible(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Help"})
	setter := &fakeCommandSetter{}

	SetupCommands(setter, reg)

	if len(setter.got) != 1 {
		t.Fatalf("SetCommands args = %d", len(setter.got))
	}
	list, ok := setter.got[0].([]tele.Command)
	if !ok || len(list) != 1 || list[0].Text != "start" {
		t.Fatalf("published = %#v", setter.got[0])
	}

	setter.err = errors.New("boom")
	SetupCommands(setter, reg)
}
