package dev

import (
	"testing"
)

// TestDebugCommandIsDevOnly verifies /debug stays out of the global command set
func TestDebugCommandIsDevOnly(t *testing.T) {
	cmd := createDebugCommand()

	if cmd.Name != "debug" {
		t.Errorf("Name = %v, want %v", cmd.Name, "debug")
	}

	if !cmd.IsDev {
		t.Error("/debug must be registered as a dev command")
	}

	if cmd.GuildOnly {
		t.Error("/debug carries no guild requirement of its own; dev-guild registration already scopes it")
	}
}
