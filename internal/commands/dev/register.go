// Package dev provides developer-only commands. They are registered in the
// configured dev guild instead of globally.
package dev

import (
	"github.com/PancyStudios/ModBotGo/pkg/discord"
)

// RegisterDevCommands registers all developer commands
func RegisterDevCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createDebugCommand())
}
