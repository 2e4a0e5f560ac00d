// Package mod provides moderation commands.
// Each command is in its own file for better organization.
package mod

import (
	"github.com/PancyStudios/ModBotGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands
func RegisterModCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createWarnCommand())
	client.CommandHandler.RegisterCommand(createWarningsCommand())
	client.CommandHandler.RegisterCommand(createStatsCommand())
}
