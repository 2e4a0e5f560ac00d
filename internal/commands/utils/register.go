// Package utils provides utility commands for the bot.
package utils

import (
	"github.com/PancyStudios/ModBotGo/pkg/discord"
)

// RegisterUtilCommands registers all utility commands
func RegisterUtilCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createPingCommand())
	client.CommandHandler.RegisterCommand(createStatusCommand())
	client.CommandHandler.RegisterCommand(createHelpCommand())
}
