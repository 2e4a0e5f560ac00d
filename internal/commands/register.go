// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod, etc.)
package commands

import (
	"github.com/PancyStudios/ModBotGo/internal/commands/dev"
	"github.com/PancyStudios/ModBotGo/internal/commands/mod"
	"github.com/PancyStudios/ModBotGo/internal/commands/utils"
	"github.com/PancyStudios/ModBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
// Add your command registration calls here
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands (/ping, /status, /help)
	utils.RegisterUtilCommands(client)

	// Moderation commands (/warn, /warnings, /stats)
	mod.RegisterModCommands(client)

	// Developer commands (/debug), registered only in the dev guild
	dev.RegisterDevCommands(client)
}
