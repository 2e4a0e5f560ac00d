// Package events provides a registry for organizing bot events.
// Events are organized by category (ready, guild, etc.)
package events

import (
	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
// Add your event registration calls here
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
