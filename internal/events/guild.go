// Package events provides event handlers for guild (server) events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/errors"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildCreate)
	client.Session.AddHandler(onGuildDelete)
}

// onGuildCreate is called when the bot joins a server
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	defer errors.RecoverMiddleware()()

	// GuildCreate también llega por cada guild al conectar; solo nos
	// interesan las altas nuevas.
	if g.JoinedAt.Compare(time.Now().Add(-10*time.Second)) < 0 {
		return
	}

	logger.Info(fmt.Sprintf("➕ Bot agregado a servidor: %s (ID: %s)", g.Name, g.ID), "Guild")
	logger.Debug(fmt.Sprintf("   Miembros: %d | Canales: %d", g.MemberCount, len(g.Channels)), "Guild")

	// Enviar mensaje de bienvenida al canal del sistema
	if g.SystemChannelID != "" {
		welcomeEmbed := &discordgo.MessageEmbed{
			Title:       "¡Gracias por agregarme! 🎉",
			Description: "Hola, soy **ModBot**. Registro advertencias y genero reportes de moderación. Usa `/help` para ver todos mis comandos.",
			Color:       0x00FF00,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "🛡️ Moderación",
					Value:  "Advierte usuarios con `/warn`",
					Inline: true,
				},
				{
					Name:   "📊 Reportes",
					Value:  "Consulta `/warnings` y `/stats`",
					Inline: true,
				},
				{
					Name:   "❓ Ayuda",
					Value:  "Usa `/help` para más información",
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "¡Disfruta de ModBot!",
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		if _, err := s.ChannelMessageSendEmbed(g.SystemChannelID, welcomeEmbed); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo enviar el mensaje de bienvenida en %s: %v", g.ID, err), "Guild")
		}
	}
}

// onGuildDelete is called when the bot leaves a server
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		logger.Warn(fmt.Sprintf("⚠️ Servidor no disponible: %s", g.ID), "Guild")
		return
	}
	logger.Info(fmt.Sprintf("➖ Bot removido del servidor: %s", g.ID), "Guild")
}
