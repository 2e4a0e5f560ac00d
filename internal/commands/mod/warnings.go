package mod

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/PancyStudios/ModBotGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

const recentWarningsLimit = 10

// createWarningsCommand creates the /warnings command
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"Lista de advertencias recientes de un usuario",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
			Required:    true,
		},
	).RequiresGuild()
}

// warningsHandler handles the /warnings command. Only guild context is
// required; any member can look up another member's list.
func warningsHandler(ctx *discord.CommandContext) error {
	go func() {
		defer discord.RecoverReply(ctx)()

		targetUser := ctx.GetUserOption("usuario")
		if targetUser == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}

		dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := store.Get().RecentWarnings(dbCtx, targetUser.ID, ctx.Interaction.GuildID, recentWarningsLimit)
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando advertencias: %v", err), "CMD-Warnings")
			ctx.ReplyEphemeral("❌ Algo salió mal al ejecutar el comando.")
			return
		}

		if len(rows) == 0 {
			ctx.ReplyEphemeral(fmt.Sprintf("✅ %s no tiene advertencias registradas en este servidor.", targetUser.Mention()))
			return
		}

		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf("🔖 Advertencias de %s (%s)", targetUser.Username, targetUser.ID),
			Color: 0xFFD700, // Gold
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 - Developed by PancyStudios",
			},
		}

		for _, warn := range rows {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: fmt.Sprintf("Advertencia #%d", warn.ID),
				Value: fmt.Sprintf("> **Razón:** %s\n> **Moderador:** <@%s>\n> **Fecha:** <t:%d>",
					warn.Reason,
					warn.ModeratorID,
					warn.Timestamp,
				),
				Inline: false,
			})
		}

		embed.Description = fmt.Sprintf("> 💫 - **Cantidad de advertencias:** %d\n> 🕒 - **Fecha de consulta:** <t:%d>",
			len(rows), time.Now().Unix())

		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error enviando lista de advertencias: %v", err), "CMD-Warnings")
		}
	}()
	return nil
}
