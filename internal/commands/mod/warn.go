// Package mod - /warn command
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

// createWarnCommand creates the /warn command
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia",
			Required:    true,
		},
	).RequiresGuild().WithUserPermissions(discordgo.PermissionModerateMembers)
}

// warnHandler handles the /warn command. Guild context and the Moderate
// Members permission are already enforced by the dispatch pipeline.
func warnHandler(ctx *discord.CommandContext) error {
	go func() {
		defer discord.RecoverReply(ctx)()

		user := ctx.GetUserOption("usuario")
		if user == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}

		reason := ctx.GetStringOption("razon")
		if reason == "" {
			ctx.ReplyEphemeral("❌ Debes especificar una razón.")
			return
		}

		// La escritura no se ata a la interacción: si el que invoca se
		// desconecta antes de ver la confirmación, la advertencia queda
		// registrada igual.
		dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		id, err := store.Get().AddWarning(dbCtx, user.ID, ctx.User().ID, ctx.Interaction.GuildID, reason)
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando advertencia: %v", err), "CMD-Warn")
			ctx.ReplyEphemeral("❌ Algo salió mal al ejecutar el comando.")
			return
		}

		embed := &discordgo.MessageEmbed{
			Title:       "⚠️ Usuario advertido",
			Description: fmt.Sprintf("%s ha sido advertido.", user.Mention()),
			Color:       0xFFA500, // Orange
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "Razón",
					Value:  reason,
					Inline: false,
				},
				{
					Name:   "Moderador",
					Value:  ctx.User().Mention(),
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("ID de usuario: %s | Advertencia #%d", user.ID, id),
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		if err := ctx.ReplyEmbed(embed); err != nil {
			// La advertencia ya está persistida; solo falló la confirmación
			logger.Error(fmt.Sprintf("Error enviando confirmación de /warn: %v", err), "CMD-Warn")
		}
	}()
	return nil
}
