package mod

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/PancyStudios/ModBotGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

const (
	statsTopN       = 5
	statsWindowDays = 7
)

// createStatsCommand creates the /stats command
func createStatsCommand() *discord.Command {
	return discord.NewCommand(
		"stats",
		"Muestra estadísticas de moderación del servidor",
		"mod",
		statsHandler,
	).RequiresGuild()
}

// statsHandler handles the /stats command
func statsHandler(ctx *discord.CommandContext) error {
	go func() {
		defer discord.RecoverReply(ctx)()

		// Tres consultas de agregación; deferimos para no agotar la ventana
		// de respuesta de la interacción.
		if err := ctx.DeferEphemeral(); err != nil {
			logger.Error(fmt.Sprintf("Error difiriendo respuesta de /stats: %v", err), "CMD-Stats")
			return
		}

		guildID := ctx.Interaction.GuildID

		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := store.Get()

		summary, err := db.Summary(dbCtx, guildID, statsTopN)
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando resumen del guild: %v", err), "CMD-Stats")
			ctx.EditReply("❌ Algo salió mal al ejecutar el comando.")
			return
		}

		perMod, err := db.WarningsPerModerator(dbCtx, guildID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando advertencias por moderador: %v", err), "CMD-Stats")
			ctx.EditReply("❌ Algo salió mal al ejecutar el comando.")
			return
		}

		perDay, err := db.WarningsPerDay(dbCtx, guildID, statsWindowDays)
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando advertencias por día: %v", err), "CMD-Stats")
			ctx.EditReply("❌ Algo salió mal al ejecutar el comando.")
			return
		}

		guildName := guildID
		if g := ctx.Guild(); g != nil {
			guildName = g.Name
		}

		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf("📊 Estadísticas de moderación — %s", guildName),
			Color: 0x3498DB, // Blue
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "Advertencias totales",
					Value:  fmt.Sprintf("%d", summary.TotalWarnings),
					Inline: true,
				},
				{
					Name:   "Usuarios advertidos",
					Value:  fmt.Sprintf("%d", summary.UniqueUsersWarned),
					Inline: true,
				},
				{
					Name:   "Top usuarios advertidos",
					Value:  formatTopUsers(summary.TopUsers),
					Inline: false,
				},
				{
					Name:   "Advertencias por moderador",
					Value:  formatModerators(perMod),
					Inline: false,
				},
				{
					Name:   fmt.Sprintf("Advertencias por día (últimos %d días)", statsWindowDays),
					Value:  formatDays(perDay),
					Inline: false,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 - Developed by PancyStudios",
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		if err := ctx.EditReplyEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error enviando estadísticas: %v", err), "CMD-Stats")
		}
	}()
	return nil
}

// formatTopUsers renders the top-user leaderboard section
func formatTopUsers(rows []store.UserCount) string {
	if len(rows) == 0 {
		return "Sin advertencias registradas."
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("<@%s> — %d advertencia(s)", row.UserID, row.WarningCount))
	}
	return strings.Join(lines, "\n")
}

// formatModerators renders the per-moderator section
func formatModerators(rows []store.ModeratorCount) string {
	if len(rows) == 0 {
		return "Sin advertencias registradas."
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("<@%s> — %d advertencia(s)", row.ModeratorID, row.WarningCount))
	}
	return strings.Join(lines, "\n")
}

// formatDays renders the per-day section
func formatDays(rows []store.DayCount) string {
	if len(rows) == 0 {
		return "Sin advertencias esta semana."
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("`%s`: %d advertencia(s)", row.Day, row.Count))
	}
	return strings.Join(lines, "\n")
}
