package dev

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/config"
	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/PancyStudios/ModBotGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

// createDebugCommand creates the /debug command
func createDebugCommand() *discord.Command {
	return discord.NewCommand(
		"debug",
		"Muestra información interna del bot",
		"dev",
		debugHandler,
	).AsDev()
}

// debugHandler handles the /debug command
func debugHandler(ctx *discord.CommandContext) error {
	go func() {
		defer discord.RecoverReply(ctx)()

		dbCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		dbLatency := "sin conexión"
		if st := store.Get(); st != nil {
			if latency, err := st.Ping(dbCtx); err == nil {
				dbLatency = fmt.Sprintf("%dms", latency.Milliseconds())
			}
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		uptime := time.Since(ctx.Client.StartTime).Round(time.Second)

		embed := &discordgo.MessageEmbed{
			Title: "🔧 Debug",
			Color: 0x808080, // Grey
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "Uptime",
					Value:  uptime.String(),
					Inline: true,
				},
				{
					Name:   "Servidores",
					Value:  fmt.Sprintf("%d", ctx.Client.GuildCount()),
					Inline: true,
				},
				{
					Name:   "Goroutines",
					Value:  fmt.Sprintf("%d", runtime.NumGoroutine()),
					Inline: true,
				},
				{
					Name:   "Memoria en uso",
					Value:  fmt.Sprintf("%d MiB", mem.Alloc/1024/1024),
					Inline: true,
				},
				{
					Name:   "Latencia DB",
					Value:  dbLatency,
					Inline: true,
				},
				{
					Name:   "Versión",
					Value:  config.Version,
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 - Developed by PancyStudios",
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Error enviando información de debug: %v", err), "CMD-Debug")
		}
	}()
	return nil
}
