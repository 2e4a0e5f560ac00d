package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/store"
)

// createStatusCommand creates the /status command
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer discord.RecoverReply(ctx)()

		dbCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		dbStatus := "🟢 | En linea"
		if _, err := store.Get().Ping(dbCtx); err != nil {
			dbStatus = "🔴 | Desconectado"
		}

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado del Bot**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• Servidores: %d",
			dbStatus,
			ctx.Client.GuildCount(),
		))
	}()
	return nil
}
