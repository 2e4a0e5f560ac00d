package utils

import (
	"fmt"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
)

// createPingCommand creates the /ping command
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Comprueba la latencia del bot",
		"utils",
		pingHandler,
	)
}

// pingHandler handles the /ping command
func pingHandler(ctx *discord.CommandContext) error {
	go func() {
		defer discord.RecoverReply(ctx)()
		latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
		ctx.Reply(fmt.Sprintf("🏓 Pong! Latencia: %dms", latency))
	}()
	return nil
}
