package utils

import (
	"github.com/PancyStudios/ModBotGo/pkg/discord"
)

// createHelpCommand creates the /help command
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer discord.RecoverReply(ctx)()
		ctx.ReplyEphemeral(
			"📖 **Ayuda de ModBot Go**\n\n" +
				"**Comandos disponibles:**\n" +
				"• `/ping` - Comprueba la latencia\n" +
				"• `/status` - Estado del bot\n" +
				"• `/warn <usuario> <razon>` - Advierte a un usuario (requiere Moderar Miembros)\n" +
				"• `/warnings <usuario>` - Lista de advertencias de un usuario\n" +
				"• `/stats` - Estadísticas de moderación del servidor",
		)
	}()
	return nil
}
