// Package main provides a utility to sync Discord slash commands.
// This removes stale commands from Discord and ensures only currently-defined commands are registered.
//
// Usage:
//
//	go run cmd/sync-commands/main.go [options]
//
// Options:
//
//	-list           List all registered commands (global and guild)
//	-clean          Remove all commands without registering new ones
//	-guild <id>     Target a specific guild instead of global commands
//	-sync           Sync commands (remove stale, register current) - default behavior
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/PancyStudios/ModBotGo/internal/commands"
	"github.com/PancyStudios/ModBotGo/pkg/config"
	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
)

func main() {
	// Parse command line flags
	listCmd := flag.Bool("list", false, "List all registered commands")
	cleanCmd := flag.Bool("clean", false, "Remove all commands without registering new ones")
	guildID := flag.String("guild", "", "Target a specific guild (leave empty for global)")
	syncCmd := flag.Bool("sync", false, "Sync commands (remove stale, register current)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando utilidad de sincronización de comandos...", "SyncCommands")

	// Initialize Discord client
	client, err := discord.NewClient(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "SyncCommands")
		os.Exit(1)
	}

	// Open connection to Discord
	if err := client.Session.Open(); err != nil {
		logger.Critical(fmt.Sprintf("Error connecting to Discord: %v", err), "SyncCommands")
		os.Exit(1)
	}
	defer client.Session.Close()

	logger.Success("Conectado a Discord", "SyncCommands")

	// Register commands locally to know what we should have
	commands.RegisterAll(client)

	// Execute the requested action
	switch {
	case *listCmd:
		listCommands(client, *guildID)
	case *cleanCmd:
		cleanCommands(client, *guildID)
	case *syncCmd:
		syncCommands(client, *guildID)
	default:
		// Default: sync commands
		syncCommands(client, *guildID)
	}

	logger.Success("Operación completada exitosamente", "SyncCommands")
}

// listCommands prints the commands currently registered with Discord
func listCommands(client *discord.ExtendedClient, guildID string) {
	registered, err := client.Session.ApplicationCommands(client.Session.State.User.ID, guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error obteniendo comandos: %v", err), "SyncCommands")
		return
	}

	scope := "globales"
	if guildID != "" {
		scope = "del servidor " + guildID
	}
	logger.Info(fmt.Sprintf("Comandos %s registrados: %d", scope, len(registered)), "SyncCommands")

	for _, cmd := range registered {
		logger.Info(fmt.Sprintf("  /%s - %s (ID: %s)", cmd.Name, cmd.Description, cmd.ID), "SyncCommands")
	}
}

// cleanCommands removes every registered command without replacing it
func cleanCommands(client *discord.ExtendedClient, guildID string) {
	if guildID == "" {
		if err := client.CommandHandler.UnregisterCommands(); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando comandos globales: %v", err), "SyncCommands")
		}
		return
	}

	registered, err := client.Session.ApplicationCommands(client.Session.State.User.ID, guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error obteniendo comandos: %v", err), "SyncCommands")
		return
	}

	for _, cmd := range registered {
		if err := client.Session.ApplicationCommandDelete(client.Session.State.User.ID, guildID, cmd.ID); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando comando %s: %v", cmd.Name, err), "SyncCommands")
			continue
		}
		logger.Info("Comando eliminado: "+cmd.Name, "SyncCommands")
	}
}

// syncCommands removes stale commands and registers the current set
func syncCommands(client *discord.ExtendedClient, guildID string) {
	current := make(map[string]bool)
	for _, cmd := range client.CommandHandler.SlashCommands() {
		current[cmd.Name] = true
	}

	registered, err := client.Session.ApplicationCommands(client.Session.State.User.ID, guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error obteniendo comandos: %v", err), "SyncCommands")
		return
	}

	// Remove commands Discord knows about that we no longer define
	for _, cmd := range registered {
		if !current[cmd.Name] {
			if err := client.Session.ApplicationCommandDelete(client.Session.State.User.ID, guildID, cmd.ID); err != nil {
				logger.Error(fmt.Sprintf("Error eliminando comando obsoleto %s: %v", cmd.Name, err), "SyncCommands")
				continue
			}
			logger.Info("Comando obsoleto eliminado: "+cmd.Name, "SyncCommands")
		}
	}

	// Register (or update) the current set
	for _, cmd := range client.CommandHandler.SlashCommands() {
		if _, err := client.Session.ApplicationCommandCreate(client.Session.State.User.ID, guildID, cmd); err != nil {
			logger.Error(fmt.Sprintf("Error registrando comando %s: %v", cmd.Name, err), "SyncCommands")
			continue
		}
		logger.Info("Comando sincronizado: "+cmd.Name, "SyncCommands")
	}
}
