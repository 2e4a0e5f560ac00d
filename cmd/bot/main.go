// Package main is the entry point for the ModBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PancyStudios/ModBotGo/internal/commands"
	"github.com/PancyStudios/ModBotGo/internal/events"
	"github.com/PancyStudios/ModBotGo/pkg/config"
	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/errors"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/PancyStudios/ModBotGo/pkg/mqtt"
	"github.com/PancyStudios/ModBotGo/pkg/reporter"
	"github.com/PancyStudios/ModBotGo/pkg/store"
	"github.com/PancyStudios/ModBotGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando ModBot Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			if err := discordClient.Stop(); err != nil {
				return
			}
		}
		if st := store.Get(); st != nil {
			st.Close()
		}
	})

	// Initialize the warning store
	st, err := store.Init(cfg.DatabasePath)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error abriendo la base de datos: %v", err), "Main")
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error(fmt.Sprintf("Error cerrando la base de datos: %v", err), "Main")
		}
	}()

	// Initialize MQTT
	mqttClientID := "modbot"
	if !cfg.IsProd() {
		mqttClientID = "modbot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Register commands using the commands package
	commands.RegisterAll(discordClient)

	// Register events using the events package
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer discordClient.Stop()

	// Start the heartbeat reporter once everything else is wired
	hb := reporter.New(discordClient, st)
	hb.Start()
	defer hb.Stop()

	logger.Success("ModBot Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando ModBot Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
