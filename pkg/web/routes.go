// Package web provides API routes for the web server.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/store"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/stats/:guildID", guildStatsHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	client := discord.Get()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	dbOnline := false
	var latencyMs int64
	if st := store.Get(); st != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if latency, err := st.Ping(ctx); err == nil {
			dbOnline = true
			latencyMs = latency.Milliseconds()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"isOnline":  dbOnline,
			"latencyMs": latencyMs,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ModBot Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"guilds":   client.GuildCount(),
		"isReady":  client.IsReady(),
	})
}

// guildStatsHandler returns the moderation summary for one guild
func guildStatsHandler(c *gin.Context) {
	st := store.Get()
	if st == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Store Offline",
			"message": "La base de datos no está disponible.",
		})
		return
	}

	guildID := c.Param("guildID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	summary, err := st.Summary(ctx, guildID, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query Failed",
			"message": "No se pudieron consultar las estadísticas.",
		})
		return
	}

	perMod, err := st.WarningsPerModerator(ctx, guildID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query Failed",
			"message": "No se pudieron consultar las estadísticas.",
		})
		return
	}

	perDay, err := st.WarningsPerDay(ctx, guildID, 7)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query Failed",
			"message": "No se pudieron consultar las estadísticas.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId":      guildID,
		"summary":      summary,
		"perModerator": perMod,
		"perDay":       perDay,
	})
}
