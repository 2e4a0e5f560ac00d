// Package reporter runs the periodic heartbeat task. Every interval it reads
// the global warning total plus the gateway's guild/member counts and emits
// one observability line, optionally mirrored to MQTT.
package reporter

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/PancyStudios/ModBotGo/pkg/mqtt"
	"github.com/PancyStudios/ModBotGo/pkg/store"
)

// DefaultInterval is the heartbeat cadence
const DefaultInterval = 5 * time.Minute

const heartbeatTopic = "modbot/heartbeat"

// Heartbeat is the payload published on every tick
type Heartbeat struct {
	Guilds        int   `json:"guilds"`
	Members       int   `json:"members"`
	TotalWarnings int64 `json:"totalWarnings"`
}

// Reporter reads aggregate totals on a fixed interval
type Reporter struct {
	client   *discord.ExtendedClient
	store    *store.Store
	interval time.Duration
	stopChan chan struct{}
}

// New creates a Reporter with the default interval
func New(client *discord.ExtendedClient, st *store.Store) *Reporter {
	return &Reporter{
		client:   client,
		store:    st,
		interval: DefaultInterval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the heartbeat loop. The first tick waits for the Discord
// client to be ready; after that the loop runs until Stop, and a failed read
// only logs and skips that tick.
func (r *Reporter) Start() {
	go func() {
		r.waitUntilReady()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.tick()
			case <-r.stopChan:
				return
			}
		}
	}()
}

// Stop terminates the heartbeat loop
func (r *Reporter) Stop() {
	close(r.stopChan)
}

// waitUntilReady blocks until the gateway session reports ready (or Stop)
func (r *Reporter) waitUntilReady() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if r.client.IsReady() {
				return
			}
		case <-r.stopChan:
			return
		}
	}
}

// tick emits one heartbeat line
func (r *Reporter) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := r.store.TotalWarnings(ctx, "")
	if err != nil {
		logger.Error(fmt.Sprintf("Heartbeat: error leyendo total de advertencias: %v", err), "Reporter")
		return
	}

	hb := Heartbeat{
		Guilds:        r.client.GuildCount(),
		Members:       r.client.MemberCount(),
		TotalWarnings: total,
	}

	logger.Info(fmt.Sprintf("Heartbeat | guilds=%d | members≈%d | total_warnings=%d",
		hb.Guilds, hb.Members, hb.TotalWarnings), "Reporter")

	if mc := mqtt.Get(); mc != nil {
		if err := mc.Publish(heartbeatTopic, hb); err != nil {
			logger.Warn(fmt.Sprintf("Heartbeat: error publicando en MQTT: %v", err), "Reporter")
		}
	}
}
