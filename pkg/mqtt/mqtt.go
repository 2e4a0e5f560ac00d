// Package mqtt provides MQTT communication capabilities for the bot.
// The heartbeat reporter publishes its status payloads through this package.
package mqtt

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/logger"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MqttMessage is the envelope for every message the bot publishes
type MqttMessage struct {
	CorrelationID string      `json:"correlationId"`
	Timestamp     string      `json:"timestamp"`
	Payload       interface{} `json:"payload,omitempty"`
}

// MqttCommunicator handles MQTT communication
type MqttCommunicator struct {
	client   mqtt.Client
	clientID string
	mu       sync.RWMutex
}

var (
	communicator *MqttCommunicator
	once         sync.Once
)

// Init initializes the global MQTT communicator
func Init(host, port, username, password, clientID string) *MqttCommunicator {
	once.Do(func() {
		communicator = NewMqttCommunicator(host, port, username, password, clientID)
	})
	return communicator
}

// Get returns the global MQTT communicator
func Get() *MqttCommunicator {
	return communicator
}

// NewMqttCommunicator creates a new MQTT communicator and starts the
// connection attempt in the background. The bot keeps working without a
// broker; publishes simply become no-ops until the connection is up.
func NewMqttCommunicator(host, port, username, password, clientID string) *MqttCommunicator {
	mc := &MqttCommunicator{
		clientID: clientID,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%s", host, port))
	opts.SetClientID(fmt.Sprintf("%s-%s", clientID, uuid.NewString()[:8]))
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		logger.Success("Conectado al broker MQTT", "MQTT")
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		logger.Warn(fmt.Sprintf("Conexión MQTT perdida: %v", err), "MQTT")
	}

	mc.client = mqtt.NewClient(opts)

	go func() {
		if token := mc.client.Connect(); token.Wait() && token.Error() != nil {
			logger.Warn(fmt.Sprintf("No se pudo conectar al broker MQTT: %v", token.Error()), "MQTT")
		}
	}()

	return mc
}

// IsConnected reports whether the broker connection is up
func (mc *MqttCommunicator) IsConnected() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.client != nil && mc.client.IsConnected()
}

// Publish marshals the payload into the standard envelope and publishes it
// to the given topic. Returns without error when the broker is unreachable;
// heartbeats are best-effort.
func (mc *MqttCommunicator) Publish(topic string, payload interface{}) error {
	if !mc.IsConnected() {
		return nil
	}

	msg := MqttMessage{
		CorrelationID: uuid.NewString(),
		Timestamp:     time.Now().Format(time.RFC3339),
		Payload:       payload,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mqtt: marshaling payload for %s: %w", topic, err)
	}

	token := mc.client.Publish(topic, 0, false, data)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("mqtt: publishing to %s: %w", topic, token.Error())
	}
	return nil
}

// Destroy disconnects from the broker
func (mc *MqttCommunicator) Destroy() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.client != nil && mc.client.IsConnected() {
		mc.client.Disconnect(250)
		logger.System("Desconectado del broker MQTT", "MQTT")
	}
}
