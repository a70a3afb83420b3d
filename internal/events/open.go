package events

import (
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/config"
)

// Open returns an MQTT publisher when a broker is configured, otherwise a NopPublisher.
func Open(cfg config.MQTTConfig) (Publisher, error) {
	if cfg.Broker == "" {
		log.Info("No MQTT broker configured, lifecycle events are not published")
		return NopPublisher{}, nil
	}
	return NewMQTTPublisher(cfg)
}
