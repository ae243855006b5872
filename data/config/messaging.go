package config

import (
	"time"

	"github.com/spf13/viper"
)

// Messaging selects the broker lifecycle events are published to.
type Messaging struct {
	Driver  string   `json:"driver" yaml:"driver"` // nats | kafka | rabbitmq, empty disables
	URL     string   `json:"url" yaml:"url"`
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
	// Exchange is only used by rabbitmq.
	Exchange       string        `json:"exchange" yaml:"exchange"`
	ClientID       string        `json:"client_id" yaml:"client_id"`
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`
	PublishTimeout time.Duration `json:"publish_timeout" yaml:"publish_timeout"`
}

// GetMessagingConfig reads the messaging section.
func GetMessagingConfig(v *viper.Viper) *Messaging {
	m := &Messaging{
		Driver:         v.GetString("messaging.driver"),
		URL:            v.GetString("messaging.url"),
		Brokers:        v.GetStringSlice("messaging.brokers"),
		Topic:          v.GetString("messaging.topic"),
		Exchange:       v.GetString("messaging.exchange"),
		ClientID:       v.GetString("messaging.client_id"),
		ConnectTimeout: v.GetDuration("messaging.connect_timeout"),
		PublishTimeout: v.GetDuration("messaging.publish_timeout"),
	}
	if m.Topic == "" {
		m.Topic = "longrun.jobs"
	}
	if m.Exchange == "" {
		m.Exchange = "longrun"
	}
	if m.ConnectTimeout == 0 {
		m.ConnectTimeout = 5 * time.Second
	}
	if m.PublishTimeout == 0 {
		m.PublishTimeout = 5 * time.Second
	}
	return m
}
