// Package mqtt publishes prayer times and the live countdown to signage
// screens over MQTT.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sabros/sabr-backend/internal/config"
	"github.com/sabros/sabr-backend/internal/domain"
)

// ErrPublishTimeout is returned when the broker does not acknowledge in time.
var ErrPublishTimeout = errors.New("mqtt: publish timed out")

// client is the subset of paho.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// Publisher sends JSON payloads to <prefix>/times and <prefix>/next.
type Publisher struct {
	client  client
	prefix  string
	qos     byte
	timeout time.Duration
}

// Connect dials the broker from cfg and returns a ready publisher.
func Connect(cfg config.MQTTConfig, log *slog.Logger) (*Publisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(paho.Client) {
			log.Info("mqtt connected", slog.String("broker", cfg.Broker))
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warn("mqtt connection lost", slog.String("error", err.Error()))
		})

	c := paho.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		c.Disconnect(0)
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, ErrPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}

	return newPublisher(c, cfg.TopicPrefix, byte(cfg.QoS), cfg.ConnectTimeout), nil
}

func newPublisher(c client, prefix string, qos byte, timeout time.Duration) *Publisher {
	return &Publisher{client: c, prefix: prefix, qos: qos, timeout: timeout}
}

// Close waits up to 250ms for in-flight messages and disconnects.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// PublishTimes sends the day's schedule as a retained message.
func (p *Publisher) PublishTimes(ctx context.Context, set domain.PrayerTimeSet) error {
	return p.publish(ctx, p.prefix+"/times", true, timesFromDomain(set))
}

// PublishNext sends the countdown, not retained.
func (p *Publisher) PublishNext(ctx context.Context, next domain.NextPrayer) error {
	return p.publish(ctx, p.prefix+"/next", false, nextFromDomain(next))
}

func (p *Publisher) publish(ctx context.Context, topic string, retained bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", topic, err)
	}

	token := p.client.Publish(topic, p.qos, retained, payload)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("publish %s: %w", topic, ErrPublishTimeout)
	case <-ctx.Done():
		return fmt.Errorf("publish %s: %w", topic, ctx.Err())
	}
}
