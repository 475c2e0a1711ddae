package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// NATSClient publishes to NATS JetStream
type NATSClient struct {
	servers              string
	nc                   *nats.Conn
	js                   nats.JetStreamContext
	reconnectDelay       time.Duration
	maxReconnectAttempts int
}

// NewNATSClient creates a new NATS client
func NewNATSClient(servers string) *NATSClient {
	return &NATSClient{
		servers:              servers,
		reconnectDelay:       2 * time.Second,
		maxReconnectAttempts: 10,
	}
}

// Connect establishes a connection to the NATS server with JetStream
func (c *NATSClient) Connect(ctx context.Context) error {
	opts := []nats.Option{
		nats.Name("ladder"),
		nats.MaxReconnects(c.maxReconnectAttempts),
		nats.ReconnectWait(c.reconnectDelay),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	if deadline, ok := ctx.Deadline(); ok {
		opts = append(opts, nats.Timeout(time.Until(deadline)))
	}

	nc, err := nats.Connect(c.servers, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	c.nc = nc
	c.js = js

	log.WithField("servers", c.servers).Info("Connected to NATS with JetStream")
	return nil
}

// EnsureStream creates the named stream over subjects unless it already exists
func (c *NATSClient) EnsureStream(streamName string, subjects []string) error {
	if c.js == nil {
		return fmt.Errorf("not connected to NATS JetStream")
	}

	cfg := &nats.StreamConfig{
		Name:        streamName,
		Subjects:    subjects,
		Retention:   nats.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Storage:     nats.FileStorage,
		Replicas:    1,
		Duplicates:  2 * time.Minute,
		Description: "Ladder domain events",
	}

	info, err := c.js.StreamInfo(streamName)
	switch {
	case errors.Is(err, nats.ErrStreamNotFound):
		if _, err := c.js.AddStream(cfg); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up stream %s: %w", streamName, err)
	case coversSubjects(info.Config.Subjects, subjects):
		log.WithField("stream", streamName).Debug("JetStream stream already up to date")
		return nil
	default:
		// Event types were added since the stream was created
		if _, err := c.js.UpdateStream(cfg); err != nil {
			return fmt.Errorf("failed to update stream %s: %w", streamName, err)
		}
	}

	log.WithFields(log.Fields{
		"stream":   streamName,
		"subjects": subjects,
	}).Info("JetStream stream ready")
	return nil
}

func coversSubjects(existing, wanted []string) bool {
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[s] = true
	}
	for _, s := range wanted {
		if !have[s] {
			return false
		}
	}
	return true
}

// Publish publishes a message to the specified subject using JetStream.
// A non-empty msgID lets the stream drop redelivered duplicates.
func (c *NATSClient) Publish(ctx context.Context, subject, msgID string, data []byte) error {
	if c.js == nil {
		return fmt.Errorf("not connected to NATS JetStream")
	}

	opts := []nats.PubOpt{nats.Context(ctx)}
	if msgID != "" {
		opts = append(opts, nats.MsgId(msgID))
	}

	if _, err := c.js.Publish(subject, data, opts...); err != nil {
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}

	log.WithFields(log.Fields{
		"subject": subject,
		"size":    len(data),
	}).Debug("Published message to NATS")
	return nil
}

// Close drains and closes the connection
func (c *NATSClient) Close() error {
	if c.nc == nil {
		return nil
	}
	if err := c.nc.Drain(); err != nil {
		c.nc.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	log.Info("NATS connection closed")
	return nil
}

// IsConnected returns true if the client is connected to NATS
func (c *NATSClient) IsConnected() bool {
	return c.nc != nil && c.nc.IsConnected()
}
