package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"photoai/internal/config"
	"photoai/internal/notify"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher creates a new PubSubPublisher for the configured events project.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.GetPubSubProjectID())
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload, Attributes: attrs})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}

// EventSink forwards completion events to a Pub/Sub topic so other systems
// (mailers, analytics) can react to them. Publishing happens in the
// background; Wait blocks until every pending publish has finished.
type EventSink struct {
	publisher Publisher
	topic     string
	logger    zerolog.Logger
	pending   sync.WaitGroup
}

func NewEventSink(publisher Publisher, topic string, logger zerolog.Logger) *EventSink {
	return &EventSink{
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("component", "pubsub").Str("topic", topic).Logger(),
	}
}

// Publish returns immediately. Failures are logged, not returned; event
// delivery is best effort and must not hold up the caller's request.
func (s *EventSink) Publish(ctx context.Context, ev notify.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode event")
		return
	}
	ctx = context.WithoutCancel(ctx)
	attrs := map[string]string{"type": string(ev.Type), "user_id": ev.UserID}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		id, err := s.publisher.Publish(ctx, s.topic, payload, attrs)
		if err != nil {
			s.logger.Error().Err(err).Str("type", string(ev.Type)).Msg("Failed to publish event")
			return
		}
		s.logger.Debug().Str("message_id", id).Str("type", string(ev.Type)).Msg("Event published")
	}()
}

// Wait blocks until in-flight publishes complete. Call it before closing the
// underlying publisher. It always returns nil.
func (s *EventSink) Wait() error {
	s.pending.Wait()
	return nil
}
