package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"photoai/internal/config"
	"photoai/internal/notify"

	ps "cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu      sync.Mutex
	topic   string
	payload []byte
	attrs   map[string]string
	err     error
	// release, when set, holds Publish until it is closed.
	release chan struct{}
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topic, f.payload, f.attrs = topic, payload, attrs
	return "msg-1", f.err
}

func TestNewPublisherInvalidProject(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewPublisher(context.Background(), cfg)
	assert.Error(t, err, "expected error when project ID is empty")
}

func TestEventSink_Publish(t *testing.T) {
	fake := &fakePublisher{}
	sink := NewEventSink(fake, "photoai-events", zerolog.Nop())

	sink.Publish(context.Background(), notify.Event{Type: notify.ModelTrained, UserID: "user_1", ID: "m1"})
	require.NoError(t, sink.Wait())

	assert.Equal(t, "photoai-events", fake.topic)
	assert.Equal(t, map[string]string{"type": "model.trained", "user_id": "user_1"}, fake.attrs)
	var ev notify.Event
	require.NoError(t, json.Unmarshal(fake.payload, &ev))
	assert.Equal(t, "m1", ev.ID)
}

func TestEventSink_PublishErrorIsSwallowed(t *testing.T) {
	fake := &fakePublisher{err: errors.New("unavailable")}
	sink := NewEventSink(fake, "photoai-events", zerolog.Nop())
	assert.NotPanics(t, func() {
		sink.Publish(context.Background(), notify.Event{Type: notify.ImageFailed, UserID: "user_1"})
		_ = sink.Wait()
	})
}

func TestEventSink_PublishDoesNotBlockCaller(t *testing.T) {
	fake := &fakePublisher{release: make(chan struct{})}
	sink := NewEventSink(fake, "photoai-events", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	returned := make(chan struct{})
	go func() {
		sink.Publish(ctx, notify.Event{Type: notify.ImageGenerated, UserID: "user_1", ID: "img_1"})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a stalled publisher")
	}

	// The request that produced the event finishing must not abort delivery.
	cancel()
	close(fake.release)
	require.NoError(t, sink.Wait())

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "photoai-events", fake.topic)
	assert.Equal(t, "user_1", fake.attrs["user_id"])
}

func TestPublishWithEmulator(t *testing.T) {
	if os.Getenv("PUBSUB_EMULATOR_HOST") == "" {
		t.Skip("PUBSUB_EMULATOR_HOST is not set, skip emulator integration test")
	}

	ctx := context.Background()
	pub, err := NewPublisher(ctx, &config.Config{GCPProjectID: "test-project"})
	require.NoError(t, err)
	defer pub.Close()

	topic, err := pub.client.CreateTopic(ctx, "test-events")
	require.NoError(t, err)
	sub, err := pub.client.CreateSubscription(ctx, "test-events-sub", ps.SubscriptionConfig{Topic: topic})
	require.NoError(t, err)

	msgID, err := pub.Publish(ctx, "test-events", []byte("hello-emulator"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, msgID)

	recvCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	c := make(chan []byte, 1)
	go func() {
		_ = sub.Receive(recvCtx, func(ctx context.Context, m *ps.Message) {
			c <- m.Data
			m.Ack()
			cancel()
		})
	}()

	select {
	case data := <-c:
		assert.Equal(t, "hello-emulator", string(data))
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message from emulator subscription")
	}
}
