package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	stan "github.com/nats-io/stan.go"
)

// WatermillEventBus satisfies EventBus using Watermill.
type WatermillEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
}

// NewWatermillInMemBus returns a Watermill-based, in-memory bus.
func NewWatermillInMemBus() *WatermillEventBus {
	logger := watermill.NewStdLogger(false, false)
	ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 100}, logger)
	return &WatermillEventBus{publisher: ps, subscriber: ps}
}

// NewWatermillNATSBus returns a bus backed by NATS Streaming.
func NewWatermillNATSBus(clusterID, clientID, url string) (*WatermillEventBus, error) {
	logger := watermill.NewStdLogger(false, false)
	stanOpts := []stan.Option{stan.NatsURL(url)}
	pub, err := nats.NewStreamingPublisher(nats.StreamingPublisherConfig{
		ClusterID:   clusterID,
		ClientID:    clientID + "-pub",
		StanOptions: stanOpts,
		Marshaler:   nats.GobMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("nats publisher: %w", err)
	}
	sub, err := nats.NewStreamingSubscriber(nats.StreamingSubscriberConfig{
		ClusterID:      clusterID,
		ClientID:       clientID + "-sub",
		StanOptions:    stanOpts,
		Unmarshaler:    nats.GobMarshaler{},
		CloseTimeout:   30 * time.Second,
		AckWaitTimeout: 30 * time.Second,
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("nats subscriber: %w", err)
	}
	return &WatermillEventBus{publisher: pub, subscriber: sub}, nil
}

// Publish sends payload on topic. Byte slices and strings go out as-is; anything else is JSON encoded.
func (b *WatermillEventBus) Publish(topic string, payload any) error {
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %T payload: %w", v, err)
		}
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	return b.publisher.Publish(topic, msg)
}

// Subscribe calls handler for each message on topic until ctx is done. JSON objects are
// delivered as map[string]any, anything else as a string.
func (b *WatermillEventBus) Subscribe(ctx context.Context, topic string, handler func(payload any)) error {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	go func() {
		for msg := range ch {
			var m map[string]any
			if err := json.Unmarshal(msg.Payload, &m); err == nil && m != nil {
				handler(m)
			} else {
				handler(string(msg.Payload))
			}
			msg.Ack()
		}
	}()
	return nil
}

func (b *WatermillEventBus) Close() error {
	perr := b.publisher.Close()
	if any(b.subscriber) == any(b.publisher) {
		return perr
	}
	serr := b.subscriber.Close()
	if perr != nil {
		return perr
	}
	return serr
}
