// Package event publishes workflow generation outcomes to a message bus.
package event

import (
	"context"
	"fmt"

	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
)

type EventBus interface {
	Publish(topic string, payload any) error
	Subscribe(ctx context.Context, topic string, handler func(payload any)) error
	Close() error
}

// WorkflowEvent is the payload of the workflow.generated and workflow.failed topics.
type WorkflowEvent struct {
	RequestID string `json:"request_id,omitempty"`
	Steps     int    `json:"steps"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewInProcEventBus returns a new in-memory event bus. Used when the driver is "memory" or omitted.
func NewInProcEventBus() *WatermillEventBus {
	return NewWatermillInMemBus()
}

// NewEventBusFromConfig returns an EventBus based on config. Supported: memory (default), nats (with url).
func NewEventBusFromConfig(cfg *config.EventConfig) (EventBus, error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == constants.EventDriverMemory {
		return NewWatermillInMemBus(), nil
	}
	switch cfg.Driver {
	case constants.EventDriverNATS:
		if cfg.URL == "" {
			return nil, fmt.Errorf("NATS driver requires url")
		}
		bus, err := NewWatermillNATSBus(constants.NATSClusterID, constants.NATSClientID, cfg.URL)
		if err != nil {
			return nil, err
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unsupported event bus driver: %s", cfg.Driver)
	}
}
