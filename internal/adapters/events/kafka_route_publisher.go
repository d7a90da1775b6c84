package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/platform/obs"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
// This allows for easy mocking in unit tests.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RoutePlannedEvent is the wire format of a planned route.
type RoutePlannedEvent struct {
	RequestID       string    `json:"request_id"`
	OriginLat       float64   `json:"origin_lat"`
	OriginLon       float64   `json:"origin_lon"`
	StopIDs         []string  `json:"stop_ids"`
	TotalDistanceKm float64   `json:"total_distance_km"`
	PlannedAt       time.Time `json:"planned_at"`
}

// KafkaRoutePublisher implements RoutePublisher on top of a Kafka topic.
// Messages are keyed by request id so retries of one request stay ordered.
type KafkaRoutePublisher struct {
	writer MessageWriter
}

// NewKafkaRoutePublisher creates a publisher writing to topic on brokers.
func NewKafkaRoutePublisher(brokers []string, topic string) (*KafkaRoutePublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka route publisher: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka route publisher: topic is empty")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return NewKafkaRoutePublisherWithWriter(w), nil
}

func NewKafkaRoutePublisherWithWriter(w MessageWriter) *KafkaRoutePublisher {
	return &KafkaRoutePublisher{writer: w}
}

func (k *KafkaRoutePublisher) PublishRoute(ctx context.Context, plan *domain.RoutePlan) (err error) {
	defer obs.Time(ctx, "events.kafka.PublishRoute")(&err)

	if plan == nil {
		return errors.New("publish route: plan is nil")
	}

	msg, err := NewRoutePlannedMessage(plan)
	if err != nil {
		return fmt.Errorf("publish route: %w", err)
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish route: write message: %w", err)
	}
	return nil
}

func (k *KafkaRoutePublisher) Close() error {
	return k.writer.Close()
}

// NewRoutePlannedMessage encodes plan as a Kafka message.
func NewRoutePlannedMessage(plan *domain.RoutePlan) (kafka.Message, error) {
	ids := make([]string, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		ids = append(ids, s.Stop.ID)
	}

	payload, err := json.Marshal(RoutePlannedEvent{
		RequestID:       plan.RequestID,
		OriginLat:       plan.Origin.Lat,
		OriginLon:       plan.Origin.Lon,
		StopIDs:         ids,
		TotalDistanceKm: plan.TotalDistanceKm,
		PlannedAt:       plan.PlannedAt.UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode route planned event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(plan.RequestID),
		Value: payload,
		Time:  plan.PlannedAt,
	}, nil
}

// NoopPublisher drops every plan. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRoute(context.Context, *domain.RoutePlan) error { return nil }
