package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	"vending-route-service/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWriter records messages instead of talking to a broker.
type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func samplePlan() *domain.RoutePlan {
	return &domain.RoutePlan{
		RequestID: "req-42",
		Origin:    domain.Coordinates{Lat: 33.4484, Lon: -112.074},
		Stops: []domain.RouteStop{
			{Stop: domain.Stop{ID: "3"}, LegDistanceKm: 0.1, CumulativeDistanceKm: 0.1},
			{Stop: domain.Stop{ID: "1"}, LegDistanceKm: 3.7, CumulativeDistanceKm: 3.8},
		},
		TotalDistanceKm: 3.8,
		PlannedAt:       time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestKafkaRoutePublisherWritesEvent(t *testing.T) {
	w := &mockWriter{}
	p := NewKafkaRoutePublisherWithWriter(w)

	require.NoError(t, p.PublishRoute(context.Background(), samplePlan()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "req-42", string(msg.Key))

	var ev RoutePlannedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "req-42", ev.RequestID)
	assert.Equal(t, []string{"3", "1"}, ev.StopIDs)
	assert.InDelta(t, 3.8, ev.TotalDistanceKm, 1e-9)
	assert.InDelta(t, 33.4484, ev.OriginLat, 1e-9)
	assert.True(t, ev.PlannedAt.Equal(samplePlan().PlannedAt))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaRoutePublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := NewKafkaRoutePublisherWithWriter(&mockWriter{err: boom})

	err := p.PublishRoute(context.Background(), samplePlan())
	assert.ErrorIs(t, err, boom)
}

func TestKafkaRoutePublisherRejectsNilPlan(t *testing.T) {
	p := NewKafkaRoutePublisherWithWriter(&mockWriter{})
	assert.Error(t, p.PublishRoute(context.Background(), nil))
}

func TestNewKafkaRoutePublisherValidatesConfig(t *testing.T) {
	_, err := NewKafkaRoutePublisher(nil, "topic")
	assert.Error(t, err)

	_, err = NewKafkaRoutePublisher([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	p, err := NewKafkaRoutePublisher([]string{"localhost:9092"}, "vending.routes.planned")
	require.NoError(t, err)
	require.NoError(t, p.Close())
}
