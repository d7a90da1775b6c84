package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/geo"
	"vending-route-service/internal/platform/obs"
	"vending-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	stops []domain.Stop
	err   error
}

func (f *fakeRepo) ListStops(ctx context.Context) ([]domain.Stop, error) {
	return f.stops, f.err
}

// idFormatter joins stop ids so tests can see the order handed to the formatter.
type idFormatter struct{ prefix string }

func (f idFormatter) Format(origin domain.Coordinates, stops []domain.Stop) (string, error) {
	return f.prefix + origin.String() + ":" + strings.Join(ids(stops), ">"), nil
}

type recordingPublisher struct {
	plans []*domain.RoutePlan
	err   error
}

func (r *recordingPublisher) PublishRoute(ctx context.Context, plan *domain.RoutePlan) error {
	r.plans = append(r.plans, plan)
	return r.err
}

var fixedNow = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func newTestPlanner(repo ports.StopRepository, opts ...TripPlannerOption) *TripPlanner {
	formatters := map[string]ports.DeepLinkFormatter{
		"apple":  idFormatter{prefix: "apple:"},
		"google": idFormatter{prefix: "google:"},
	}
	opts = append([]TripPlannerOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewTripPlanner(repo, formatters, opts...)
}

func lineOfStops() []domain.Stop {
	return []domain.Stop{
		stopAt("a", 0, 1),
		stopAt("b", 0, 5),
		stopAt("c", 0, 2),
		stopAt("d", 0, 3),
		stopAt("e", 0, 4),
		stopAt("f", 0, 6),
	}
}

func TestPlanTripBuildsLegsAndDeepLink(t *testing.T) {
	pub := &recordingPublisher{}
	planner := newTestPlanner(&fakeRepo{stops: lineOfStops()}, WithPublisher(pub))

	ctx := obs.WithRequestID(context.Background(), "req-7")
	origin := domain.Coordinates{Lat: 0, Lon: 0}

	plan, err := planner.PlanTrip(ctx, TripRequest{Origin: origin, MaxStops: 3})
	require.NoError(t, err)

	require.Len(t, plan.Stops, 3)
	got := make([]string, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		got = append(got, s.Stop.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, got)

	leg := geo.Distance(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 1})
	assert.InDelta(t, leg, plan.Stops[0].LegDistanceKm, 1e-9)
	assert.InDelta(t, leg, plan.Stops[1].LegDistanceKm, 1e-9)
	assert.InDelta(t, 2*leg, plan.Stops[1].CumulativeDistanceKm, 1e-9)
	assert.InDelta(t, 3*leg, plan.TotalDistanceKm, 1e-9)

	assert.Equal(t, "apple:0,0:a>c>d", plan.DeepLink)
	assert.Equal(t, "req-7", plan.RequestID)
	assert.Equal(t, fixedNow, plan.PlannedAt)

	require.Len(t, pub.plans, 1)
	assert.Same(t, plan, pub.plans[0])
}

func TestPlanTripUsesDefaults(t *testing.T) {
	planner := newTestPlanner(&fakeRepo{stops: lineOfStops()}, WithDefaultMaxStops(4), WithDefaultMaps("Google"))

	plan, err := planner.PlanTrip(context.Background(), TripRequest{Origin: domain.Coordinates{}})
	require.NoError(t, err)

	assert.Len(t, plan.Stops, 4)
	assert.True(t, strings.HasPrefix(plan.DeepLink, "google:"), plan.DeepLink)
	assert.Equal(t, 4, planner.DefaultMaxStops())
}

func TestPlanTripEmptyDataSet(t *testing.T) {
	pub := &recordingPublisher{}
	planner := newTestPlanner(&fakeRepo{}, WithPublisher(pub))

	plan, err := planner.PlanTrip(context.Background(), TripRequest{Origin: domain.Coordinates{Lat: 1, Lon: 1}, MaxStops: 5})
	require.NoError(t, err)

	assert.Empty(t, plan.Stops)
	assert.Empty(t, plan.DeepLink)
	assert.Zero(t, plan.TotalDistanceKm)
	assert.Empty(t, pub.plans, "empty plans are not published")
}

func TestPlanTripPublishFailureIsNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	planner := newTestPlanner(&fakeRepo{stops: lineOfStops()}, WithPublisher(pub))

	plan, err := planner.PlanTrip(context.Background(), TripRequest{Origin: domain.Coordinates{}, MaxStops: 1})
	require.NoError(t, err)
	assert.Len(t, plan.Stops, 1)
	assert.Len(t, pub.plans, 1)
}

func TestPlanTripRejectsBadRequests(t *testing.T) {
	repoErr := errors.New("db down")

	tests := []struct {
		name   string
		repo   *fakeRepo
		req    TripRequest
		target error
	}{
		{
			name:   "invalid origin",
			repo:   &fakeRepo{stops: lineOfStops()},
			req:    TripRequest{Origin: domain.Coordinates{Lat: 100, Lon: 0}},
			target: domain.ErrInvalidCoordinate,
		},
		{
			name:   "unknown maps provider",
			repo:   &fakeRepo{stops: lineOfStops()},
			req:    TripRequest{Origin: domain.Coordinates{}, Maps: "waze"},
			target: ErrUnknownMapsProvider,
		},
		{
			name:   "repository failure",
			repo:   &fakeRepo{err: repoErr},
			req:    TripRequest{Origin: domain.Coordinates{}},
			target: repoErr,
		},
		{
			name: "negative max stops",
			repo: &fakeRepo{stops: lineOfStops()},
			req:  TripRequest{Origin: domain.Coordinates{}, MaxStops: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestPlanner(tt.repo).PlanTrip(context.Background(), tt.req)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestFindNearest(t *testing.T) {
	planner := newTestPlanner(&fakeRepo{stops: lineOfStops()})

	plan, err := planner.FindNearest(context.Background(), domain.Coordinates{Lat: 0, Lon: 4.4}, "google")
	require.NoError(t, err)

	require.Len(t, plan.Stops, 1)
	assert.Equal(t, "e", plan.Stops[0].Stop.ID)
	assert.Equal(t, "google:0,4.4:e", plan.DeepLink)
	assert.InDelta(t, plan.Stops[0].LegDistanceKm, plan.TotalDistanceKm, 1e-9)
}

func TestFindNearestErrors(t *testing.T) {
	_, err := newTestPlanner(&fakeRepo{}).FindNearest(context.Background(), domain.Coordinates{}, "")
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = newTestPlanner(&fakeRepo{stops: lineOfStops()}).FindNearest(context.Background(), domain.Coordinates{Lon: 200}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestListStops(t *testing.T) {
	stops, err := newTestPlanner(&fakeRepo{stops: lineOfStops()}).ListStops(context.Background())
	require.NoError(t, err)
	assert.Len(t, stops, 6)
}
