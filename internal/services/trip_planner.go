package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/geo"
	"vending-route-service/internal/platform/obs"
	"vending-route-service/internal/ports"

	"go.uber.org/zap"
)

var ErrUnknownMapsProvider = errors.New("unknown maps provider")

const DefaultMaxStops = 5

// TripRequest describes one planning call from a user's current position.
type TripRequest struct {
	Origin domain.Coordinates
	// MaxStops of 0 selects the planner default.
	MaxStops int
	// Maps names the deep-link provider; "" selects the planner default.
	Maps string
}

// TripPlanner coordinates the stop repository, the route planner, deep-link
// formatting and route events. It holds no per-request state and is safe for
// concurrent use when its collaborators are.
type TripPlanner struct {
	repo        ports.StopRepository
	formatters  map[string]ports.DeepLinkFormatter
	defaultMaps string
	publisher   ports.RoutePublisher
	maxStops    int
	log         *zap.Logger
	now         func() time.Time
}

type TripPlannerOption func(*TripPlanner)

func WithPublisher(p ports.RoutePublisher) TripPlannerOption {
	return func(t *TripPlanner) { t.publisher = p }
}

func WithDefaultMaxStops(n int) TripPlannerOption {
	return func(t *TripPlanner) {
		if n > 0 {
			t.maxStops = n
		}
	}
}

func WithDefaultMaps(name string) TripPlannerOption {
	return func(t *TripPlanner) { t.defaultMaps = strings.ToLower(strings.TrimSpace(name)) }
}

func WithLogger(log *zap.Logger) TripPlannerOption {
	return func(t *TripPlanner) {
		if log != nil {
			t.log = log
		}
	}
}

func WithClock(now func() time.Time) TripPlannerOption {
	return func(t *TripPlanner) { t.now = now }
}

func NewTripPlanner(
	repo ports.StopRepository,
	formatters map[string]ports.DeepLinkFormatter,
	opts ...TripPlannerOption,
) *TripPlanner {
	t := &TripPlanner{
		repo:        repo,
		formatters:  formatters,
		defaultMaps: "apple",
		maxStops:    DefaultMaxStops,
		log:         zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DefaultMaxStops returns the stop count used when a request leaves it at 0.
func (t *TripPlanner) DefaultMaxStops() int { return t.maxStops }

// ListStops returns the full data set.
func (t *TripPlanner) ListStops(ctx context.Context) ([]domain.Stop, error) {
	stops, err := t.repo.ListStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}
	return stops, nil
}

// PlanTrip plans a greedy multi-stop route from req.Origin and attaches leg
// distances and a navigation deep link. An empty data set yields a plan with
// no stops and no link.
func (t *TripPlanner) PlanTrip(ctx context.Context, req TripRequest) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "trip.PlanTrip")(&err)

	if err := req.Origin.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: origin: %w", err)
	}
	if req.MaxStops < 0 {
		return nil, fmt.Errorf("plan trip: max stops must not be negative, got %d", req.MaxStops)
	}

	formatter, err := t.formatter(req.Maps)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	maxStops := req.MaxStops
	if maxStops == 0 {
		maxStops = t.maxStops
	}

	stops, err := t.repo.ListStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan trip: list stops: %w", err)
	}

	route := PlanRoute(req.Origin, stops, maxStops)

	plan, err := t.buildPlan(ctx, req.Origin, route, formatter)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	t.log.Info("trip planned",
		zap.String("req_id", plan.RequestID),
		zap.Int("candidates", len(stops)),
		zap.Int("stops", len(plan.Stops)),
		zap.Float64("total_km", plan.TotalDistanceKm),
	)

	// Route events are best effort; the caller already has its answer.
	if t.publisher != nil && len(plan.Stops) > 0 {
		if err := t.publisher.PublishRoute(ctx, plan); err != nil {
			t.log.Warn("publish route failed", zap.String("req_id", plan.RequestID), zap.Error(err))
		}
	}

	return plan, nil
}

// FindNearest returns a one-stop plan to the stop closest to origin.
// It reports ErrNoCandidates when the data set is empty.
func (t *TripPlanner) FindNearest(ctx context.Context, origin domain.Coordinates, maps string) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "trip.FindNearest")(&err)

	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("find nearest: origin: %w", err)
	}

	formatter, err := t.formatter(maps)
	if err != nil {
		return nil, fmt.Errorf("find nearest: %w", err)
	}

	stops, err := t.repo.ListStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("find nearest: list stops: %w", err)
	}

	nearest, err := Nearest(origin, stops)
	if err != nil {
		return nil, fmt.Errorf("find nearest: %w", err)
	}

	plan, err := t.buildPlan(ctx, origin, []domain.Stop{nearest}, formatter)
	if err != nil {
		return nil, fmt.Errorf("find nearest: %w", err)
	}
	return plan, nil
}

func (t *TripPlanner) formatter(name string) (ports.DeepLinkFormatter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = t.defaultMaps
	}

	f, ok := t.formatters[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMapsProvider, name)
	}
	return f, nil
}

func (t *TripPlanner) buildPlan(
	ctx context.Context,
	origin domain.Coordinates,
	route []domain.Stop,
	formatter ports.DeepLinkFormatter,
) (*domain.RoutePlan, error) {
	plan := &domain.RoutePlan{
		RequestID: obs.RequestID(ctx),
		Origin:    origin,
		Stops:     make([]domain.RouteStop, 0, len(route)),
		PlannedAt: t.now(),
	}

	current := origin
	for _, s := range route {
		leg := geo.Distance(current, s.Coordinates)
		plan.TotalDistanceKm += leg
		plan.Stops = append(plan.Stops, domain.RouteStop{
			Stop:                 s,
			LegDistanceKm:        leg,
			CumulativeDistanceKm: plan.TotalDistanceKm,
		})
		current = s.Coordinates
	}

	if len(route) == 0 {
		return plan, nil
	}

	link, err := formatter.Format(origin, route)
	if err != nil {
		return nil, fmt.Errorf("format deep link: %w", err)
	}
	plan.DeepLink = link

	return plan, nil
}
