package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"googlemaps.github.io/maps"
)

// DefaultWarehouseAddress is the origin for delivery distance lookups.
const DefaultWarehouseAddress = "6008 windrige ln, flower mound, tx 75028"

const metersPerMile = 1609.34

// ErrDistanceUnavailable is returned when no distance can be computed:
// missing API key, empty address, or no route.
var ErrDistanceUnavailable = errors.New("distance unavailable")

// DistanceMatrixClient is the subset of the Google Maps client used here.
type DistanceMatrixClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// DistanceClientFactory builds a client for the given API key.
type DistanceClientFactory func(apiKey string) (DistanceMatrixClient, error)

// GoogleMapsClientFactory creates a real Google Maps client.
func GoogleMapsClientFactory(apiKey string) (DistanceMatrixClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no maps API key configured", ErrDistanceUnavailable)
	}
	return maps.NewClient(maps.WithAPIKey(apiKey))
}

// ServiceState is the lifecycle of the lazily initialised maps client.
type ServiceState int

const (
	StateUninitialized ServiceState = iota
	StateLoading
	StateReady
)

func (s ServiceState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// DistanceConfig configures a DistanceService.
type DistanceConfig struct {
	APIKey           string
	WarehouseAddress string
	Timeout          time.Duration
}

// DistanceService computes driving distances from the warehouse. The maps
// client is created on first use; concurrent callers of EnsureReady share a
// single initialisation.
type DistanceService struct {
	cfg     DistanceConfig
	factory DistanceClientFactory

	group singleflight.Group

	mu     sync.Mutex
	state  ServiceState
	client DistanceMatrixClient
}

// NewDistanceService returns an uninitialised service. A nil factory means
// GoogleMapsClientFactory.
func NewDistanceService(cfg DistanceConfig, factory DistanceClientFactory) *DistanceService {
	if cfg.WarehouseAddress == "" {
		cfg.WarehouseAddress = DefaultWarehouseAddress
	}
	if factory == nil {
		factory = GoogleMapsClientFactory
	}
	return &DistanceService{cfg: cfg, factory: factory}
}

// State returns the current lifecycle state.
func (s *DistanceService) State() ServiceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// WarehouseAddress returns the configured origin address.
func (s *DistanceService) WarehouseAddress() string {
	return s.cfg.WarehouseAddress
}

// EnsureReady initialises the maps client if needed. It is idempotent and
// safe for concurrent use. A failed initialisation leaves the service
// uninitialised so the next call tries again.
func (s *DistanceService) EnsureReady(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	s.mu.Unlock()

	ch := s.group.DoChan("init", func() (any, error) {
		s.mu.Lock()
		ready := s.state == StateReady
		s.mu.Unlock()
		if ready {
			return nil, nil
		}

		client, err := s.factory(s.cfg.APIKey)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.state = StateUninitialized
			return nil, err
		}
		s.client = client
		s.state = StateReady
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// DistanceFromWarehouse returns the driving distance in miles, rounded to
// two decimals, from the warehouse to address.
func (s *DistanceService) DistanceFromWarehouse(ctx context.Context, address string) (float64, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return 0, fmt.Errorf("%w: empty destination address", ErrDistanceUnavailable)
	}
	if err := s.EnsureReady(ctx); err != nil {
		return 0, err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	resp, err := client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{s.cfg.WarehouseAddress},
		Destinations: []string{address},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsImperial,
	})
	if err != nil {
		return 0, fmt.Errorf("distance matrix request: %w", err)
	}
	if resp == nil || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("%w: empty distance matrix response", ErrDistanceUnavailable)
	}

	el := resp.Rows[0].Elements[0]
	if el == nil || el.Status != "OK" {
		status := "missing element"
		if el != nil {
			status = el.Status
		}
		return 0, fmt.Errorf("%w: route status %s", ErrDistanceUnavailable, status)
	}

	return MetersToMiles(el.Distance.Meters), nil
}

// MetersToMiles converts meters to miles rounded to two decimals.
func MetersToMiles(meters int) float64 {
	return math.Round(float64(meters)/metersPerMile*100) / 100
}
