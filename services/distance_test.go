package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"googlemaps.github.io/maps"
)

type fakeMatrixClient struct {
	meters int
	status string
	err    error
	last   *maps.DistanceMatrixRequest
}

func (f *fakeMatrixClient) DistanceMatrix(_ context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error) {
	f.last = r
	if f.err != nil {
		return nil, f.err
	}
	return &maps.DistanceMatrixResponse{
		Rows: []maps.DistanceMatrixElementsRow{{
			Elements: []*maps.DistanceMatrixElement{{
				Status:   f.status,
				Distance: maps.Distance{Meters: f.meters},
			}},
		}},
	}, nil
}

func TestDistanceService_EnsureReadyConcurrent(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	factory := func(string) (DistanceMatrixClient, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return &fakeMatrixClient{status: "OK"}, nil
	}
	svc := NewDistanceService(DistanceConfig{APIKey: "key"}, factory)

	if svc.State() != StateUninitialized {
		t.Fatalf("initial state = %v, want uninitialized", svc.State())
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.EnsureReady(context.Background())
		}()
	}

	deadline := time.Now().Add(2 * time.Second)
	for svc.State() != StateLoading && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("EnsureReady() error = %v", err)
		}
	}
	if svc.State() != StateReady {
		t.Errorf("state = %v, want ready", svc.State())
	}

	if err := svc.EnsureReady(context.Background()); err != nil {
		t.Errorf("second EnsureReady() error = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("factory called %d times, want a single shared initialisation", n)
	}
}

func TestDistanceService_FailedInitRetries(t *testing.T) {
	attempts := 0
	factory := func(string) (DistanceMatrixClient, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("boom")
		}
		return &fakeMatrixClient{status: "OK"}, nil
	}
	svc := NewDistanceService(DistanceConfig{APIKey: "key"}, factory)

	if err := svc.EnsureReady(context.Background()); err == nil {
		t.Fatal("expected first EnsureReady to fail")
	}
	if svc.State() != StateUninitialized {
		t.Errorf("state after failure = %v, want uninitialized", svc.State())
	}
	if err := svc.EnsureReady(context.Background()); err != nil {
		t.Fatalf("retry EnsureReady() error = %v", err)
	}
	if svc.State() != StateReady {
		t.Errorf("state = %v, want ready", svc.State())
	}
}

func TestDistanceService_MissingAPIKey(t *testing.T) {
	svc := NewDistanceService(DistanceConfig{}, nil)
	_, err := svc.DistanceFromWarehouse(context.Background(), "1 Main St, Dallas, TX")
	if !errors.Is(err, ErrDistanceUnavailable) {
		t.Errorf("err = %v, want ErrDistanceUnavailable", err)
	}
}

func TestDistanceService_DistanceFromWarehouse(t *testing.T) {
	client := &fakeMatrixClient{meters: 16093, status: "OK"}
	svc := NewDistanceService(DistanceConfig{APIKey: "key"}, func(string) (DistanceMatrixClient, error) {
		return client, nil
	})

	miles, err := svc.DistanceFromWarehouse(context.Background(), "123 Elm St, Denton, TX")
	if err != nil {
		t.Fatalf("DistanceFromWarehouse() error = %v", err)
	}
	if miles != 10 {
		t.Errorf("miles = %v, want 10", miles)
	}
	if client.last.Origins[0] != DefaultWarehouseAddress {
		t.Errorf("origin = %q, want warehouse address", client.last.Origins[0])
	}
	if client.last.Units != maps.UnitsImperial || client.last.Mode != maps.TravelModeDriving {
		t.Errorf("unexpected request mode/units: %+v", client.last)
	}
}

func TestDistanceService_RouteNotFound(t *testing.T) {
	svc := NewDistanceService(DistanceConfig{APIKey: "key"}, func(string) (DistanceMatrixClient, error) {
		return &fakeMatrixClient{status: "ZERO_RESULTS"}, nil
	})
	_, err := svc.DistanceFromWarehouse(context.Background(), "Nowhere")
	if !errors.Is(err, ErrDistanceUnavailable) {
		t.Errorf("err = %v, want ErrDistanceUnavailable", err)
	}
}

func TestDistanceService_EmptyAddress(t *testing.T) {
	svc := NewDistanceService(DistanceConfig{APIKey: "key"}, func(string) (DistanceMatrixClient, error) {
		t.Fatal("factory must not be called for an empty address")
		return nil, nil
	})
	if _, err := svc.DistanceFromWarehouse(context.Background(), "   "); !errors.Is(err, ErrDistanceUnavailable) {
		t.Errorf("err = %v, want ErrDistanceUnavailable", err)
	}
}

func TestMetersToMiles(t *testing.T) {
	tests := []struct {
		meters int
		want   float64
	}{
		{0, 0},
		{1609, 1},
		{16093, 10},
		{25000, 15.53},
	}
	for _, tt := range tests {
		if got := MetersToMiles(tt.meters); got != tt.want {
			t.Errorf("MetersToMiles(%d) = %v, want %v", tt.meters, got, tt.want)
		}
	}
}
