package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/goleak"

	"github.com/burnai/go-burn-suitability/internal/broadcast"
	"github.com/burnai/go-burn-suitability/internal/catalog"
	"github.com/burnai/go-burn-suitability/internal/config"
	"github.com/burnai/go-burn-suitability/internal/models"
	"github.com/burnai/go-burn-suitability/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testCatalogYAML = `
counties:
  - id: sf
    name: San Francisco
    state: California
    coordinates:
      lat: 37.7749
      lon: -122.4194
  - id: la
    name: Los Angeles
    state: California
    coordinates:
      lat: 34.0522
      lon: -118.2437
`

// memoryRepo implements repository.AssessmentRepository for testing
type memoryRepo struct {
	mu     sync.Mutex
	latest map[string]*repository.LatestAssessment
	saves  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{latest: make(map[string]*repository.LatestAssessment)}
}

func (m *memoryRepo) Save(ctx context.Context, signals *models.CountySignals, assessment *models.SuitabilityAssessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest[assessment.CountyID] = &repository.LatestAssessment{Signals: signals, Assessment: assessment}
	m.saves++
	return nil
}

func (m *memoryRepo) GetLatest(ctx context.Context, countyID string) (*repository.LatestAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	la, ok := m.latest[countyID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return la, nil
}

func (m *memoryRepo) ListLatest(ctx context.Context) (map[string]*models.SuitabilityAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*models.SuitabilityAssessment, len(m.latest))
	for id, la := range m.latest {
		out[id] = la.Assessment
	}
	return out, nil
}

func (m *memoryRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

type stubCollector struct {
	mu   sync.Mutex
	errs map[string]error
}

func (s *stubCollector) Collect(ctx context.Context, countyID string) (*models.CountySignals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs[countyID]; err != nil {
		return nil, err
	}
	return &models.CountySignals{
		CountyID: countyID,
		Weather: models.Weather{
			TemperatureF:  68,
			HumidityPct:   52,
			WindSpeedMph:  5,
			WindDirection: "W",
		},
		HazardProximity:         models.HazardProximityLow,
		FirePersonnelReady:      15,
		EquipmentStatus:         models.EquipmentReady,
		PermitStatus:            models.PermitApproved,
		HistoricalFireFrequency: 2,
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Worker:  config.WorkerConfig{Count: 2, BufferSize: 10},
		Refresh: config.RefreshConfig{Interval: time.Minute},
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("failed to parse test catalog: %v", err)
	}
	return cat
}

func waitForSaves(t *testing.T, repo *memoryRepo, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if repo.saveCount() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d saves, got %d", want, repo.saveCount())
}

func TestManager_InitialRefresh(t *testing.T) {
	repo := newMemoryRepo()
	clock := clockwork.NewFakeClock()
	mgr := NewManager(testConfig(), testCatalog(t), &stubCollector{}, repo, nil, clock)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	waitForSaves(t, repo, 2)

	la, err := repo.GetLatest(ctx, "sf")
	if err != nil {
		t.Fatalf("expected sf assessment: %v", err)
	}
	if la.Assessment.Status != models.StatusHighlySuitable {
		t.Errorf("expected HIGHLY_SUITABLE, got %s", la.Assessment.Status)
	}
	if !la.Assessment.ProtocolEligible {
		t.Error("expected sf to be protocol eligible")
	}

	cancel()
	mgr.Stop()
}

func TestManager_TickerRefresh(t *testing.T) {
	repo := newMemoryRepo()
	clock := clockwork.NewFakeClock()
	mgr := NewManager(testConfig(), testCatalog(t), &stubCollector{}, repo, nil, clock)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	waitForSaves(t, repo, 2)

	// Wait for the run loop to block on the ticker, then fire it
	clock.BlockUntil(1)
	clock.Advance(time.Minute)

	waitForSaves(t, repo, 4)

	cancel()
	mgr.Stop()
}

func TestManager_SourceFailureKeepsCachedAssessment(t *testing.T) {
	repo := newMemoryRepo()
	clock := clockwork.NewFakeClock()
	collector := &stubCollector{errs: map[string]error{}}
	mgr := NewManager(testConfig(), testCatalog(t), collector, repo, nil, clock)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)
	waitForSaves(t, repo, 2)

	before, err := repo.GetLatest(ctx, "la")
	if err != nil {
		t.Fatalf("expected la assessment: %v", err)
	}

	// la starts failing; sf keeps refreshing
	collector.mu.Lock()
	collector.errs["la"] = &models.SourceError{Source: "weather", Err: errors.New("timeout")}
	collector.mu.Unlock()

	clock.BlockUntil(1)
	clock.Advance(time.Minute)
	waitForSaves(t, repo, 3)

	after, err := repo.GetLatest(ctx, "la")
	if err != nil {
		t.Fatalf("expected cached la assessment: %v", err)
	}
	if after.Assessment.ID != before.Assessment.ID {
		t.Error("expected la assessment to stay cached after source failure")
	}

	cancel()
	mgr.Stop()
}

func TestManager_BroadcastsFreshAssessments(t *testing.T) {
	repo := newMemoryRepo()
	clock := clockwork.NewFakeClock()
	b := broadcast.NewBroadcaster()
	defer b.Close()

	_, ch := b.Subscribe()

	mgr := NewManager(testConfig(), testCatalog(t), &stubCollector{}, repo, b, clock)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	received := make(map[string]bool)
	timeout := time.After(2 * time.Second)
	for len(received) < 2 {
		select {
		case a := <-ch:
			received[a.CountyID] = true
		case <-timeout:
			t.Fatalf("timed out waiting for broadcasts, got %v", received)
		}
	}

	cancel()
	mgr.Stop()
}

func TestManager_RefreshNow(t *testing.T) {
	repo := newMemoryRepo()
	clock := clockwork.NewFakeClock()
	mgr := NewManager(testConfig(), testCatalog(t), &stubCollector{}, repo, nil, clock)

	a, err := mgr.RefreshNow(context.Background(), "sf")
	if err != nil {
		t.Fatalf("refresh now failed: %v", err)
	}
	if a.CountyID != "sf" {
		t.Errorf("expected sf, got %s", a.CountyID)
	}

	if _, err := repo.GetLatest(context.Background(), "sf"); err != nil {
		t.Errorf("expected assessment to be stored: %v", err)
	}

	if _, err := mgr.RefreshNow(context.Background(), "unknown"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown county, got %v", err)
	}
}
