package refresh

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/burnai/go-burn-suitability/internal/broadcast"
	"github.com/burnai/go-burn-suitability/internal/catalog"
	"github.com/burnai/go-burn-suitability/internal/config"
	"github.com/burnai/go-burn-suitability/internal/models"
	"github.com/burnai/go-burn-suitability/internal/repository"
	"github.com/burnai/go-burn-suitability/internal/suitability"
	"github.com/burnai/go-burn-suitability/internal/worker"
)

// Collector assembles a fresh signal snapshot for one county.
type Collector interface {
	Collect(ctx context.Context, countyID string) (*models.CountySignals, error)
}

type job struct {
	signals    *models.CountySignals
	assessment *models.SuitabilityAssessment
}

// Manager refreshes assessments for every catalog county on an interval.
// A county whose sources fail keeps its previous cached assessment; failures
// are logged with the failing source and never scored with defaults.
type Manager struct {
	cfg         *config.Config
	cat         *catalog.Catalog
	collector   Collector
	repo        repository.AssessmentRepository
	broadcaster *broadcast.Broadcaster
	clock       clockwork.Clock
	pool        *worker.Pool[job]
	wg          sync.WaitGroup
}

func NewManager(cfg *config.Config, cat *catalog.Catalog, collector Collector, repo repository.AssessmentRepository, broadcaster *broadcast.Broadcaster, clock clockwork.Clock) *Manager {
	return &Manager{
		cfg:         cfg,
		cat:         cat,
		collector:   collector,
		repo:        repo,
		broadcaster: broadcaster,
		clock:       clock,
	}
}

func (m *Manager) Start(ctx context.Context) {
	processor := func(ctx context.Context, j job) error {
		if err := m.repo.Save(ctx, j.signals, j.assessment); err != nil {
			slog.Error("error saving assessment", "county", j.assessment.CountyID, "error", err)
			return err
		}

		if m.broadcaster != nil {
			m.broadcaster.Broadcast(j.assessment)
		}

		slog.Info("assessment refreshed",
			"county", j.assessment.CountyID,
			"score", j.assessment.SuitabilityScore,
			"status", j.assessment.Status,
			"eligible", j.assessment.ProtocolEligible,
		)
		return nil
	}

	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, processor)
	m.pool.Start(ctx)

	m.wg.Add(1)
	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("starting refresh loop", "interval", m.cfg.Refresh.Interval, "counties", m.cat.Len())

	ticker := m.clock.NewTicker(m.cfg.Refresh.Interval)
	defer ticker.Stop()

	// Initial refresh
	m.refreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh loop shutting down")
			return
		case <-ticker.Chan():
			m.refreshAll(ctx)
		}
	}
}

func (m *Manager) refreshAll(ctx context.Context) {
	for _, county := range m.cat.List() {
		if ctx.Err() != nil {
			return
		}
		if err := m.refreshCounty(ctx, county.ID); err != nil {
			slog.Error("refresh failed, keeping cached assessment", "county", county.ID, "error", err)
		}
	}
}

func (m *Manager) refreshCounty(ctx context.Context, countyID string) error {
	signals, err := m.collector.Collect(ctx, countyID)
	if err != nil {
		return err
	}

	assessment, err := suitability.BuildAssessment(signals, m.clock.Now())
	if err != nil {
		return err
	}

	m.pool.Submit(job{signals: signals, assessment: assessment})
	return nil
}

// RefreshNow runs a single on-demand refresh for one county, bypassing the
// worker queue, and returns the stored assessment.
func (m *Manager) RefreshNow(ctx context.Context, countyID string) (*models.SuitabilityAssessment, error) {
	if _, err := m.cat.Get(countyID); err != nil {
		return nil, err
	}

	signals, err := m.collector.Collect(ctx, countyID)
	if err != nil {
		return nil, err
	}

	assessment, err := suitability.BuildAssessment(signals, m.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := m.repo.Save(ctx, signals, assessment); err != nil {
		return nil, err
	}
	if m.broadcaster != nil {
		m.broadcaster.Broadcast(assessment)
	}
	return assessment, nil
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("refresh manager stopped")
}
