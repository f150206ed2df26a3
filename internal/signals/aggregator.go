package signals

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// Aggregator assembles a fresh CountySignals snapshot per request. The four
// fetches are independent and run concurrently; the scorer must not see a
// partial snapshot, so the first source failure fails the whole collection.
type Aggregator struct {
	weather   WeatherSource
	hazard    HazardSource
	resources ResourceSource
	permits   PermitSource
}

func NewAggregator(weather WeatherSource, hazard HazardSource, resources ResourceSource, permits PermitSource) *Aggregator {
	return &Aggregator{
		weather:   weather,
		hazard:    hazard,
		resources: resources,
		permits:   permits,
	}
}

// Collect gathers all signals for one county. On failure the returned error
// is a SourceError naming the source that failed; no defaults are
// substituted.
func (a *Aggregator) Collect(ctx context.Context, countyID string) (*models.CountySignals, error) {
	signals := &models.CountySignals{CountyID: countyID}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w, err := a.weather.Current(gctx, countyID)
		if err != nil {
			return err
		}
		signals.Weather = w
		return nil
	})

	g.Go(func() error {
		prox, freq, err := a.hazard.Proximity(gctx, countyID)
		if err != nil {
			return err
		}
		signals.HazardProximity = prox
		signals.HistoricalFireFrequency = freq
		return nil
	})

	g.Go(func() error {
		personnel, equipment, err := a.resources.Readiness(gctx, countyID)
		if err != nil {
			return err
		}
		signals.FirePersonnelReady = personnel
		signals.EquipmentStatus = equipment
		return nil
	})

	g.Go(func() error {
		permit, err := a.permits.Status(gctx, countyID)
		if err != nil {
			return err
		}
		signals.PermitStatus = permit
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := signals.Validate(); err != nil {
		return nil, err
	}
	return signals, nil
}
