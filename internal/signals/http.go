package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/burnai/go-burn-suitability/internal/models"
)

const (
	defaultTimeout = 15 * time.Second
	baseBackoff    = time.Second
	maxBackoff     = 30 * time.Second
)

// httpSource fetches JSON documents from one external collaborator. Transient
// failures (transport errors, 429, 5xx) are retried with bounded exponential
// backoff and jitter; the county data collaborators rate-limit aggressively.
// Exhausted retries surface as a SourceError naming this source.
type httpSource struct {
	name        string
	baseURL     string
	client      *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

func newHTTPSource(name, baseURL string, rps float64, maxRetries int) *httpSource {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &httpSource{
		name:        name,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: defaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (s *httpSource) fetchJSON(ctx context.Context, path string, out any) error {
	url := s.baseURL + path

	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return &models.SourceError{Source: s.name, Err: err}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &models.SourceError{Source: s.name, Err: fmt.Errorf("error creating request: %w", err)}
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("error while doing request: %w", err)
			slog.Warn("source request failed, retrying", "source", s.name, "attempt", attempt+1, "error", err)
			if err := s.backoff(ctx, attempt); err != nil {
				break
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
			slog.Warn("source returned retryable status", "source", s.name, "status", resp.StatusCode, "attempt", attempt+1)
			if err := s.backoff(ctx, attempt); err != nil {
				break
			}
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return &models.SourceError{Source: s.name, Err: models.ErrNotFound}
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return &models.SourceError{Source: s.name, Err: fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return &models.SourceError{Source: s.name, Err: fmt.Errorf("error decoding resp.Body: %w", err)}
		}
		return nil
	}

	if ctx.Err() != nil {
		lastErr = ctx.Err()
	}
	return &models.SourceError{Source: s.name, Err: fmt.Errorf("retries exhausted: %w", lastErr)}
}

// backoff sleeps before the next attempt, doubling per attempt with jitter,
// capped at maxBackoff. Returns early with the context error on cancellation.
// No sleep after the final attempt.
func (s *httpSource) backoff(ctx context.Context, attempt int) error {
	if attempt+1 >= s.maxRetries {
		return nil
	}
	d := time.Duration(float64(s.baseBackoff) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// HTTPWeatherSource reads current conditions from the weather collaborator.
type HTTPWeatherSource struct {
	src *httpSource
}

func NewHTTPWeatherSource(baseURL string, rps float64, maxRetries int) *HTTPWeatherSource {
	return &HTTPWeatherSource{src: newHTTPSource(SourceWeather, baseURL, rps, maxRetries)}
}

type weatherResponse struct {
	TemperatureF  float64 `json:"temperature_f"`
	HumidityPct   float64 `json:"humidity_pct"`
	WindSpeedMph  float64 `json:"wind_speed_mph"`
	WindDirection string  `json:"wind_direction"`
}

func (w *HTTPWeatherSource) Current(ctx context.Context, countyID string) (models.Weather, error) {
	var resp weatherResponse
	if err := w.src.fetchJSON(ctx, "/weather/"+countyID, &resp); err != nil {
		return models.Weather{}, err
	}
	return models.Weather{
		TemperatureF:  resp.TemperatureF,
		HumidityPct:   resp.HumidityPct,
		WindSpeedMph:  resp.WindSpeedMph,
		WindDirection: resp.WindDirection,
	}, nil
}

// HTTPHazardSource reads proximity risk and fire history from the GIS
// collaborator.
type HTTPHazardSource struct {
	src *httpSource
}

func NewHTTPHazardSource(baseURL string, rps float64, maxRetries int) *HTTPHazardSource {
	return &HTTPHazardSource{src: newHTTPSource(SourceHazard, baseURL, rps, maxRetries)}
}

type hazardResponse struct {
	HazardProximity string  `json:"hazard_proximity"`
	FiresPerWeek    float64 `json:"fires_per_week"`
}

func (h *HTTPHazardSource) Proximity(ctx context.Context, countyID string) (models.HazardProximity, float64, error) {
	var resp hazardResponse
	if err := h.src.fetchJSON(ctx, "/hazard/"+countyID, &resp); err != nil {
		return "", 0, err
	}
	prox, ok := models.ParseHazardProximity(resp.HazardProximity)
	if !ok {
		return "", 0, &models.SourceError{
			Source: SourceHazard,
			Err:    fmt.Errorf("unknown hazard proximity %q", resp.HazardProximity),
		}
	}
	return prox, resp.FiresPerWeek, nil
}

// HTTPResourceSource reads personnel and equipment readiness from the
// resource management system.
type HTTPResourceSource struct {
	src *httpSource
}

func NewHTTPResourceSource(baseURL string, rps float64, maxRetries int) *HTTPResourceSource {
	return &HTTPResourceSource{src: newHTTPSource(SourceResources, baseURL, rps, maxRetries)}
}

type resourceResponse struct {
	FirePersonnelReady int    `json:"fire_personnel_ready"`
	EquipmentStatus    string `json:"equipment_status"`
}

func (r *HTTPResourceSource) Readiness(ctx context.Context, countyID string) (int, models.EquipmentStatus, error) {
	var resp resourceResponse
	if err := r.src.fetchJSON(ctx, "/resources/"+countyID, &resp); err != nil {
		return 0, "", err
	}
	status, ok := models.ParseEquipmentStatus(resp.EquipmentStatus)
	if !ok {
		return 0, "", &models.SourceError{
			Source: SourceResources,
			Err:    fmt.Errorf("unknown equipment status %q", resp.EquipmentStatus),
		}
	}
	return resp.FirePersonnelReady, status, nil
}

// HTTPPermitSource reads burn permit status from the permitting system.
type HTTPPermitSource struct {
	src *httpSource
}

func NewHTTPPermitSource(baseURL string, rps float64, maxRetries int) *HTTPPermitSource {
	return &HTTPPermitSource{src: newHTTPSource(SourcePermits, baseURL, rps, maxRetries)}
}

type permitResponse struct {
	PermitStatus string `json:"permit_status"`
}

func (p *HTTPPermitSource) Status(ctx context.Context, countyID string) (models.PermitStatus, error) {
	var resp permitResponse
	if err := p.src.fetchJSON(ctx, "/permits/"+countyID, &resp); err != nil {
		return "", err
	}
	status, ok := models.ParsePermitStatus(resp.PermitStatus)
	if !ok {
		return "", &models.SourceError{
			Source: SourcePermits,
			Err:    fmt.Errorf("unknown permit status %q", resp.PermitStatus),
		}
	}
	return status, nil
}
