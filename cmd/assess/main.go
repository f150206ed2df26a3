// assess runs a one-shot assessment for a single county and prints the
// export document. Useful for checking source connectivity and scoring
// without starting the server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/burnai/go-burn-suitability/internal/config"
	"github.com/burnai/go-burn-suitability/internal/logging"
	"github.com/burnai/go-burn-suitability/internal/signals"
	"github.com/burnai/go-burn-suitability/internal/suitability"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: assess <county-id>")
		os.Exit(2)
	}
	countyID := os.Args[1]

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	aggregator := signals.NewAggregator(
		signals.NewHTTPWeatherSource(cfg.Sources.WeatherURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
		signals.NewHTTPHazardSource(cfg.Sources.HazardURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
		signals.NewHTTPResourceSource(cfg.Sources.ResourcesURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
		signals.NewHTTPPermitSource(cfg.Sources.PermitsURL, cfg.Sources.RateLimit, cfg.Sources.MaxRetries),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, err := aggregator.Collect(ctx, countyID)
	if err != nil {
		logging.Fatalf("Failed to collect signals: %v", err)
	}

	assessment, err := suitability.BuildAssessment(snapshot, time.Now())
	if err != nil {
		logging.Fatalf("Failed to build assessment: %v", err)
	}

	doc, err := suitability.EncodeExport(assessment)
	if err != nil {
		logging.Fatalf("Failed to encode export: %v", err)
	}

	fmt.Println(string(doc))
}
