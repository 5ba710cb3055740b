// loadgen publishes synthetic query events to the telemetry queue so the
// pipeline can be exercised without a live API in front of it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/querystats-lab/querystats/internal/broker"
	corecfg "github.com/querystats-lab/querystats/internal/core/config"
	"github.com/querystats-lab/querystats/internal/core/stats"
)

var samplePaths = []string{
	"/people/1",
	"/people/2",
	"/people/3",
	"/films/1",
	"/films/2",
	"/planets/8",
	"/starships/9",
	"/search",
}

type syntheticEvent struct {
	Path       string `json:"path"`
	Route      string `json:"route"`
	Ms         int    `json:"ms"`
	Source     string `json:"source"`
	OccurredAt string `json:"occurred_at"`
}

func main() {
	configPath := flag.String("config", "querystats.yaml", "Path to configuration file")
	count := flag.Int("count", 100, "Number of messages to publish")
	startHour := flag.Int("start-hour", 0, "Earliest hour of day for synthetic timestamps")
	endHour := flag.Int("end-hour", 23, "Latest hour of day for synthetic timestamps")
	tagRun := flag.Bool("tag-run", false, "Stamp messages with a unique per-run source tag")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *startHour < 0 || *endHour > 23 || *startHour > *endHour {
		slog.Error("Invalid hour range", "start", *startHour, "end", *endHour)
		os.Exit(1)
	}

	source := cfg.Statistics.DefaultSource
	if *tagRun {
		source = "loadgen-" + uuid.NewString()[:8]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	publisher, err := broker.NewPublisher(
		ctx,
		cfg.Broker.URL,
		cfg.Broker.Queue,
		cfg.Broker.ConnectAttempts,
		cfg.Broker.ConnectBackoffDuration(),
	)
	if err != nil {
		slog.Error("Failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	slog.Info("Producing messages",
		"count", *count,
		"queue", cfg.Broker.Queue,
		"source", source,
		"hours", []int{*startHour, *endHour},
	)

	for i := 0; i < *count; i++ {
		path := samplePaths[rand.Intn(len(samplePaths))]

		evt := syntheticEvent{
			Path:       path,
			Route:      stats.NormalizeRoute(path),
			Ms:         50 + rand.Intn(451),
			Source:     source,
			OccurredAt: randomTimeToday(*startHour, *endHour).Format(time.RFC3339),
		}

		body, err := json.Marshal(evt)
		if err != nil {
			slog.Error("Failed to encode message", "error", err)
			os.Exit(1)
		}

		if err := publisher.Publish(ctx, cfg.Broker.Queue, body); err != nil {
			slog.Error("Failed to publish message", "error", err, "published", i)
			os.Exit(1)
		}
	}

	slog.Info("Done", "published", *count)
}

// randomTimeToday picks a random instant today between startHour and endHour
// inclusive, in UTC.
func randomTimeToday(startHour, endHour int) time.Time {
	now := time.Now().UTC()
	hour := startHour + rand.Intn(endHour-startHour+1)
	return time.Date(now.Year(), now.Month(), now.Day(),
		hour, rand.Intn(60), rand.Intn(60), 0, time.UTC)
}
