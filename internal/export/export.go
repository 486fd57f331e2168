// Package export fans a resolved hero skill list out to the configured sinks.
package export

import (
	"context"
	"errors"
	"fmt"

	"hero-skill-lister/internal/report"
	"hero-skill-lister/internal/worker"

	"github.com/rs/zerolog/log"
)

// Sink receives the full list of report entries.
type Sink interface {
	Name() string
	Export(ctx context.Context, entries []report.Entry) error
}

// Run exports entries to every sink concurrently. All sinks run even when
// one fails; the returned error joins every failure.
func Run(ctx context.Context, sinks []Sink, entries []report.Entry) error {
	if len(sinks) == 0 {
		log.Warn().Msg("No export sinks configured")
		return nil
	}

	pool := worker.NewPool[Sink, struct{}](len(sinks), func(ctx context.Context, s Sink) (struct{}, error) {
		return struct{}{}, s.Export(ctx, entries)
	})

	var errs []error
	for _, res := range pool.Execute(ctx, sinks) {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("export %s: %w", res.Input.Name(), res.Err))
			continue
		}
		log.Info().Str("sink", res.Input.Name()).Msg("Export finished")
	}
	return errors.Join(errs...)
}
