// Copyright 2025 the decopy authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/decopy/decopy/pkg/dircopy"
)

// 🏃 Runner executes a queue: measure once, copy to every destination in
// order, stream events while doing it.
type Runner struct {
	copy dircopy.Options
}

// 🏗️ NewRunner creates a runner that copies with the given options
func NewRunner(copy dircopy.Options) *Runner {
	return &Runner{copy: copy}
}

// 🏃 Run copies the queue's source into each destination in order, feeding
// events as it goes. The events channel is closed when Run returns,
// whatever the outcome. A destination failure is recorded in the report
// and the run continues; only source errors and cancellation end the run
// early. The returned report covers every destination that was attempted.
func (r *Runner) Run(ctx context.Context, queue *Queue, events chan<- Event) (*Report, error) {
	defer close(events)

	if queue == nil {
		return nil, errors.Errorf("queue is required")
	}

	logger := zerolog.Ctx(ctx)
	report := &Report{Source: queue.Source()}

	if err := ctx.Err(); err != nil {
		return report, errors.Errorf("run cancelled: %w", err)
	}

	total, err := dircopy.TreeSize(ctx, queue.Source(), r.copy)
	if err != nil {
		return report, &SourceError{Source: queue.Source(), Err: err}
	}

	for _, dest := range queue.Destinations() {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("run cancelled: %w", err)
		}

		logger.Debug().Str("destination", dest).Int64("total", total).Msg("starting destination")
		r.send(ctx, events, Progress{Destination: dest})

		written, err := dircopy.CopyTree(ctx, queue.Source(), dest, r.copy, func(copied int64) bool {
			if ctx.Err() != nil {
				return false
			}
			r.trySend(events, Progress{
				Destination: dest,
				Bytes:       copied,
				Percentage:  percentage(copied, total),
			})
			return true
		})
		report.TotalBytes += written

		if err != nil {
			if ctx.Err() != nil {
				return report, errors.Errorf("run cancelled: %w", ctx.Err())
			}
			destErr := &DestinationError{Destination: dest, Err: err}
			report.Results = append(report.Results, Result{Destination: dest, Bytes: written, Err: destErr})
			logger.Error().Err(err).Str("destination", dest).Msg("destination failed")
			r.send(ctx, events, DestinationFailed{Destination: dest, Err: destErr})
			continue
		}

		report.Results = append(report.Results, Result{Destination: dest, Bytes: written})
		logger.Debug().Str("destination", dest).Int64("bytes", written).Msg("destination finished")
		r.send(ctx, events, Progress{Destination: dest, Bytes: written, Percentage: 100})
	}

	r.send(ctx, events, Done{TotalBytes: report.TotalBytes, Failed: len(report.Failed())})
	return report, nil
}

// send delivers milestone events that must not be lost. It gives up only
// when the context dies.
func (r *Runner) send(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

// trySend delivers a tick if there is room and drops it otherwise; a
// fresher tick always follows.
func (r *Runner) trySend(events chan<- Event, ev Event) {
	select {
	case events <- ev:
	default:
	}
}

// percentage floors copied/total into 0..100. A zero total reads as 0
// until the completion milestone reports 100 outright.
func percentage(copied, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(float64(copied) / float64(total) * 100)
	if p > 100 {
		p = 100
	}
	return p
}
