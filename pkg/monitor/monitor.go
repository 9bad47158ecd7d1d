// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package monitor samples the controller's debug registers and tallies how
// many of the pixels it is scanning out carry a valid checksum.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/lassandro/gofbload/pkg/checksum"
	"github.com/lassandro/gofbload/pkg/controller"
)

type Stats struct {
	Samples   uint64
	Successes uint64
	Errors    uint64
	Last      controller.Sample
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"%d samples: %d valid, %d errors (state %s, counter %d, fifo %d)",
		s.Samples, s.Successes, s.Errors,
		s.Last.State, s.Last.Counter, s.Last.FIFO,
	)
}

type Monitor struct {
	Controller *controller.Controller

	// Limit is the number of samples to take. Zero or less samples until
	// the context is done.
	Limit int

	// Interval is the pause between samples.
	Interval time.Duration

	// Report, if set, is called every ReportEvery samples and once more
	// when the run ends.
	Report      func(Stats)
	ReportEvery int
}

// Run samples until the limit is reached or ctx is done. Cancellation is
// only reported as an error when it cut a limited run short.
func (m *Monitor) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	var ticker *time.Ticker

	if m.Interval > 0 {
		ticker = time.NewTicker(m.Interval)
		defer ticker.Stop()
	}

	defer m.report(&stats, true)

	for m.Limit <= 0 || stats.Samples < uint64(m.Limit) {
		if err := ctx.Err(); err != nil {
			if m.Limit > 0 {
				return stats, err
			}
			return stats, nil
		}

		sample := m.Controller.Debug()
		stats.Samples++
		stats.Last = sample

		if checksum.Validate(sample.Pixel) {
			stats.Successes++
		} else {
			stats.Errors++
		}

		m.report(&stats, false)

		if ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
	}

	return stats, nil
}

func (m *Monitor) report(stats *Stats, final bool) {
	if m.Report == nil {
		return
	}

	due := m.ReportEvery > 0 && stats.Samples > 0 &&
		stats.Samples%uint64(m.ReportEvery) == 0

	// The final report is skipped when the last sample was just reported
	if due != final {
		m.Report(*stats)
	}
}
