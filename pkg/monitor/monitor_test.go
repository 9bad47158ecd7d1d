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

package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lassandro/gofbload/pkg/controller"
	"github.com/lassandro/gofbload/pkg/memory"
	"github.com/lassandro/gofbload/pkg/monitor"
)

// Serves a fixed cycle of pixels from the debug pixel register
type scanout struct {
	*memory.Memory
	pixels []uint32
	reads  int
}

func (s *scanout) Word(index int) uint32 {
	if uint32(index*memory.WordSize) == controller.RegDebugPixel {
		pixel := s.pixels[s.reads%len(s.pixels)]
		s.reads++
		return pixel
	}

	return s.Memory.Word(index)
}

func newMonitor(pixels ...uint32) (*monitor.Monitor, *scanout) {
	regs := &scanout{Memory: memory.New(controller.WindowWords), pixels: pixels}
	regs.Memory.SetWord(int(controller.RegState/memory.WordSize), uint32(controller.StateBusy))

	return &monitor.Monitor{
		Controller: &controller.Controller{Regs: regs},
	}, regs
}

func TestRunLimit(t *testing.T) {
	mon, regs := newMonitor(0x40010594, 0xFFFFFFFF, 0x00000000)
	mon.Limit = 9

	stats, err := mon.Run(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if stats.Samples != 9 || stats.Successes != 6 || stats.Errors != 3 {
		t.Errorf(
			"Stats mismatch"+
				"\nwant:9 samples, 6 valid, 3 errors\nhave:%s",
			stats,
		)
	}

	if regs.reads != 9 {
		t.Errorf("Pixel reads mismatch\nwant:9\nhave:%d", regs.reads)
	}

	if stats.Last.State != controller.StateBusy {
		t.Errorf("State mismatch\nwant:%s\nhave:%s", controller.StateBusy, stats.Last.State)
	}
}

func TestReportEvery(t *testing.T) {
	tests := []struct {
		Name    string
		Limit   int
		Every   int
		Reports []uint64
	}{
		{Name: "Trailing Final", Limit: 10, Every: 4, Reports: []uint64{4, 8, 10}},
		{Name: "Aligned Final", Limit: 8, Every: 4, Reports: []uint64{4, 8}},
		{Name: "Final Only", Limit: 5, Every: 0, Reports: []uint64{5}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			mon, _ := newMonitor(0x40010594)
			mon.Limit = test.Limit
			mon.ReportEvery = test.Every

			var have []uint64
			mon.Report = func(s monitor.Stats) {
				have = append(have, s.Samples)
			}

			if _, err := mon.Run(context.Background()); err != nil {
				t.Fatal(err)
			}

			if len(have) != len(test.Reports) {
				t.Fatalf("Report mismatch\nwant:%v\nhave:%v", test.Reports, have)
			}

			for i := range have {
				if have[i] != test.Reports[i] {
					t.Fatalf("Report mismatch\nwant:%v\nhave:%v", test.Reports, have)
				}
			}
		})
	}
}

func TestRunUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon, _ := newMonitor(0x40010594)
	mon.ReportEvery = 50
	mon.Report = func(s monitor.Stats) {
		if s.Samples == 100 {
			cancel()
		}
	}

	stats, err := mon.Run(ctx)

	if err != nil {
		t.Fatalf("Unbounded run returned %v", err)
	}

	if stats.Samples != 100 {
		t.Errorf("Sample count mismatch\nwant:100\nhave:%d", stats.Samples)
	}
}

func TestRunCancelledBeforeLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mon, _ := newMonitor(0x40010594)
	mon.Limit = 100

	stats, err := mon.Run(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Error mismatch\nwant:%v\nhave:%v", context.Canceled, err)
	}

	if stats.Samples != 0 {
		t.Errorf("Sample count mismatch\nwant:0\nhave:%d", stats.Samples)
	}
}

func TestRunInterval(t *testing.T) {
	mon, _ := newMonitor(0x40010594)
	mon.Limit = 3
	mon.Interval = time.Millisecond

	start := time.Now()
	stats, err := mon.Run(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if stats.Samples != 3 {
		t.Errorf("Sample count mismatch\nwant:3\nhave:%d", stats.Samples)
	}

	if elapsed := time.Since(start); elapsed < 2*time.Millisecond {
		t.Errorf("Interval not honoured, run took %s", elapsed)
	}
}
