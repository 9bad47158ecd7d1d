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

// Package transfer copies a framebuffer image into memory in fixed size
// chunks, validating every word as it lands.
//
// A destination whose first word already equals the configured sentinel is
// considered loaded and the source is never opened. Either way the whole
// destination is validated once at the end. Alignment and capacity are
// checked before anything is written, and a source that ends early aborts
// the transfer without storing the partial chunk. The first word is written
// last, so an aborted transfer never leaves the sentinel in place.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/lassandro/gofbload/pkg/checksum"
	"github.com/lassandro/gofbload/pkg/memory"
)

// Check verifies the configuration against a destination of capacity words.
func (c Config) Check(capacity int) error {
	if c.ChunkWords <= 0 {
		return fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, c.ChunkWords)
	}

	if c.TotalWords <= 0 {
		return fmt.Errorf("%w: transfer size %d", ErrInvalidConfig, c.TotalWords)
	}

	if c.TotalWords%c.ChunkWords != 0 {
		return fmt.Errorf(
			"%w: %d words in chunks of %d",
			ErrMisaligned, c.TotalWords, c.ChunkWords,
		)
	}

	if c.TotalWords > capacity {
		return fmt.Errorf(
			"%w: %d words into %d",
			ErrCapacity, c.TotalWords, capacity,
		)
	}

	return nil
}

// FramebufferWords returns the number of words in count framebuffers of
// width x height pixels. The result is also addressable in bytes.
func FramebufferWords(count, width, height int) (int, error) {
	if count <= 0 || width <= 0 || height <= 0 {
		return 0, fmt.Errorf(
			"%w: %d framebuffers of %dx%d",
			ErrInvalidConfig, count, width, height,
		)
	}

	limit := math.MaxInt / memory.WordSize

	if width > limit/height || count > limit/(width*height) {
		return 0, fmt.Errorf(
			"%w: %d framebuffers of %dx%d overflow",
			ErrInvalidConfig, count, width, height,
		)
	}

	return count * width * height, nil
}

// Chunks is the number of chunks in a transfer.
func (c Config) Chunks() int {
	if c.ChunkWords <= 0 {
		return 0
	}

	return c.TotalWords / c.ChunkWords
}

// Run performs the session. The returned report is filled in as far as the
// session got, even when an error is returned.
func (s *Session) Run() (Report, error) {
	var report Report

	if s.Memory == nil {
		return report, errors.New("no destination memory")
	}

	if err := s.Check(s.Memory.Words()); err != nil {
		return report, err
	}

	if s.Memory.Word(0) != s.Sentinel {
		if err := s.transfer(&report); err != nil {
			return report, err
		}
	}

	report.Errors = Verify(s.Memory, 0, s.TotalWords)

	return report, nil
}

func (s *Session) transfer(report *Report) error {
	if s.Open == nil {
		return ErrSourceUnavailable
	}

	src, err := s.Open()

	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	defer src.Close()

	total := s.Chunks()
	scratch := make([]byte, s.ChunkWords*memory.WordSize)

	// Word 0 carries the sentinel, so it is held back until every chunk is
	// stored. Until then it reads as anything but the sentinel.
	var first [memory.WordSize]byte

	for i := 0; i < total; i++ {
		n, err := io.ReadFull(src, scratch)

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf(
				"%w: chunk %d/%d has %d of %d bytes",
				ErrShortRead, i+1, total, n, len(scratch),
			)
		} else if err != nil {
			return fmt.Errorf("read chunk %d/%d: %w", i+1, total, err)
		}

		start := i * s.ChunkWords
		s.Memory.Store(start, scratch)

		chunk := ChunkReport{
			Index:  i + 1,
			Total:  total,
			Errors: Verify(s.Memory, start, s.ChunkWords),
		}

		if i == 0 {
			copy(first[:], scratch)
			s.Memory.SetWord(0, ^s.Sentinel)
		}

		report.Chunks = append(report.Chunks, chunk)

		if s.Progress != nil {
			s.Progress(chunk)
		}
	}

	s.Memory.Store(0, first[:])
	report.Transferred = true

	return nil
}

// Verify counts the words in r[start:start+count] that fail the checksum.
func Verify(r memory.Region, start, count int) uint64 {
	var failed uint64

	for i := start; i < start+count; i++ {
		if !checksum.Validate(r.Word(i)) {
			failed++
		}
	}

	return failed
}
