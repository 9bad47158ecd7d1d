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

package transfer

import (
	"errors"
	"fmt"
	"io"

	"github.com/lassandro/gofbload/pkg/memory"
)

const (
	DefaultSentinel   uint32 = 0x40010594
	DefaultChunkWords        = 4096
)

var (
	ErrInvalidConfig     = errors.New("invalid transfer configuration")
	ErrMisaligned        = errors.New("transfer size is not a multiple of the chunk size")
	ErrCapacity          = errors.New("transfer size exceeds destination capacity")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrShortRead         = errors.New("short read from source")
)

// Config describes the shape of a transfer. Sentinel is compared against the
// first word of the destination exactly as it reads from memory.
type Config struct {
	ChunkWords int
	TotalWords int
	Sentinel   uint32
}

// Source opens the byte stream to transfer from. It is only called when the
// destination needs to be written.
type Source func() (io.ReadCloser, error)

// ChunkReport is the outcome of one chunk. Index is 1-based.
type ChunkReport struct {
	Index  int
	Total  int
	Errors uint64
}

func (r ChunkReport) String() string {
	return fmt.Sprintf(
		"Transferring framebuffer chunks... %d/%d: %d errors",
		r.Index, r.Total, r.Errors,
	)
}

type Report struct {
	// Transferred is false when the sentinel matched and nothing was copied.
	Transferred bool
	Chunks      []ChunkReport

	// Errors counts invalid words across the whole destination after the
	// transfer.
	Errors uint64
}

func (r Report) TransferErrors() uint64 {
	var sum uint64

	for _, chunk := range r.Chunks {
		sum += chunk.Errors
	}

	return sum
}

type Session struct {
	Config

	Memory   memory.Region
	Open     Source
	Progress func(ChunkReport)
}
