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

package memory

import (
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// Mapping is a Region backed by a shared mapping of a device or file, such
// as the bridge window exposed through /dev/mem.
type Mapping struct {
	Memory

	file   *os.File
	mapped []byte
}

// Map maps words 32-bit words of path starting at byte offset base. The base
// does not need to be page aligned.
func Map(path string, base int64, words int) (*Mapping, error) {
	if words <= 0 {
		return nil, errors.New("memory: mapping must cover at least one word")
	}

	if base < 0 {
		return nil, fmt.Errorf("memory: negative base %#x", base)
	}

	if words > (math.MaxInt-os.Getpagesize())/WordSize {
		return nil, fmt.Errorf("memory: mapping of %d words is too large", words)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)

	if err != nil {
		return nil, err
	}

	pagesize := int64(unix.Getpagesize())
	aligned := base &^ (pagesize - 1)
	slack := int(base - aligned)

	mapped, err := unix.Mmap(
		int(file.Fd()),
		aligned,
		slack+words*WordSize,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)

	if err != nil {
		file.Close()
		return nil, fmt.Errorf("memory: could not map %s at %#x: %w", path, base, err)
	}

	return &Mapping{
		Memory: Memory{buf: mapped[slack : slack+words*WordSize]},
		file:   file,
		mapped: mapped,
	}, nil
}

// Sync flushes the mapping back to its file.
func (m *Mapping) Sync() error {
	return unix.Msync(m.mapped, unix.MS_SYNC)
}

func (m *Mapping) Close() error {
	if m.mapped == nil {
		return nil
	}

	err := unix.Munmap(m.mapped)
	m.mapped = nil
	m.buf = nil

	if cerr := m.file.Close(); err == nil {
		err = cerr
	}

	return err
}
