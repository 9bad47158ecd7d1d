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
	"encoding/binary"
	"fmt"
)

// Memory is a Region backed by a byte slice. Words are little-endian, which
// is how the target reads them.
type Memory struct {
	buf []byte
}

func New(words int) *Memory {
	return &Memory{buf: make([]byte, words*WordSize)}
}

// FromBytes wraps buf without copying. Trailing bytes that do not form a
// whole word are not addressable.
func FromBytes(buf []byte) *Memory {
	return &Memory{buf: buf[:len(buf)/WordSize*WordSize]}
}

func (m *Memory) Words() int {
	return len(m.buf) / WordSize
}

func (m *Memory) Word(index int) uint32 {
	return binary.LittleEndian.Uint32(m.buf[index*WordSize:])
}

func (m *Memory) SetWord(index int, value uint32) {
	binary.LittleEndian.PutUint32(m.buf[index*WordSize:], value)
}

func (m *Memory) Store(index int, raw []byte) {
	if len(raw)%WordSize != 0 {
		panic(fmt.Sprintf("memory: store of %d bytes is not word aligned", len(raw)))
	}

	copy(m.buf[index*WordSize:index*WordSize+len(raw)], raw)
}

// Bytes returns the backing bytes.
func (m *Memory) Bytes() []byte {
	return m.buf
}
