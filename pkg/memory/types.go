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

// Region is a word addressed view of memory. Index i addresses the 32-bit
// word at byte offset 4*i.
type Region interface {
	Words() int
	Word(index int) uint32
	SetWord(index int, value uint32)

	// Store copies raw bytes verbatim starting at word index. The length of
	// raw must be a multiple of WordSize.
	Store(index int, raw []byte)
}

// Style selects how Dump decorates its output.
type Style uint

const (
	Plain Style = iota
	ANSI
)

const WordSize = 4
