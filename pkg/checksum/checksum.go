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

// Package checksum implements the 2-bit parity tag carried by every
// framebuffer word.
//
// A decoded word holds a 30-bit payload in bits 0-29 and a tag in bits
// 30-31. The tag is the number of set payload bits, modulo 4. Words are
// stored big-endian and read back from the little-endian target memory, so
// a word taken straight from memory must be byte swapped before the tag is
// checked. Validate does that swap; Check works on a word that is already
// decoded.
package checksum

import (
	"github.com/lassandro/gofbload/pkg/encoding"
)

const (
	PayloadBits        = 30
	PayloadMask uint32 = 1<<PayloadBits - 1
	TagShift           = PayloadBits
	TagMask     uint32 = 0b11
)

// Validate reports whether a word, as read from memory, carries a matching
// tag.
func Validate(word uint32) bool {
	return Check(encoding.SwapEndian(word))
}

// Check reports whether a decoded word carries a matching tag.
func Check(word uint32) bool {
	return Tag(word) == (word>>TagShift)&TagMask
}

// Tag computes the tag for the payload bits of word. The tag bits of word
// are ignored.
func Tag(word uint32) uint32 {
	return uint32(encoding.PopCount(word, PayloadBits)) & TagMask
}

// Seal returns the decoded word holding the low 30 bits of payload and
// their tag.
func Seal(payload uint32) uint32 {
	payload &= PayloadMask
	return Tag(payload)<<TagShift | payload
}
