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

package encoding

import (
	"errors"
	"math/bits"
	"strconv"
	"strings"
)

// Decodes a hexidecimal string in the formats: 0xFFFFFFFF, xFFFFFFFF, 0xFF, xFF
func DecodeHex(s string) (uint32, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 || s[0] != '0' {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 32)

	if err != nil {
		return 0, err
	}

	return uint32(result), nil
}

// Decodes a base-10 string in the formats: #123, 123
func DecodeInt(s string) (int64, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	return strconv.ParseInt(s, 10, 64)
}

// Reverses the byte order of a 32-bit word
func SwapEndian(value uint32) uint32 {
	return (value&0xFF000000)>>24 |
		(value&0x00FF0000)>>8 |
		(value&0x0000FF00)<<8 |
		(value&0x000000FF)<<24
}

// Counts the set bits among the lowest bitcount bits of value
func PopCount(value uint32, bitcount uint) uint {
	if bitcount < 32 {
		value &= (1 << bitcount) - 1
	}

	return uint(bits.OnesCount32(value))
}
