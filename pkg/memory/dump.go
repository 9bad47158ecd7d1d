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
	"bufio"
	"fmt"
	"io"

	"github.com/lassandro/gofbload/pkg/checksum"
)

// Dump writes count words of r starting at start, four to a row, each row
// led by the byte offset of its first word. With ANSI styling zero words are
// dimmed and words failing the checksum are shown in red.
func Dump(w io.Writer, r Region, start, count int, style Style) error {
	if start < 0 || count < 0 || start+count > r.Words() {
		return fmt.Errorf(
			"memory: dump of %d words at %d exceeds %d words",
			count, start, r.Words(),
		)
	}

	out := bufio.NewWriter(w)

	for i := start; i < start+count; i++ {
		if (i-start)%4 == 0 {
			if i != start {
				out.WriteString("\n")
			}

			if style == ANSI {
				fmt.Fprintf(out, "\033[1m[%08x]\033[0m ", i*WordSize)
			} else {
				fmt.Fprintf(out, "[%08x] ", i*WordSize)
			}
		}

		word := r.Word(i)

		switch {
		case style != ANSI:
			if checksum.Validate(word) {
				fmt.Fprintf(out, "%08x  ", word)
			} else {
				fmt.Fprintf(out, "%08x! ", word)
			}
		case word == 0:
			fmt.Fprintf(out, "\033[1;30m%08x\033[0m ", word)
		case !checksum.Validate(word):
			fmt.Fprintf(out, "\033[1;31m%08x\033[0m ", word)
		default:
			fmt.Fprintf(out, "%08x ", word)
		}
	}

	if count > 0 {
		out.WriteString("\n")
	}

	return out.Flush()
}
