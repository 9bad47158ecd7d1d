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

package encoding_test

import (
	"testing"

	"github.com/lassandro/gofbload/pkg/encoding"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output uint32
		Fail   bool
	}{
		{Name: "Prefixed", Input: "0x40010594", Output: 0x40010594},
		{Name: "Upper Prefix", Input: "0XCAFE", Output: 0xCAFE},
		{Name: "Bare x", Input: "xFF", Output: 0xFF},
		{Name: "Register Base", Input: "0x10000840", Output: 0x10000840},
		{Name: "Missing Prefix", Input: "FF", Fail: true},
		{Name: "Misplaced Prefix", Input: "1x10", Fail: true},
		{Name: "Overflow", Input: "0x100000000", Fail: true},
		{Name: "Empty Digits", Input: "0x", Fail: true},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			have, err := encoding.DecodeHex(test.Input)

			if test.Fail {
				if err == nil {
					t.Fatalf("Expected error decoding %q, have:%#x", test.Input, have)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if have != test.Output {
				t.Errorf(
					"Hex decoding mismatch"+
						"\nwant:%#08x (test.Output)\nhave:%#08x",
					test.Output,
					have,
				)
			}
		})
	}
}

func TestDecodeInt(t *testing.T) {
	for input, want := range map[string]int64{
		"#4096":  4096,
		"614400": 614400,
		"-1":     -1,
	} {
		have, err := encoding.DecodeInt(input)

		if err != nil {
			t.Fatal(err)
		}

		if have != want {
			t.Errorf(
				"Int decoding mismatch"+
					"\nwant:%d (%q)\nhave:%d",
				want,
				input,
				have,
			)
		}
	}

	if _, err := encoding.DecodeInt("#x12"); err == nil {
		t.Error("Expected error decoding #x12")
	}
}

func TestSwapEndian(t *testing.T) {
	tests := map[uint32]uint32{
		0x40010594: 0x94050140,
		0x00000000: 0x00000000,
		0xFFFFFFFF: 0xFFFFFFFF,
		0x11223344: 0x44332211,
		0x000000FF: 0xFF000000,
	}

	for input, want := range tests {
		if have := encoding.SwapEndian(input); have != want {
			t.Errorf(
				"Byte swap mismatch"+
					"\nwant:%#08x (%#08x)\nhave:%#08x",
				want,
				input,
				have,
			)
		}

		if have := encoding.SwapEndian(encoding.SwapEndian(input)); have != input {
			t.Errorf("Double swap of %#08x returned %#08x", input, have)
		}
	}
}

func TestPopCount(t *testing.T) {
	tests := []struct {
		Value    uint32
		Bitcount uint
		Output   uint
	}{
		{0xFFFFFFFF, 32, 32},
		{0xFFFFFFFF, 30, 30},
		{0xC0000000, 30, 0},
		{0x14050140, 30, 6},
		{0x00000001, 1, 1},
		{0x00000002, 1, 0},
		{0xFFFFFFFF, 0, 0},
	}

	for _, test := range tests {
		if have := encoding.PopCount(test.Value, test.Bitcount); have != test.Output {
			t.Errorf(
				"Population count mismatch"+
					"\nwant:%d (%#08x, %d bits)\nhave:%d",
				test.Output,
				test.Value,
				test.Bitcount,
				have,
			)
		}
	}
}
