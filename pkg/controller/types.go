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

package controller

import (
	"fmt"
)

// Default bus address of the register window.
const DefaultBase = 0x10000840

// Register byte offsets within the window
const (
	RegInit            uint32 = 0x00
	RegNumFramebuffers uint32 = 0x04
	RegFramebufferBase uint32 = 0x08
	RegFramebufferID   uint32 = 0x0C
	RegState           uint32 = 0x10

	RegHBackPorch  uint32 = 0x14
	RegHFrontPorch uint32 = 0x18
	RegVBackPorch  uint32 = 0x1C
	RegVFrontPorch uint32 = 0x20
	RegHData       uint32 = 0x24
	RegVData       uint32 = 0x28
	RegHSync       uint32 = 0x2C
	RegVSync       uint32 = 0x30

	RegDebugPixel   uint32 = 0x34
	RegDebugCounter uint32 = 0x38
	RegDebugFIFO    uint32 = 0x3C
)

// Number of 32-bit registers in the window
const WindowWords = 16

type State uint32

const (
	StateReset State = iota
	StateIdle
	StateBusy
	StateError
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "RESET"
	case StateIdle:
		return "IDLE"
	case StateBusy:
		return "BUSY"
	case StateError:
		return "ERROR"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Timing mirrors the display timing registers, in pixels and lines.
type Timing struct {
	HBackPorch  uint32
	HFrontPorch uint32
	VBackPorch  uint32
	VFrontPorch uint32
	HData       uint32
	VData       uint32
	HSync       uint32
	VSync       uint32
}

// Sample is one reading of the debug registers.
type Sample struct {
	Pixel   uint32
	Counter uint32
	FIFO    uint32
	State   State
}
