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
	"github.com/lassandro/gofbload/pkg/memory"
)

// Controller drives the framebuffer controller through its register window.
// Regs must cover at least WindowWords words.
type Controller struct {
	Regs memory.Region
}

func (c *Controller) read(reg uint32) uint32 {
	return c.Regs.Word(int(reg / memory.WordSize))
}

func (c *Controller) write(reg uint32, value uint32) {
	c.Regs.SetWord(int(reg/memory.WordSize), value)
}

func (c *Controller) State() State {
	return State(c.read(RegState))
}

// Init pulses the init line, taking the controller from RESET to IDLE.
func (c *Controller) Init() {
	c.write(RegInit, 1)
	c.write(RegInit, 0)
}

// Start points the controller at count framebuffers beginning at base,
// showing framebuffer id. Writing the count starts scan out.
func (c *Controller) Start(base, id, count uint32) {
	c.write(RegFramebufferBase, base)
	c.write(RegFramebufferID, id)
	c.write(RegNumFramebuffers, count)
}

func (c *Controller) Timing() Timing {
	return Timing{
		HBackPorch:  c.read(RegHBackPorch),
		HFrontPorch: c.read(RegHFrontPorch),
		VBackPorch:  c.read(RegVBackPorch),
		VFrontPorch: c.read(RegVFrontPorch),
		HData:       c.read(RegHData),
		VData:       c.read(RegVData),
		HSync:       c.read(RegHSync),
		VSync:       c.read(RegVSync),
	}
}

func (c *Controller) Debug() Sample {
	return Sample{
		Pixel:   c.read(RegDebugPixel),
		Counter: c.read(RegDebugCounter),
		FIFO:    c.read(RegDebugFIFO),
		State:   c.State(),
	}
}
