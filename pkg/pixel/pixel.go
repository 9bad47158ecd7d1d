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

// Package pixel converts images to the framebuffer word format.
//
// Each pixel is one word: 10 bits per channel, red in bits 20-29, green in
// bits 10-19 and blue in bits 0-9, with the checksum tag in bits 30-31.
// Framebuffers are written row by row, one big-endian word per pixel.
package pixel

import (
	"bufio"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"

	"github.com/lassandro/gofbload/pkg/checksum"
	"github.com/lassandro/gofbload/pkg/encoding"
)

const (
	ChannelBits        = 10
	ChannelMask uint32 = 1<<ChannelBits - 1

	redShift   = 2 * ChannelBits
	greenShift = ChannelBits
)

// Pack returns the sealed, decoded word for c.
func Pack(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()

	return checksum.Seal(
		(r>>6)<<redShift | (g>>6)<<greenShift | b>>6,
	)
}

// Unpack returns the colour held in a decoded word. The tag is ignored.
func Unpack(word uint32) color.RGBA64 {
	widen := func(v uint32) uint16 {
		v &= ChannelMask
		return uint16(v<<6 | v>>4)
	}

	return color.RGBA64{
		R: widen(word >> redShift),
		G: widen(word >> greenShift),
		B: widen(word),
		A: 0xFFFF,
	}
}

// Encoder writes framebuffers of Width x Height pixels to W. Images of any
// other size are scaled to fit.
type Encoder struct {
	W      io.Writer
	Width  int
	Height int

	frames int
	first  uint32
}

func (e *Encoder) Encode(img image.Image) error {
	if e.Width <= 0 || e.Height <= 0 {
		return errors.New("pixel: invalid framebuffer size")
	}

	rect := image.Rect(0, 0, e.Width, e.Height)

	if img.Bounds().Size() != rect.Size() {
		scaled := image.NewRGBA64(rect)
		draw.BiLinear.Scale(scaled, rect, img, img.Bounds(), draw.Src, nil)
		img = scaled
	}

	out := bufio.NewWriter(e.W)
	origin := img.Bounds().Min
	var word [4]byte

	for y := 0; y < e.Height; y++ {
		for x := 0; x < e.Width; x++ {
			packed := Pack(img.At(origin.X+x, origin.Y+y))

			if e.frames == 0 && x == 0 && y == 0 {
				e.first = packed
			}

			binary.BigEndian.PutUint32(word[:], packed)

			if _, err := out.Write(word[:]); err != nil {
				return err
			}
		}
	}

	if err := out.Flush(); err != nil {
		return err
	}

	e.frames++

	return nil
}

// Frames returns the number of framebuffers written.
func (e *Encoder) Frames() int {
	return e.frames
}

// Sentinel returns the first word written, as it reads back from the
// target's memory. It is only valid once a frame has been encoded.
func (e *Encoder) Sentinel() (uint32, bool) {
	return encoding.SwapEndian(e.first), e.frames > 0
}
