// Package present converts a PPU frame buffer of 2-bit shade indices
// into a displayable image, for hosts that want a screenshot rather
// than raw shade data.
//
// Grounded on the teacher's use of golang.org/x/image (internal/display
// uses x/image/draw for scaling); this package reaches for the same
// module's bmp encoder instead, since spec.md's headless frame-dump
// scenario has no window to scale into.
package present

import (
	"bytes"
	"image"
	"image/color"

	"golang.org/x/image/bmp"

	"github.com/gbcore/dmg/internal/ppu"
)

// shades maps a 2-bit index (0=lightest, 3=darkest) to a classic
// green-tinted DMG palette.
var shades = [4]color.RGBA{
	{155, 188, 15, 255},
	{139, 172, 15, 255},
	{48, 98, 48, 255},
	{15, 56, 15, 255},
}

// Image renders frame as an RGBA image using the classic DMG palette.
func Image(frame *[ppu.ScreenHeight][ppu.ScreenWidth]uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			img.Set(x, y, shades[frame[y][x]&0x03])
		}
	}
	return img
}

// EncodeBMP renders frame and returns it as BMP-encoded bytes.
func EncodeBMP(frame *[ppu.ScreenHeight][ppu.ScreenWidth]uint8) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, Image(frame)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
