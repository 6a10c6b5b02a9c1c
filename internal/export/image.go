package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbitals/internal/field"
	"github.com/litescript/ls-orbitals/internal/geom"
)

// RGB8 converts a field color to 8-bit RGB, saturating channels outside
// [0, 1]. Non-finite channels become 0.
func RGB8(c field.Color) (r, g, b uint8) {
	return colorful.Color{R: finite(c.R), G: finite(c.G), B: finite(c.B)}.Clamped().RGB255()
}

// Hex returns the saturated color as #rrggbb.
func Hex(c field.Color) string {
	return colorful.Color{R: finite(c.R), G: finite(c.G), B: finite(c.B)}.Clamped().Hex()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Image renders f with row j = 0 at the bottom, so the plane's +y points up.
func Image(f field.Field) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	for j := 0; j < f.H; j++ {
		y := f.H - 1 - j
		for i := 0; i < f.W; i++ {
			r, g, b := RGB8(f.At(i, j))
			img.SetNRGBA(i, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// WritePNG encodes f as a PNG.
func WritePNG(w io.Writer, f field.Field) error {
	if err := png.Encode(w, Image(f)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderFunc samples the orbital for one camera orientation.
type RenderFunc func(o geom.Orientation) field.Field

// OrbitGIF renders frames views rotating phi once around the z axis from
// start and assembles them into a looping GIF. delay is in 100ths of a
// second per frame.
func OrbitGIF(ctx context.Context, render RenderFunc, start geom.Orientation, frames, delay int) (*gif.GIF, error) {
	if frames < 1 {
		return nil, fmt.Errorf("orbit gif: need at least one frame, got %d", frames)
	}

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, frames),
		Delay:     make([]int, 0, frames),
		LoopCount: 0,
	}
	for _, dPhi := range field.Linspace(0, 2*math.Pi, frames) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o := start
		o.Rotate(0, dPhi)

		rgba := Image(render(o))
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}
	return out, nil
}

// WriteGIF encodes an animation.
func WriteGIF(w io.Writer, g *gif.GIF) error {
	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
