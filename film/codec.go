package film

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// toLDRImage tonemaps a resolved linear image down to 8-bit sRGB: each
// channel is gamma-encoded and clamped to [0,255]. This is the common
// path every LDR Encoder below shares before handing off to its
// format-specific stdlib/x/image writer.
func toLDRImage(resolution [2]int, pixels [][3]float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, resolution[0], resolution[1]))
	for y := 0; y < resolution[1]; y++ {
		for x := 0; x < resolution[0]; x++ {
			p := pixels[y*resolution[0]+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: linearToSRGB8(p[0]),
				G: linearToSRGB8(p[1]),
				B: linearToSRGB8(p[2]),
				A: 255,
			})
		}
	}
	return img
}

func linearToSRGB8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	var s float64
	if v <= 0.0031308 {
		s = 12.92 * v
	} else {
		s = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	s = s*255 + 0.5
	if s >= 255 {
		return 255
	}
	if s <= 0 {
		return 0
	}
	return uint8(s)
}

// PNGEncoder writes the lossless 8-bit format spec.md §6 names as the
// default output.
type PNGEncoder struct{}

func (PNGEncoder) Encode(w io.Writer, resolution [2]int, pixels [][3]float64) error {
	return png.Encode(w, toLDRImage(resolution, pixels))
}

// JPEGEncoder writes a lossy 8-bit image at the given Quality (image/
// jpeg's default, 75, is used when Quality is zero).
type JPEGEncoder struct {
	Quality int
}

func (e JPEGEncoder) Encode(w io.Writer, resolution [2]int, pixels [][3]float64) error {
	quality := e.Quality
	if quality == 0 {
		quality = jpeg.DefaultQuality
	}
	return jpeg.Encode(w, toLDRImage(resolution, pixels), &jpeg.Options{Quality: quality})
}

// BMPEncoder writes an uncompressed 8-bit image via golang.org/x/image/bmp.
type BMPEncoder struct{}

func (BMPEncoder) Encode(w io.Writer, resolution [2]int, pixels [][3]float64) error {
	return bmp.Encode(w, toLDRImage(resolution, pixels))
}

// TIFFEncoder writes an 8-bit image via golang.org/x/image/tiff.
type TIFFEncoder struct{}

func (TIFFEncoder) Encode(w io.Writer, resolution [2]int, pixels [][3]float64) error {
	return tiff.Encode(w, toLDRImage(resolution, pixels), nil)
}
