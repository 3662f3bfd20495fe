package imgio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/kiesman99/pano360/pkg/pano"
)

// Output format constants
const (
	FormatPNG = iota
	FormatTIFF
)

// ParseFormat converts a format name to an output format constant.
func ParseFormat(s string) (int, error) {
	switch s {
	case "png":
		return FormatPNG, nil
	case "tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("unknown output format: %s", s)
	}
}

// Decode sniffs the image format from magic bytes and decodes into a flat
// pixel buffer. PNG, JPEG, TIFF and WebP inputs are recognized. Grayscale
// sources decode to a single channel, everything else to interleaved RGBA.
func Decode(data []byte) (*pano.Image[uint8], error) {
	var (
		img image.Image
		err error
	)
	switch {
	case len(data) >= 4 && bytes.Equal(data[:4], []byte{0x89, 0x50, 0x4E, 0x47}):
		img, err = png.Decode(bytes.NewReader(data))
	case len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFF, 0xD8}):
		img, err = jpeg.Decode(bytes.NewReader(data))
	case len(data) >= 4 && (bytes.Equal(data[:4], []byte("II*\x00")) || bytes.Equal(data[:4], []byte("MM\x00*"))):
		img, err = tiff.Decode(bytes.NewReader(data))
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unrecognized image format")
	}
	if err != nil {
		return nil, err
	}
	return fromImage(img), nil
}

// fromImage converts a decoded image to a flat buffer.
func fromImage(img image.Image) *pano.Image[uint8] {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		out := pano.NewImage[uint8](width, height, 1)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				out.Pix[y*width+x] = gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			}
		}
		return out
	}

	out := pano.NewImage[uint8](width, height, 4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := (y*width + x) * 4
			out.Pix[idx] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(b >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
		}
	}
	return out
}

// Encode writes the buffer in the given output format.
func Encode(img *pano.Image[uint8], format int) ([]byte, error) {
	var out bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&out, toImage(img)); err != nil {
			return nil, err
		}
	case FormatTIFF:
		if err := tiff.Encode(&out, toImage(img), &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown output format: %d", format)
	}
	return out.Bytes(), nil
}

// toImage converts a flat buffer back to a stdlib image. Single-channel
// buffers become grayscale, 3-channel buffers get an opaque alpha.
func toImage(img *pano.Image[uint8]) image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	switch img.Channels {
	case 1:
		gray := image.NewGray(rect)
		copy(gray.Pix, img.Pix)
		return gray
	case 4:
		rgba := image.NewRGBA(rect)
		copy(rgba.Pix, img.Pix)
		return rgba
	default:
		rgba := image.NewRGBA(rect)
		for i := 0; i < img.Width*img.Height; i++ {
			src := i * img.Channels
			dst := i * 4
			for c := 0; c < 3 && c < img.Channels; c++ {
				rgba.Pix[dst+c] = img.Pix[src+c]
			}
			rgba.Pix[dst+3] = 255
		}
		return rgba
	}
}
