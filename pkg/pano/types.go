package pano

import "fmt"

// Face identifies one of the six cube faces. The four side faces form a
// band around the horizon; Up and Down cover the pole caps.
type Face int

const (
	FaceFront Face = iota
	FaceRight
	FaceBack
	FaceLeft
	FaceUp
	FaceDown

	// FaceCount is the number of cube faces.
	FaceCount = 6
)

var faceNames = [FaceCount]string{"front", "right", "back", "left", "up", "down"}

func (f Face) String() string {
	if f < 0 || f >= FaceCount {
		return "unknown"
	}
	return faceNames[f]
}

// Mode selects the interpolation used when resampling pixels.
type Mode int

const (
	ModeNearest Mode = iota
	ModeBilinear
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "nearest":
		return ModeNearest, nil
	case "bilinear":
		return ModeBilinear, nil
	default:
		return 0, Invalidf("unknown interpolation mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeNearest:
		return "nearest"
	case ModeBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// Pixel is a constraint for scalar pixel element types.
type Pixel interface {
	~uint8 | ~uint16 | ~uint32 | ~int32 | ~float32 | ~float64
}

// Image is a flat, row-major, channel-interleaved pixel buffer.
// Index of channel c of pixel (x, y) is (y*Width+x)*Channels + c.
type Image[T Pixel] struct {
	Pix      []T
	Width    int
	Height   int
	Channels int
}

// NewImage allocates a zeroed w×h image with c interleaved channels.
func NewImage[T Pixel](w, h, c int) *Image[T] {
	return &Image[T]{
		Pix:      make([]T, w*h*c),
		Width:    w,
		Height:   h,
		Channels: c,
	}
}

// At returns channel c of the pixel at (x, y).
func (m *Image[T]) At(x, y, c int) T {
	return m.Pix[(y*m.Width+x)*m.Channels+c]
}

// Set writes channel c of the pixel at (x, y).
func (m *Image[T]) Set(x, y, c int, v T) {
	m.Pix[(y*m.Width+x)*m.Channels+c] = v
}

// InvalidArgumentError marks configuration errors: bad dimensions, bad
// modes, mismatched buffers. They are detected before any conversion work
// starts and are never retried.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// Invalidf builds an InvalidArgumentError from a format string.
func Invalidf(format string, args ...any) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}
