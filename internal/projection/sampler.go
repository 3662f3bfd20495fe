package projection

import (
	"math"

	"github.com/kiesman99/pano360/pkg/pano"
)

// Interpolation orders accepted by NewSampler.
const (
	OrderNearest  = 0
	OrderBilinear = 1
)

// Sampler resolves fractional source coordinates against a stack of source
// buffers. It closes over precomputed label and coordinate grids: entry i
// of the grids selects buffer labels[i] and the continuous position
// (coorX[i], coorY[i]) inside it. One call to Sample produces one output
// channel from one single-channel slice of the stack.
type Sampler struct {
	labels []pano.Face
	coorX  []float64
	coorY  []float64
	order  int
	srcH   int
	srcW   int
}

// NewSampler validates the configuration and builds a sampler over the
// given grids. src buffers passed to Sample must be srcH×srcW each.
func NewSampler(labels []pano.Face, coorX, coorY []float64, order, srcH, srcW int) (*Sampler, error) {
	if order != OrderNearest && order != OrderBilinear {
		return nil, pano.Invalidf("unsupported interpolation order %d", order)
	}
	if len(coorX) != len(labels) || len(coorY) != len(labels) {
		return nil, pano.Invalidf("coordinate grids (%d, %d) do not match label grid (%d)",
			len(coorX), len(coorY), len(labels))
	}
	if srcH <= 0 || srcW <= 0 {
		return nil, pano.Invalidf("source dimensions %dx%d must be positive", srcW, srcH)
	}
	return &Sampler{
		labels: labels,
		coorX:  coorX,
		coorY:  coorY,
		order:  order,
		srcH:   srcH,
		srcW:   srcW,
	}, nil
}

// Len returns the number of output pixels one Sample call produces.
func (s *Sampler) Len() int {
	return len(s.labels)
}

// Sample fills dst from the source stack. src holds one srcH*srcW plane
// per face label; dst must have Len() entries. Sampling never reads outside
// the planes: every neighbor index is clamped to the valid range.
func Sample[T pano.Pixel](s *Sampler, src [][]T, dst []T) {
	SampleRange(s, src, dst, 0, len(s.labels))
}

// SampleRange samples only grid entries [lo, hi). Disjoint ranges write
// disjoint dst entries, so callers may partition a Sample across workers.
func SampleRange[T pano.Pixel](s *Sampler, src [][]T, dst []T, lo, hi int) {
	if s.order == OrderNearest {
		for i := lo; i < hi; i++ {
			x := clampInt(int(math.Round(s.coorX[i])), 0, s.srcW-1)
			y := clampInt(int(math.Round(s.coorY[i])), 0, s.srcH-1)
			dst[i] = src[s.labels[i]][y*s.srcW+x]
		}
		return
	}
	for i := lo; i < hi; i++ {
		cx, cy := s.coorX[i], s.coorY[i]
		x0 := math.Floor(cx)
		y0 := math.Floor(cy)
		fx := cx - x0
		fy := cy - y0

		// Clamp each neighbor independently: a coordinate sitting exactly
		// on the far edge would otherwise index one past the buffer.
		x0i := clampInt(int(x0), 0, s.srcW-1)
		x1i := clampInt(int(x0)+1, 0, s.srcW-1)
		y0i := clampInt(int(y0), 0, s.srcH-1)
		y1i := clampInt(int(y0)+1, 0, s.srcH-1)

		p := src[s.labels[i]]
		v00 := float64(p[y0i*s.srcW+x0i])
		v01 := float64(p[y0i*s.srcW+x1i])
		v10 := float64(p[y1i*s.srcW+x0i])
		v11 := float64(p[y1i*s.srcW+x1i])

		v := v00*(1-fx)*(1-fy) + v01*fx*(1-fy) + v10*(1-fx)*fy + v11*fx*fy
		dst[i] = fromFloat[T](v)
	}
}

// fromFloat converts an interpolated value back to the pixel type,
// rounding for integer element types.
func fromFloat[T pano.Pixel](v float64) T {
	if T(1)/T(2) != 0 {
		// Floating-point element type.
		return T(v)
	}
	return T(math.Round(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
