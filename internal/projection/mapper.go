package projection

import (
	"math"

	"github.com/kiesman99/pano360/pkg/pano"
)

// FaceCoords converts every equirectangular pixel of g into continuous
// (x, y) pixel coordinates inside its assigned face of edge length faceW.
// Coordinates are clamped to [0, faceW]: face-edge directions land exactly
// on the boundary and the clamp keeps them sampleable instead of wrapping
// or failing.
func FaceCoords(g *Grid, labels []pano.Face, faceW int) (coorX, coorY []float64) {
	coorX = make([]float64, len(labels))
	coorY = make([]float64, len(labels))
	fw := float64(faceW)
	fw2 := fw / 2

	for i, f := range labels {
		u, v := g.U[i], g.V[i]
		var x, y float64
		switch {
		case f < pano.FaceUp:
			// Side band: gnomonic projection onto the face plane.
			angle := u - math.Pi/2*float64(f)
			x = fw2 * math.Tan(angle)
			y = -fw2 * math.Tan(v) / math.Cos(angle)
		case f == pano.FaceUp:
			c := fw2 * math.Tan(math.Pi/2-v)
			x = c * math.Sin(u)
			y = c * math.Cos(u)
		default:
			c := fw2 * math.Tan(math.Pi/2-math.Abs(v))
			x = c * math.Sin(u)
			y = -c * math.Cos(u)
		}
		coorX[i] = clamp(x+fw2, 0, fw)
		coorY[i] = clamp(y+fw2, 0, fw)
	}
	return coorX, coorY
}

// EquirectCoords converts every pixel center of a faceW×faceW cube face
// into continuous (x, y) coordinates of an eqH×eqW equirectangular image.
// This is the inverse of FaceCoords: the per-face direction vectors are
// chosen so the two mappers agree on every direction.
func EquirectCoords(face pano.Face, faceW, eqH, eqW int) (coorX, coorY []float64) {
	coorX = make([]float64, faceW*faceW)
	coorY = make([]float64, faceW*faceW)
	fw := float64(faceW)

	for j := 0; j < faceW; j++ {
		b := (float64(j)+0.5)/fw - 0.5
		for i := 0; i < faceW; i++ {
			a := (float64(i)+0.5)/fw - 0.5
			x, y, z := faceDirection(face, a, b)
			u := math.Atan2(x, z)
			v := math.Atan2(y, math.Hypot(x, z))
			idx := j*faceW + i
			coorX[idx] = clamp((u+math.Pi)/(2*math.Pi)*float64(eqW)-0.5, 0, float64(eqW))
			coorY[idx] = clamp((v+math.Pi/2)/math.Pi*float64(eqH)-0.5, 0, float64(eqH))
		}
	}
	return coorX, coorY
}

// faceDirection returns the view direction through in-face offsets
// (a, b) ∈ [-1/2, 1/2), with the face plane at distance 1/2.
func faceDirection(face pano.Face, a, b float64) (x, y, z float64) {
	switch face {
	case pano.FaceFront:
		return a, -b, 0.5
	case pano.FaceRight:
		return 0.5, -b, -a
	case pano.FaceBack:
		return -a, -b, -0.5
	case pano.FaceLeft:
		return -0.5, -b, a
	case pano.FaceUp:
		return a, 0.5, b
	default:
		return a, -0.5, -b
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
