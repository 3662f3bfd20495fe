package projection

import (
	"math"

	"github.com/kiesman99/pano360/pkg/pano"
)

// ClassifyFace assigns a cube face to the direction (u, v). Longitude is
// split into four π/2 bands centered on the side faces; a pixel whose
// latitude reaches the cube's top or bottom edge at that azimuth belongs to
// a pole cap instead. Pixels exactly on the edge threshold go to the pole,
// otherwise the four band seams would leak single-pixel gaps.
func ClassifyFace(u, v float64) pano.Face {
	band := azimuthBand(u)
	// Azimuth offset from the band center. The cube's horizontal edge at
	// that offset sits at latitude atan(cos(offset)); cos is 2π-periodic,
	// so the unwrapped offset for the back band needs no renormalizing.
	local := u - math.Pi/2*float64(band)
	edge := math.Atan(math.Cos(local))
	if v >= edge {
		return pano.FaceUp
	}
	if -v >= edge {
		return pano.FaceDown
	}
	return band
}

// FaceGrid assigns every equirectangular pixel of g one of the six faces.
func FaceGrid(g *Grid) []pano.Face {
	labels := make([]pano.Face, len(g.U))
	for i := range labels {
		labels[i] = ClassifyFace(g.U[i], g.V[i])
	}
	return labels
}

func azimuthBand(u float64) pano.Face {
	switch {
	case u < -3*math.Pi/4:
		return pano.FaceBack
	case u < -math.Pi/4:
		return pano.FaceLeft
	case u < math.Pi/4:
		return pano.FaceFront
	case u < 3*math.Pi/4:
		return pano.FaceRight
	default:
		return pano.FaceBack
	}
}
