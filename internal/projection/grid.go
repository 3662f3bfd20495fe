package projection

import "math"

// Grid holds per-pixel spherical angles for an equirectangular canvas,
// row-major h×w. U is longitude in (-π, π], V is latitude in (-π/2, π/2),
// both taken at pixel centers.
type Grid struct {
	U, V   []float64
	Width  int
	Height int
}

// UVGrid maps the pixel centers of an h×w equirectangular canvas linearly
// onto the full longitude/latitude range.
func UVGrid(h, w int) *Grid {
	g := &Grid{
		U:      make([]float64, h*w),
		V:      make([]float64, h*w),
		Width:  w,
		Height: h,
	}
	for y := 0; y < h; y++ {
		v := (float64(y)+0.5)/float64(h)*math.Pi - math.Pi/2
		for x := 0; x < w; x++ {
			i := y*w + x
			g.U[i] = (float64(x)+0.5)/float64(w)*2*math.Pi - math.Pi
			g.V[i] = v
		}
	}
	return g
}
