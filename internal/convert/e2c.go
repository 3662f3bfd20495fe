package convert

import (
	"github.com/kiesman99/pano360/internal/projection"
	"github.com/kiesman99/pano360/pkg/pano"
)

// EquirectToCube extracts six faceW×faceW cube faces from an
// equirectangular panorama, returned in front, right, back, left, up, down
// order. Each face is one sampling pass over the panorama through the
// inverse coordinate mapping; the panorama acts as a single-buffer stack
// with a constant label grid.
func EquirectToCube[T pano.Pixel](eq *pano.Image[T], faceW int, mode pano.Mode) ([]*pano.Image[T], error) {
	if mode != pano.ModeNearest && mode != pano.ModeBilinear {
		return nil, pano.Invalidf("unknown interpolation mode %d", mode)
	}
	if eq == nil || len(eq.Pix) == 0 {
		return nil, pano.Invalidf("equirectangular input is empty")
	}
	if faceW <= 0 {
		return nil, pano.Invalidf("face size %d must be positive", faceW)
	}
	channels := eq.Channels

	labels := make([]pano.Face, faceW*faceW)
	src := make([][]T, 1)
	scratch := make([]T, faceW*faceW)

	faces := make([]*pano.Image[T], pano.FaceCount)
	for f := pano.FaceFront; f < pano.FaceCount; f++ {
		coorX, coorY := projection.EquirectCoords(f, faceW, eq.Height, eq.Width)
		smp, err := projection.NewSampler(labels, coorX, coorY, samplerOrder(mode), eq.Height, eq.Width)
		if err != nil {
			return nil, err
		}
		out := pano.NewImage[T](faceW, faceW, channels)
		for c := 0; c < channels; c++ {
			src[0] = channelPlane(eq, c, src[0])
			sampleParallel(smp, src, scratch)
			for i, v := range scratch {
				out.Pix[i*channels+c] = v
			}
		}
		faces[f] = out
	}
	return faces, nil
}
