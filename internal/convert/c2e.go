package convert

import (
	"runtime"
	"sync"

	"github.com/kiesman99/pano360/internal/projection"
	"github.com/kiesman99/pano360/pkg/pano"
)

// CubeToEquirect renders six cube faces into an h×w equirectangular
// panorama. faces must hold exactly six equal-shape square buffers in
// front, right, back, left, up, down order; w must be a positive multiple
// of 8. All validation happens before any buffer is allocated; a call
// either returns a complete panorama or nothing.
func CubeToEquirect[T pano.Pixel](faces []*pano.Image[T], h, w int, mode pano.Mode) (*pano.Image[T], error) {
	if err := validateCube(faces, h, w, mode); err != nil {
		return nil, err
	}
	faceW := faces[0].Width
	channels := faces[0].Channels

	grid := projection.UVGrid(h, w)
	labels := projection.FaceGrid(grid)
	coorX, coorY := projection.FaceCoords(grid, labels, faceW)

	smp, err := projection.NewSampler(labels, coorX, coorY, samplerOrder(mode), faceW, faceW)
	if err != nil {
		return nil, err
	}

	out := pano.NewImage[T](w, h, channels)
	src := make([][]T, pano.FaceCount)
	scratch := make([]T, h*w)
	for c := 0; c < channels; c++ {
		for k, f := range faces {
			src[k] = channelPlane(f, c, src[k])
		}
		sampleParallel(smp, src, scratch)
		for i, v := range scratch {
			out.Pix[i*channels+c] = v
		}
	}
	return out, nil
}

func validateCube[T pano.Pixel](faces []*pano.Image[T], h, w int, mode pano.Mode) error {
	if mode != pano.ModeNearest && mode != pano.ModeBilinear {
		return pano.Invalidf("unknown interpolation mode %d", mode)
	}
	if h <= 0 {
		return pano.Invalidf("output height %d must be positive", h)
	}
	if w <= 0 || w%8 != 0 {
		return pano.Invalidf("output width %d must be a positive multiple of 8", w)
	}
	if len(faces) != pano.FaceCount {
		return pano.Invalidf("expected %d cube faces, got %d", pano.FaceCount, len(faces))
	}
	first := faces[0]
	for i, f := range faces {
		if f == nil || len(f.Pix) == 0 {
			return pano.Invalidf("cube face %s is empty", pano.Face(i))
		}
		if f.Width != f.Height {
			return pano.Invalidf("cube face %s is %dx%d, faces must be square",
				pano.Face(i), f.Width, f.Height)
		}
		if f.Width != first.Width || f.Channels != first.Channels {
			return pano.Invalidf("cube face %s shape differs from face %s",
				pano.Face(i), pano.FaceFront)
		}
	}
	return nil
}

func samplerOrder(mode pano.Mode) int {
	if mode == pano.ModeNearest {
		return projection.OrderNearest
	}
	return projection.OrderBilinear
}

// channelPlane extracts one contiguous single-channel plane from an
// interleaved image, reusing dst when it is already the right size.
func channelPlane[T pano.Pixel](img *pano.Image[T], c int, dst []T) []T {
	n := img.Width * img.Height
	if len(dst) != n {
		dst = make([]T, n)
	}
	for i := range dst {
		dst[i] = img.Pix[i*img.Channels+c]
	}
	return dst
}

// sampleParallel partitions one Sample call across the CPUs. Workers write
// disjoint dst ranges, so the only synchronization is the final join.
func sampleParallel[T pano.Pixel](smp *projection.Sampler, src [][]T, dst []T) {
	n := smp.Len()
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		projection.Sample(smp, src, dst)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			projection.SampleRange(smp, src, dst, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
