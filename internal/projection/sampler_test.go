package projection

import (
	"math"
	"testing"

	"github.com/kiesman99/pano360/pkg/pano"
)

func gradientPlane(w, h int) []float64 {
	p := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p[y*w+x] = float64(x)
		}
	}
	return p
}

func TestNewSamplerRejectsBadOrder(t *testing.T) {
	labels := []pano.Face{pano.FaceFront}
	coor := []float64{0}
	if _, err := NewSampler(labels, coor, coor, 2, 4, 4); err == nil {
		t.Fatal("expected error for order 2")
	}
	if _, err := NewSampler(labels, coor, coor, -1, 4, 4); err == nil {
		t.Fatal("expected error for order -1")
	}
}

func TestNewSamplerRejectsMismatchedGrids(t *testing.T) {
	labels := []pano.Face{pano.FaceFront, pano.FaceFront}
	if _, err := NewSampler(labels, []float64{0}, []float64{0, 1}, OrderNearest, 4, 4); err == nil {
		t.Fatal("expected error for mismatched coordinate grids")
	}
}

func TestSampleNearest(t *testing.T) {
	plane := gradientPlane(4, 4)
	plane[2*4+3] = 99
	labels := []pano.Face{pano.FaceFront, pano.FaceFront}
	coorX := []float64{2.6, 0.4}
	coorY := []float64{1.6, 0.1}
	smp, err := NewSampler(labels, coorX, coorY, OrderNearest, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]float64, 2)
	Sample(smp, [][]float64{plane}, dst)
	if dst[0] != 99 {
		t.Errorf("dst[0] = %v, want 99 (rounded to (3, 2))", dst[0])
	}
	if dst[1] != 0 {
		t.Errorf("dst[1] = %v, want 0 (rounded to (0, 0))", dst[1])
	}
}

func TestSampleNearestReturnsSourceValue(t *testing.T) {
	plane := gradientPlane(5, 5)
	labels := make([]pano.Face, 25)
	coorX := make([]float64, 25)
	coorY := make([]float64, 25)
	for i := range coorX {
		coorX[i] = float64(i%5) + 0.3
		coorY[i] = float64(i/5) + 0.7
	}
	smp, err := NewSampler(labels, coorX, coorY, OrderNearest, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]float64, 25)
	Sample(smp, [][]float64{plane}, dst)
	for i, v := range dst {
		if v != math.Trunc(v) || v < 0 || v > 4 {
			t.Fatalf("dst[%d] = %v is not an exact source value", i, v)
		}
	}
}

func TestSampleBilinearGradient(t *testing.T) {
	plane := gradientPlane(4, 4)
	labels := []pano.Face{pano.FaceFront, pano.FaceFront, pano.FaceFront}
	coorX := []float64{1.25, 2.75, 0}
	coorY := []float64{2, 0.5, 3}
	smp, err := NewSampler(labels, coorX, coorY, OrderBilinear, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]float64, 3)
	Sample(smp, [][]float64{plane}, dst)
	want := []float64{1.25, 2.75, 0}
	for i := range want {
		if math.Abs(dst[i]-want[i]) > 1e-12 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestSampleBilinearFarEdge(t *testing.T) {
	// Coordinates left exactly at the face edge by the mapper clamp must
	// not index outside the buffer.
	plane := gradientPlane(4, 4)
	labels := []pano.Face{pano.FaceFront}
	smp, err := NewSampler(labels, []float64{4}, []float64{4}, OrderBilinear, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]float64, 1)
	Sample(smp, [][]float64{plane}, dst)
	if dst[0] != 3 {
		t.Errorf("edge sample = %v, want 3", dst[0])
	}
}

func TestSampleBilinearIntegerRounding(t *testing.T) {
	plane := []uint8{0, 1, 0, 1}
	labels := []pano.Face{pano.FaceFront, pano.FaceFront}
	smp, err := NewSampler(labels, []float64{0.5, 0.25}, []float64{0, 0}, OrderBilinear, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]uint8, 2)
	Sample(smp, [][]uint8{plane}, dst)
	if dst[0] != 1 {
		t.Errorf("midpoint sample = %d, want 1 (0.5 rounds up)", dst[0])
	}
	if dst[1] != 0 {
		t.Errorf("quarter sample = %d, want 0 (0.25 rounds down)", dst[1])
	}
}

func TestSampleRangePartitions(t *testing.T) {
	plane := gradientPlane(8, 8)
	n := 64
	labels := make([]pano.Face, n)
	coorX := make([]float64, n)
	coorY := make([]float64, n)
	for i := range coorX {
		coorX[i] = float64(i%8) * 0.9
		coorY[i] = float64(i/8) * 0.9
	}
	smp, err := NewSampler(labels, coorX, coorY, OrderBilinear, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	whole := make([]float64, n)
	Sample(smp, [][]float64{plane}, whole)

	parts := make([]float64, n)
	SampleRange(smp, [][]float64{plane}, parts, 0, 20)
	SampleRange(smp, [][]float64{plane}, parts, 20, 64)
	for i := range whole {
		if whole[i] != parts[i] {
			t.Fatalf("partitioned sample diverged at %d: %v vs %v", i, parts[i], whole[i])
		}
	}
}

func TestSamplePerFaceSelection(t *testing.T) {
	planes := make([][]uint8, pano.FaceCount)
	for f := range planes {
		planes[f] = []uint8{uint8(f * 10), uint8(f * 10), uint8(f * 10), uint8(f * 10)}
	}
	labels := []pano.Face{pano.FaceFront, pano.FaceBack, pano.FaceDown}
	coor := []float64{0.5, 1.2, 1.9}
	smp, err := NewSampler(labels, coor, coor, OrderNearest, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]uint8, 3)
	Sample(smp, planes, dst)
	want := []uint8{0, 20, 50}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}
