package convert

import (
	"errors"
	"testing"

	"github.com/kiesman99/pano360/pkg/pano"
)

func TestEquirectToCubeConstant(t *testing.T) {
	eq := pano.NewImage[uint8](16, 8, 1)
	for i := range eq.Pix {
		eq.Pix[i] = 200
	}
	faces, err := EquirectToCube(eq, 4, pano.ModeBilinear)
	if err != nil {
		t.Fatal(err)
	}
	if len(faces) != pano.FaceCount {
		t.Fatalf("got %d faces, want %d", len(faces), pano.FaceCount)
	}
	for f, img := range faces {
		if img.Width != 4 || img.Height != 4 || img.Channels != 1 {
			t.Fatalf("face %v shape %dx%dx%d, want 4x4x1", pano.Face(f), img.Width, img.Height, img.Channels)
		}
		for i, v := range img.Pix {
			if v != 200 {
				t.Fatalf("face %v pixel %d = %d, want uniform 200", pano.Face(f), i, v)
			}
		}
	}
}

func TestEquirectToCubeRoundTrip(t *testing.T) {
	// Geometry changes but a constant color must survive a full
	// cube -> equirect -> cube pass exactly.
	faces := constantFaces(8, 3, [pano.FaceCount]uint8{50, 50, 50, 50, 50, 50})
	eq, err := CubeToEquirect(faces, 32, 64, pano.ModeBilinear)
	if err != nil {
		t.Fatal(err)
	}
	back, err := EquirectToCube(eq, 8, pano.ModeBilinear)
	if err != nil {
		t.Fatal(err)
	}
	for f, img := range back {
		for i, v := range img.Pix {
			if v != 50 {
				t.Fatalf("face %v pixel %d = %d after round trip, want 50", pano.Face(f), i, v)
			}
		}
	}
}

func TestEquirectToCubeDeterministic(t *testing.T) {
	eq := pano.NewImage[float64](32, 16, 1)
	for i := range eq.Pix {
		eq.Pix[i] = float64(i%13) * 1.5
	}
	a, err := EquirectToCube(eq, 8, pano.ModeBilinear)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EquirectToCube(eq, 8, pano.ModeBilinear)
	if err != nil {
		t.Fatal(err)
	}
	for f := range a {
		for i := range a[f].Pix {
			if a[f].Pix[i] != b[f].Pix[i] {
				t.Fatalf("face %d pixel %d differs between identical runs", f, i)
			}
		}
	}
}

func TestEquirectToCubeValidation(t *testing.T) {
	eq := pano.NewImage[uint8](16, 8, 1)

	tests := []struct {
		name  string
		eq    *pano.Image[uint8]
		faceW int
		mode  pano.Mode
	}{
		{"nil input", nil, 4, pano.ModeNearest},
		{"empty input", &pano.Image[uint8]{}, 4, pano.ModeNearest},
		{"zero face size", eq, 0, pano.ModeNearest},
		{"negative face size", eq, -4, pano.ModeNearest},
		{"unknown mode", eq, 4, pano.Mode(7)},
	}
	for _, tt := range tests {
		faces, err := EquirectToCube(tt.eq, tt.faceW, tt.mode)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if faces != nil {
			t.Errorf("%s: expected nil faces on failure", tt.name)
		}
		var invalid *pano.InvalidArgumentError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: error %v is not an InvalidArgumentError", tt.name, err)
		}
	}
}
