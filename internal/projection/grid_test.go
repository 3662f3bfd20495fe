package projection

import (
	"math"
	"testing"
)

func TestUVGridShape(t *testing.T) {
	g := UVGrid(8, 16)
	if g.Width != 16 || g.Height != 8 {
		t.Fatalf("expected 16x8 grid, got %dx%d", g.Width, g.Height)
	}
	if len(g.U) != 128 || len(g.V) != 128 {
		t.Fatalf("expected 128 entries per grid, got %d and %d", len(g.U), len(g.V))
	}
}

func TestUVGridRanges(t *testing.T) {
	g := UVGrid(32, 64)
	for i := range g.U {
		if g.U[i] <= -math.Pi || g.U[i] > math.Pi {
			t.Fatalf("u[%d] = %v outside (-pi, pi]", i, g.U[i])
		}
		if g.V[i] <= -math.Pi/2 || g.V[i] >= math.Pi/2 {
			t.Fatalf("v[%d] = %v outside (-pi/2, pi/2)", i, g.V[i])
		}
	}
}

func TestUVGridPixelCenters(t *testing.T) {
	g := UVGrid(4, 8)
	// First pixel center: u = 0.5/8*2pi - pi, v = 0.5/4*pi - pi/2.
	wantU := -math.Pi * 7 / 8
	wantV := -math.Pi * 3 / 8
	if math.Abs(g.U[0]-wantU) > 1e-12 {
		t.Errorf("u[0] = %v, want %v", g.U[0], wantU)
	}
	if math.Abs(g.V[0]-wantV) > 1e-12 {
		t.Errorf("v[0] = %v, want %v", g.V[0], wantV)
	}
	// Longitude advances by 2pi/w per column, latitude by pi/h per row.
	if math.Abs((g.U[1]-g.U[0])-2*math.Pi/8) > 1e-12 {
		t.Errorf("column step = %v, want %v", g.U[1]-g.U[0], 2*math.Pi/8)
	}
	if math.Abs((g.V[8]-g.V[0])-math.Pi/4) > 1e-12 {
		t.Errorf("row step = %v, want %v", g.V[8]-g.V[0], math.Pi/4)
	}
}
