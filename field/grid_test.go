package field

import "testing"

func TestNewGridEmpty(t *testing.T) {
	for _, size := range []int{0, -3} {
		g := NewGrid(size)
		if g.Size() != 0 || g.Len() != 0 {
			t.Errorf("size %d: expected empty grid, got size=%d len=%d", size, g.Size(), g.Len())
		}
	}
}

func TestGridIndexing(t *testing.T) {
	g := NewGrid(4)
	if g.Len() != 64 {
		t.Fatalf("expected 64 points, got %d", g.Len())
	}

	g.Set(1, 2, 3, 7.5)
	if g.At(1, 2, 3) != 7.5 {
		t.Errorf("expected 7.5 at (1,2,3), got %f", g.At(1, 2, 3))
	}
	// x-major layout: (x*N + y)*N + z
	if g.Index(1, 2, 3) != (1*4+2)*4+3 {
		t.Errorf("unexpected index %d", g.Index(1, 2, 3))
	}
}

func TestGridSlab(t *testing.T) {
	g := NewGrid(3)
	g.Set(1, 0, 0, 1)
	g.Set(1, 2, 2, 2)

	slab := g.Slab(1, 2)
	if len(slab) != 9 {
		t.Fatalf("expected slab of 9 values, got %d", len(slab))
	}
	if slab[0] != 1 || slab[8] != 2 {
		t.Errorf("slab does not cover x=1: first=%f last=%f", slab[0], slab[8])
	}

	// Writes through the slab land in the grid
	slab[4] = 9
	if g.At(1, 1, 1) != 9 {
		t.Errorf("expected slab write visible at (1,1,1), got %f", g.At(1, 1, 1))
	}
}
