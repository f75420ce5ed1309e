package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected top-left dot 0x2801, got %#x", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0]&0x80 == 0 {
		t.Error("expected bottom-right sub-pixel bit set")
	}

	out := c.String()
	if len(strings.Split(strings.TrimRight(out, "\n"), "\n")) != 2 {
		t.Errorf("expected 2 rows in output, got %q", out)
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 100)

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("out-of-bounds set modified canvas: %#x", r)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.DrawLine(0, 0, 5, 11)
	c.Clear()

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("clear left residue: %#x", r)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.Grid[9][9] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestDrawPolyline(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawPolyline([]int{0, 10, 10}, []int{0, 0, 10})

	if c.Grid[0][0] == 0x2800 {
		t.Error("polyline start not drawn")
	}
	if c.Grid[0][5] == 0x2800 {
		t.Error("first segment not drawn")
	}
	if c.Grid[2][5] == 0x2800 {
		t.Error("second segment not drawn")
	}
}
