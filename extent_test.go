package vecmap

import "testing"

func TestExtentBasics(t *testing.T) {
	e := EmptyExtent()
	if !e.IsEmpty() {
		t.Errorf("EmptyExtent().IsEmpty() = false, want true")
	}
	e = e.Extend(1, 2).Extend(-3, 8)
	want := Extent{MinX: -3, MinY: 2, MaxX: 1, MaxY: 8}
	if e != want {
		t.Errorf("Extend chain = %+v, want %+v", e, want)
	}
	if e.Width() != 4 || e.Height() != 6 {
		t.Errorf("Width/Height = (%v, %v), want (4, 6)", e.Width(), e.Height())
	}
}

func TestExtentContains(t *testing.T) {
	e := Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 5, 5, true},
		{"edge", 0, 10, true},
		{"left of", -1, 5, false},
		{"above", 5, 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestExtentIntersects(t *testing.T) {
	a := Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	tests := []struct {
		name  string
		other Extent
		want  bool
	}{
		{"overlapping", Extent{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}, true},
		{"touching edge", Extent{MinX: 10, MinY: 0, MaxX: 20, MaxY: 10}, true},
		{"disjoint", Extent{MinX: 11, MinY: 11, MaxX: 20, MaxY: 20}, false},
		{"contained", Extent{MinX: 2, MinY: 2, MaxX: 3, MaxY: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRelationship(t *testing.T) {
	e := Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	tests := []struct {
		name string
		x, y float64
		want Relationship
	}{
		{"inside", 5, 5, RelIntersecting},
		{"below", 5, 20, RelBelow},
		{"above left", -5, -5, RelAbove | RelLeft},
		{"right", 20, 5, RelRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Relationship(tt.x, tt.y); got != tt.want {
				t.Errorf("Relationship(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBufferAndUnion(t *testing.T) {
	e := Extent{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}.Buffer(1)
	want := Extent{MinX: -1, MinY: -1, MaxX: 3, MaxY: 3}
	if e != want {
		t.Errorf("Buffer(1) = %+v, want %+v", e, want)
	}
	u := e.Union(Extent{MinX: 5, MinY: 5, MaxX: 6, MaxY: 6})
	if u.MaxX != 6 || u.MinX != -1 {
		t.Errorf("Union = %+v", u)
	}
}

func TestExtentFromFlat(t *testing.T) {
	got := ExtentFromFlat([]float64{0, 0, 5, -3, 2, 7}, 2)
	want := Extent{MinX: 0, MinY: -3, MaxX: 5, MaxY: 7}
	if got != want {
		t.Errorf("ExtentFromFlat = %+v, want %+v", got, want)
	}
}
