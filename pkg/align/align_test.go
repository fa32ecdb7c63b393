package align

import (
	"reflect"
	"testing"
)

func centers(pairs ...any) *Centers {
	c := NewCenters()
	for i := 0; i+2 < len(pairs); i += 3 {
		c.Set(pairs[i].(string), Point{X: pairs[i+1].(string), Y: pairs[i+2].(string)})
	}
	return c
}

func TestCentersOrderAndLastWins(t *testing.T) {
	c := NewCenters()
	c.Set("U2", Point{"1", "1"})
	c.Set("U1", Point{"2", "2"})
	c.Set("U2", Point{"3", "3"})

	if got, want := c.RefDes(), []string{"U2", "U1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RefDes() = %v, want %v", got, want)
	}
	if p, _ := c.Get("U2"); p != (Point{"3", "3"}) {
		t.Errorf("Get(U2) = %v, want last value", p)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.Has("J1") {
		t.Error("Has(J1) = true for unknown designator")
	}
}

func TestNilCenters(t *testing.T) {
	var c *Centers
	if c.Len() != 0 || c.Has("U1") || c.RefDes() != nil {
		t.Error("nil Centers should behave as empty")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		placement  *Centers
		pattern    *Centers
		scale      float64
		wantRefDes string
		wantOffset Offset
	}{
		{
			name:       "shared designator",
			placement:  centers("U1", "10.0", "20.0"),
			pattern:    centers("U1", "11.0", "20.5"),
			scale:      1,
			wantRefDes: "U1",
			wantOffset: Offset{DX: 1.0, DY: 0.5},
		},
		{
			name:       "first placement designator wins",
			placement:  centers("R1", "0", "0", "U1", "10", "10"),
			pattern:    centers("U1", "12", "13", "R1", "5", "6"),
			scale:      1,
			wantRefDes: "R1",
			wantOffset: Offset{DX: 5, DY: 6},
		},
		{
			name:       "skips designators missing from pattern",
			placement:  centers("C9", "1", "1", "U1", "1.5", "2.5"),
			pattern:    centers("U1", "3", "3"),
			scale:      1,
			wantRefDes: "U1",
			wantOffset: Offset{DX: 1.5, DY: 0.5},
		},
		{
			name:       "thou placement scaled to mm",
			placement:  centers("U1", "1000", "2000"),
			pattern:    centers("U1", "30.4", "50.8"),
			scale:      0.0254,
			wantRefDes: "U1",
			wantOffset: Offset{DX: 5, DY: 0},
		},
		{
			name:       "rounded to four places",
			placement:  centers("U1", "0", "0"),
			pattern:    centers("U1", "1.123456", "0"),
			scale:      1,
			wantRefDes: "U1",
			wantOffset: Offset{DX: 1.1235, DY: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Resolve(tt.placement, tt.pattern, tt.scale)
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if m == nil {
				t.Fatal("Resolve() returned no match")
			}
			if m.RefDes != tt.wantRefDes {
				t.Errorf("RefDes = %q, want %q", m.RefDes, tt.wantRefDes)
			}
			if m.Offset != tt.wantOffset {
				t.Errorf("Offset = %+v, want %+v", m.Offset, tt.wantOffset)
			}
		})
	}
}

func TestResolveNoSharedDesignator(t *testing.T) {
	m, err := Resolve(centers("U1", "1", "1"), centers("U2", "2", "2"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("expected no match, got %+v", m)
	}
	if off := OffsetOf(m); !off.IsZero() {
		t.Errorf("OffsetOf(nil) = %v, want zero", off)
	}
}

func TestResolveDeterministic(t *testing.T) {
	pl := centers("A1", "1", "1", "B1", "2", "2", "C1", "3", "3")
	pat := centers("C1", "4", "4", "B1", "5", "5")
	first, _ := Resolve(pl, pat, 1)
	for i := 0; i < 20; i++ {
		m, _ := Resolve(pl, pat, 1)
		if m.RefDes != first.RefDes || m.Offset != first.Offset {
			t.Fatalf("run %d resolved %+v, first run %+v", i, m, first)
		}
	}
}

func TestResolveMalformedCoordinate(t *testing.T) {
	_, err := Resolve(centers("U1", "x", "1"), centers("U1", "1", "1"), 1)
	if err == nil {
		t.Fatal("expected error for malformed coordinate")
	}
}

func TestOffsetString(t *testing.T) {
	if got := (Offset{DX: 1, DY: -0.5}).String(); got != "(1.0, -0.5) mm" {
		t.Errorf("String() = %q", got)
	}
}
