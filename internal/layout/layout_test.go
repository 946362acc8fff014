package layout

import (
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, name := range []string{"monocle", "grid", "hstack", "vstack", "fibonacci"} {
		m, err := ParseMode(name)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if m.String() != name {
			t.Fatalf("round-trip failed: %q -> %v", name, m)
		}
	}

	if _, err := ParseMode("spiral"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestEffectiveSingleClientIsMonocle(t *testing.T) {
	if m := Effective(VerticalStack, 1); m != Monocle {
		t.Fatalf("expected monocle for single client, got %v", m)
	}
	if m := Effective(VerticalStack, 0); m != Monocle {
		t.Fatalf("expected monocle for empty workspace, got %v", m)
	}
	if m := Effective(VerticalStack, 2); m != VerticalStack {
		t.Fatalf("expected configured mode for two clients, got %v", m)
	}
}

func TestMonocleFullScreen(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 1920, 1080}}
	rects := Arrange(Monocle, 3, p)
	if len(rects) != 3 {
		t.Fatalf("expected 3 rects, got %d", len(rects))
	}
	for i, r := range rects {
		if r != (Rect{0, 0, 1920, 1080}) {
			t.Fatalf("rect %d not full screen: %+v", i, r)
		}
	}
}

func TestMonocleGap(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 1920, 1080}, Gap: 10, MonocleGap: true}
	rects := Arrange(Monocle, 1, p)
	want := Rect{10, 10, 1900, 1060}
	if rects[0] != want {
		t.Fatalf("expected %+v, got %+v", want, rects[0])
	}
}

// Segment sizes along the stack axis must sum exactly to the span minus
// the total gap inset, whatever the remainder.
func TestStackSegmentsSumToSpan(t *testing.T) {
	cases := []struct {
		name     string
		mode     Mode
		n        int
		span     int
		gap      int
		border   int
		vertical bool
	}{
		{"vstack even", VerticalStack, 2, 1080, 0, 0, true},
		{"vstack remainder", VerticalStack, 3, 1000, 10, 2, true},
		{"vstack many", VerticalStack, 7, 1080, 4, 1, true},
		{"hstack even", HorizontalStack, 4, 1920, 0, 0, false},
		{"hstack remainder", HorizontalStack, 3, 1921, 8, 2, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			screen := Rect{0, 0, 1920, 1080}
			if tc.vertical {
				screen.Height = tc.span
			} else {
				screen.Width = tc.span
			}
			p := Params{Screen: screen, Gap: tc.gap, Border: tc.border}
			rects := Arrange(tc.mode, tc.n, p)

			// Reconstruct each segment from the window size plus its
			// border inset, then check the sum.
			sum := 0
			for _, r := range rects {
				if tc.vertical {
					sum += r.Height + 2*tc.border
				} else {
					sum += r.Width + 2*tc.border
				}
			}
			want := tc.span - (tc.n+1)*tc.gap
			if sum != want {
				t.Fatalf("segments sum to %d, want %d", sum, want)
			}
		})
	}
}

func TestStackSegmentsPositiveAndOrdered(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 1920, 1080}, Gap: 6, Border: 2}
	rects := Arrange(VerticalStack, 5, p)

	prevBottom := 0
	for i, r := range rects {
		if r.Width <= 0 || r.Height <= 0 {
			t.Fatalf("rect %d has non-positive size: %+v", i, r)
		}
		if r.Y < prevBottom {
			t.Fatalf("rect %d overlaps previous segment: %+v", i, r)
		}
		prevBottom = r.Y + r.Height
	}
}

func TestGridDimensions(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 1920, 1080}, Gap: 10, Border: 1}

	// 5 clients: 3 columns, 2 rows.
	rects := Arrange(Grid, 5, p)
	if len(rects) != 5 {
		t.Fatalf("expected 5 rects, got %d", len(rects))
	}

	// 1880px over 3 columns: the leading two columns take the remainder.
	want := Rect{10, 10, 627 - 2, 525 - 2}
	if rects[0] != want {
		t.Fatalf("expected first cell %+v, got %+v", want, rects[0])
	}

	// Second row starts below the first.
	if rects[3].Y <= rects[0].Y {
		t.Fatalf("expected row advance, got %+v after %+v", rects[3], rects[0])
	}
}

func TestGridCoversFullScreen(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 1920, 1080}, Gap: 10, Border: 1}
	rects := Arrange(Grid, 5, p)

	// Cells (window plus borders) reach the gap inset on both far
	// edges, exactly as the stack layouts do.
	lastCol := rects[2]
	if got := lastCol.X + lastCol.Width + 2*p.Border; got != 1920-10 {
		t.Fatalf("last column ends at %d, want %d", got, 1920-10)
	}
	lastRow := rects[4]
	if got := lastRow.Y + lastRow.Height + 2*p.Border; got != 1080-10 {
		t.Fatalf("last row ends at %d, want %d", got, 1080-10)
	}
}

func TestGridNoOverlap(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 1920, 1080}, Gap: 8, Border: 2}
	assertNoOverlap(t, Arrange(Grid, 7, p))
}

func TestFibonacciDeterministicAndDisjoint(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 1920, 1080}, Gap: 8, Border: 2}

	a := Arrange(Fibonacci, 4, p)
	b := Arrange(Fibonacci, 4, p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("fibonacci not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
	assertNoOverlap(t, a)

	// Area shrinks (or holds) from one client to the next.
	for i := 1; i < len(a); i++ {
		if area(a[i]) > area(a[i-1]) {
			t.Fatalf("client %d larger than its predecessor: %+v > %+v", i, a[i], a[i-1])
		}
	}
}

func TestFibonacciStaysOnScreen(t *testing.T) {
	p := Params{Screen: Rect{0, 0, 800, 600}, Gap: 4, Border: 1}
	for _, r := range Arrange(Fibonacci, 5, p) {
		if r.X < 0 || r.Y < 0 || r.X+r.Width > 800 || r.Y+r.Height > 600 {
			t.Fatalf("rect off screen: %+v", r)
		}
	}
}

func TestArrangeZeroClients(t *testing.T) {
	if rects := Arrange(Grid, 0, Params{Screen: Rect{0, 0, 100, 100}}); rects != nil {
		t.Fatalf("expected nil for zero clients, got %v", rects)
	}
}

func area(r Rect) int {
	return r.Width * r.Height
}

func assertNoOverlap(t *testing.T, rects []Rect) {
	t.Helper()
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.X < b.X+b.Width && b.X < a.X+a.Width &&
				a.Y < b.Y+b.Height && b.Y < a.Y+a.Height {
				t.Fatalf("rects %d and %d overlap: %+v, %+v", i, j, a, b)
			}
		}
	}
}
