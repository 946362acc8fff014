package workspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/howl-wm/howl/internal/client"
	"github.com/howl-wm/howl/internal/layout"
)

// snapshot captures the observable state of one workspace slot.
type snapshot struct {
	Windows   []uint32
	Layout    layout.Mode
	Current   uint32
	PrevFocus uint32
}

func snap(ws *Workspace) snapshot {
	s := snapshot{Layout: ws.Layout}
	ws.Clients.ForEach(func(c *client.Client) {
		s.Windows = append(s.Windows, uint32(c.Win))
	})
	if ws.Current != nil {
		s.Current = uint32(ws.Current.Win)
	}
	if ws.PrevFocus != nil {
		s.PrevFocus = uint32(ws.PrevFocus.Win)
	}
	return s
}

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore(5, layout.VerticalStack)
	if s.Count() != 5 {
		t.Fatalf("expected 5 workspaces, got %d", s.Count())
	}
	if s.ActiveIndex() != 0 {
		t.Fatalf("expected workspace 0 active, got %d", s.ActiveIndex())
	}
	for i := 0; i < s.Count(); i++ {
		ws, err := s.Get(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ws.Layout != layout.VerticalStack {
			t.Fatalf("workspace %d has layout %v", i, ws.Layout)
		}
	}
}

func TestSelectBounds(t *testing.T) {
	s := NewStore(3, layout.Monocle)
	if err := s.Select(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ActiveIndex() != 2 {
		t.Fatalf("expected active 2, got %d", s.ActiveIndex())
	}
	if err := s.Select(3); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if err := s.Select(-1); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if s.ActiveIndex() != 2 {
		t.Fatalf("failed select must not move active index, got %d", s.ActiveIndex())
	}
}

// Selecting away from a workspace and back must reproduce its collection,
// layout and focus state exactly.
func TestSelectRoundTripsState(t *testing.T) {
	s := NewStore(3, layout.Monocle)

	ws := s.Active()
	a := &client.Client{Win: 1}
	b := &client.Client{Win: 2}
	ws.Clients.Append(a)
	ws.Clients.Append(b)
	ws.Layout = layout.HorizontalStack
	ws.Current = b
	ws.PrevFocus = a
	before := snap(ws)

	if err := s.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Select(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := snap(s.Active())
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("workspace state changed across select (-before +after):\n%s", diff)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s := NewStore(2, layout.Monocle)

	s.Active().Clients.Append(&client.Client{Win: 1})
	if err := s.Select(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := s.Active().Clients.Len(); n != 0 {
		t.Fatalf("expected empty workspace 1, got %d clients", n)
	}
	s.Active().Layout = layout.Fibonacci

	if err := s.Select(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Active().Layout == layout.Fibonacci {
		t.Fatalf("layout change leaked between workspaces")
	}
}

func TestFindOwnerKeepsActiveIndex(t *testing.T) {
	s := NewStore(3, layout.Monocle)

	ws2, err := s.Get(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := &client.Client{Win: 42}
	ws2.Clients.Append(c)

	idx, found, ok := s.FindOwner(42)
	if !ok || idx != 2 || found != c {
		t.Fatalf("expected to find window 42 in workspace 2, got idx=%d ok=%v", idx, ok)
	}
	if s.ActiveIndex() != 0 {
		t.Fatalf("scan moved the active index to %d", s.ActiveIndex())
	}

	if _, _, ok := s.FindOwner(99); ok {
		t.Fatalf("expected window 99 to be unmanaged")
	}
}
