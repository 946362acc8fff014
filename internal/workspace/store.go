package workspace

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/howl-wm/howl/internal/client"
	"github.com/howl-wm/howl/internal/layout"
)

// Workspace is one of the store's fixed slots: an independent client
// collection with its own layout mode and focus state.
//
// Invariant: Current and PrevFocus, when non-nil, are members of this
// workspace's own collection.
type Workspace struct {
	Clients   client.List
	Layout    layout.Mode
	Current   *client.Client
	PrevFocus *client.Client
}

// Store holds a fixed number of independent workspaces plus the active
// index. Slots are never aliased: selecting a workspace only moves the
// index, so there is no state to write back first.
type Store struct {
	slots  []Workspace
	active int
}

// NewStore creates a store with n workspaces, all using the given layout.
func NewStore(n int, mode layout.Mode) *Store {
	if n < 1 {
		n = 1
	}
	s := &Store{slots: make([]Workspace, n)}
	for i := range s.slots {
		s.slots[i].Layout = mode
	}
	return s
}

// Count returns the number of workspace slots.
func (s *Store) Count() int {
	return len(s.slots)
}

// ActiveIndex returns the index of the active workspace.
func (s *Store) ActiveIndex() int {
	return s.active
}

// Active returns the active workspace.
func (s *Store) Active() *Workspace {
	return &s.slots[s.active]
}

// Get returns workspace i, or an error when i is out of range.
func (s *Store) Get(i int) (*Workspace, error) {
	if i < 0 || i >= len(s.slots) {
		return nil, fmt.Errorf("workspace index %d out of range [0,%d)", i, len(s.slots))
	}
	return &s.slots[i], nil
}

// Select makes workspace i the active one.
func (s *Store) Select(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("workspace index %d out of range [0,%d)", i, len(s.slots))
	}
	s.active = i
	return nil
}

// FindOwner locates the workspace whose collection manages win. The scan
// never disturbs the active index. Returns the slot index and client, or
// ok=false when no workspace manages the window.
func (s *Store) FindOwner(win xproto.Window) (int, *client.Client, bool) {
	for i := range s.slots {
		if c := s.slots[i].Clients.Find(win); c != nil {
			return i, c, true
		}
	}
	return 0, nil, false
}
