// Package status publishes per-workspace summary lines for external
// status-bar tooling.
package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/howl-wm/howl/internal/workspace"
)

// Summary describes one workspace for external consumers.
type Summary struct {
	Workspace int  `json:"workspace"`
	Clients   int  `json:"clients"`
	Layout    int  `json:"layout"`
	Active    bool `json:"active"`
}

// Snapshot collects a summary for every workspace slot.
func Snapshot(s *workspace.Store) []Summary {
	summaries := make([]Summary, s.Count())
	for i := range summaries {
		ws, _ := s.Get(i)
		summaries[i] = Summary{
			Workspace: i,
			Clients:   ws.Clients.Len(),
			Layout:    int(ws.Layout),
			Active:    i == s.ActiveIndex(),
		}
	}
	return summaries
}

// Emitter writes workspace summaries to a status channel, one line per
// workspace, flushed on every emission.
type Emitter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewEmitter creates an emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes one `w:<i> n:<count> l:<layout> cw:<0|1>` line per
// workspace. The format is consumed by external bars; do not change it.
func (e *Emitter) Emit(s *workspace.Store) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, sum := range Snapshot(s) {
		active := 0
		if sum.Active {
			active = 1
		}
		fmt.Fprintf(e.w, "w:%d n:%d l:%d cw:%d\n", sum.Workspace, sum.Clients, sum.Layout, active)
	}
	if f, ok := e.w.(interface{ Flush() error }); ok {
		f.Flush()
	}
}
