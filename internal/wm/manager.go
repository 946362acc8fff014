package wm

import (
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/howl-wm/howl/internal/client"
	"github.com/howl-wm/howl/internal/config"
	"github.com/howl-wm/howl/internal/layout"
	"github.com/howl-wm/howl/internal/status"
	"github.com/howl-wm/howl/internal/workspace"
)

// Manager is the window manager core: it owns the workspace store and
// drives layout, focus and stacking in response to events. All handlers
// run on the single goroutine consuming the event channel.
type Manager struct {
	display Display
	cfg     *config.Config
	store   *workspace.Store
	emitter *status.Emitter

	keyBindings    []Binding
	buttonBindings []Binding

	screenWidth  int
	screenHeight int

	focusPixel   uint32
	unfocusPixel uint32

	prevWorkspace int
	prevLayout    layout.Mode

	quit bool
}

// New creates a manager. Colour allocation failure is returned as an
// error; callers treat it as fatal.
func New(d Display, cfg *config.Config, emitter *status.Emitter) (*Manager, error) {
	keys, err := CompileKeyBindings(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("invalid key bindings: %w", err)
	}
	buttons, err := CompileButtonBindings(cfg.Buttons)
	if err != nil {
		return nil, fmt.Errorf("invalid button bindings: %w", err)
	}

	focusPixel, err := d.AllocColor(cfg.BorderFocus)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate focus colour %s: %w", cfg.BorderFocus, err)
	}
	unfocusPixel, err := d.AllocColor(cfg.BorderUnfocus)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate unfocus colour %s: %w", cfg.BorderUnfocus, err)
	}

	mode, err := layout.ParseMode(cfg.DefaultLayout)
	if err != nil {
		return nil, err
	}

	width, height := d.ScreenGeometry()

	return &Manager{
		display:        d,
		cfg:            cfg,
		store:          workspace.NewStore(cfg.Workspaces, mode),
		emitter:        emitter,
		keyBindings:    keys,
		buttonBindings: buttons,
		screenWidth:    width,
		screenHeight:   height,
		focusPixel:     focusPixel,
		unfocusPixel:   unfocusPixel,
		prevLayout:     mode,
	}, nil
}

// KeyBindings returns the compiled key binding table, so the backend
// grabs exactly the chords the manager dispatches on.
func (m *Manager) KeyBindings() []Binding {
	return m.keyBindings
}

// ButtonBindings returns the compiled button binding table.
func (m *Manager) ButtonBindings() []Binding {
	return m.buttonBindings
}

// Store exposes the workspace store for status snapshots.
func (m *Manager) Store() *workspace.Store {
	return m.store
}

// Run processes events until Quit is handled or the channel closes
// (display connection lost). Buffered display requests are flushed once
// per event, after the handler completes.
func (m *Manager) Run(events <-chan Event) {
	for ev := range events {
		m.handle(ev)
		m.display.Flush()
		if m.quit {
			return
		}
	}
}

func (m *Manager) handle(ev Event) {
	switch e := ev.(type) {
	case MapRequest:
		m.manage(e.Win)
	case DestroyNotify:
		m.unmanage(e.Win)
	case EnterNotify:
		m.pointerEntered(e.Win)
	case KeyPress:
		m.dispatchKey(e)
	case ButtonPress:
		m.dispatchButton(e)
	case SwitchWorkspace:
		m.switchWorkspace(e.Index)
	case SetLayout:
		m.setLayout(e.Mode)
	case StatusRequest:
		e.Reply <- status.Snapshot(m.store)
	case Quit:
		m.quit = true
	default:
		// Unrecognized events are ignored; the loop continues.
	}
}

// manage starts tracking a newly mapped window on the active workspace.
func (m *Manager) manage(win xproto.Window) {
	if _, _, ok := m.store.FindOwner(win); ok {
		return
	}
	if !m.display.ManageableWindow(win) {
		return
	}

	c := &client.Client{Win: win}
	if _, ok := m.display.TransientFor(win); ok {
		// Transient windows always float.
		c.Transient = true
		c.Floating = true
	}

	ws := m.store.Active()
	ws.Clients.Append(c)
	m.display.WatchClient(win, m.cfg.FocusFollowsPointer)

	log.Printf("Managing window %d on workspace %d", win, m.store.ActiveIndex())

	m.arrange()
	m.display.MapWindow(win)
	m.updateFocus(c)
}

// unmanage removes a destroyed window from whichever workspace owns it.
func (m *Manager) unmanage(win xproto.Window) {
	idx, c, ok := m.store.FindOwner(win)
	if !ok {
		return
	}
	ws, err := m.store.Get(idx)
	if err != nil {
		return
	}

	pred := ws.Clients.Predecessor(c)
	wasCurrent := c == ws.Current

	if c == ws.PrevFocus {
		ws.PrevFocus = pred
	}
	ws.Clients.Remove(c)
	if wasCurrent {
		ws.Current = nil
	}

	log.Printf("Unmanaging window %d from workspace %d", win, idx)

	if idx == m.store.ActiveIndex() {
		if wasCurrent || ws.Clients.Len() <= 1 {
			m.updateFocus(ws.PrevFocus)
		}
		m.arrange()
	} else if wasCurrent {
		// Inactive workspace: fix the focus references without touching
		// the display; the next activation refreshes everything.
		ws.Current = ws.PrevFocus
		ws.PrevFocus = nil
	}
	m.emit()
}

// pointerEntered refocuses under focus-follows-pointer. Only windows on
// the active workspace can take focus this way.
func (m *Manager) pointerEntered(win xproto.Window) {
	if !m.cfg.FocusFollowsPointer {
		return
	}
	idx, c, ok := m.store.FindOwner(win)
	if !ok || idx != m.store.ActiveIndex() {
		return
	}
	m.updateFocus(c)
}

func (m *Manager) dispatchKey(e KeyPress) {
	for _, b := range m.keyBindings {
		if b.Key == e.Key && b.Mods == e.Mods {
			m.runAction(b)
			return
		}
	}
}

func (m *Manager) dispatchButton(e ButtonPress) {
	for _, b := range m.buttonBindings {
		if b.Button == e.Button && b.Mods == e.Mods {
			m.runAction(b)
			return
		}
	}
}

func (m *Manager) runAction(b Binding) {
	switch b.Action {
	case ActionFocusNext:
		m.focusNext()
	case ActionFocusPrev:
		m.focusPrev()
	case ActionMoveUp:
		m.moveUp()
	case ActionMoveDown:
		m.moveDown()
	case ActionWorkspace:
		m.switchWorkspace(b.Index)
	case ActionNextWorkspace:
		m.switchWorkspace((m.store.ActiveIndex() + 1) % m.store.Count())
	case ActionPrevWorkspace:
		m.switchWorkspace(wrapDown(m.store.ActiveIndex(), m.store.Count()))
	case ActionLastWorkspace:
		m.switchWorkspace(m.prevWorkspace)
	case ActionLayout:
		m.setLayout(b.Mode)
	case ActionNextLayout:
		m.setLayout(layout.Mode((int(m.store.Active().Layout) + 1) % layout.Count()))
	case ActionPrevLayout:
		m.setLayout(layout.Mode(wrapDown(int(m.store.Active().Layout), layout.Count())))
	case ActionLastLayout:
		m.setLayout(m.prevLayout)
	case ActionSpawn:
		m.display.Spawn(b.Cmd)
	case ActionQuit:
		m.quit = true
	}
}

func wrapDown(i, n int) int {
	if i < 1 {
		return n - 1
	}
	return i - 1
}

// focusNext moves focus to the current client's successor, wrapping to
// the head at the tail.
func (m *Manager) focusNext() {
	ws := m.store.Active()
	if ws.Current == nil || ws.Clients.Len() < 2 {
		return
	}
	next := ws.Current.Next()
	if next == nil {
		next = ws.Clients.Head()
	}
	m.updateFocus(next)
}

// focusPrev moves focus to the current client's predecessor, wrapping to
// the tail at the head.
func (m *Manager) focusPrev() {
	ws := m.store.Active()
	if ws.Current == nil || ws.Clients.Len() < 2 {
		return
	}
	prev := ws.Clients.Predecessor(ws.Current)
	if prev == nil {
		prev = ws.Clients.Tail()
	}
	m.updateFocus(prev)
}

func (m *Manager) moveUp() {
	ws := m.store.Active()
	if ws.Current == nil {
		return
	}
	ws.Clients.MoveUp(ws.Current)
	m.arrange()
}

func (m *Manager) moveDown() {
	ws := m.store.Active()
	if ws.Current == nil {
		return
	}
	ws.Clients.MoveDown(ws.Current)
	m.arrange()
}

// switchWorkspace activates workspace i: the incoming workspace's
// clients are shown, the departing workspace's clients hidden, then
// layout and focus are refreshed for the new active workspace.
func (m *Manager) switchWorkspace(i int) {
	if i < 0 || i >= m.store.Count() || i == m.store.ActiveIndex() {
		return
	}
	departing := m.store.ActiveIndex()
	m.prevWorkspace = departing

	target, err := m.store.Get(i)
	if err != nil {
		return
	}
	target.Clients.ForEach(func(c *client.Client) {
		m.display.MapWindow(c.Win)
	})

	old, _ := m.store.Get(departing)
	old.Clients.ForEach(func(c *client.Client) {
		m.display.UnmapWindow(c.Win)
	})

	if err := m.store.Select(i); err != nil {
		return
	}

	log.Printf("Switched to workspace %d", i)

	m.arrange()
	m.updateFocus(target.Current)
	m.emit()
}

// setLayout applies a layout mode to the active workspace. Unchanged or
// invalid modes are rejected with no state change and no emission.
func (m *Manager) setLayout(mode layout.Mode) {
	ws := m.store.Active()
	if !mode.Valid() || mode == ws.Layout {
		return
	}
	m.prevLayout = ws.Layout
	ws.Layout = mode

	log.Printf("Changed workspace %d layout to %v", m.store.ActiveIndex(), mode)

	m.arrange()
	m.updateFocus(ws.Current)
	m.emit()
}

// arrange recomputes geometry for the tiled prefix of the active
// workspace and emits the workspace summary.
func (m *Manager) arrange() {
	ws := m.store.Active()
	if ws.Clients.Head() == nil {
		return
	}

	mode := layout.Effective(ws.Layout, ws.Clients.Len())
	n := ws.Clients.TiledCount()
	if n > 0 {
		border := m.cfg.BorderWidth
		if ws.Clients.Len() == 1 {
			// Sole client draws no border; give the layout the space.
			border = 0
		}
		rects := layout.Arrange(mode, n, layout.Params{
			Screen:     layout.Rect{X: 0, Y: 0, Width: m.screenWidth, Height: m.screenHeight},
			Gap:        m.cfg.Gap,
			Border:     border,
			MonocleGap: m.cfg.MonocleGap,
		})

		i := 0
		for c := ws.Clients.Head(); c != nil && i < len(rects); c = c.Next() {
			if !c.Tiled() {
				break
			}
			r := rects[i]
			c.X, c.Y, c.Width, c.Height = r.X, r.Y, r.Width, r.Height
			m.display.MoveResize(c.Win, r)
			i++
		}
	}

	m.emit()
}

func (m *Manager) emit() {
	if m.emitter != nil {
		m.emitter.Emit(m.store)
	}
}
