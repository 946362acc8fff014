package x11

import (
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/howl-wm/howl/internal/layout"
)

// ScreenGeometry returns the root screen size in pixels.
func (c *Conn) ScreenGeometry() (int, int) {
	screen := c.xu.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

// AllocColor resolves a #rrggbb string against the default colormap.
func (c *Conn) AllocColor(hex string) (uint32, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, fmt.Errorf("invalid colour %q", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", hex, err)
	}

	// Scale 8-bit channels to the 16-bit values the protocol wants.
	r := uint16(v>>16&0xff) * 0x101
	g := uint16(v>>8&0xff) * 0x101
	b := uint16(v&0xff) * 0x101

	reply, err := xproto.AllocColor(c.xu.Conn(), c.xu.Screen().DefaultColormap, r, g, b).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate colour %q: %w", hex, err)
	}
	return reply.Pixel, nil
}

func (c *Conn) MoveResize(win xproto.Window, r layout.Rect) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	xproto.ConfigureWindow(c.xu.Conn(), win, mask, []uint32{
		uint32(r.X), uint32(r.Y), uint32(r.Width), uint32(r.Height),
	})
}

func (c *Conn) SetBorderWidth(win xproto.Window, px int) {
	xproto.ConfigureWindow(c.xu.Conn(), win,
		xproto.ConfigWindowBorderWidth, []uint32{uint32(px)})
}

func (c *Conn) SetBorderColor(win xproto.Window, pixel uint32) {
	xproto.ChangeWindowAttributes(c.xu.Conn(), win,
		xproto.CwBorderPixel, []uint32{pixel})
}

// Raise stacks win above its siblings.
func (c *Conn) Raise(win xproto.Window) {
	xproto.ConfigureWindow(c.xu.Conn(), win,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

func (c *Conn) MapWindow(win xproto.Window) {
	xproto.MapWindow(c.xu.Conn(), win)
}

func (c *Conn) UnmapWindow(win xproto.Window) {
	xproto.UnmapWindow(c.xu.Conn(), win)
}

func (c *Conn) SetInputFocus(win xproto.Window) {
	xproto.SetInputFocus(c.xu.Conn(),
		xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
}

// SetActiveWindow publishes win as _NET_ACTIVE_WINDOW on the root.
func (c *Conn) SetActiveWindow(win xproto.Window) {
	if err := ewmh.ActiveWindowSet(c.xu, win); err != nil {
		log.Printf("Failed to set active window: %v", err)
	}
}

// ClearActiveWindow deletes _NET_ACTIVE_WINDOW, signalling that no
// client holds focus.
func (c *Conn) ClearActiveWindow() {
	atom, err := xprop.Atm(c.xu, "_NET_ACTIVE_WINDOW")
	if err != nil {
		log.Printf("Failed to intern _NET_ACTIVE_WINDOW: %v", err)
		return
	}
	xproto.DeleteProperty(c.xu.Conn(), c.root, atom)
}

// WatchClient subscribes to the client events the manager consumes.
func (c *Conn) WatchClient(win xproto.Window, enterNotify bool) {
	mask := xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange
	if enterNotify {
		mask |= xproto.EventMaskEnterWindow
	}
	xproto.ChangeWindowAttributes(c.xu.Conn(), win,
		xproto.CwEventMask, []uint32{uint32(mask)})
}

// ManageableWindow reports whether win should be managed.
// Override-redirect windows (popups, menus) manage their own geometry.
func (c *Conn) ManageableWindow(win xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.xu.Conn(), win).Reply()
	if err != nil {
		return false
	}
	return !attrs.OverrideRedirect
}

// TransientFor returns the window win is transient for, if any.
func (c *Conn) TransientFor(win xproto.Window) (xproto.Window, bool) {
	parent, err := icccm.WmTransientForGet(c.xu, win)
	if err != nil || parent == 0 {
		return 0, false
	}
	return parent, true
}

// Spawn launches an external command in its own session so it survives
// the window manager and never becomes a zombie under it.
func (c *Conn) Spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to spawn %v: %v", argv, err)
		return
	}
	go func() {
		_ = cmd.Wait()
	}()
}

// Flush forces out all buffered requests.
func (c *Conn) Flush() {
	c.xu.Sync()
}
