package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Conn manages the X11 connection and core X resources.
type Conn struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	// Modifier bits set by lock keys (CapsLock, NumLock, ScrollLock).
	// Stripped from event state before binding dispatch and added as
	// grab variants so chords fire regardless of lock state.
	lockMods uint16
}

// Connect establishes a connection to the X server named by DISPLAY.
func Connect() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	// Initialize keybind so keysym names resolve to keycodes.
	keybind.Initialize(xu)

	c := &Conn{
		xu:   xu,
		root: xu.RootWin(),
	}
	c.lockMods = lockModifierMask(xu)
	return c, nil
}

// Manage claims window management of the root window. Exactly one
// client may hold substructure redirection, so this fails when another
// window manager is already running.
func (c *Conn) Manage(workspaces int) error {
	mask := xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress

	err := xproto.ChangeWindowAttributesChecked(
		c.xu.Conn(), c.root,
		xproto.CwEventMask, []uint32{uint32(mask)},
	).Check()
	if err != nil {
		return fmt.Errorf("another window manager is running: %w", err)
	}

	// Advertise the desktop layout so pagers and bars can follow along.
	if err := ewmh.NumberOfDesktopsSet(c.xu, uint(workspaces)); err != nil {
		return fmt.Errorf("failed to set desktop count: %w", err)
	}
	if err := ewmh.CurrentDesktopSet(c.xu, 0); err != nil {
		return fmt.Errorf("failed to set current desktop: %w", err)
	}
	return nil
}

// Close disconnects from the X server.
func (c *Conn) Close() {
	c.xu.Conn().Close()
}

// lockModifierMask finds the modifier bits owned by lock keys.
func lockModifierMask(xu *xgbutil.XUtil) uint16 {
	mask := uint16(xproto.ModMaskLock)
	for _, keysym := range []string{"Num_Lock", "Scroll_Lock"} {
		for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
			if m := keybind.ModGet(xu, keycode); m != 0 {
				mask |= m
				break
			}
		}
	}
	return mask
}
