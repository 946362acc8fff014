package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/howl-wm/howl/internal/wm"
)

// GrabKeys registers every key binding chord on the root window. Each
// chord is grabbed once per lock-modifier variant so bindings fire with
// CapsLock or NumLock held.
func (c *Conn) GrabKeys(bindings []wm.Binding) error {
	xproto.UngrabKey(c.xu.Conn(), xproto.GrabAny, c.root, xproto.ModMaskAny)

	for _, b := range bindings {
		keycodes := keybind.StrToKeycodes(c.xu, b.Key)
		if len(keycodes) == 0 {
			return fmt.Errorf("no keycode for key %q", b.Key)
		}
		for _, keycode := range keycodes {
			for _, mods := range c.grabVariants(b.Mods) {
				xproto.GrabKey(c.xu.Conn(), true, c.root, mods, keycode,
					xproto.GrabModeAsync, xproto.GrabModeAsync)
			}
		}
	}
	return nil
}

// GrabButtons registers pointer button chords on the root window.
func (c *Conn) GrabButtons(bindings []wm.Binding) {
	for _, b := range bindings {
		for _, mods := range c.grabVariants(b.Mods) {
			xproto.GrabButton(c.xu.Conn(), true, c.root,
				uint16(xproto.EventMaskButtonPress),
				xproto.GrabModeAsync, xproto.GrabModeAsync,
				xproto.WindowNone, xproto.CursorNone,
				b.Button, mods)
		}
	}
}

// grabVariants returns mods plus mods combined with every subset of the
// lock-key modifier bits.
func (c *Conn) grabVariants(mods uint16) []uint16 {
	variants := []uint16{mods}
	for m := uint16(1); m < 256; m++ {
		if m&^c.lockMods == 0 {
			variants = append(variants, mods|m)
		}
	}
	return variants
}
