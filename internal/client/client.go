package client

import (
	"github.com/BurntSushi/xgb/xproto"
)

// Client represents one managed window and its cached geometry.
type Client struct {
	Win xproto.Window

	// Last geometry applied by the layout engine.
	X, Y, Width, Height int

	Fullscreen bool
	Floating   bool
	Transient  bool

	next *Client
}

// Tiled reports whether the client is eligible for layout placement.
// Transient windows always float, so any of the three flags excludes it.
func (c *Client) Tiled() bool {
	return !c.Floating && !c.Transient && !c.Fullscreen
}

// Next returns the client's successor in list order, or nil at the tail.
func (c *Client) Next() *Client {
	return c.next
}
