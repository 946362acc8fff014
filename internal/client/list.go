package client

import (
	"github.com/BurntSushi/xgb/xproto"
)

// List is the ordered collection of clients belonging to one workspace.
// It keeps tiled clients as a contiguous prefix: layouts count tiled
// clients from the head and stop at the first floating, transient or
// fullscreen one, so insertion maintains that partition structurally.
type List struct {
	head   *Client
	length int
}

// Head returns the first client, or nil when the list is empty.
func (l *List) Head() *Client {
	return l.head
}

// Len returns the number of clients in the list.
func (l *List) Len() int {
	return l.length
}

// Tail returns the last client, or nil when the list is empty.
func (l *List) Tail() *Client {
	if l.head == nil {
		return nil
	}
	c := l.head
	for c.next != nil {
		c = c.next
	}
	return c
}

// Append inserts c preserving the tiled-prefix partition: a tiled client
// goes at the end of the tiled prefix, everything else at the tail.
func (l *List) Append(c *Client) {
	c.next = nil
	l.length++

	if l.head == nil {
		l.head = c
		return
	}

	if !c.Tiled() {
		l.Tail().next = c
		return
	}

	// End of the tiled prefix: before the first non-tiled client.
	if !l.head.Tiled() {
		c.next = l.head
		l.head = c
		return
	}
	p := l.head
	for p.next != nil && p.next.Tiled() {
		p = p.next
	}
	c.next = p.next
	p.next = c
}

// Predecessor returns the client whose successor is c, or nil when c is
// the head, absent, or the list has fewer than two clients.
func (l *List) Predecessor(c *Client) *Client {
	if c == nil || l.head == nil || l.head.next == nil || c == l.head {
		return nil
	}
	for p := l.head; p.next != nil; p = p.next {
		if p.next == c {
			return p
		}
	}
	return nil
}

// Remove unlinks c from the list. The remaining clients keep their
// relative order. Reports whether c was found.
func (l *List) Remove(c *Client) bool {
	if c == nil || l.head == nil {
		return false
	}
	if c == l.head {
		l.head = c.next
		c.next = nil
		l.length--
		return true
	}
	p := l.Predecessor(c)
	if p == nil {
		return false
	}
	p.next = c.next
	c.next = nil
	l.length--
	return true
}

// MoveUp swaps c with its predecessor. Moves never cross the partition
// boundary: a client leading its partition wraps to that partition's
// end, so the tiled prefix survives reordering. A no-op on lists with
// fewer than two clients or when c is absent.
func (l *List) MoveUp(c *Client) {
	if c == nil || l.length < 2 || !l.contains(c) {
		return
	}

	p := l.Predecessor(c)
	if p != nil && p.Tiled() == c.Tiled() {
		pp := l.Predecessor(p)
		if pp == nil {
			l.head = c
		} else {
			pp.next = c
		}
		p.next = c.next
		c.next = p
		return
	}

	// c leads its partition: wrap it onto the partition's end.
	end := c
	for end.next != nil && end.next.Tiled() == c.Tiled() {
		end = end.next
	}
	if end == c {
		return
	}
	if p == nil {
		l.head = c.next
	} else {
		p.next = c.next
	}
	c.next = end.next
	end.next = c
}

// MoveDown swaps c with its successor. Moves never cross the partition
// boundary: a client ending its partition wraps to that partition's
// start. A no-op on lists with fewer than two clients or when c is
// absent.
func (l *List) MoveDown(c *Client) {
	if c == nil || l.length < 2 || !l.contains(c) {
		return
	}

	if s := c.next; s != nil && s.Tiled() == c.Tiled() {
		p := l.Predecessor(c)
		c.next = s.next
		s.next = c
		if p == nil {
			l.head = s
		} else {
			p.next = s
		}
		return
	}

	// c ends its partition: wrap it onto the partition's start.
	start := l.head
	for start != nil && start.Tiled() != c.Tiled() {
		start = start.next
	}
	if start == nil || start == c {
		return
	}
	l.Predecessor(c).next = c.next
	sp := l.Predecessor(start)
	c.next = start
	if sp == nil {
		l.head = c
	} else {
		sp.next = c
	}
}

// TiledCount counts clients from the head while each is tiled, stopping
// at the first floating, transient or fullscreen one.
func (l *List) TiledCount() int {
	n := 0
	for c := l.head; c != nil && c.Tiled(); c = c.next {
		n++
	}
	return n
}

// Find returns the client managing win, or nil.
func (l *List) Find(win xproto.Window) *Client {
	for c := l.head; c != nil; c = c.next {
		if c.Win == win {
			return c
		}
	}
	return nil
}

// Repartition relocates c after a flag change so the tiled-prefix
// invariant holds again. A no-op when c is absent.
func (l *List) Repartition(c *Client) {
	if c == nil || !l.contains(c) {
		return
	}
	l.Remove(c)
	l.Append(c)
}

// ForEach calls fn for every client in list order.
func (l *List) ForEach(fn func(*Client)) {
	for c := l.head; c != nil; c = c.next {
		fn(c)
	}
}

func (l *List) contains(c *Client) bool {
	for p := l.head; p != nil; p = p.next {
		if p == c {
			return true
		}
	}
	return false
}
