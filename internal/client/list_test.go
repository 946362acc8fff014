package client

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func newTestClient(win xproto.Window) *Client {
	return &Client{Win: win}
}

// order returns the window IDs in list order, failing the test if the
// list is cyclic or its length disagrees with the link count.
func order(t *testing.T, l *List) []xproto.Window {
	t.Helper()

	var wins []xproto.Window
	seen := make(map[*Client]bool)
	for c := l.Head(); c != nil; c = c.Next() {
		if seen[c] {
			t.Fatalf("list contains a cycle at window %d", c.Win)
		}
		seen[c] = true
		wins = append(wins, c.Win)
	}
	if len(wins) != l.Len() {
		t.Fatalf("list length %d, but %d reachable clients", l.Len(), len(wins))
	}
	return wins
}

func buildList(t *testing.T, wins ...xproto.Window) (*List, map[xproto.Window]*Client) {
	t.Helper()

	l := &List{}
	clients := make(map[xproto.Window]*Client, len(wins))
	for _, w := range wins {
		c := newTestClient(w)
		clients[w] = c
		l.Append(c)
	}
	return l, clients
}

func assertOrder(t *testing.T, l *List, want ...xproto.Window) {
	t.Helper()

	got := order(t, l)
	if len(got) != len(want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAppendBecomesHeadWhenEmpty(t *testing.T) {
	l, clients := buildList(t, 1)
	if l.Head() != clients[1] {
		t.Fatalf("expected window 1 to be head")
	}
	assertOrder(t, l, 1)
}

func TestAppendKeepsTiledPrefix(t *testing.T) {
	l, _ := buildList(t, 1, 2)

	float := newTestClient(3)
	float.Floating = true
	l.Append(float)
	assertOrder(t, l, 1, 2, 3)

	// A later tiled client lands before the floating one.
	l.Append(newTestClient(4))
	assertOrder(t, l, 1, 2, 4, 3)

	if n := l.TiledCount(); n != 3 {
		t.Fatalf("expected 3 tiled clients, got %d", n)
	}
}

func TestAppendTiledBeforeNonTiledHead(t *testing.T) {
	l := &List{}
	float := newTestClient(1)
	float.Floating = true
	l.Append(float)
	l.Append(newTestClient(2))
	assertOrder(t, l, 2, 1)
}

func TestRemovePreservesOrder(t *testing.T) {
	l, clients := buildList(t, 1, 2, 3, 4)

	if !l.Remove(clients[2]) {
		t.Fatalf("expected remove to succeed")
	}
	assertOrder(t, l, 1, 3, 4)
	if l.Find(2) != nil {
		t.Fatalf("expected window 2 to be gone")
	}

	if !l.Remove(clients[1]) {
		t.Fatalf("expected head remove to succeed")
	}
	assertOrder(t, l, 3, 4)

	if l.Remove(clients[1]) {
		t.Fatalf("expected second remove of window 1 to fail")
	}
}

func TestRemoveLastClientEmptiesList(t *testing.T) {
	l, clients := buildList(t, 7)
	if !l.Remove(clients[7]) {
		t.Fatalf("expected remove to succeed")
	}
	if l.Head() != nil || l.Len() != 0 {
		t.Fatalf("expected empty list, head=%v len=%d", l.Head(), l.Len())
	}
}

func TestPredecessor(t *testing.T) {
	l, clients := buildList(t, 1, 2, 3)

	if p := l.Predecessor(clients[3]); p != clients[2] {
		t.Fatalf("expected predecessor of 3 to be 2")
	}
	if p := l.Predecessor(clients[1]); p != nil {
		t.Fatalf("expected head to have no predecessor, got %d", p.Win)
	}
	if p := l.Predecessor(newTestClient(9)); p != nil {
		t.Fatalf("expected absent client to have no predecessor")
	}

	single, c := buildList(t, 1)
	if p := single.Predecessor(c[1]); p != nil {
		t.Fatalf("expected no predecessor in single-element list")
	}
}

func TestMoveUpThenDownRestoresOrder(t *testing.T) {
	for _, win := range []xproto.Window{1, 2, 3} {
		l, clients := buildList(t, 1, 2, 3)
		l.MoveUp(clients[win])
		l.MoveDown(clients[win])
		assertOrder(t, l, 1, 2, 3)
	}
}

func TestMoveDownThenUpRestoresOrder(t *testing.T) {
	for _, win := range []xproto.Window{1, 2, 3} {
		l, clients := buildList(t, 1, 2, 3)
		l.MoveDown(clients[win])
		l.MoveUp(clients[win])
		assertOrder(t, l, 1, 2, 3)
	}
}

func TestMoveSwapsNeighbours(t *testing.T) {
	l, clients := buildList(t, 1, 2, 3)

	l.MoveUp(clients[2])
	assertOrder(t, l, 2, 1, 3)

	l.MoveDown(clients[1])
	assertOrder(t, l, 2, 3, 1)
}

func TestMoveWrapsAroundEnds(t *testing.T) {
	l, clients := buildList(t, 1, 2, 3)

	// Head moved up lands on the tail.
	l.MoveUp(clients[1])
	assertOrder(t, l, 2, 3, 1)

	// Tail moved down lands on the head.
	l.MoveDown(clients[1])
	assertOrder(t, l, 1, 2, 3)
}

func TestMoveStaysInsideTiledPrefix(t *testing.T) {
	l, clients := buildList(t, 1, 2)
	float := newTestClient(3)
	float.Floating = true
	l.Append(float)

	// Last tiled client moved down wraps to the prefix head, never past
	// the floating suffix.
	l.MoveDown(clients[2])
	assertOrder(t, l, 2, 1, 3)
	if n := l.TiledCount(); n != 2 {
		t.Fatalf("expected 2 tiled clients, got %d", n)
	}

	// Prefix head moved up wraps to the prefix end.
	l.MoveUp(clients[2])
	assertOrder(t, l, 1, 2, 3)
	if n := l.TiledCount(); n != 2 {
		t.Fatalf("expected 2 tiled clients, got %d", n)
	}
}

func TestMoveStaysInsideFloatingSuffix(t *testing.T) {
	l, clients := buildList(t, 1)
	for _, w := range []xproto.Window{2, 3} {
		float := newTestClient(w)
		float.Floating = true
		clients[w] = float
		l.Append(float)
	}

	// First floating client moved up wraps to the tail, not into the
	// tiled prefix.
	l.MoveUp(clients[2])
	assertOrder(t, l, 1, 3, 2)

	// And moved down from the tail it wraps to the suffix start.
	l.MoveDown(clients[2])
	assertOrder(t, l, 1, 2, 3)
	if n := l.TiledCount(); n != 1 {
		t.Fatalf("expected 1 tiled client, got %d", n)
	}
}

func TestMoveNoOpOnSingleMemberPartition(t *testing.T) {
	l, clients := buildList(t, 1)
	float := newTestClient(2)
	float.Floating = true
	l.Append(float)

	l.MoveDown(clients[1])
	l.MoveUp(clients[1])
	l.MoveDown(float)
	l.MoveUp(float)
	assertOrder(t, l, 1, 2)
	if n := l.TiledCount(); n != 1 {
		t.Fatalf("expected 1 tiled client, got %d", n)
	}
}

func TestMoveNoOpOnShortLists(t *testing.T) {
	l, clients := buildList(t, 1)
	l.MoveUp(clients[1])
	l.MoveDown(clients[1])
	assertOrder(t, l, 1)

	l2, clients2 := buildList(t, 1, 2)
	l2.MoveUp(clients2[2])
	assertOrder(t, l2, 2, 1)
	l2.MoveDown(clients2[2])
	assertOrder(t, l2, 1, 2)
}

func TestTiledCountStopsAtFirstNonTiled(t *testing.T) {
	l := &List{}
	l.Append(newTestClient(1))
	full := newTestClient(2)
	full.Fullscreen = true
	l.Append(full)

	if n := l.TiledCount(); n != 1 {
		t.Fatalf("expected 1 tiled client, got %d", n)
	}
}

func TestRepartitionAfterFlagChange(t *testing.T) {
	l, clients := buildList(t, 1, 2, 3)

	clients[1].Floating = true
	l.Repartition(clients[1])
	assertOrder(t, l, 2, 3, 1)
	if n := l.TiledCount(); n != 2 {
		t.Fatalf("expected 2 tiled clients, got %d", n)
	}
}

func TestAppendRemoveChurnStaysConsistent(t *testing.T) {
	l := &List{}
	clients := make(map[xproto.Window]*Client)
	for w := xproto.Window(1); w <= 8; w++ {
		c := newTestClient(w)
		clients[w] = c
		l.Append(c)
	}
	for _, w := range []xproto.Window{4, 1, 8, 5} {
		if !l.Remove(clients[w]) {
			t.Fatalf("remove of %d failed", w)
		}
		order(t, l)
	}
	assertOrder(t, l, 2, 3, 6, 7)
}
