package transport

import (
	"fmt"
	"sync"
)

// Loopback is one side of an in-memory transport pair.
// A packet sent with an endpoint id is received by the peer with the same id,
// which lets tests model transports with several peers.
type Loopback struct {
	name   string
	peer   *Loopback
	mut    sync.Mutex
	inbox  []packet
	closed bool
	nDrops uint64
}

// NewLoopbackPair creates two connected Loopback transports.
func NewLoopbackPair() (a, b *Loopback) {
	a = &Loopback{name: "a"}
	b = &Loopback{name: "b"}
	a.peer, b.peer = b, a
	return a, b
}

func (t *Loopback) String() string {
	return fmt.Sprintf("loopback-transport (%s)", t.name)
}

func (t *Loopback) Receive(buf []byte) (int, uint64) {
	t.mut.Lock()
	defer t.mut.Unlock()
	for len(t.inbox) > 0 {
		pkt := t.inbox[0]
		t.inbox = t.inbox[1:]
		if len(pkt.wire) > len(buf) {
			t.nDrops++
			continue
		}
		return copy(buf, pkt.wire), pkt.endpoint
	}
	return 0, 0
}

func (t *Loopback) Send(pkt []byte, endpointID uint64) error {
	t.mut.Lock()
	closed := t.closed
	t.mut.Unlock()
	if closed {
		return ErrClosed
	}

	p := t.peer
	p.mut.Lock()
	defer p.mut.Unlock()
	if !p.closed {
		p.inbox = append(p.inbox, packet{wire: append([]byte(nil), pkt...), endpoint: endpointID})
	}
	return nil
}

// NDrops is the number of packets dropped for not fitting in the receive buffer.
func (t *Loopback) NDrops() uint64 {
	t.mut.Lock()
	defer t.mut.Unlock()
	return t.nDrops
}

// Pending is the number of packets waiting to be received.
func (t *Loopback) Pending() int {
	t.mut.Lock()
	defer t.mut.Unlock()
	return len(t.inbox)
}

func (t *Loopback) Close() error {
	t.mut.Lock()
	defer t.mut.Unlock()
	t.closed = true
	t.inbox = nil
	return nil
}
