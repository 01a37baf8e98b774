// Package transport provides ndn.Transport implementations.
//
// Transports over blocking sockets read in a background goroutine into a
// bounded queue, so that Receive never blocks the Face.
package transport

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync/atomic"

	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

// MaxPacketSize is the largest packet a transport reads.
const MaxPacketSize = 8800

// QueueSize is the number of received packets buffered before dropping.
const QueueSize = 64

// ErrClosed is returned when sending on a closed transport.
var ErrClosed = errors.New("transport is closed")

// Transport is an ndn.Transport that can be closed.
type Transport interface {
	ndn.Transport
	io.Closer
	fmt.Stringer
}

type packet struct {
	wire     []byte
	endpoint uint64
}

// queue hands packets from a reader goroutine to a non-blocking Receive.
type queue chan packet

func newQueue() queue {
	return make(queue, QueueSize)
}

// push enqueues a copy of wire, and reports false when the queue is full.
func (q queue) push(wire []byte, endpoint uint64) bool {
	select {
	case q <- packet{wire: append([]byte(nil), wire...), endpoint: endpoint}:
		return true
	default:
		return false
	}
}

// pop dequeues the next packet that fits in buf. Longer packets are dropped
// and counted in drops.
func (q queue) pop(buf []byte, drops *atomic.Uint64) (int, uint64) {
	for {
		select {
		case pkt := <-q:
			if len(pkt.wire) > len(buf) {
				drops.Add(1)
				continue
			}
			return copy(buf, pkt.wire), pkt.endpoint
		default:
			return 0, 0
		}
	}
}

// Dial opens a transport from a URI:
// udp://host:port, ws://host:port/path, wss://host:port/path or null:.
func Dial(uri string) (Transport, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid transport URI %q: %w", uri, err)
	}
	switch u.Scheme {
	case "udp", "udp4", "udp6":
		t, err := NewUnicastUDP("", u.Host)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "ws", "wss":
		t, err := DialWebSocket(uri)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "null":
		return NewNullTransport(), nil
	default:
		return nil, fmt.Errorf("unsupported transport scheme %q", u.Scheme)
	}
}
