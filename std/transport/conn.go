package transport

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/JamsawColPH/esp8266ndn/std/log"
)

// ConnTransport is a transport over a message-preserving net.Conn, such as a
// connected UDP socket. It has a single endpoint, 0.
type ConnTransport struct {
	name    string
	conn    net.Conn
	queue   queue
	running atomic.Bool
	nDrops  atomic.Uint64
}

// NewConnTransport starts reading from conn. Each Read must return one packet.
func NewConnTransport(conn net.Conn) *ConnTransport {
	return newConnTransport("conn-transport", conn)
}

func newConnTransport(name string, conn net.Conn) *ConnTransport {
	t := &ConnTransport{
		name:  name,
		conn:  conn,
		queue: newQueue(),
	}
	t.running.Store(true)
	go t.receive()
	return t
}

// NewUnicastUDP connects a UDP socket to remote. An empty local picks an
// ephemeral port.
func NewUnicastUDP(local, remote string) (*ConnTransport, error) {
	raddr, err := net.ResolveUDPAddr("udp", remote)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve remote endpoint: %w", err)
	}
	var laddr *net.UDPAddr
	if local != "" {
		if laddr, err = net.ResolveUDPAddr("udp", local); err != nil {
			return nil, fmt.Errorf("unable to resolve local endpoint: %w", err)
		}
	}
	conn, err := net.DialUDP("udp", laddr, raddr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to remote endpoint: %w", err)
	}
	return newConnTransport("unicast-udp-transport", conn), nil
}

func (t *ConnTransport) String() string {
	return fmt.Sprintf("%s (remote=%s local=%s)", t.name, t.conn.RemoteAddr(), t.conn.LocalAddr())
}

func (t *ConnTransport) Receive(buf []byte) (int, uint64) {
	return t.queue.pop(buf, &t.nDrops)
}

func (t *ConnTransport) Send(pkt []byte, endpointID uint64) error {
	if !t.running.Load() {
		return ErrClosed
	}
	_, err := t.conn.Write(pkt)
	return err
}

// NDrops is the number of received packets dropped on a full queue or for
// not fitting in the receive buffer.
func (t *ConnTransport) NDrops() uint64 {
	return t.nDrops.Load()
}

func (t *ConnTransport) Close() error {
	if !t.running.Swap(false) {
		return nil
	}
	return t.conn.Close()
}

func (t *ConnTransport) receive() {
	buf := make([]byte, MaxPacketSize)
	for t.running.Load() {
		n, err := t.conn.Read(buf)
		if err != nil {
			if t.running.Load() && !errors.Is(err, net.ErrClosed) {
				log.Warn(t, "Unable to read from socket", "err", err)
			}
			t.running.Store(false)
			return
		}
		if n == 0 {
			continue
		}
		if !t.queue.push(buf[:n], 0) {
			t.nDrops.Add(1)
			log.Debug(t, "Receive queue full, packet dropped", "size", n)
		}
	}
}
