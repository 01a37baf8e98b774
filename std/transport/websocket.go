package transport

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/gorilla/websocket"
)

// WebSocketTransport carries one packet per binary WebSocket message.
type WebSocketTransport struct {
	url     string
	conn    *websocket.Conn
	queue   queue
	running atomic.Bool
	nDrops  atomic.Uint64
	sendMut sync.Mutex
}

// DialWebSocket connects to a WebSocket endpoint, such as an NFD ws listener.
func DialWebSocket(url string) (*WebSocketTransport, error) {
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	t := &WebSocketTransport{
		url:   url,
		conn:  c,
		queue: newQueue(),
	}
	t.running.Store(true)
	go t.receive()
	return t, nil
}

func (t *WebSocketTransport) String() string {
	return fmt.Sprintf("websocket-transport (url=%s)", t.url)
}

func (t *WebSocketTransport) Receive(buf []byte) (int, uint64) {
	return t.queue.pop(buf, &t.nDrops)
}

func (t *WebSocketTransport) Send(pkt []byte, endpointID uint64) error {
	if !t.running.Load() {
		return ErrClosed
	}
	t.sendMut.Lock()
	defer t.sendMut.Unlock()
	return t.conn.WriteMessage(websocket.BinaryMessage, pkt)
}

// NDrops is the number of received packets dropped on a full queue or for
// not fitting in the receive buffer.
func (t *WebSocketTransport) NDrops() uint64 {
	return t.nDrops.Load()
}

func (t *WebSocketTransport) Close() error {
	if !t.running.Swap(false) {
		return nil
	}
	return t.conn.Close()
}

func (t *WebSocketTransport) receive() {
	for t.running.Load() {
		messageType, pkt, err := t.conn.ReadMessage()
		if err != nil {
			if t.running.Load() {
				log.Warn(t, "Unable to read from WebSocket", "err", err)
			}
			t.running.Store(false)
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		if !t.queue.push(pkt, 0) {
			t.nDrops.Add(1)
			log.Debug(t, "Receive queue full, packet dropped", "size", len(pkt))
		}
	}
}
