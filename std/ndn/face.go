package ndn

// Transport moves whole packets. It is a collaborator of the Face, which
// never blocks on it.
type Transport interface {
	// Receive copies one pending packet into buf and returns its length and the
	// endpoint it came from. It returns 0 when nothing is pending and must not block.
	Receive(buf []byte) (n int, endpointID uint64)
	// Send transmits pkt to an endpoint. Delivery is best-effort.
	Send(pkt []byte, endpointID uint64) error
}
