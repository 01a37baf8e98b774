package transport

// NullTransport drops every packet and never receives.
type NullTransport struct{}

func NewNullTransport() *NullTransport {
	return &NullTransport{}
}

func (*NullTransport) String() string {
	return "null-transport"
}

func (*NullTransport) Receive([]byte) (int, uint64) {
	return 0, 0
}

func (*NullTransport) Send([]byte, uint64) error {
	return nil
}

func (*NullTransport) Close() error {
	return nil
}
