package face

import (
	"errors"
	"fmt"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/JamsawColPH/esp8266ndn/std/ndn/tlv_0_2"
	"github.com/JamsawColPH/esp8266ndn/std/security/key"
)

// ErrReentrant is returned when a send function is called from inside another send.
var ErrReentrant = errors.New("face send is not reentrant")

// Counters are the packet counters of a Face.
type Counters struct {
	NInInterests  uint64
	NInData       uint64
	NInNacks      uint64
	NOutInterests uint64
	NOutData      uint64
	NOutNacks     uint64
	NDecodeErrors uint64
}

// Face connects a Transport to a chain of packet handlers.
//
// A Face owns its receive, transmit and signature buffers and reuses them
// across calls. It is driven by Loop and is not safe for concurrent use.
type Face struct {
	transport ndn.Transport
	cfg       Config

	inbuf  []byte
	outbuf []byte
	sigbuf []byte

	signingKey ndn.PrivateKey
	hmacKey    *key.HmacKey

	chain   chain
	builtin HandlerFuncs
	sending bool

	// decode scratch
	interest ndn.Interest
	data     ndn.Data
	lp       ndn.LpPacket

	// Data being dispatched, valid only inside a Data handler
	thisData   *ndn.Data
	thisWire   []byte
	thisRegion ndn.SignedRegion

	counters Counters
}

// NewFace creates a Face over t. A nil cfg selects DefaultConfig.
// The configuration must pass Validate.
func NewFace(t ndn.Transport, cfg *Config) *Face {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	f := &Face{
		transport: t,
		cfg:       *cfg,
		inbuf:     make([]byte, cfg.InbufSize),
		outbuf:    make([]byte, cfg.OutbufSize),
	}
	f.interest.Name = make(enc.Name, 0, cfg.NameCompsMax)
	f.interest.Exclude = make(ndn.Exclude, 0, cfg.ExcludeMax)
	f.interest.PublisherKeyLocator.Name = make(enc.Name, 0, cfg.KeyNameCompsMax)
	f.data.Name = make(enc.Name, 0, cfg.NameCompsMax)
	f.data.SignatureInfo.KeyLocator.Name = make(enc.Name, 0, cfg.KeyNameCompsMax)
	return f
}

func (f *Face) String() string {
	if s, ok := f.transport.(fmt.Stringer); ok {
		return fmt.Sprintf("face (%s)", s)
	}
	return "face"
}

// Transport returns the underlying transport.
func (f *Face) Transport() ndn.Transport {
	return f.transport
}

// Counters returns a snapshot of the packet counters.
func (f *Face) Counters() Counters {
	return f.counters
}

// Register adds h to the handler chain. h must implement at least one of
// InterestHandler, DataHandler and NackHandler. Handlers with lower prio run
// first; equal priorities run in registration order.
func (f *Face) Register(h any, prio int8) error {
	return f.chain.register(h, prio)
}

// Unregister removes h from the handler chain, and reports whether it was found.
// It is safe to call from inside a handler.
func (f *Face) Unregister(h any) bool {
	return f.chain.unregister(h)
}

// OnInterest installs a single Interest callback that claims every Interest
// reaching it. A nil cb removes it.
func (f *Face) OnInterest(cb func(interest *ndn.Interest, endpointID uint64)) {
	f.builtin.Interest = nil
	if cb != nil {
		f.builtin.Interest = func(interest *ndn.Interest, endpointID uint64) bool {
			cb(interest, endpointID)
			return true
		}
	}
	f.updateBuiltin()
}

// OnData installs a single Data callback that claims every Data reaching it.
// A nil cb removes it.
func (f *Face) OnData(cb func(data *ndn.Data, endpointID uint64)) {
	f.builtin.Data = nil
	if cb != nil {
		f.builtin.Data = func(data *ndn.Data, endpointID uint64) bool {
			cb(data, endpointID)
			return true
		}
	}
	f.updateBuiltin()
}

// OnNack installs a single Nack callback that claims every Nack reaching it.
// A nil cb removes it.
func (f *Face) OnNack(cb func(nack *ndn.NetworkNack, interest *ndn.Interest, endpointID uint64)) {
	f.builtin.Nack = nil
	if cb != nil {
		f.builtin.Nack = func(nack *ndn.NetworkNack, interest *ndn.Interest, endpointID uint64) bool {
			cb(nack, interest, endpointID)
			return true
		}
	}
	f.updateBuiltin()
}

func (f *Face) updateBuiltin() {
	h := &f.builtin
	if h.Interest == nil && h.Data == nil && h.Nack == nil {
		f.chain.unregister(h)
		return
	}
	if f.chain.find(h) == nil {
		f.chain.register(h, 0)
	}
}

// Loop processes up to cfg.ReceiveMax pending packets and returns how many were read.
func (f *Face) Loop() int {
	count := 0
	for ; count < f.cfg.ReceiveMax; count++ {
		n, endpointID := f.transport.Receive(f.inbuf)
		if n <= 0 {
			break
		}
		f.process(f.inbuf[:min(n, len(f.inbuf))], endpointID)
	}
	return count
}

func (f *Face) process(pkt []byte, endpointID uint64) {
	switch enc.TLNum(pkt[0]) {
	case ndn.TypeInterest:
		f.processInterest(pkt, endpointID)
	case ndn.TypeData:
		f.processData(pkt, endpointID)
	case ndn.TypeLpPacket:
		f.processLpPacket(pkt, endpointID)
	default:
		f.counters.NDecodeErrors++
		log.Debug(f, "Unknown packet type", "type", pkt[0], "endpoint", endpointID)
	}
}

func (f *Face) processInterest(pkt []byte, endpointID uint64) {
	if _, err := tlv_0_2.DecodeInterest(pkt, &f.interest); err != nil {
		f.dropMalformed("Interest", err, endpointID)
		return
	}
	f.counters.NInInterests++

	interest := &f.interest
	f.chain.dispatch(func(h any) bool {
		ih, ok := h.(InterestHandler)
		return ok && ih.ProcessInterest(interest, endpointID)
	})
}

func (f *Face) processData(pkt []byte, endpointID uint64) {
	region, err := tlv_0_2.DecodeData(pkt, &f.data)
	if err != nil {
		f.dropMalformed("Data", err, endpointID)
		return
	}
	f.counters.NInData++

	data := &f.data
	f.thisData, f.thisWire, f.thisRegion = data, pkt, region
	defer func() {
		f.thisData, f.thisWire = nil, nil
	}()
	f.chain.dispatch(func(h any) bool {
		dh, ok := h.(DataHandler)
		return ok && dh.ProcessData(data, endpointID)
	})
}

func (f *Face) processLpPacket(pkt []byte, endpointID uint64) {
	if err := tlv_0_2.DecodeLpPacket(pkt, &f.lp); err != nil {
		f.dropMalformed("LpPacket", err, endpointID)
		return
	}
	frag := f.lp.Fragment
	if len(frag) == 0 {
		// IDLE packet
		return
	}

	nack, isNack := f.lp.Nack.Get()
	if !isNack {
		if enc.TLNum(frag[0]) == ndn.TypeLpPacket {
			f.dropMalformed("LpPacket", ndn.ErrWrongType, endpointID)
			return
		}
		f.process(frag, endpointID)
		return
	}

	if _, err := tlv_0_2.DecodeInterest(frag, &f.interest); err != nil {
		f.dropMalformed("Nack", err, endpointID)
		return
	}
	f.counters.NInNacks++

	interest := &f.interest
	f.chain.dispatch(func(h any) bool {
		nh, ok := h.(NackHandler)
		return ok && nh.ProcessNack(&nack, interest, endpointID)
	})
}

func (f *Face) dropMalformed(kind string, err error, endpointID uint64) {
	f.counters.NDecodeErrors++
	log.Debug(f, "Dropped malformed packet", "kind", kind, "err", err, "endpoint", endpointID)
}

// VerifyData verifies the Data being dispatched with pub.
// It returns false outside a Data handler, or when the Data is unsigned.
func (f *Face) VerifyData(pub ndn.PublicKey) bool {
	if f.thisData == nil || !f.thisData.IsSigned() || pub == nil {
		return false
	}
	return pub.Verify(f.thisRegion.Of(f.thisWire), f.thisData.SignatureValue)
}

// SigningKey returns the key used by SendData.
func (f *Face) SigningKey() ndn.PrivateKey {
	return f.signingKey
}

// SetSigningKey sets the key used by SendData. The Face keeps a reference to
// k; a nil k disables SendData.
func (f *Face) SetSigningKey(k ndn.PrivateKey) {
	f.signingKey = k
	if k == nil {
		return
	}
	if l := k.MaxSignatureLength(); l > len(f.sigbuf) {
		f.sigbuf = make([]byte, l)
	}
}

// SetHmacKey signs with HMAC-SHA256 under secret. The key is owned by the Face.
func (f *Face) SetHmacKey(secret []byte) error {
	if f.hmacKey == nil {
		f.hmacKey = &key.HmacKey{}
	}
	if err := f.hmacKey.Import(secret); err != nil {
		return err
	}
	f.SetSigningKey(f.hmacKey)
	return nil
}

// SendPacket transmits an encoded packet.
func (f *Face) SendPacket(pkt []byte, endpointID uint64) error {
	if err := f.transport.Send(pkt, endpointID); err != nil {
		log.Warn(f, "Unable to send packet", "err", err, "endpoint", endpointID)
		return err
	}
	return nil
}

func (f *Face) beginSend() error {
	if f.sending {
		return ErrReentrant
	}
	f.sending = true
	return nil
}

func (f *Face) endSend() {
	f.sending = false
}

// SendInterest encodes and transmits an Interest. An Interest without a
// Nonce is given a random one.
func (f *Face) SendInterest(interest *ndn.Interest, endpointID uint64) error {
	if err := f.beginSend(); err != nil {
		return err
	}
	defer f.endSend()

	n, _, err := tlv_0_2.EncodeInterest(interest, f.outbuf)
	if err != nil {
		return err
	}
	if err = f.SendPacket(f.outbuf[:n], endpointID); err != nil {
		return err
	}
	f.counters.NOutInterests++
	return nil
}

// SendNack transmits a Nack of interest, which must carry its Nonce.
func (f *Face) SendNack(nack *ndn.NetworkNack, interest *ndn.Interest, endpointID uint64) error {
	if err := f.beginSend(); err != nil {
		return err
	}
	defer f.endSend()

	n, err := tlv_0_2.EncodeNack(nack, interest, f.outbuf)
	if err != nil {
		return err
	}
	if err = f.SendPacket(f.outbuf[:n], endpointID); err != nil {
		return err
	}
	f.counters.NOutNacks++
	return nil
}

// SendData signs and transmits data.
//
// SignatureInfo is overwritten from the signing key. The first encoding finds
// the signed region, and the second carries the signature. After return,
// data.SignatureValue aliases a Face buffer that the next SendData overwrites.
func (f *Face) SendData(data *ndn.Data, endpointID uint64) error {
	k := f.signingKey
	if k == nil {
		return ndn.ErrNoSigningKey
	}
	if err := f.beginSend(); err != nil {
		return err
	}
	defer f.endSend()

	data.SignatureInfo.Type = k.Type()
	if locator := k.KeyLocator(); len(locator) > 0 {
		data.SignatureInfo.KeyLocator.SetName(locator)
	} else {
		data.SignatureInfo.KeyLocator.Reset()
	}
	data.SignatureValue = nil

	_, region, err := tlv_0_2.EncodeData(data, f.outbuf)
	if err != nil {
		return err
	}
	sigLen, err := k.Sign(f.sigbuf, region.Of(f.outbuf))
	if err != nil {
		return fmt.Errorf("unable to sign Data: %w", err)
	}
	data.SignatureValue = f.sigbuf[:sigLen]

	n, _, err := tlv_0_2.EncodeData(data, f.outbuf)
	if err != nil {
		return err
	}
	if err = f.SendPacket(f.outbuf[:n], endpointID); err != nil {
		return err
	}
	f.counters.NOutData++
	return nil
}
