package ndn

import (
	"time"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/types/optional"
)

// Slices inside decoded packets alias the received buffer. Name, Exclude and
// KeyLocator.Name bound the decoder by their capacity; see enc.Decoder.ReadNameValue.

// KeyLocator identifies the key of a signature, by Name or by KeyDigest.
type KeyLocator struct {
	// Type is TypeName, TypeKeyDigest, or 0 when absent.
	Type   enc.TLNum
	Name   enc.Name
	Digest []byte
}

func (k KeyLocator) IsSet() bool {
	return k.Type != 0
}

// SetName makes k a Name KeyLocator.
func (k *KeyLocator) SetName(name enc.Name) {
	k.Type = TypeName
	k.Name = name
	k.Digest = nil
}

func (k *KeyLocator) Reset() {
	k.Type = 0
	k.Name = k.Name[:0]
	k.Digest = nil
}

// ValidityTimeFormat is the ISO 8601 compact form used by NotBefore and NotAfter.
const ValidityTimeFormat = "20060102T150405"

// ValidityPeriod is the certificate validity window, kept as its wire strings.
type ValidityPeriod struct {
	NotBefore string
	NotAfter  string
}

// Times parses the window as UTC.
func (v ValidityPeriod) Times() (notBefore, notAfter time.Time, err error) {
	notBefore, err = time.Parse(ValidityTimeFormat, v.NotBefore)
	if err != nil {
		return
	}
	notAfter, err = time.Parse(ValidityTimeFormat, v.NotAfter)
	return
}

// Contains reports whether t lies within the window.
func (v ValidityPeriod) Contains(t time.Time) bool {
	nb, na, err := v.Times()
	if err != nil {
		return false
	}
	return !t.Before(nb) && !t.After(na)
}

type SignatureInfo struct {
	Type       SigType
	KeyLocator KeyLocator
	Validity   optional.Optional[ValidityPeriod]
}

type MetaInfo struct {
	ContentType  optional.Optional[ContentType]
	Freshness    optional.Optional[time.Duration]
	FinalBlockID optional.Optional[enc.Component]
}

// ExcludeEntry is one Exclude item: either Any or a name component.
type ExcludeEntry struct {
	Any       bool
	Component enc.Component
}

type Exclude []ExcludeEntry

// Matches reports whether c is excluded.
func (x Exclude) Matches(c enc.Component) bool {
	for i, e := range x {
		if e.Any {
			continue
		}
		cmp := c.Compare(e.Component)
		if cmp == 0 {
			return true
		}
		if cmp < 0 {
			// inside a range opened by a preceding Any
			return i > 0 && x[i-1].Any
		}
	}
	return len(x) > 0 && x[len(x)-1].Any
}

type Interest struct {
	Name enc.Name

	// Selectors
	MinSuffixComponents optional.Optional[uint64]
	MaxSuffixComponents optional.Optional[uint64]
	PublisherKeyLocator KeyLocator
	Exclude             Exclude
	ChildSelector       optional.Optional[uint64]
	MustBeFresh         bool

	Nonce    optional.Optional[uint32]
	Lifetime optional.Optional[time.Duration]

	// Fields of the newer packet format that a 0.2 decoder accepts.
	CanBePrefix    bool
	ForwardingHint []byte
	HopLimit       optional.Optional[uint8]
	AppParams      []byte
}

// HasSelectors reports whether any selector is set.
func (i *Interest) HasSelectors() bool {
	return i.MinSuffixComponents.IsSet() || i.MaxSuffixComponents.IsSet() ||
		i.PublisherKeyLocator.IsSet() || len(i.Exclude) > 0 ||
		i.ChildSelector.IsSet() || i.MustBeFresh
}

// LifetimeOr returns the InterestLifetime, or the protocol default.
func (i *Interest) LifetimeOr() time.Duration {
	return i.Lifetime.GetOr(DefaultInterestLifetime * time.Millisecond)
}

// Reset clears every field, keeping the storage of bounded slices.
func (i *Interest) Reset() {
	*i = Interest{
		Name:                i.Name[:0],
		Exclude:             i.Exclude[:0],
		PublisherKeyLocator: KeyLocator{Name: i.PublisherKeyLocator.Name[:0]},
	}
}

type Data struct {
	Name           enc.Name
	MetaInfo       MetaInfo
	Content        []byte
	SignatureInfo  SignatureInfo
	SignatureValue []byte
}

// Reset clears every field, keeping the storage of bounded slices.
func (d *Data) Reset() {
	*d = Data{
		Name: d.Name[:0],
		SignatureInfo: SignatureInfo{
			KeyLocator: KeyLocator{Name: d.SignatureInfo.KeyLocator.Name[:0]},
		},
	}
}

// IsSigned reports whether the Data carries a SignatureValue.
func (d *Data) IsSigned() bool {
	return len(d.SignatureValue) > 0
}

// NetworkNack is a network-layer negative acknowledgement of an Interest.
type NetworkNack struct {
	Reason NackReason
}

// LpPacket is an NDNLPv2 frame. Only unfragmented frames are supported.
type LpPacket struct {
	Sequence       optional.Optional[uint64]
	FragIndex      optional.Optional[uint64]
	FragCount      optional.Optional[uint64]
	Nack           optional.Optional[NetworkNack]
	IncomingFaceId optional.Optional[uint64]
	CongestionMark optional.Optional[uint64]
	Fragment       []byte
}

// SignedRegion is the byte range of an encoded packet covered by its signature.
type SignedRegion struct {
	Start int
	End   int
}

func (r SignedRegion) Len() int {
	return r.End - r.Start
}

// Of returns the covered bytes of wire.
func (r SignedRegion) Of(wire []byte) []byte {
	return wire[r.Start:r.End]
}
