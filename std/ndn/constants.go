package ndn

import enc "github.com/JamsawColPH/esp8266ndn/std/encoding"

// NDN 0.2 packet format TLV types.
const (
	TypeInterest                  enc.TLNum = 0x05
	TypeData                      enc.TLNum = 0x06
	TypeName                      enc.TLNum = enc.TypeName
	TypeSelectors                 enc.TLNum = 0x09
	TypeNonce                     enc.TLNum = 0x0a
	TypeInterestLifetime          enc.TLNum = 0x0c
	TypeMinSuffixComponents       enc.TLNum = 0x0d
	TypeMaxSuffixComponents       enc.TLNum = 0x0e
	TypePublisherPublicKeyLocator enc.TLNum = 0x0f
	TypeExclude                   enc.TLNum = 0x10
	TypeChildSelector             enc.TLNum = 0x11
	TypeMustBeFresh               enc.TLNum = 0x12
	TypeAny                       enc.TLNum = 0x13
	TypeMetaInfo                  enc.TLNum = 0x14
	TypeContent                   enc.TLNum = 0x15
	TypeSignatureInfo             enc.TLNum = 0x16
	TypeSignatureValue            enc.TLNum = 0x17
	TypeContentType               enc.TLNum = 0x18
	TypeFreshnessPeriod           enc.TLNum = 0x19
	TypeFinalBlockId              enc.TLNum = 0x1a
	TypeSignatureType             enc.TLNum = 0x1b
	TypeKeyLocator                enc.TLNum = 0x1c
	TypeKeyDigest                 enc.TLNum = 0x1d
	TypeForwardingHint            enc.TLNum = 0x1e
	TypeCanBePrefix               enc.TLNum = 0x21
	TypeHopLimit                  enc.TLNum = 0x22
	TypeApplicationParameters     enc.TLNum = 0x24
	TypeValidityPeriod            enc.TLNum = 0xfd
	TypeNotBefore                 enc.TLNum = 0xfe
	TypeNotAfter                  enc.TLNum = 0xff
)

// NDNLPv2 TLV types.
const (
	TypeLpPacket       enc.TLNum = 0x64
	TypeFragment       enc.TLNum = 0x50
	TypeSequence       enc.TLNum = 0x51
	TypeFragIndex      enc.TLNum = 0x52
	TypeFragCount      enc.TLNum = 0x53
	TypeNack           enc.TLNum = 0x0320
	TypeNackReason     enc.TLNum = 0x0321
	TypeIncomingFaceId enc.TLNum = 0x032c
	TypeCongestionMark enc.TLNum = 0x0340
)

// DefaultInterestLifetime applies when an Interest carries no InterestLifetime.
const DefaultInterestLifetime = 4000 // milliseconds

// ContentType represents the type of Data content in MetaInfo.
type ContentType uint64

const (
	ContentTypeBlob ContentType = 0
	ContentTypeLink ContentType = 1
	ContentTypeKey  ContentType = 2
	ContentTypeNack ContentType = 3
)

// SigType represents the type of signature.
type SigType uint64

const (
	SignatureDigestSha256    SigType = 0
	SignatureSha256WithRsa   SigType = 1
	SignatureSha256WithEcdsa SigType = 3
	SignatureHmacWithSha256  SigType = 4
	SignatureEd25519         SigType = 5
	SignatureEmptyTest       SigType = 200
)

func (t SigType) String() string {
	switch t {
	case SignatureDigestSha256:
		return "DigestSha256"
	case SignatureSha256WithRsa:
		return "Sha256WithRsa"
	case SignatureSha256WithEcdsa:
		return "Sha256WithEcdsa"
	case SignatureHmacWithSha256:
		return "HmacWithSha256"
	case SignatureEd25519:
		return "Ed25519"
	case SignatureEmptyTest:
		return "EmptyTest"
	default:
		return "Unknown"
	}
}

// NackReason is the reason code of a network Nack.
// Codes other than the named ones are carried through unchanged.
type NackReason uint64

const (
	NackReasonNone       NackReason = 0
	NackReasonCongestion NackReason = 50
	NackReasonDuplicate  NackReason = 100
	NackReasonNoRoute    NackReason = 150
)

func (r NackReason) String() string {
	switch r {
	case NackReasonNone:
		return "None"
	case NackReasonCongestion:
		return "Congestion"
	case NackReasonDuplicate:
		return "Duplicate"
	case NackReasonNoRoute:
		return "NoRoute"
	default:
		return "Unknown"
	}
}
