package ndn

import enc "github.com/JamsawColPH/esp8266ndn/std/encoding"

// PrivateKey is the signing side of a key.
type PrivateKey interface {
	// Type is the SignatureType written into SignatureInfo.
	Type() SigType
	// KeyLocator is the name written into SignatureInfo; empty for none.
	KeyLocator() enc.Name
	// MaxSignatureLength is an upper bound of Sign output.
	MaxSignatureLength() int
	// Sign writes the signature of message into sig, which holds at least
	// MaxSignatureLength bytes, and returns its length.
	Sign(sig, message []byte) (int, error)
}

// PublicKey is the verifying side of a key.
type PublicKey interface {
	Type() SigType
	// Verify reports whether signature is valid for message.
	// Malformed input or an uninitialized key yields false.
	Verify(message, signature []byte) bool
}
