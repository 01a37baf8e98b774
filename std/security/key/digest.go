package key

import (
	"crypto/sha256"
	"crypto/subtle"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

// DigestKey signs with a plain SHA-256 digest (DigestSha256).
// It has no key material and is always initialized.
type DigestKey struct{}

func (DigestKey) Type() ndn.SigType {
	return ndn.SignatureDigestSha256
}

func (DigestKey) KeyLocator() enc.Name {
	return nil
}

func (DigestKey) MaxSignatureLength() int {
	return sha256.Size
}

func (DigestKey) Sign(sig, message []byte) (int, error) {
	if len(sig) < sha256.Size {
		return 0, enc.ErrBufferTooSmall
	}
	digest := sha256.Sum256(message)
	return copy(sig, digest[:]), nil
}

func (DigestKey) Verify(message, signature []byte) bool {
	digest := sha256.Sum256(message)
	return subtle.ConstantTimeCompare(digest[:], signature) == 1
}
