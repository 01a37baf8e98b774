package key

import (
	"crypto/hmac"
	"crypto/sha256"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

// HmacKey signs with HMAC-SHA256 over a shared secret.
type HmacKey struct {
	secret []byte
}

// NewHmacKey creates an initialized HMAC key. The secret is copied.
func NewHmacKey(secret []byte) (*HmacKey, error) {
	k := &HmacKey{}
	if err := k.Import(secret); err != nil {
		return nil, err
	}
	return k, nil
}

// Import sets the secret. An empty secret is rejected and leaves k unchanged.
func (k *HmacKey) Import(secret []byte) error {
	if len(secret) == 0 {
		return ndn.ErrInvalidKey
	}
	k.secret = append([]byte(nil), secret...)
	return nil
}

func (k *HmacKey) IsInitialized() bool {
	return k.secret != nil
}

func (*HmacKey) Type() ndn.SigType {
	return ndn.SignatureHmacWithSha256
}

func (*HmacKey) KeyLocator() enc.Name {
	return nil
}

func (*HmacKey) MaxSignatureLength() int {
	return sha256.Size
}

func (k *HmacKey) Sign(sig, message []byte) (int, error) {
	if !k.IsInitialized() {
		return 0, ndn.ErrKeyUninitialized
	}
	if len(sig) < sha256.Size {
		return 0, enc.ErrBufferTooSmall
	}
	return copy(sig, k.mac(message)), nil
}

func (k *HmacKey) Verify(message, signature []byte) bool {
	if !k.IsInitialized() {
		return false
	}
	return hmac.Equal(k.mac(message), signature)
}

func (k *HmacKey) mac(message []byte) []byte {
	m := hmac.New(sha256.New, k.secret)
	m.Write(message)
	return m.Sum(nil)
}
