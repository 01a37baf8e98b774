package key

import (
	"bytes"
	"crypto/sha256"
	"slices"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

// VariableLengthKey is a test key whose signature length follows a fixed
// cycle, one entry per Sign call. The signature is the SHA-256 digest of the
// message repeated to the chosen length, so Verify accepts any of the lengths.
type VariableLengthKey struct {
	lengths []int
	next    int
}

// NewVariableLengthKey creates a key cycling through lengths; each must be positive.
func NewVariableLengthKey(lengths ...int) *VariableLengthKey {
	if len(lengths) == 0 || slices.Min(lengths) <= 0 {
		panic("VariableLengthKey requires positive lengths")
	}
	return &VariableLengthKey{lengths: lengths}
}

func (*VariableLengthKey) Type() ndn.SigType {
	return ndn.SignatureEmptyTest
}

func (*VariableLengthKey) KeyLocator() enc.Name {
	return nil
}

func (k *VariableLengthKey) MaxSignatureLength() int {
	return slices.Max(k.lengths)
}

// LastLength is the length produced by the most recent Sign call.
func (k *VariableLengthKey) LastLength() int {
	return k.lengths[(k.next+len(k.lengths)-1)%len(k.lengths)]
}

func (k *VariableLengthKey) Sign(sig, message []byte) (int, error) {
	l := k.lengths[k.next]
	if len(sig) < l {
		return 0, enc.ErrBufferTooSmall
	}
	k.next = (k.next + 1) % len(k.lengths)
	fillDigest(sig[:l], message)
	return l, nil
}

func (k *VariableLengthKey) Verify(message, signature []byte) bool {
	if len(signature) == 0 || len(signature) > k.MaxSignatureLength() {
		return false
	}
	want := make([]byte, len(signature))
	fillDigest(want, message)
	return bytes.Equal(want, signature)
}

func fillDigest(dst, message []byte) {
	digest := sha256.Sum256(message)
	for i := range dst {
		dst[i] = digest[i%sha256.Size]
	}
}
