package key

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"
)

const (
	ecScalarLength = 32
	ecPointLength  = 65
)

// maxEcdsaSigLength bounds a DER ECDSA signature on a curve of the given size.
func maxEcdsaSigLength(curve elliptic.Curve) int {
	l := (curve.Params().BitSize*2 + 7) / 8
	l += l%2 + 8
	return l
}

// EcPrivateKey signs with ECDSA on P-256 over SHA-256.
type EcPrivateKey struct {
	name enc.Name
	key  *ecdsa.PrivateKey
}

// NewEcPrivateKey creates an uninitialized key that will be located by keyName.
func NewEcPrivateKey(keyName enc.Name) *EcPrivateKey {
	return &EcPrivateKey{name: keyName}
}

// Import sets the private scalar (32 octets, big-endian).
// On failure the key is left unchanged.
func (k *EcPrivateKey) Import(scalar []byte) error {
	if len(scalar) != ecScalarLength {
		return ndn.ErrInvalidKey
	}
	priv, err := ecdh.P256().NewPrivateKey(scalar)
	if err != nil {
		return ndn.ErrInvalidKey
	}
	k.key = ecdsaFromEcdh(priv)
	return nil
}

// Generate creates a fresh key pair. Either both k and pub are initialized or
// neither is modified.
func (k *EcPrivateKey) Generate(pub *EcPublicKey) error {
	if pub == nil {
		return ndn.ErrInvalidKey
	}
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return enc.ErrUnexpected{Err: err}
	}
	key := ecdsaFromEcdh(priv)
	k.key = key
	pub.key = &key.PublicKey
	return nil
}

// Export returns the 32-octet private scalar.
func (k *EcPrivateKey) Export() ([]byte, error) {
	if k.key == nil {
		return nil, ndn.ErrKeyUninitialized
	}
	return k.key.D.FillBytes(make([]byte, ecScalarLength)), nil
}

// Public returns the matching public key.
func (k *EcPrivateKey) Public() (*EcPublicKey, error) {
	if k.key == nil {
		return nil, ndn.ErrKeyUninitialized
	}
	return &EcPublicKey{key: &k.key.PublicKey}, nil
}

func (k *EcPrivateKey) IsInitialized() bool {
	return k.key != nil
}

func (*EcPrivateKey) Type() ndn.SigType {
	return ndn.SignatureSha256WithEcdsa
}

func (k *EcPrivateKey) KeyLocator() enc.Name {
	return k.name
}

func (*EcPrivateKey) MaxSignatureLength() int {
	return maxEcdsaSigLength(elliptic.P256())
}

// Sign writes a DER-encoded ECDSA signature. Its length varies between calls.
func (k *EcPrivateKey) Sign(sig, message []byte) (int, error) {
	if k.key == nil {
		return 0, ndn.ErrKeyUninitialized
	}
	digest := sha256.Sum256(message)
	der, err := ecdsa.SignASN1(rand.Reader, k.key, digest[:])
	if err != nil {
		return 0, enc.ErrUnexpected{Err: err}
	}
	if len(der) > len(sig) {
		return 0, enc.ErrBufferTooSmall
	}
	return copy(sig, der), nil
}

func ecdsaFromEcdh(priv *ecdh.PrivateKey) *ecdsa.PrivateKey {
	point := priv.PublicKey().Bytes()
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(point[1:33]),
			Y:     new(big.Int).SetBytes(point[33:]),
		},
		D: new(big.Int).SetBytes(priv.Bytes()),
	}
}

// EcPublicKey verifies ECDSA P-256 signatures.
type EcPublicKey struct {
	key *ecdsa.PublicKey
}

// Import sets the public point in uncompressed form (0x04 || X || Y).
// The point must lie on P-256. On failure the key is left unchanged.
func (k *EcPublicKey) Import(point []byte) error {
	if len(point) != ecPointLength || point[0] != 0x04 {
		return ndn.ErrInvalidKey
	}
	if _, err := ecdh.P256().NewPublicKey(point); err != nil {
		return ndn.ErrInvalidKey
	}
	k.key = &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(point[1:33]),
		Y:     new(big.Int).SetBytes(point[33:]),
	}
	return nil
}

// Export returns the uncompressed public point.
func (k *EcPublicKey) Export() ([]byte, error) {
	if k.key == nil {
		return nil, ndn.ErrKeyUninitialized
	}
	point := make([]byte, ecPointLength)
	point[0] = 0x04
	k.key.X.FillBytes(point[1:33])
	k.key.Y.FillBytes(point[33:])
	return point, nil
}

func (k *EcPublicKey) IsInitialized() bool {
	return k.key != nil
}

func (*EcPublicKey) Type() ndn.SigType {
	return ndn.SignatureSha256WithEcdsa
}

// Verify checks a DER-encoded ECDSA signature over SHA-256(message).
func (k *EcPublicKey) Verify(message, signature []byte) bool {
	if k.key == nil || !isDerSignature(signature) {
		return false
	}
	digest := sha256.Sum256(message)
	return ecdsa.VerifyASN1(k.key, digest[:], signature)
}

// isDerSignature reports whether sig is exactly SEQUENCE { INTEGER r, INTEGER s }.
func isDerSignature(sig []byte) bool {
	var seq cryptobyte.String
	input := cryptobyte.String(sig)
	r, s := new(big.Int), new(big.Int)
	return input.ReadASN1(&seq, casn1.SEQUENCE) && input.Empty() &&
		seq.ReadASN1Integer(r) && seq.ReadASN1Integer(s) && seq.Empty() &&
		r.Sign() > 0 && s.Sign() > 0
}
