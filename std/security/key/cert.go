package key

import (
	"crypto/elliptic"
	"encoding/asn1"
	"math/big"

	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidPublicKeyEcdsa = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidNamedCurveP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidPrimeField     = asn1.ObjectIdentifier{1, 2, 840, 10045, 1, 1}
)

// ImportCert sets the key from the SubjectPublicKeyInfo in a certificate's Content.
// The algorithm must be id-ecPublicKey on P-256, named or with explicit parameters.
// On failure the key is left unchanged.
func (k *EcPublicKey) ImportCert(cert *ndn.Data) error {
	input := cryptobyte.String(cert.Content)
	var spki, algo cryptobyte.String
	var algoOid asn1.ObjectIdentifier
	if !input.ReadASN1(&spki, casn1.SEQUENCE) ||
		!spki.ReadASN1(&algo, casn1.SEQUENCE) ||
		!algo.ReadASN1ObjectIdentifier(&algoOid) {
		return ndn.ErrInvalidKey
	}
	if !algoOid.Equal(oidPublicKeyEcdsa) {
		return ndn.ErrCertAlgorithm
	}

	switch {
	case algo.PeekASN1Tag(casn1.OBJECT_IDENTIFIER):
		var curveOid asn1.ObjectIdentifier
		if !algo.ReadASN1ObjectIdentifier(&curveOid) {
			return ndn.ErrInvalidKey
		}
		if !curveOid.Equal(oidNamedCurveP256) {
			return ndn.ErrCertAlgorithm
		}
	case algo.PeekASN1Tag(casn1.SEQUENCE):
		var params cryptobyte.String
		if !algo.ReadASN1(&params, casn1.SEQUENCE) {
			return ndn.ErrInvalidKey
		}
		if !isExplicitP256(params) {
			return ndn.ErrCertAlgorithm
		}
	default:
		return ndn.ErrCertAlgorithm
	}

	var bits asn1.BitString
	if !spki.ReadASN1BitString(&bits) || bits.BitLength%8 != 0 {
		return ndn.ErrInvalidKey
	}
	return k.Import(bits.Bytes)
}

// isExplicitP256 checks SEC 1 ECParameters against the P-256 domain parameters.
func isExplicitP256(params cryptobyte.String) bool {
	curve := elliptic.P256().Params()
	a := new(big.Int).Sub(curve.P, big.NewInt(3))

	var version int64
	var fieldID, curveSeq cryptobyte.String
	var fieldOid asn1.ObjectIdentifier
	var coefA, coefB, base []byte
	prime, order := new(big.Int), new(big.Int)
	if !params.ReadASN1Integer(&version) || version != 1 ||
		!params.ReadASN1(&fieldID, casn1.SEQUENCE) ||
		!fieldID.ReadASN1ObjectIdentifier(&fieldOid) || !fieldOid.Equal(oidPrimeField) ||
		!fieldID.ReadASN1Integer(prime) || prime.Cmp(curve.P) != 0 ||
		!params.ReadASN1(&curveSeq, casn1.SEQUENCE) ||
		!curveSeq.ReadASN1Bytes(&coefA, casn1.OCTET_STRING) ||
		!curveSeq.ReadASN1Bytes(&coefB, casn1.OCTET_STRING) ||
		new(big.Int).SetBytes(coefA).Cmp(a) != 0 ||
		new(big.Int).SetBytes(coefB).Cmp(curve.B) != 0 ||
		!params.ReadASN1Bytes(&base, casn1.OCTET_STRING) ||
		!params.ReadASN1Integer(order) || order.Cmp(curve.N) != 0 {
		return false
	}
	// the seed inside curveSeq is optional and ignored

	if len(base) != ecPointLength || base[0] != 0x04 ||
		new(big.Int).SetBytes(base[1:33]).Cmp(curve.Gx) != 0 ||
		new(big.Int).SetBytes(base[33:]).Cmp(curve.Gy) != 0 {
		return false
	}

	if !params.Empty() {
		var cofactor int64
		if !params.ReadASN1Integer(&cofactor) || cofactor != 1 {
			return false
		}
	}
	return params.Empty()
}

// MarshalPKIX encodes the key as a SubjectPublicKeyInfo with the named curve.
func (k *EcPublicKey) MarshalPKIX() ([]byte, error) {
	point, err := k.Export()
	if err != nil {
		return nil, err
	}
	var b cryptobyte.Builder
	b.AddASN1(casn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(casn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidPublicKeyEcdsa)
			b.AddASN1ObjectIdentifier(oidNamedCurveP256)
		})
		b.AddASN1BitString(point)
	})
	return b.Bytes()
}
