package tlv_0_2

import (
	"math/rand/v2"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

// EncodeInterest writes interest into out and returns the encoded length and
// the region a signed Interest would cover.
// An Interest without a Nonce gets a random one, stored back into interest.
// When out is too small, enc.ErrBufferTooSmall is returned and out is untouched.
func EncodeInterest(interest *ndn.Interest, out []byte) (int, ndn.SignedRegion, error) {
	if !interest.Nonce.IsSet() {
		interest.Nonce.Set(rand.Uint32())
	}
	var region ndn.SignedRegion
	n, err := enc.EncodeInto(out, func(e *enc.Encoder) {
		region = putInterest(e, interest)
	})
	if err != nil {
		return 0, ndn.SignedRegion{}, err
	}
	return n, region, nil
}

func putInterest(e *enc.Encoder, interest *ndn.Interest) (region ndn.SignedRegion) {
	e.Nested(ndn.TypeInterest, func(e *enc.Encoder) {
		e.PutTL(ndn.TypeName, interest.Name.EncodingLength())
		region.Start = e.Pos()
		region.End = region.Start
		for i, c := range interest.Name {
			if i == len(interest.Name)-1 {
				region.End = e.Pos()
			}
			e.PutComponent(c)
		}

		if interest.CanBePrefix {
			e.PutTL(ndn.TypeCanBePrefix, 0)
		}
		if interest.HasSelectors() {
			e.Nested(ndn.TypeSelectors, func(e *enc.Encoder) {
				putSelectors(e, interest)
			})
		}

		nonce := interest.Nonce.Unwrap()
		e.PutTLV(ndn.TypeNonce, []byte{byte(nonce >> 24), byte(nonce >> 16), byte(nonce >> 8), byte(nonce)})
		if lifetime, ok := interest.Lifetime.Get(); ok {
			e.PutNat(ndn.TypeInterestLifetime, enc.Nat(lifetime.Milliseconds()))
		}
		if interest.ForwardingHint != nil {
			e.PutTLV(ndn.TypeForwardingHint, interest.ForwardingHint)
		}
		if hop, ok := interest.HopLimit.Get(); ok {
			e.PutTLV(ndn.TypeHopLimit, []byte{hop})
		}
		if interest.AppParams != nil {
			e.PutTLV(ndn.TypeApplicationParameters, interest.AppParams)
		}
	})
	return region
}

func putSelectors(e *enc.Encoder, interest *ndn.Interest) {
	if v, ok := interest.MinSuffixComponents.Get(); ok {
		e.PutNat(ndn.TypeMinSuffixComponents, enc.Nat(v))
	}
	if v, ok := interest.MaxSuffixComponents.Get(); ok {
		e.PutNat(ndn.TypeMaxSuffixComponents, enc.Nat(v))
	}
	if interest.PublisherKeyLocator.IsSet() {
		putKeyLocator(e, ndn.TypePublisherPublicKeyLocator, &interest.PublisherKeyLocator)
	}
	if len(interest.Exclude) > 0 {
		e.Nested(ndn.TypeExclude, func(e *enc.Encoder) {
			for _, entry := range interest.Exclude {
				if entry.Any {
					e.PutTL(ndn.TypeAny, 0)
				} else {
					e.PutComponent(entry.Component)
				}
			}
		})
	}
	if v, ok := interest.ChildSelector.Get(); ok {
		e.PutNat(ndn.TypeChildSelector, enc.Nat(v))
	}
	if interest.MustBeFresh {
		e.PutTL(ndn.TypeMustBeFresh, 0)
	}
}

func putKeyLocator(e *enc.Encoder, typ enc.TLNum, k *ndn.KeyLocator) {
	e.Nested(typ, func(e *enc.Encoder) {
		switch k.Type {
		case ndn.TypeName:
			e.PutName(ndn.TypeName, k.Name)
		case ndn.TypeKeyDigest:
			e.PutTLV(ndn.TypeKeyDigest, k.Digest)
		}
	})
}

// EncodeData writes data into out and returns the encoded length and the
// signed region (Name through SignatureInfo).
// When out is too small, enc.ErrBufferTooSmall is returned and out is untouched.
func EncodeData(data *ndn.Data, out []byte) (int, ndn.SignedRegion, error) {
	var region ndn.SignedRegion
	n, err := enc.EncodeInto(out, func(e *enc.Encoder) {
		e.Nested(ndn.TypeData, func(e *enc.Encoder) {
			region.Start = e.Pos()
			e.PutName(ndn.TypeName, data.Name)
			e.Nested(ndn.TypeMetaInfo, func(e *enc.Encoder) {
				putMetaInfo(e, &data.MetaInfo)
			})
			e.PutTLV(ndn.TypeContent, data.Content)
			e.Nested(ndn.TypeSignatureInfo, func(e *enc.Encoder) {
				putSignatureInfo(e, &data.SignatureInfo)
			})
			region.End = e.Pos()
			e.PutTLV(ndn.TypeSignatureValue, data.SignatureValue)
		})
	})
	if err != nil {
		return 0, ndn.SignedRegion{}, err
	}
	return n, region, nil
}

func putMetaInfo(e *enc.Encoder, m *ndn.MetaInfo) {
	if v, ok := m.ContentType.Get(); ok {
		e.PutNat(ndn.TypeContentType, enc.Nat(v))
	}
	if v, ok := m.Freshness.Get(); ok {
		e.PutNat(ndn.TypeFreshnessPeriod, enc.Nat(v.Milliseconds()))
	}
	if c, ok := m.FinalBlockID.Get(); ok {
		e.Nested(ndn.TypeFinalBlockId, func(e *enc.Encoder) {
			e.PutComponent(c)
		})
	}
}

func putSignatureInfo(e *enc.Encoder, s *ndn.SignatureInfo) {
	e.PutNat(ndn.TypeSignatureType, enc.Nat(s.Type))
	if s.KeyLocator.IsSet() {
		putKeyLocator(e, ndn.TypeKeyLocator, &s.KeyLocator)
	}
	if vp, ok := s.Validity.Get(); ok {
		e.Nested(ndn.TypeValidityPeriod, func(e *enc.Encoder) {
			e.PutTLV(ndn.TypeNotBefore, []byte(vp.NotBefore))
			e.PutTLV(ndn.TypeNotAfter, []byte(vp.NotAfter))
		})
	}
}
