package tlv_0_2

import (
	"time"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/JamsawColPH/esp8266ndn/std/utils"
)

const (
	itemName       = "name components"
	itemExclude    = "exclude entries"
	itemKeyLocator = "key locator name components"
)

// DecodeInterest parses an Interest from the start of buf into interest.
// Bytes after the outer element are ignored. The decoded fields alias buf.
// The returned region covers the name components except the last one, which
// is where a signed Interest carries its signature.
func DecodeInterest(buf []byte, interest *ndn.Interest) (region ndn.SignedRegion, err error) {
	d := enc.NewDecoder(buf)
	typ, l, err := d.ReadTL()
	if err != nil {
		return region, err
	}
	if typ != ndn.TypeInterest {
		return region, ndn.ErrWrongType
	}

	interest.Reset()
	body := d.Enter(l)
	hasName := false
	for !body.EOF() {
		typ, l, err := body.ReadTL()
		if err != nil {
			return region, err
		}
		switch typ {
		case ndn.TypeName:
			region.Start = body.Offset()
			region.End, err = body.ReadNameValue(l, &interest.Name, itemName)
			hasName = true
		case ndn.TypeSelectors:
			sub := body.Enter(l)
			err = decodeSelectors(&sub, interest)
		case ndn.TypeNonce:
			if l != 4 {
				return region, enc.ErrFormat{Msg: "Nonce must be 4 octets"}
			}
			interest.Nonce = utils.ConvertNonce(body.ReadBuf(l))
		case ndn.TypeInterestLifetime:
			var v enc.Nat
			v, err = body.ReadNat(l)
			interest.Lifetime.Set(time.Duration(v) * time.Millisecond)
		case ndn.TypeCanBePrefix:
			body.Skip(l)
			interest.CanBePrefix = true
		case ndn.TypeForwardingHint:
			interest.ForwardingHint = body.ReadBuf(l)
		case ndn.TypeHopLimit:
			if l != 1 {
				return region, enc.ErrFormat{Msg: "HopLimit must be 1 octet"}
			}
			interest.HopLimit.Set(body.ReadBuf(1)[0])
		case ndn.TypeApplicationParameters:
			interest.AppParams = body.ReadBuf(l)
		default:
			err = body.SkipUnknown(typ, l)
		}
		if err != nil {
			return ndn.SignedRegion{}, err
		}
	}

	if !hasName {
		return ndn.SignedRegion{}, enc.ErrSkipRequired{Name: "Name", TypeNum: ndn.TypeName}
	}
	return region, nil
}

func decodeSelectors(d *enc.Decoder, interest *ndn.Interest) error {
	for !d.EOF() {
		typ, l, err := d.ReadTL()
		if err != nil {
			return err
		}
		switch typ {
		case ndn.TypeMinSuffixComponents:
			err = readOptionalNat(d, l, &interest.MinSuffixComponents)
		case ndn.TypeMaxSuffixComponents:
			err = readOptionalNat(d, l, &interest.MaxSuffixComponents)
		case ndn.TypePublisherPublicKeyLocator:
			sub := d.Enter(l)
			err = decodeKeyLocator(&sub, &interest.PublisherKeyLocator)
		case ndn.TypeExclude:
			sub := d.Enter(l)
			err = decodeExclude(&sub, &interest.Exclude)
		case ndn.TypeChildSelector:
			err = readOptionalNat(d, l, &interest.ChildSelector)
		case ndn.TypeMustBeFresh:
			d.Skip(l)
			interest.MustBeFresh = true
		default:
			err = d.SkipUnknown(typ, l)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeExclude(d *enc.Decoder, x *ndn.Exclude) error {
	bounded := *x != nil
	limit := cap(*x)
	*x = (*x)[:0]
	for !d.EOF() {
		typ, _ := d.PeekType()
		var entry ndn.ExcludeEntry
		if typ == ndn.TypeAny {
			_, l, err := d.ReadTL()
			if err != nil {
				return err
			}
			d.Skip(l)
			entry.Any = true
		} else {
			c, err := d.ReadComponent()
			if err != nil {
				return err
			}
			entry.Component = c
		}
		if bounded && len(*x) == limit {
			return enc.ErrCapacity{Item: itemExclude, Max: limit}
		}
		*x = append(*x, entry)
	}
	return nil
}

func decodeKeyLocator(d *enc.Decoder, k *ndn.KeyLocator) error {
	for !d.EOF() {
		typ, l, err := d.ReadTL()
		if err != nil {
			return err
		}
		switch typ {
		case ndn.TypeName:
			k.Type = ndn.TypeName
			_, err = d.ReadNameValue(l, &k.Name, itemKeyLocator)
		case ndn.TypeKeyDigest:
			k.Type = ndn.TypeKeyDigest
			k.Digest = d.ReadBuf(l)
		default:
			err = d.SkipUnknown(typ, l)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DecodeData parses a Data from the start of buf into data.
// Bytes after the outer element are ignored. The decoded fields alias buf.
// The returned region runs from the Name element through SignatureInfo.
func DecodeData(buf []byte, data *ndn.Data) (region ndn.SignedRegion, err error) {
	d := enc.NewDecoder(buf)
	typ, l, err := d.ReadTL()
	if err != nil {
		return region, err
	}
	if typ != ndn.TypeData {
		return region, ndn.ErrWrongType
	}

	data.Reset()
	body := d.Enter(l)
	hasName, hasSigInfo, hasSigValue := false, false, false
	for !body.EOF() {
		start := body.Offset()
		typ, l, err := body.ReadTL()
		if err != nil {
			return region, err
		}
		switch typ {
		case ndn.TypeName:
			region.Start = start
			_, err = body.ReadNameValue(l, &data.Name, itemName)
			hasName = true
		case ndn.TypeMetaInfo:
			sub := body.Enter(l)
			err = decodeMetaInfo(&sub, &data.MetaInfo)
		case ndn.TypeContent:
			data.Content = body.ReadBuf(l)
		case ndn.TypeSignatureInfo:
			sub := body.Enter(l)
			err = decodeSignatureInfo(&sub, &data.SignatureInfo)
			region.End = body.Offset()
			hasSigInfo = true
		case ndn.TypeSignatureValue:
			data.SignatureValue = body.ReadBuf(l)
			hasSigValue = true
		default:
			err = body.SkipUnknown(typ, l)
		}
		if err != nil {
			return ndn.SignedRegion{}, err
		}
	}

	switch {
	case !hasName:
		return ndn.SignedRegion{}, enc.ErrSkipRequired{Name: "Name", TypeNum: ndn.TypeName}
	case !hasSigInfo:
		return ndn.SignedRegion{}, enc.ErrSkipRequired{Name: "SignatureInfo", TypeNum: ndn.TypeSignatureInfo}
	case !hasSigValue:
		return ndn.SignedRegion{}, enc.ErrSkipRequired{Name: "SignatureValue", TypeNum: ndn.TypeSignatureValue}
	case region.End < region.Start:
		return ndn.SignedRegion{}, enc.ErrFormat{Msg: "SignatureInfo precedes Name"}
	}
	return region, nil
}

func decodeMetaInfo(d *enc.Decoder, m *ndn.MetaInfo) error {
	for !d.EOF() {
		typ, l, err := d.ReadTL()
		if err != nil {
			return err
		}
		var v enc.Nat
		switch typ {
		case ndn.TypeContentType:
			v, err = d.ReadNat(l)
			m.ContentType.Set(ndn.ContentType(v))
		case ndn.TypeFreshnessPeriod:
			v, err = d.ReadNat(l)
			m.Freshness.Set(time.Duration(v) * time.Millisecond)
		case ndn.TypeFinalBlockId:
			sub := d.Enter(l)
			var c enc.Component
			if c, err = sub.ReadComponent(); err == nil {
				m.FinalBlockID.Set(c)
			}
		default:
			err = d.SkipUnknown(typ, l)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeSignatureInfo(d *enc.Decoder, s *ndn.SignatureInfo) error {
	hasType := false
	for !d.EOF() {
		typ, l, err := d.ReadTL()
		if err != nil {
			return err
		}
		switch typ {
		case ndn.TypeSignatureType:
			var v enc.Nat
			v, err = d.ReadNat(l)
			s.Type = ndn.SigType(v)
			hasType = true
		case ndn.TypeKeyLocator:
			sub := d.Enter(l)
			err = decodeKeyLocator(&sub, &s.KeyLocator)
		case ndn.TypeValidityPeriod:
			sub := d.Enter(l)
			err = decodeValidityPeriod(&sub, s)
		default:
			err = d.SkipUnknown(typ, l)
		}
		if err != nil {
			return err
		}
	}
	if !hasType {
		return enc.ErrSkipRequired{Name: "SignatureType", TypeNum: ndn.TypeSignatureType}
	}
	return nil
}

func decodeValidityPeriod(d *enc.Decoder, s *ndn.SignatureInfo) error {
	var vp ndn.ValidityPeriod
	hasBefore, hasAfter := false, false
	for !d.EOF() {
		typ, l, err := d.ReadTL()
		if err != nil {
			return err
		}
		switch typ {
		case ndn.TypeNotBefore:
			vp.NotBefore = string(d.ReadBuf(l))
			hasBefore = true
		case ndn.TypeNotAfter:
			vp.NotAfter = string(d.ReadBuf(l))
			hasAfter = true
		default:
			if err = d.SkipUnknown(typ, l); err != nil {
				return err
			}
		}
	}
	if !hasBefore || !hasAfter {
		return enc.ErrFormat{Msg: "ValidityPeriod requires NotBefore and NotAfter"}
	}
	s.Validity.Set(vp)
	return nil
}

func readOptionalNat(d *enc.Decoder, l int, dst interface{ Set(uint64) }) error {
	v, err := d.ReadNat(l)
	if err != nil {
		return err
	}
	dst.Set(uint64(v))
	return nil
}
