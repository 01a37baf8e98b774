package tlv_0_2

import (
	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

// DecodeLpPacket parses an NDNLPv2 frame. The Fragment aliases buf.
// Frames split over more than one fragment yield ndn.ErrFragmented.
func DecodeLpPacket(buf []byte, lp *ndn.LpPacket) error {
	d := enc.NewDecoder(buf)
	typ, l, err := d.ReadTL()
	if err != nil {
		return err
	}
	if typ != ndn.TypeLpPacket {
		return ndn.ErrWrongType
	}

	*lp = ndn.LpPacket{}
	body := d.Enter(l)
	for !body.EOF() {
		typ, l, err := body.ReadTL()
		if err != nil {
			return err
		}
		switch typ {
		case ndn.TypeSequence:
			err = readOptionalNat(&body, l, &lp.Sequence)
		case ndn.TypeFragIndex:
			err = readOptionalNat(&body, l, &lp.FragIndex)
		case ndn.TypeFragCount:
			err = readOptionalNat(&body, l, &lp.FragCount)
		case ndn.TypeIncomingFaceId:
			err = readOptionalNat(&body, l, &lp.IncomingFaceId)
		case ndn.TypeCongestionMark:
			err = readOptionalNat(&body, l, &lp.CongestionMark)
		case ndn.TypeNack:
			sub := body.Enter(l)
			var nack ndn.NetworkNack
			nack, err = decodeNack(&sub)
			lp.Nack.Set(nack)
		case ndn.TypeFragment:
			lp.Fragment = body.ReadBuf(l)
		default:
			err = skipLpHeader(&body, typ, l)
		}
		if err != nil {
			return err
		}
	}

	if count, ok := lp.FragCount.Get(); ok && count > 1 {
		return ndn.ErrFragmented
	}
	return nil
}

func decodeNack(d *enc.Decoder) (nack ndn.NetworkNack, err error) {
	for !d.EOF() {
		typ, l, err := d.ReadTL()
		if err != nil {
			return nack, err
		}
		if typ != ndn.TypeNackReason {
			if err = d.SkipUnknown(typ, l); err != nil {
				return nack, err
			}
			continue
		}
		v, err := d.ReadNat(l)
		if err != nil {
			return nack, err
		}
		nack.Reason = ndn.NackReason(v)
	}
	return nack, nil
}

// skipLpHeader drops an unknown header field. Fields in [800, 959] whose two
// low bits are clear may be ignored; anything else is critical.
func skipLpHeader(d *enc.Decoder, typ enc.TLNum, l int) error {
	if typ >= 800 && typ <= 959 && typ&0x03 == 0 {
		d.Skip(l)
		return nil
	}
	return enc.ErrUnrecognizedField{TypeNum: typ}
}

// EncodeNack wraps interest in an NDNLPv2 frame carrying nack.
func EncodeNack(nack *ndn.NetworkNack, interest *ndn.Interest, out []byte) (int, error) {
	if !interest.Nonce.IsSet() {
		return 0, enc.ErrSkipRequired{Name: "Nonce", TypeNum: ndn.TypeNonce}
	}
	return enc.EncodeInto(out, func(e *enc.Encoder) {
		e.Nested(ndn.TypeLpPacket, func(e *enc.Encoder) {
			e.Nested(ndn.TypeNack, func(e *enc.Encoder) {
				if nack.Reason != ndn.NackReasonNone {
					e.PutNat(ndn.TypeNackReason, enc.Nat(nack.Reason))
				}
			})
			e.Nested(ndn.TypeFragment, func(e *enc.Encoder) {
				putInterest(e, interest)
			})
		})
	})
}
