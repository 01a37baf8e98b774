package encoding

import (
	"encoding/binary"
)

// TLNum is a TLV Type or Length number
type TLNum uint64

// Nat is a TLV natural number
type Nat uint64

// EncodingLength returns the size of v as an NDN VAR-NUMBER.
func (v TLNum) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xfc:
		return 1
	case x <= 0xffff:
		return 3
	case x <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// EncodeInto writes v as a VAR-NUMBER. buf must hold EncodingLength() bytes.
func (v TLNum) EncodeInto(buf Buffer) int {
	switch x := uint64(v); {
	case x <= 0xfc:
		buf[0] = byte(x)
		return 1
	case x <= 0xffff:
		buf[0] = 0xfd
		binary.BigEndian.PutUint16(buf[1:], uint16(x))
		return 3
	case x <= 0xffffffff:
		buf[0] = 0xfe
		binary.BigEndian.PutUint32(buf[1:], uint32(x))
		return 5
	default:
		buf[0] = 0xff
		binary.BigEndian.PutUint64(buf[1:], uint64(x))
		return 9
	}
}

// ParseTLNum parses a VAR-NUMBER from the beginning of buf.
// Unlike the encoder side, input here comes from the network, so a short
// buffer is an error rather than a panic.
func ParseTLNum(buf Buffer) (val TLNum, pos int, err error) {
	if len(buf) < 1 {
		return 0, 0, ErrBufferOverflow
	}
	switch x := buf[0]; {
	case x <= 0xfc:
		return TLNum(x), 1, nil
	case x == 0xfd:
		pos = 3
	case x == 0xfe:
		pos = 5
	default:
		pos = 9
	}
	if len(buf) < pos {
		return 0, 0, ErrBufferOverflow
	}
	switch pos {
	case 3:
		val = TLNum(binary.BigEndian.Uint16(buf[1:3]))
	case 5:
		val = TLNum(binary.BigEndian.Uint32(buf[1:5]))
	default:
		val = TLNum(binary.BigEndian.Uint64(buf[1:9]))
	}
	return val, pos, nil
}

// IsCritical reports whether an unrecognized element of this type must cause
// the enclosing element to be rejected (NDN TLV evolvability rule).
func (v TLNum) IsCritical() bool {
	return v <= 31 || v&1 == 1
}

// EncodingLength returns the size of v as a NonNegativeInteger (1, 2, 4 or 8 bytes).
func (v Nat) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xff:
		return 1
	case x <= 0xffff:
		return 2
	case x <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

// EncodeInto writes v using the fewest allowed big-endian bytes.
func (v Nat) EncodeInto(buf Buffer) int {
	switch x := uint64(v); {
	case x <= 0xff:
		buf[0] = byte(x)
		return 1
	case x <= 0xffff:
		binary.BigEndian.PutUint16(buf, uint16(x))
		return 2
	case x <= 0xffffffff:
		binary.BigEndian.PutUint32(buf, uint32(x))
		return 4
	default:
		binary.BigEndian.PutUint64(buf, uint64(x))
		return 8
	}
}

// Bytes returns the NonNegativeInteger encoding of v.
func (v Nat) Bytes() []byte {
	buf := make([]byte, v.EncodingLength())
	v.EncodeInto(buf)
	return buf
}

// ParseNat parses a NonNegativeInteger that occupies the whole of buf.
func ParseNat(buf Buffer) (val Nat, err error) {
	switch len(buf) {
	case 1:
		val = Nat(buf[0])
	case 2:
		val = Nat(binary.BigEndian.Uint16(buf))
	case 4:
		val = Nat(binary.BigEndian.Uint32(buf))
	case 8:
		val = Nat(binary.BigEndian.Uint64(buf))
	default:
		return 0, ErrFormat{"natural number length is not 1, 2, 4 or 8"}
	}
	return val, nil
}

func IsAlphabet(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
