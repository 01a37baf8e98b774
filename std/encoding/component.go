package encoding

import (
	"bytes"
	"strconv"
	"strings"
)

const (
	TypeInvalidComponent                TLNum = 0x00
	TypeImplicitSha256DigestComponent   TLNum = 0x01
	TypeParametersSha256DigestComponent TLNum = 0x02
	TypeGenericNameComponent            TLNum = 0x08
	TypeKeywordNameComponent            TLNum = 0x20
	TypeSegmentNameComponent            TLNum = 0x32
	TypeByteOffsetNameComponent         TLNum = 0x34
	TypeVersionNameComponent            TLNum = 0x36
	TypeTimestampNameComponent          TLNum = 0x38
	TypeSequenceNumNameComponent        TLNum = 0x3a
)

// Component is one name component. Val may alias a received packet buffer.
type Component struct {
	Typ TLNum
	Val []byte
}

func (c Component) Clone() Component {
	return Component{
		Typ: c.Typ,
		Val: append([]byte(nil), c.Val...),
	}
}

func (c Component) String() string {
	sb := strings.Builder{}
	c.writeTo(&sb)
	return sb.String()
}

func (c Component) writeTo(sb *strings.Builder) {
	var vf valueFormat = textFormat{}
	if conv, ok := conventionByType[c.Typ]; ok {
		vf = conv.fmt
		sb.WriteString(conv.name)
		sb.WriteByte('=')
	} else if c.Typ != TypeGenericNameComponent {
		sb.WriteString(strconv.FormatUint(uint64(c.Typ), 10))
		sb.WriteByte('=')
	}
	vf.write(c.Val, sb)
}

// EncodingLength is the size of the full component TLV.
func (c Component) EncodingLength() int {
	l := len(c.Val)
	return c.Typ.EncodingLength() + TLNum(l).EncodingLength() + l
}

func (c Component) EncodeInto(buf Buffer) int {
	p1 := c.Typ.EncodeInto(buf)
	p2 := TLNum(len(c.Val)).EncodeInto(buf[p1:])
	copy(buf[p1+p2:], c.Val)
	return p1 + p2 + len(c.Val)
}

func (c Component) Bytes() []byte {
	buf := make([]byte, c.EncodingLength())
	c.EncodeInto(buf)
	return buf
}

// Compare orders components canonically: by type, then value length, then value bytes.
func (c Component) Compare(rhs Component) int {
	if c.Typ != rhs.Typ {
		if c.Typ < rhs.Typ {
			return -1
		}
		return 1
	}
	if len(c.Val) != len(rhs.Val) {
		if len(c.Val) < len(rhs.Val) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.Val, rhs.Val)
}

func (c Component) Equal(rhs Component) bool {
	return c.Typ == rhs.Typ && bytes.Equal(c.Val, rhs.Val)
}

// NumberVal returns the value of the component as a number
func (c Component) NumberVal() uint64 {
	ret := uint64(0)
	for _, v := range c.Val {
		ret = (ret << 8) | uint64(v)
	}
	return ret
}

// Hash returns the xxhash of the component TLV.
func (c Component) Hash() uint64 {
	h := getHasher(c.EncodingLength())
	defer putHasher(h)
	c.EncodeInto(h.buf)
	return h.sum()
}

func ComponentFromStr(s string) (Component, error) {
	ret := Component{Typ: TypeGenericNameComponent}
	var vf valueFormat = textFormat{}

	typStr, valStr, hasEq := strings.Cut(s, "=")
	if !hasEq {
		valStr = s
	} else {
		if strings.Contains(valStr, "=") {
			return Component{}, ErrFormat{"too many '=' in component: " + s}
		}
		if typStr == "" {
			return Component{}, ErrFormat{"missing component type: " + s}
		}
		if IsAlphabet(rune(typStr[0])) {
			conv, ok := conventionByName[typStr]
			if !ok {
				return Component{}, ErrFormat{"unknown component type: " + typStr}
			}
			ret.Typ, vf = conv.typ, conv.fmt
		} else {
			typ, err := strconv.ParseUint(typStr, 10, 64)
			if err != nil || typ == 0 || typ > 0xffff {
				return Component{}, ErrFormat{"invalid component type: " + typStr}
			}
			ret.Typ = TLNum(typ)
		}
	}

	val, err := vf.parse(valStr)
	if err != nil {
		return Component{}, err
	}
	ret.Val = val
	return ret, nil
}

// ComponentFromBytes parses a single component TLV. The result aliases buf.
func ComponentFromBytes(buf []byte) (Component, error) {
	d := NewDecoder(buf)
	return d.ReadComponent()
}
