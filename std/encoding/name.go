package encoding

import (
	"strings"
)

// TypeName is the TLV type of a Name.
const TypeName TLNum = 0x07

// SequenceNumMarker prefixes a sequence number carried in a GENERIC component.
const SequenceNumMarker = 0xfe

// Name is an ordered list of components.
//
// When a Name is used as a decode target, its capacity bounds the number of
// components the decoder may store. A nil Name is unbounded.
type Name []Component

func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	sb := strings.Builder{}
	for _, c := range n {
		sb.WriteByte('/')
		c.writeTo(&sb)
	}
	return sb.String()
}

// EncodingLength is the length of the Name value, excluding its own TL.
func (n Name) EncodingLength() int {
	l := 0
	for _, c := range n {
		l += c.EncodingLength()
	}
	return l
}

// EncodeInto writes the Name value (components only).
func (n Name) EncodeInto(buf Buffer) int {
	pos := 0
	for _, c := range n {
		pos += c.EncodeInto(buf[pos:])
	}
	return pos
}

// Bytes returns the full Name TLV.
func (n Name) Bytes() []byte {
	l := n.EncodingLength()
	buf := make([]byte, TypeName.EncodingLength()+TLNum(l).EncodingLength()+l)
	p1 := TypeName.EncodeInto(buf)
	p2 := TLNum(l).EncodeInto(buf[p1:])
	n.EncodeInto(buf[p1+p2:])
	return buf
}

// At returns the component at index i; negative i counts from the end.
// Out of range yields the zero Component.
func (n Name) At(i int) Component {
	if i < 0 {
		i = len(n) + i
	}
	if i < 0 || i >= len(n) {
		return Component{}
	}
	return n[i]
}

// Prefix returns the first i components; negative i drops components from the end.
func (n Name) Prefix(i int) Name {
	if i < 0 {
		i = len(n) + i
	}
	if i <= 0 {
		return Name{}
	}
	if i >= len(n) {
		return n
	}
	return n[:i]
}

// Append returns a new Name with rest appended. The receiver is never modified.
func (n Name) Append(rest ...Component) Name {
	ret := make(Name, len(n)+len(rest))
	copy(ret, n)
	copy(ret[len(n):], rest)
	return ret
}

func (n Name) Clone() Name {
	if n == nil {
		return nil
	}
	ret := make(Name, len(n))
	for i, c := range n {
		ret[i] = c.Clone()
	}
	return ret
}

func (n Name) Equal(rhs Name) bool {
	if len(n) != len(rhs) {
		return false
	}
	for i := range n {
		if !n[i].Equal(rhs[i]) {
			return false
		}
	}
	return true
}

// Compare orders names canonically; a proper prefix sorts first.
func (n Name) Compare(rhs Name) int {
	for i := 0; i < min(len(n), len(rhs)); i++ {
		if ret := n[i].Compare(rhs[i]); ret != 0 {
			return ret
		}
	}
	switch {
	case len(n) < len(rhs):
		return -1
	case len(n) > len(rhs):
		return 1
	default:
		return 0
	}
}

// IsPrefix reports whether n is a prefix of rhs (or equal to it).
func (n Name) IsPrefix(rhs Name) bool {
	if len(n) > len(rhs) {
		return false
	}
	for i := range n {
		if !n[i].Equal(rhs[i]) {
			return false
		}
	}
	return true
}

// Hash returns the xxhash of the Name value.
func (n Name) Hash() uint64 {
	h := getHasher(n.EncodingLength())
	defer putHasher(h)
	n.EncodeInto(h.buf)
	return h.sum()
}

// LastSequenceNumber decodes the last component as a sequence number.
func (n Name) LastSequenceNumber() (uint64, bool) {
	if len(n) == 0 {
		return 0, false
	}
	return n[len(n)-1].ToSequenceNumber()
}

// AppendSequenceNumber returns a new Name with a marker-form sequence number appended.
func (n Name) AppendSequenceNumber(seq uint64) Name {
	return n.Append(NewMarkerSequenceComponent(seq))
}

// IsSequenceNumber reports whether c follows either sequence number convention.
func (c Component) IsSequenceNumber() bool {
	_, ok := c.ToSequenceNumber()
	return ok
}

func (c Component) ToSequenceNumber() (uint64, bool) {
	switch c.Typ {
	case TypeSequenceNumNameComponent:
		v, err := ParseNat(c.Val)
		return uint64(v), err == nil
	case TypeGenericNameComponent:
		if len(c.Val) < 2 || c.Val[0] != SequenceNumMarker {
			return 0, false
		}
		v, err := ParseNat(c.Val[1:])
		return uint64(v), err == nil
	default:
		return 0, false
	}
}

// NameFromStr parses an NDN URI. A single leading and trailing slash are ignored;
// other empty segments are empty components.
func NameFromStr(s string) (Name, error) {
	strs := strings.Split(s, "/")
	if strs[0] == "" {
		strs = strs[1:]
	}
	if len(strs) > 0 && strs[len(strs)-1] == "" {
		strs = strs[:len(strs)-1]
	}
	ret := make(Name, len(strs))
	for i, str := range strs {
		c, err := ComponentFromStr(str)
		if err != nil {
			return nil, err
		}
		ret[i] = c
	}
	return ret, nil
}

// NameFromBytes parses a full Name TLV. The result aliases buf.
func NameFromBytes(buf []byte) (Name, error) {
	d := NewDecoder(buf)
	typ, l, err := d.ReadTL()
	if err != nil {
		return nil, err
	}
	if typ != TypeName {
		return nil, ErrFormat{"not a Name TLV"}
	}
	var ret Name
	if _, err := d.ReadNameValue(l, &ret, "name components"); err != nil {
		return nil, err
	}
	return ret, nil
}
