package encoding

import (
	"strconv"
	"strings"
)

// valueFormat renders and parses the value part of a component URI.
type valueFormat interface {
	write(val []byte, sb *strings.Builder)
	parse(s string) ([]byte, error)
}

type textFormat struct{}
type decimalFormat struct{}
type hexFormat struct{}

const upperHex = "0123456789ABCDEF"
const lowerHex = "0123456789abcdef"

func (textFormat) write(val []byte, sb *strings.Builder) {
	for _, b := range val {
		if isUnreserved(b) {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[b>>4])
		sb.WriteByte(upperHex[b&0x0f])
	}
}

func (textFormat) parse(s string) ([]byte, error) {
	if !strings.ContainsAny(s, "%=/\\") {
		return []byte(s), nil
	}

	val := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '%' && i+2 < len(s):
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, ErrFormat{"invalid component value: " + s}
			}
			val = append(val, byte(v))
			i += 3
		case c == '%' || c == '=' || c == '/' || c == '\\':
			return nil, ErrFormat{"invalid component value: " + s}
		default:
			// other characters are accepted verbatim
			val = append(val, c)
			i++
		}
	}
	return val, nil
}

func (decimalFormat) write(val []byte, sb *strings.Builder) {
	x := uint64(0)
	for _, b := range val {
		x = (x << 8) | uint64(b)
	}
	sb.WriteString(strconv.FormatUint(x, 10))
}

func (decimalFormat) parse(s string) ([]byte, error) {
	x, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, ErrFormat{"invalid decimal component value: " + s}
	}
	return Nat(x).Bytes(), nil
}

func (hexFormat) write(val []byte, sb *strings.Builder) {
	for _, b := range val {
		sb.WriteByte(lowerHex[b>>4])
		sb.WriteByte(lowerHex[b&0x0f])
	}
}

func (hexFormat) parse(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, ErrFormat{"invalid hexadecimal component value: " + s}
	}
	val := make([]byte, len(s)/2)
	for i := range val {
		b, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, ErrFormat{"invalid hexadecimal component value: " + s}
		}
		val[i] = byte(b)
	}
	return val, nil
}

type convention struct {
	typ  TLNum
	name string
	fmt  valueFormat
}

var conventions = []convention{
	{TypeImplicitSha256DigestComponent, "sha256digest", hexFormat{}},
	{TypeParametersSha256DigestComponent, "params-sha256", hexFormat{}},
	{TypeSegmentNameComponent, "seg", decimalFormat{}},
	{TypeByteOffsetNameComponent, "off", decimalFormat{}},
	{TypeVersionNameComponent, "v", decimalFormat{}},
	{TypeTimestampNameComponent, "t", decimalFormat{}},
	{TypeSequenceNumNameComponent, "seq", decimalFormat{}},
}

var (
	conventionByType map[TLNum]*convention
	conventionByName map[string]*convention
)

func initConventions() {
	conventionByType = make(map[TLNum]*convention, len(conventions))
	conventionByName = make(map[string]*convention, len(conventions))
	for i := range conventions {
		c := &conventions[i]
		conventionByType[c.typ] = c
		conventionByName[c.name] = c
	}
}

func isUnreserved(b byte) bool {
	return IsAlphabet(rune(b)) || ('0' <= b && b <= '9') || b == '-' || b == '_' || b == '.' || b == '~'
}
