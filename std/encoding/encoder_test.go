package encoding_test

import (
	"testing"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	tu "github.com/JamsawColPH/esp8266ndn/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestTLNumEncoding(t *testing.T) {
	tu.SetT(t)

	cases := []struct {
		v    enc.TLNum
		wire []byte
	}{
		{0x00, []byte{0x00}},
		{0xfc, []byte{0xfc}},
		{0xfd, []byte{0xfd, 0x00, 0xfd}},
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		{0x10000, []byte{0xfe, 0x00, 0x01, 0x00, 0x00}},
		{0x100000000, []byte{0xff, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, c := range cases {
		buf := make([]byte, c.v.EncodingLength())
		require.Equal(t, len(c.wire), c.v.EncodeInto(buf))
		require.Equal(t, c.wire, buf)
		v, n, err := enc.ParseTLNum(c.wire)
		require.NoError(t, err)
		require.Equal(t, c.v, v)
		require.Equal(t, len(c.wire), n)
	}

	_, _, err := enc.ParseTLNum([]byte{0xfe, 0x00, 0x01})
	require.ErrorIs(t, err, enc.ErrBufferOverflow)
	_, _, err = enc.ParseTLNum(nil)
	require.ErrorIs(t, err, enc.ErrBufferOverflow)
}

func TestNatEncoding(t *testing.T) {
	tu.SetT(t)

	require.Equal(t, []byte{0x00}, enc.Nat(0).Bytes())
	require.Equal(t, []byte{0x01, 0x00}, enc.Nat(0x100).Bytes())
	require.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, enc.Nat(0x10000).Bytes())
	require.Equal(t, 8, enc.Nat(1<<32).EncodingLength())

	require.Equal(t, enc.Nat(0x36ee80), tu.NoErr(enc.ParseNat([]byte{0x00, 0x36, 0xee, 0x80})))
	err := tu.Err(enc.ParseNat([]byte{0x01, 0x02, 0x03}))
	require.IsType(t, enc.ErrFormat{}, err)
}

func TestCriticalType(t *testing.T) {
	require.True(t, enc.TLNum(0x07).IsCritical())
	require.True(t, enc.TLNum(31).IsCritical())
	require.False(t, enc.TLNum(32).IsCritical())
	require.True(t, enc.TLNum(33).IsCritical())
	require.False(t, enc.TLNum(0xfd0322).IsCritical())
}

func TestEncoderNested(t *testing.T) {
	tu.SetT(t)

	body := func(e *enc.Encoder) {
		e.Nested(0x05, func(e *enc.Encoder) {
			e.PutName(enc.TypeName, tu.NoErr(enc.NameFromStr("/a")))
			e.Nested(0x09, func(e *enc.Encoder) {
				e.PutNat(0x0d, 1)
			})
			e.PutTLV(0x0a, []byte{1, 2, 3, 4})
		})
	}
	want := []byte{
		0x05, 0x10,
		0x07, 0x03, 0x08, 0x01, 'a',
		0x09, 0x03, 0x0d, 0x01, 0x01,
		0x0a, 0x04, 0x01, 0x02, 0x03, 0x04,
	}
	require.Equal(t, len(want), enc.Measure(body))

	out := make([]byte, 64)
	n, err := enc.EncodeInto(out, body)
	require.NoError(t, err)
	require.Equal(t, want, out[:n])

	small := make([]byte, len(want)-1)
	for i := range small {
		small[i] = 0xaa
	}
	n, err = enc.EncodeInto(small, body)
	require.ErrorIs(t, err, enc.ErrBufferTooSmall)
	require.Equal(t, 0, n)
	for _, b := range small {
		require.Equal(t, byte(0xaa), b)
	}
}

func TestDecoder(t *testing.T) {
	tu.SetT(t)

	wire := []byte{
		0x05, 0x0c,
		0x07, 0x06, 0x08, 0x01, 'a', 0x08, 0x01, 'b',
		0x0a, 0x02, 0x01, 0x02,
		0xee, // trailing byte
	}
	d := enc.NewDecoder(wire)
	typ, l, err := d.ReadTL()
	require.NoError(t, err)
	require.Equal(t, enc.TLNum(0x05), typ)
	require.Equal(t, 12, l)

	inner := d.Enter(l)
	require.Equal(t, 2, inner.Offset())
	typ, l, err = inner.ReadTL()
	require.NoError(t, err)
	require.Equal(t, enc.TypeName, typ)

	name := make(enc.Name, 0, 1)
	_, err = inner.ReadNameValue(l, &name, "name components")
	require.Equal(t, enc.ErrCapacity{Item: "name components", Max: 1}, err)

	inner = enc.NewDecoder(wire[2:14])
	_, l, _ = inner.ReadTL()
	name = make(enc.Name, 0, 2)
	last, err := inner.ReadNameValue(l, &name, "name components")
	require.NoError(t, err)
	require.Equal(t, "/a/b", name.String())
	require.Equal(t, 5, last)

	typ, val, err := inner.ReadTLV()
	require.NoError(t, err)
	require.Equal(t, enc.TLNum(0x0a), typ)
	require.Equal(t, []byte{1, 2}, []byte(val))
	require.True(t, inner.EOF())
	require.Equal(t, 1, d.Remaining())

	bad := enc.NewDecoder([]byte{0x07, 0x05, 0x08, 0x01})
	_, _, err = bad.ReadTL()
	require.ErrorIs(t, err, enc.ErrBufferOverflow)

	skip := enc.NewDecoder([]byte{0x20, 0x00})
	typ, l, _ = skip.ReadTL()
	require.NoError(t, skip.SkipUnknown(typ, l))
	crit := enc.NewDecoder([]byte{0x21, 0x00})
	typ, l, _ = crit.ReadTL()
	require.Equal(t, enc.ErrUnrecognizedField{TypeNum: 0x21}, crit.SkipUnknown(typ, l))
}

func TestIsDecodeError(t *testing.T) {
	require.True(t, enc.IsDecodeError(enc.ErrBufferOverflow))
	require.True(t, enc.IsDecodeError(enc.ErrCapacity{Item: "x", Max: 1}))
	require.True(t, enc.IsDecodeError(enc.ErrSkipRequired{Name: "Name", TypeNum: 7}))
	require.False(t, enc.IsDecodeError(enc.ErrBufferTooSmall))
	require.False(t, enc.IsDecodeError(nil))
}
