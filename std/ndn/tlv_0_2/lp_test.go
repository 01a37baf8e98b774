package tlv_0_2_test

import (
	"testing"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	tlv "github.com/JamsawColPH/esp8266ndn/std/ndn/tlv_0_2"
	"github.com/JamsawColPH/esp8266ndn/std/types/optional"
	tu "github.com/JamsawColPH/esp8266ndn/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestNackRoundTrip(t *testing.T) {
	tu.SetT(t)

	interest := newInterest("/A")
	interest.Nonce = optional.Some[uint32](0x01020304)
	nack := ndn.NetworkNack{Reason: ndn.NackReasonNoRoute}

	buf := make([]byte, 64)
	n, err := tlv.EncodeNack(&nack, interest, buf)
	require.NoError(t, err)
	require.Equal(t, tu.Hex("6418 fd032005 fd03210196 500d 050b 0703080141 0a0401020304"), buf[:n])

	var lp ndn.LpPacket
	require.NoError(t, tlv.DecodeLpPacket(buf[:n], &lp))
	require.Equal(t, optional.Some(nack), lp.Nack)

	var decoded ndn.Interest
	tu.NoErr(tlv.DecodeInterest(lp.Fragment, &decoded))
	require.Equal(t, "/A", decoded.Name.String())
	require.Equal(t, interest.Nonce, decoded.Nonce)

	_, err = tlv.EncodeNack(&nack, newInterest("/A"), buf)
	require.Equal(t, enc.ErrSkipRequired{Name: "Nonce", TypeNum: ndn.TypeNonce}, err)
}

func TestLpPacketDecode(t *testing.T) {
	tu.SetT(t)
	var lp ndn.LpPacket

	// plain fragment with a sequence number and an ignorable header
	require.NoError(t, tlv.DecodeLpPacket(tu.Hex("640f 5101 07 fd03480100 5005 0703080141"), &lp))
	require.Equal(t, optional.Some[uint64](7), lp.Sequence)
	require.False(t, lp.Nack.IsSet())
	require.Equal(t, tu.Hex("0703080141"), []byte(lp.Fragment))

	// Nack without a reason
	require.NoError(t, tlv.DecodeLpPacket(tu.Hex("6406 fd032000 5000"), &lp))
	require.Equal(t, optional.Some(ndn.NetworkNack{Reason: ndn.NackReasonNone}), lp.Nack)

	// critical unknown header
	err := tlv.DecodeLpPacket(tu.Hex("6405 fd03490100"), &lp)
	require.Equal(t, enc.ErrUnrecognizedField{TypeNum: 0x0349}, err)

	// fragmented
	err = tlv.DecodeLpPacket(tu.Hex("6408 520100 530102 5000"), &lp)
	require.ErrorIs(t, err, ndn.ErrFragmented)

	err = tlv.DecodeLpPacket(tu.Hex("0500"), &lp)
	require.ErrorIs(t, err, ndn.ErrWrongType)
}
