package tlv_0_2_test

import (
	"testing"
	"time"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	tlv "github.com/JamsawColPH/esp8266ndn/std/ndn/tlv_0_2"
	"github.com/JamsawColPH/esp8266ndn/std/types/optional"
	tu "github.com/JamsawColPH/esp8266ndn/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func newInterest(name string) *ndn.Interest {
	return &ndn.Interest{Name: tu.NoErr(enc.NameFromStr(name))}
}

func TestInterestEncodeBasic(t *testing.T) {
	tu.SetT(t)

	interest := newInterest("/A")
	interest.Nonce = optional.Some[uint32](0x01020304)
	interest.Lifetime = optional.Some(4 * time.Second)

	buf := make([]byte, 64)
	n, region, err := tlv.EncodeInterest(interest, buf)
	require.NoError(t, err)
	require.Equal(t, tu.Hex("050f 0703080141 0a0401020304 0c020fa0"), buf[:n])
	require.Equal(t, ndn.SignedRegion{Start: 4, End: 4}, region)

	interest.MustBeFresh = true
	n, _, err = tlv.EncodeInterest(interest, buf)
	require.NoError(t, err)
	require.Equal(t, tu.Hex("0513 0703080141 09021200 0a0401020304 0c020fa0"), buf[:n])
}

func TestInterestRandomNonce(t *testing.T) {
	tu.SetT(t)

	interest := newInterest("/A")
	buf := make([]byte, 64)
	n, _, err := tlv.EncodeInterest(interest, buf)
	require.NoError(t, err)
	require.True(t, interest.Nonce.IsSet())

	var decoded ndn.Interest
	tu.NoErr(tlv.DecodeInterest(buf[:n], &decoded))
	require.Equal(t, interest.Nonce, decoded.Nonce)
}

func TestInterestRoundTrip(t *testing.T) {
	tu.SetT(t)

	interest := newInterest("/ping/example/seq")
	interest.MinSuffixComponents = optional.Some[uint64](1)
	interest.MaxSuffixComponents = optional.Some[uint64](3)
	interest.PublisherKeyLocator = ndn.KeyLocator{Type: ndn.TypeKeyDigest, Digest: []byte{0xaa, 0xbb}}
	interest.Exclude = ndn.Exclude{
		{Any: true},
		{Component: enc.NewGenericComponent("b")},
		{Component: enc.NewGenericComponent("d")},
		{Any: true},
	}
	interest.ChildSelector = optional.Some[uint64](1)
	interest.MustBeFresh = true
	interest.Nonce = optional.Some[uint32](0xdeadbeef)
	interest.Lifetime = optional.Some(1500 * time.Millisecond)
	interest.CanBePrefix = true
	interest.HopLimit = optional.Some[uint8](7)
	interest.AppParams = []byte("params")

	buf := make([]byte, 256)
	n, region, err := tlv.EncodeInterest(interest, buf)
	require.NoError(t, err)

	decoded := ndn.Interest{
		Name:    make(enc.Name, 0, 4),
		Exclude: make(ndn.Exclude, 0, 4),
	}
	region2, err := tlv.DecodeInterest(buf[:n], &decoded)
	require.NoError(t, err)
	require.Equal(t, region, region2)

	require.True(t, interest.Name.Equal(decoded.Name))
	require.Equal(t, interest.MinSuffixComponents, decoded.MinSuffixComponents)
	require.Equal(t, interest.MaxSuffixComponents, decoded.MaxSuffixComponents)
	require.Equal(t, ndn.TypeKeyDigest, decoded.PublisherKeyLocator.Type)
	require.Equal(t, []byte{0xaa, 0xbb}, decoded.PublisherKeyLocator.Digest)
	require.Len(t, decoded.Exclude, 4)
	require.True(t, decoded.Exclude[0].Any)
	require.Equal(t, "b", decoded.Exclude[1].Component.String())
	require.True(t, decoded.Exclude[3].Any)
	require.Equal(t, interest.ChildSelector, decoded.ChildSelector)
	require.True(t, decoded.MustBeFresh)
	require.Equal(t, interest.Nonce, decoded.Nonce)
	require.Equal(t, interest.Lifetime, decoded.Lifetime)
	require.True(t, decoded.CanBePrefix)
	require.Equal(t, interest.HopLimit, decoded.HopLimit)
	require.Equal(t, []byte("params"), decoded.AppParams)

	// the region covers /ping/example, without the last component
	covered := region.Of(buf[:n])
	require.Equal(t, append(enc.NewGenericComponent("ping").Bytes(),
		enc.NewGenericComponent("example").Bytes()...), covered)
}

func TestInterestDecodeErrors(t *testing.T) {
	tu.SetT(t)
	var interest ndn.Interest

	// not an Interest
	_, err := tlv.DecodeInterest(tu.Hex("0600"), &interest)
	require.ErrorIs(t, err, ndn.ErrWrongType)

	// missing Name
	_, err = tlv.DecodeInterest(tu.Hex("0506 0a0401020304"), &interest)
	require.Equal(t, enc.ErrSkipRequired{Name: "Name", TypeNum: ndn.TypeName}, err)

	// truncated outer element
	_, err = tlv.DecodeInterest(tu.Hex("0510 0703080141"), &interest)
	require.ErrorIs(t, err, enc.ErrBufferOverflow)

	// inner length overruns the outer element
	_, err = tlv.DecodeInterest(tu.Hex("0505 0709080141"), &interest)
	require.ErrorIs(t, err, enc.ErrBufferOverflow)

	// unknown critical element
	_, err = tlv.DecodeInterest(tu.Hex("0507 0703080141 0b00"), &interest)
	require.Equal(t, enc.ErrUnrecognizedField{TypeNum: 0x0b}, err)

	// unknown non-critical element is skipped, trailing bytes are ignored
	_, err = tlv.DecodeInterest(tu.Hex("0509 0703080141 fd03e800 ffff"), &interest)
	require.NoError(t, err)
	require.Equal(t, "/A", interest.Name.String())

	// too many name components for the supplied storage
	interest.Name = make(enc.Name, 0, 1)
	_, err = tlv.DecodeInterest(tu.Hex("0508 0706080141080142"), &interest)
	require.Equal(t, enc.ErrCapacity{Item: "name components", Max: 1}, err)

	// too many exclude entries for the supplied storage
	interest.Name = nil
	interest.Exclude = make(ndn.Exclude, 0, 2)
	_, err = tlv.DecodeInterest(tu.Hex("0512 0703080141 090b 1009 080161 080162 080163"), &interest)
	require.Equal(t, enc.ErrCapacity{Item: "exclude entries", Max: 2}, err)

	interest.Exclude = make(ndn.Exclude, 0, 3)
	_, err = tlv.DecodeInterest(tu.Hex("0512 0703080141 090b 1009 080161 080162 080163"), &interest)
	require.NoError(t, err)
	require.Len(t, interest.Exclude, 3)
}

func TestDataRoundTrip(t *testing.T) {
	tu.SetT(t)

	data := ndn.Data{
		Name:    tu.NoErr(enc.NameFromStr("/A/B")),
		Content: []byte("hello"),
	}
	data.MetaInfo.ContentType = optional.Some(ndn.ContentTypeBlob)
	data.MetaInfo.Freshness = optional.Some(time.Second)
	data.MetaInfo.FinalBlockID = optional.Some(enc.NewSegmentComponent(9))
	data.SignatureInfo.Type = ndn.SignatureHmacWithSha256
	data.SignatureInfo.KeyLocator.SetName(tu.NoErr(enc.NameFromStr("/key")))
	data.SignatureValue = make([]byte, 32)

	buf := make([]byte, 256)
	n, region, err := tlv.EncodeData(&data, buf)
	require.NoError(t, err)
	// Data TL is two octets, Name starts right after
	require.Equal(t, 2, region.Start)
	require.Equal(t, n-2-32, region.End)

	decoded := ndn.Data{
		Name: make(enc.Name, 0, 2),
		SignatureInfo: ndn.SignatureInfo{
			KeyLocator: ndn.KeyLocator{Name: make(enc.Name, 0, 1)},
		},
	}
	region2, err := tlv.DecodeData(buf[:n], &decoded)
	require.NoError(t, err)
	require.Equal(t, region, region2)
	require.Equal(t, "/A/B", decoded.Name.String())
	require.Equal(t, data.MetaInfo, decoded.MetaInfo)
	require.Equal(t, []byte("hello"), decoded.Content)
	require.Equal(t, ndn.SignatureHmacWithSha256, decoded.SignatureInfo.Type)
	require.Equal(t, "/key", decoded.SignatureInfo.KeyLocator.Name.String())
	require.Equal(t, data.SignatureValue, decoded.SignatureValue)
	require.True(t, decoded.IsSigned())
}

func TestDataEncodeTooSmall(t *testing.T) {
	tu.SetT(t)

	data := ndn.Data{Name: tu.NoErr(enc.NameFromStr("/A"))}
	buf := make([]byte, 256)
	n, _, err := tlv.EncodeData(&data, buf)
	require.NoError(t, err)

	small := make([]byte, n-1)
	n2, _, err := tlv.EncodeData(&data, small)
	require.ErrorIs(t, err, enc.ErrBufferTooSmall)
	require.Equal(t, 0, n2)
	require.Equal(t, make([]byte, n-1), small)
}

func TestDataDecodeRequired(t *testing.T) {
	tu.SetT(t)
	var data ndn.Data

	_, err := tlv.DecodeData(tu.Hex("060a 0703080141 1403 180100"), &data)
	require.Equal(t, enc.ErrSkipRequired{Name: "SignatureInfo", TypeNum: ndn.TypeSignatureInfo}, err)

	_, err = tlv.DecodeData(tu.Hex("060a 0703080141 1603 1b0100"), &data)
	require.Equal(t, enc.ErrSkipRequired{Name: "SignatureValue", TypeNum: ndn.TypeSignatureValue}, err)

	_, err = tlv.DecodeData(tu.Hex("060b 0703080141 1602 1c00 1700"), &data)
	require.Equal(t, enc.ErrSkipRequired{Name: "SignatureType", TypeNum: ndn.TypeSignatureType}, err)

	region, err := tlv.DecodeData(tu.Hex("060c 0703080141 1603 1b0100 1700"), &data)
	require.NoError(t, err)
	require.False(t, data.IsSigned())
	require.Equal(t, ndn.SignedRegion{Start: 2, End: 12}, region)
}

func TestCertificateDecode(t *testing.T) {
	tu.SetT(t)
	cert := tu.Hex(certificateHex)
	require.Len(t, cert, 533)

	data := ndn.Data{
		Name: make(enc.Name, 0, 5),
		SignatureInfo: ndn.SignatureInfo{
			KeyLocator: ndn.KeyLocator{Name: make(enc.Name, 0, 3)},
		},
	}
	region, err := tlv.DecodeData(cert, &data)
	require.NoError(t, err)
	require.Equal(t, ndn.SignedRegion{Start: 4, End: 460}, region)

	require.Len(t, data.Name, 5)
	require.Equal(t, "/A/KEY", data.Name.Prefix(2).String())
	require.Equal(t, optional.Some(ndn.ContentTypeKey), data.MetaInfo.ContentType)
	require.Equal(t, optional.Some(time.Hour), data.MetaInfo.Freshness)
	require.Len(t, data.Content, 335)
	require.Equal(t, ndn.SignatureSha256WithEcdsa, data.SignatureInfo.Type)
	require.Equal(t, ndn.TypeName, data.SignatureInfo.KeyLocator.Type)
	require.True(t, data.SignatureInfo.KeyLocator.Name.Equal(data.Name.Prefix(3)))
	require.Len(t, data.SignatureValue, 0x47)

	vp, ok := data.SignatureInfo.Validity.Get()
	require.True(t, ok)
	require.Equal(t, ndn.ValidityPeriod{NotBefore: "19700101T000000", NotAfter: "20381023T230100"}, vp)
	require.True(t, vp.Contains(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))

	small := ndn.Data{
		Name: make(enc.Name, 0, 4),
		SignatureInfo: ndn.SignatureInfo{
			KeyLocator: ndn.KeyLocator{Name: make(enc.Name, 0, 3)},
		},
	}
	_, err = tlv.DecodeData(cert, &small)
	require.Equal(t, enc.ErrCapacity{Item: "name components", Max: 4}, err)

	small.Name = make(enc.Name, 0, 5)
	small.SignatureInfo.KeyLocator.Name = make(enc.Name, 0, 2)
	_, err = tlv.DecodeData(cert, &small)
	require.Equal(t, enc.ErrCapacity{Item: "key locator name components", Max: 2}, err)

	// re-encoding yields the same octets
	buf := make([]byte, 600)
	n, region2, err := tlv.EncodeData(&data, buf)
	require.NoError(t, err)
	require.Equal(t, cert, buf[:n])
	require.Equal(t, region, region2)
}
