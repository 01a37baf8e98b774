package ndn_test

import (
	"testing"
	"time"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/stretchr/testify/require"
)

func TestExcludeMatches(t *testing.T) {
	b := enc.NewGenericComponent("b")
	d := enc.NewGenericComponent("d")
	comp := func(s string) enc.Component { return enc.NewGenericComponent(s) }

	x := ndn.Exclude{{Component: b}, {Component: d}}
	require.True(t, x.Matches(comp("b")))
	require.False(t, x.Matches(comp("c")))
	require.False(t, x.Matches(comp("e")))

	x = ndn.Exclude{{Any: true}, {Component: b}}
	require.True(t, x.Matches(comp("a")))
	require.True(t, x.Matches(comp("b")))
	require.False(t, x.Matches(comp("c")))

	x = ndn.Exclude{{Component: b}, {Any: true}, {Component: d}}
	require.True(t, x.Matches(comp("c")))
	require.False(t, x.Matches(comp("a")))
	require.False(t, x.Matches(comp("e")))

	x = ndn.Exclude{{Component: d}, {Any: true}}
	require.True(t, x.Matches(comp("zz")))
	require.False(t, ndn.Exclude{}.Matches(comp("a")))
}

func TestValidityPeriod(t *testing.T) {
	vp := ndn.ValidityPeriod{NotBefore: "20200101T000000", NotAfter: "20201231T235959"}
	nb, na, err := vp.Times()
	require.NoError(t, err)
	require.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), nb)
	require.Equal(t, time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC), na)
	require.True(t, vp.Contains(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, vp.Contains(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, ndn.ValidityPeriod{NotBefore: "bad"}.Contains(nb))
}

func TestInterestReset(t *testing.T) {
	interest := ndn.Interest{
		Name:        make(enc.Name, 1, 4),
		MustBeFresh: true,
		AppParams:   []byte{1},
	}
	interest.Reset()
	require.Len(t, interest.Name, 0)
	require.Equal(t, 4, cap(interest.Name))
	require.False(t, interest.MustBeFresh)
	require.Nil(t, interest.AppParams)
	require.Equal(t, 4*time.Second, interest.LifetimeOr())
}

func TestEnumString(t *testing.T) {
	require.Equal(t, "NoRoute", ndn.NackReasonNoRoute.String())
	require.Equal(t, "Unknown", ndn.NackReason(7).String())
	require.Equal(t, "Sha256WithEcdsa", ndn.SignatureSha256WithEcdsa.String())
}
