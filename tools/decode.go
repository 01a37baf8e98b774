package tools

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/JamsawColPH/esp8266ndn/std/ndn/tlv_0_2"
	"github.com/JamsawColPH/esp8266ndn/std/security/key"
	"github.com/JamsawColPH/esp8266ndn/std/utils"
	"github.com/JamsawColPH/esp8266ndn/std/utils/toolutils"
	"github.com/spf13/cobra"
)

type Decode struct{}

func CmdDecode() *cobra.Command {
	d := Decode{}
	return &cobra.Command{
		GroupID: "tools",
		Use:     "decode HEX",
		Short:   "Decode an Interest, Data or Nack packet",
		Long: `Decode a hex encoded NDN packet and print its fields.
Whitespace in HEX is ignored; use - to read from the standard input.`,
		Args:    cobra.ExactArgs(1),
		Example: `  esp8266ndn decode 050f0703080141 0a0401020304 0c020fa0`,
		Run:     d.run,
	}
}

func (d *Decode) String() string {
	return "decode"
}

func (d *Decode) run(_ *cobra.Command, args []string) {
	input := args[0]
	if input == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(d, "Unable to read input", "err", err)
			return
		}
		input = string(b)
	}

	wire, err := hex.DecodeString(strings.Join(strings.Fields(input), ""))
	if err != nil || len(wire) == 0 {
		log.Fatal(d, "Invalid hex input", "err", err)
		return
	}

	if err = DecodePacket(os.Stdout, wire); err != nil {
		log.Fatal(d, "Unable to decode packet", "err", err)
	}
}

// DecodePacket prints the fields of an encoded packet.
func DecodePacket(w io.Writer, wire []byte) error {
	p := toolutils.StatusPrinter{File: w, Padding: 16}

	switch enc.TLNum(wire[0]) {
	case ndn.TypeInterest:
		var interest ndn.Interest
		region, err := tlv_0_2.DecodeInterest(wire, &interest)
		if err != nil {
			return err
		}
		p.Print("type", "Interest")
		printInterest(p, &interest)
		p.Print("signed-region", fmt.Sprintf("[%d,%d)", region.Start, region.End))

	case ndn.TypeData:
		var data ndn.Data
		region, err := tlv_0_2.DecodeData(wire, &data)
		if err != nil {
			return err
		}
		p.Print("type", "Data")
		printData(p, &data)
		p.Print("signed-region", fmt.Sprintf("[%d,%d)", region.Start, region.End))

		if data.MetaInfo.ContentType.GetOr(ndn.ContentTypeBlob) == ndn.ContentTypeKey {
			pub := &key.EcPublicKey{}
			if err := pub.ImportCert(&data); err != nil {
				p.Print("certificate", err)
			} else {
				p.Print("self-signed", pub.Verify(region.Of(wire), data.SignatureValue))
			}
		}

	case ndn.TypeLpPacket:
		var lp ndn.LpPacket
		if err := tlv_0_2.DecodeLpPacket(wire, &lp); err != nil {
			return err
		}
		nack, isNack := lp.Nack.Get()
		if !isNack {
			p.Print("type", "LpPacket")
			if len(lp.Fragment) == 0 {
				return nil
			}
			return DecodePacket(w, lp.Fragment)
		}

		var interest ndn.Interest
		if _, err := tlv_0_2.DecodeInterest(lp.Fragment, &interest); err != nil {
			return err
		}
		p.Print("type", "Nack")
		p.Print("reason", fmt.Sprintf("%s (%d)", nack.Reason, nack.Reason))
		printInterest(p, &interest)

	default:
		return fmt.Errorf("unknown packet type 0x%02x", wire[0])
	}
	return nil
}

func printInterest(p toolutils.StatusPrinter, interest *ndn.Interest) {
	p.Print("name", interest.Name)
	p.Print("can-be-prefix", interest.CanBePrefix)
	p.Print("must-be-fresh", interest.MustBeFresh)
	if nonce, ok := interest.Nonce.Get(); ok {
		p.Print("nonce", fmt.Sprintf("%08x", nonce))
	}
	p.Print("lifetime", interest.LifetimeOr())
	if hop, ok := interest.HopLimit.Get(); ok {
		p.Print("hop-limit", hop)
	}
	if len(interest.Exclude) > 0 {
		p.Print("exclude", len(interest.Exclude))
	}
	if len(interest.AppParams) > 0 {
		p.Print("app-params", len(interest.AppParams))
	}
}

func printData(p toolutils.StatusPrinter, data *ndn.Data) {
	p.Print("name", data.Name)
	p.Print("content-type", data.MetaInfo.ContentType.GetOr(ndn.ContentTypeBlob))
	if fresh, ok := data.MetaInfo.Freshness.Get(); ok {
		p.Print("freshness", fresh)
	}
	if fbid, ok := data.MetaInfo.FinalBlockID.Get(); ok {
		p.Print("final-block-id", fbid)
	}
	p.Print("content", len(data.Content))
	p.Print("sig-type", data.SignatureInfo.Type)

	kl := &data.SignatureInfo.KeyLocator
	switch kl.Type {
	case ndn.TypeName:
		p.Print("key-locator", kl.Name)
	case ndn.TypeKeyDigest:
		p.Print("key-digest", hex.EncodeToString(kl.Digest))
	}
	if v, ok := data.SignatureInfo.Validity.Get(); ok {
		p.Print("not-before", v.NotBefore)
		p.Print("not-after", v.NotAfter)
	}
	p.Print("sig-value", utils.If(data.IsSigned(), hex.EncodeToString(data.SignatureValue), "(unsigned)"))
}
