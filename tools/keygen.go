package tools

import (
	"encoding/hex"
	"os"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/security/key"
	"github.com/JamsawColPH/esp8266ndn/std/utils/toolutils"
	"github.com/spf13/cobra"
)

type KeyGen struct {
	name string
}

func CmdKeyGen() *cobra.Command {
	kg := KeyGen{}

	cmd := &cobra.Command{
		GroupID: "sec",
		Use:     "keygen",
		Short:   "Generate an ECDSA P-256 key pair",
		Long: `Generate an ECDSA P-256 key pair.
The private scalar can be used as key.ec_private in the configuration file.`,
		Args:    cobra.NoArgs,
		Example: `  esp8266ndn keygen --name /my/KEY/1`,
		Run:     kg.run,
	}

	cmd.Flags().StringVar(&kg.name, "name", "", "Key name to print with the key pair")
	return cmd
}

func (kg *KeyGen) String() string {
	return "keygen"
}

func (kg *KeyGen) run(_ *cobra.Command, _ []string) {
	var name enc.Name
	if kg.name != "" {
		var err error
		if name, err = enc.NameFromStr(kg.name); err != nil {
			log.Fatal(kg, "Invalid key name", "name", kg.name)
			return
		}
	}

	priv := key.NewEcPrivateKey(name)
	pub := &key.EcPublicKey{}
	if err := priv.Generate(pub); err != nil {
		log.Fatal(kg, "Unable to generate key", "err", err)
		return
	}

	scalar, _ := priv.Export()
	point, _ := pub.Export()
	spki, err := pub.MarshalPKIX()
	if err != nil {
		log.Fatal(kg, "Unable to encode public key", "err", err)
		return
	}

	p := toolutils.StatusPrinter{File: os.Stdout, Padding: 10}
	if len(name) > 0 {
		p.Print("name", name)
	}
	p.Print("private", hex.EncodeToString(scalar))
	p.Print("public", hex.EncodeToString(point))
	p.Print("spki", hex.EncodeToString(spki))
}
