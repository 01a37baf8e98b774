package tools

import (
	"fmt"

	"github.com/JamsawColPH/esp8266ndn/std/app/ping"
	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/spf13/cobra"
)

type PingServer struct {
	name    enc.Name
	payload string
	server  *ping.Server
}

func CmdPingServer() *cobra.Command {
	ps := PingServer{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "pingserver PREFIX",
		Short:   "Start a ping server under a name prefix",
		Args:    cobra.ExactArgs(1),
		Example: `  esp8266ndn pingserver /my/prefix`,
		Run:     ps.run,
	}

	cmd.Flags().StringVar(&ps.payload, "payload", "", "Content of every reply")
	return cmd
}

func (ps *PingServer) String() string {
	return "ping-server"
}

func (ps *PingServer) run(_ *cobra.Command, args []string) {
	name, err := enc.NameFromStr(args[0])
	if err != nil {
		log.Fatal(ps, "Invalid prefix", "name", args[0])
		return
	}
	ps.name = name.Append(enc.NewGenericComponent("ping"))

	rt := startRuntime(ps)
	defer rt.close()

	signer, err := rt.cfg.SigningKey()
	if err != nil {
		log.Fatal(ps, "Unable to load signing key", "err", err)
		return
	}
	rt.face.SetSigningKey(signer)

	opts := &ping.ServerOptions{}
	if ps.payload != "" {
		payload := []byte(ps.payload)
		opts.MakePayload = func(*ndn.Interest) []byte { return payload }
	}
	if ps.server, err = ping.NewServer(rt.face, ps.name, opts); err != nil {
		log.Fatal(ps, "Unable to start ping server", "err", err)
		return
	}
	defer ps.server.Close()

	fmt.Printf("PING SERVER %s\n", ps.name)
	defer ps.stats()

	rt.run(func() bool { return true })
}

func (ps *PingServer) stats() {
	s := ps.server.Stats()
	fmt.Printf("\n--- %s ping server statistics ---\n", ps.name)
	fmt.Printf("%d Interests processed, %d duplicates\n", s.NProbes, s.NDuplicates)
}
