package tools

import (
	"fmt"
	"time"

	"github.com/JamsawColPH/esp8266ndn/std/app/ping"
	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/JamsawColPH/esp8266ndn/std/types/optional"
	"github.com/spf13/cobra"
)

type PingClient struct {
	prefix enc.Name

	// command line configuration
	interval int
	timeout  int
	count    uint64
	seq      uint64

	// stat counters
	nRecv    int
	nNack    int
	nTimeout int

	// stat rtt counters
	totalTime time.Duration
	rttMin    time.Duration
	rttMax    time.Duration
}

func CmdPingClient() *cobra.Command {
	pc := PingClient{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "ping PREFIX",
		Short:   "Send Interests to a ping server",
		Long: `Ping a name prefix using Interests like /prefix/ping/number
The first number is random unless --seq is given`,
		Args:    cobra.ExactArgs(1),
		Example: `  esp8266ndn ping /my/prefix -c 5`,
		Run:     pc.run,
	}

	cmd.Flags().IntVarP(&pc.interval, "interval", "i", 1000, "ping interval, in milliseconds")
	cmd.Flags().IntVarP(&pc.timeout, "timeout", "t", 900, "timeout for each ping, in milliseconds")
	cmd.Flags().Uint64VarP(&pc.count, "count", "c", 0, "number of pings to send")
	cmd.Flags().Uint64Var(&pc.seq, "seq", 0, "start sequence number")
	return cmd
}

func (pc *PingClient) String() string {
	return "ping-client"
}

func (pc *PingClient) run(_ *cobra.Command, args []string) {
	prefix, err := enc.NameFromStr(args[0])
	if err != nil {
		log.Fatal(pc, "Invalid prefix", "name", args[0])
		return
	}
	pc.prefix = prefix

	rt := startRuntime(pc)
	defer rt.close()

	name := prefix.Append(enc.NewGenericComponent("ping"))
	if pc.seq > 0 {
		// the client increments before sending
		name = name.AppendSequenceNumber(pc.seq - 1)
	}
	interest := &ndn.Interest{
		Name:     name,
		Lifetime: optional.Some(time.Duration(pc.timeout) * time.Millisecond),
	}

	interval := time.Duration(pc.interval) * time.Millisecond
	client, err := ping.NewClient(rt.face, interest, ping.Interval{Min: interval, Max: interval}, 0)
	if err != nil {
		log.Fatal(pc, "Unable to start ping client", "err", err)
		return
	}
	defer client.Close()
	client.Count = pc.count
	client.OnEvent = pc.onEvent

	fmt.Printf("PING %s\n", name.Prefix(len(prefix)+1))
	defer pc.stats(client.Stats())

	rt.run(func() bool {
		client.Loop()
		return !client.Done()
	})
}

func (pc *PingClient) onEvent(evt ping.Event, seq uint64, rtt time.Duration) {
	switch evt {
	case ping.EventResponse:
		fmt.Printf("content from %s: seq=%d, time=%f ms\n",
			pc.prefix, seq, float64(rtt.Microseconds())/1000.0)
		if pc.nRecv == 0 || rtt < pc.rttMin {
			pc.rttMin = rtt
		}
		pc.rttMax = max(pc.rttMax, rtt)
		pc.totalTime += rtt
		pc.nRecv++
	case ping.EventNack:
		fmt.Printf("nack from %s: seq=%d\n", pc.prefix, seq)
		pc.nNack++
	case ping.EventTimeout:
		fmt.Printf("timeout from %s: seq=%d\n", pc.prefix, seq)
		pc.nTimeout++
	}
}

func (pc *PingClient) stats(s ping.Stats) {
	if s.NProbes == 0 {
		fmt.Printf("No interests transmitted\n")
		return
	}

	fmt.Printf("\n--- %s ping statistics ---\n", pc.prefix)
	fmt.Printf("%d interests transmitted, %d received, %d%% lost\n",
		s.NProbes, pc.nRecv, uint64(pc.nNack+pc.nTimeout)*100/s.NProbes)
	if pc.nRecv > 0 {
		avg := pc.totalTime / time.Duration(pc.nRecv)
		fmt.Printf("rtt min/avg/max = %f/%f/%f ms\n",
			float64(pc.rttMin.Microseconds())/1000.0,
			float64(avg.Microseconds())/1000.0,
			float64(pc.rttMax.Microseconds())/1000.0)
	}
}
