package tools

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JamsawColPH/esp8266ndn/std/face"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/transport"
)

// pollInterval is the sleep between two iterations of the cooperative loop.
const pollInterval = time.Millisecond

// runtime is the Face and transport of a running tool.
type runtime struct {
	cfg       *Config
	face      *face.Face
	transport transport.Transport
	logFile   io.Closer
}

func (r *runtime) String() string {
	return "runtime"
}

// startRuntime loads configuration, sets up logging and connects to the router.
// Failures are fatal.
func startRuntime(t any) *runtime {
	cfg, err := LoadConfig(Flags)
	if err != nil {
		log.Fatal(t, "Unable to load configuration", "err", err)
	}
	r := &runtime{cfg: cfg}

	if r.logFile, err = cfg.SetupLogger(); err != nil {
		log.Fatal(t, "Unable to set up logging", "err", err)
	}

	if r.transport, err = transport.Dial(cfg.Transport.Uri); err != nil {
		log.Fatal(t, "Unable to connect to router", "uri", cfg.Transport.Uri, "err", err)
	}
	r.face = face.NewFace(r.transport, cfg.Face)
	log.Info(t, "Connected", "transport", r.transport)
	return r
}

func (r *runtime) close() {
	r.transport.Close()
	r.logFile.Close()
}

// run drives the Face and step until step returns false or a signal arrives.
func (r *runtime) run(step func() bool) {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigchan)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		r.face.Loop()
		if !step() {
			return
		}
		select {
		case sig := <-sigchan:
			log.Info(r, "Received signal - exit", "signal", sig)
			return
		case <-ticker.C:
		}
	}
}
