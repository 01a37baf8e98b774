package ping

import (
	"time"

	"github.com/cespare/xxhash"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/face"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/JamsawColPH/esp8266ndn/std/types/optional"
)

// recentSize is the number of recent probe names kept for duplicate detection.
const recentSize = 16

type ServerOptions struct {
	// FreshnessPeriod of replies
	Freshness time.Duration
	// MakePayload returns the Content of the reply to interest.
	// The returned slice must stay valid until the reply is sent.
	MakePayload func(interest *ndn.Interest) []byte
}

// ServerStats counts server events.
type ServerStats struct {
	NProbes     uint64
	NDuplicates uint64
	NErrors     uint64
}

// Server answers probes under a prefix with signed Data.
// The Face must have a signing key.
type Server struct {
	face   *face.Face
	prefix enc.Name
	opts   ServerOptions

	recent    [recentSize]uint64
	recentPos int
	stats     ServerStats
}

// NewServer registers a server for prefix on f. A nil opts selects defaults.
func NewServer(f *face.Face, prefix enc.Name, opts *ServerOptions) (*Server, error) {
	s := &Server{
		face:   f,
		prefix: prefix.Clone(),
	}
	if opts != nil {
		s.opts = *opts
	}
	if err := f.Register(s, 0); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) String() string {
	return "ping-server"
}

func (s *Server) Prefix() enc.Name {
	return s.prefix
}

func (s *Server) Stats() ServerStats {
	return s.stats
}

// Close unregisters the server from its Face.
func (s *Server) Close() {
	s.face.Unregister(s)
}

// ProcessInterest claims an Interest under the prefix and replies to it.
func (s *Server) ProcessInterest(interest *ndn.Interest, endpointID uint64) bool {
	if !s.prefix.IsPrefix(interest.Name) {
		return false
	}
	s.stats.NProbes++
	if s.seen(interest.Name) {
		s.stats.NDuplicates++
		log.Debug(s, "Duplicate probe", "name", interest.Name)
	}

	reply := ndn.Data{
		Name: interest.Name,
		MetaInfo: ndn.MetaInfo{
			Freshness: optional.Some(s.opts.Freshness),
		},
	}
	if s.opts.MakePayload != nil {
		reply.Content = s.opts.MakePayload(interest)
	}
	if err := s.face.SendData(&reply, endpointID); err != nil {
		s.stats.NErrors++
		log.Warn(s, "Unable to reply", "name", interest.Name, "err", err)
	}
	return true
}

// seen records name in the recent ring and reports whether it was there.
func (s *Server) seen(name enc.Name) bool {
	h := xxhash.Sum64(name.Bytes())

	for _, r := range s.recent {
		if r == h {
			return true
		}
	}
	s.recent[s.recentPos] = h
	s.recentPos = (s.recentPos + 1) % recentSize
	return false
}
