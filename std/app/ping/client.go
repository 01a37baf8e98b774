// Package ping implements the NDN ping protocol over a Face.
//
// A probe is an Interest whose last name component is a sequence number.
// The server answers each probe with a Data of the same name.
package ping

import (
	"math/rand/v2"
	"time"

	"github.com/JamsawColPH/esp8266ndn/std/face"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

// DefaultTimeout applies when neither the client nor its Interest sets one.
const DefaultTimeout = ndn.DefaultInterestLifetime * time.Millisecond

type Event int

const (
	EventProbe Event = iota
	EventResponse
	EventTimeout
	EventNack
)

func (e Event) String() string {
	switch e {
	case EventProbe:
		return "probe"
	case EventResponse:
		return "response"
	case EventTimeout:
		return "timeout"
	case EventNack:
		return "nack"
	default:
		return "unknown"
	}
}

// Interval is the range a probe interval is drawn from.
type Interval struct {
	Min time.Duration
	Max time.Duration
}

// NewInterval returns center±variation.
func NewInterval(center, variation time.Duration) Interval {
	variation = max(variation, -variation)
	return Interval{Min: center - variation, Max: center + variation}
}

// Next draws an interval uniformly from [Min, Max].
func (i Interval) Next() time.Duration {
	if i.Max <= i.Min {
		return i.Min
	}
	return i.Min + rand.N(i.Max-i.Min+1)
}

// Stats counts client events.
type Stats struct {
	NProbes    uint64
	NResponses uint64
	NTimeouts  uint64
	NNacks     uint64
}

// Client sends probes periodically and reports their outcome.
// It must be driven by calling Loop from the goroutine that drives the Face.
type Client struct {
	face     *face.Face
	interest *ndn.Interest
	interval Interval
	timeout  time.Duration

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
	// EndpointID is the endpoint probes are sent to.
	EndpointID uint64
	// OnEvent, if set, is called for every event with the probe sequence number.
	OnEvent func(evt Event, seq uint64, rtt time.Duration)
	// Count limits the number of probes. Zero means unlimited.
	Count uint64

	pending   bool
	lastProbe time.Time
	nextProbe time.Time
	stats     Stats
}

// NewClient creates a client probing with interest, and registers it on f.
// The client owns interest: each probe rewrites its last name component.
// A non-positive timeout falls back to the InterestLifetime, then DefaultTimeout.
func NewClient(f *face.Face, interest *ndn.Interest, interval Interval, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = interest.Lifetime.GetOr(DefaultTimeout)
	}
	c := &Client{
		face:     f,
		interest: interest,
		interval: interval,
		timeout:  timeout,
		Clock:    time.Now,
	}
	if interval.Min <= timeout {
		log.Warn(c, "Minimum interval should be greater than timeout",
			"interval", interval.Min, "timeout", timeout)
	}
	if err := f.Register(c, 0); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) String() string {
	return "ping-client"
}

// Timeout is the time a probe waits for its response.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) Stats() Stats {
	return c.stats
}

// LastSeq is the sequence number of the latest probe, or 0 before the first probe.
func (c *Client) LastSeq() uint64 {
	seq, _ := c.interest.Name.LastSequenceNumber()
	return seq
}

// Close unregisters the client from its Face.
func (c *Client) Close() {
	c.face.Unregister(c)
}

// Loop reports a timeout of the pending probe, and sends a probe when one is due.
func (c *Client) Loop() {
	now := c.Clock()
	if c.pending && now.Sub(c.lastProbe) > c.timeout {
		c.pending = false
		c.stats.NTimeouts++
		seq := c.LastSeq()
		log.Debug(c, "Timeout", "seq", seq)
		c.emit(EventTimeout, seq, 0)
	}

	if now.After(c.nextProbe) && (c.Count == 0 || c.stats.NProbes < c.Count) {
		c.probe(now)
	}
}

// Done reports whether Count probes were sent and the last one has completed.
func (c *Client) Done() bool {
	return c.Count > 0 && c.stats.NProbes >= c.Count && !c.pending
}

func (c *Client) probe(now time.Time) {
	name := c.interest.Name
	seq, ok := name.LastSequenceNumber()
	if ok {
		name = name.Prefix(-1)
	} else {
		seq = uint64(rand.Uint32())
	}
	seq++
	c.interest.Name = name.AppendSequenceNumber(seq)
	c.interest.Nonce.Unset()

	if err := c.face.SendInterest(c.interest, c.EndpointID); err != nil {
		log.Warn(c, "Unable to send probe", "seq", seq, "err", err)
	}
	log.Debug(c, "Probe", "name", c.interest.Name, "seq", seq)

	c.pending = true
	c.lastProbe = now
	c.nextProbe = now.Add(c.interval.Next())
	c.stats.NProbes++
	c.emit(EventProbe, seq, 0)
}

// ProcessData claims a Data answering the current probe.
func (c *Client) ProcessData(data *ndn.Data, endpointID uint64) bool {
	if !c.interest.Name.IsPrefix(data.Name) {
		return false
	}
	c.pending = false
	c.stats.NResponses++

	seq := c.LastSeq()
	rtt := c.Clock().Sub(c.lastProbe)
	log.Debug(c, "Response", "seq", seq, "rtt", rtt)
	c.emit(EventResponse, seq, rtt)
	return true
}

// ProcessNack claims a Nack of the current probe.
func (c *Client) ProcessNack(nack *ndn.NetworkNack, interest *ndn.Interest, endpointID uint64) bool {
	if !c.interest.Name.Equal(interest.Name) {
		return false
	}
	c.pending = false
	c.stats.NNacks++

	seq := c.LastSeq()
	rtt := c.Clock().Sub(c.lastProbe)
	log.Debug(c, "Nack", "seq", seq, "reason", nack.Reason, "rtt", rtt)
	c.emit(EventNack, seq, rtt)
	return true
}

func (c *Client) emit(evt Event, seq uint64, rtt time.Duration) {
	if c.OnEvent != nil {
		c.OnEvent(evt, seq, rtt)
	}
}
