package face

import (
	"cmp"
	"errors"
	"reflect"
	"slices"

	"github.com/JamsawColPH/esp8266ndn/std/ndn"
)

var (
	// ErrDuplicateHandler is returned when registering a handler twice.
	ErrDuplicateHandler = errors.New("handler is already registered")
	// ErrInvalidHandler is returned when a handler handles no packet kind,
	// or its dynamic type cannot be compared for Unregister.
	ErrInvalidHandler = errors.New("handler implements no packet handler interface")
)

// InterestHandler processes an incoming Interest.
// Returning true claims the packet and stops the chain.
type InterestHandler interface {
	ProcessInterest(interest *ndn.Interest, endpointID uint64) bool
}

// DataHandler processes an incoming Data.
// Returning true claims the packet and stops the chain.
type DataHandler interface {
	ProcessData(data *ndn.Data, endpointID uint64) bool
}

// NackHandler processes an incoming Nack of an Interest.
// Returning true claims the packet and stops the chain.
type NackHandler interface {
	ProcessNack(nack *ndn.NetworkNack, interest *ndn.Interest, endpointID uint64) bool
}

// HandlerFuncs adapts closures to the handler interfaces.
// A nil func leaves that packet kind unhandled.
type HandlerFuncs struct {
	Interest func(interest *ndn.Interest, endpointID uint64) bool
	Data     func(data *ndn.Data, endpointID uint64) bool
	Nack     func(nack *ndn.NetworkNack, interest *ndn.Interest, endpointID uint64) bool
}

func (h *HandlerFuncs) ProcessInterest(interest *ndn.Interest, endpointID uint64) bool {
	return h.Interest != nil && h.Interest(interest, endpointID)
}

func (h *HandlerFuncs) ProcessData(data *ndn.Data, endpointID uint64) bool {
	return h.Data != nil && h.Data(data, endpointID)
}

func (h *HandlerFuncs) ProcessNack(nack *ndn.NetworkNack, interest *ndn.Interest, endpointID uint64) bool {
	return h.Nack != nil && h.Nack(nack, interest, endpointID)
}

type chainNode struct {
	handler any
	prio    int8
	seq     uint64
	dead    bool
}

// chain is the priority-ordered handler list of a Face.
// Mutations made while a dispatch is in progress are applied when the
// outermost dispatch returns.
type chain struct {
	nodes   []*chainNode
	pending []*chainNode
	seq     uint64
	depth   int
	dirty   bool
}

func isHandler(h any) bool {
	switch h.(type) {
	case InterestHandler, DataHandler, NackHandler:
		return true
	}
	return false
}

func (c *chain) register(h any, prio int8) error {
	if h == nil || !isHandler(h) || !reflect.TypeOf(h).Comparable() {
		return ErrInvalidHandler
	}
	if c.find(h) != nil {
		return ErrDuplicateHandler
	}

	c.seq++
	node := &chainNode{handler: h, prio: prio, seq: c.seq}
	if c.depth > 0 {
		c.pending = append(c.pending, node)
		return nil
	}
	c.insert(node)
	return nil
}

func (c *chain) unregister(h any) bool {
	if h == nil || !reflect.TypeOf(h).Comparable() {
		return false
	}
	for i, node := range c.pending {
		if node.handler == h {
			c.pending = slices.Delete(c.pending, i, i+1)
			return true
		}
	}
	for i, node := range c.nodes {
		if node.dead || node.handler != h {
			continue
		}
		if c.depth > 0 {
			node.dead = true
			c.dirty = true
		} else {
			c.nodes = slices.Delete(c.nodes, i, i+1)
		}
		return true
	}
	return false
}

func (c *chain) find(h any) *chainNode {
	for _, node := range c.nodes {
		if !node.dead && node.handler == h {
			return node
		}
	}
	for _, node := range c.pending {
		if node.handler == h {
			return node
		}
	}
	return nil
}

func (c *chain) insert(node *chainNode) {
	i, _ := slices.BinarySearchFunc(c.nodes, node, func(a, b *chainNode) int {
		if a.prio != b.prio {
			return cmp.Compare(a.prio, b.prio)
		}
		return cmp.Compare(a.seq, b.seq)
	})
	c.nodes = slices.Insert(c.nodes, i, node)
}

// dispatch offers a packet to each live handler in order until one claims it.
func (c *chain) dispatch(offer func(h any) bool) bool {
	c.depth++
	defer func() {
		c.depth--
		if c.depth == 0 {
			c.settle()
		}
	}()

	// nodes is not reallocated while depth > 0
	for _, node := range c.nodes {
		if node.dead {
			continue
		}
		if offer(node.handler) {
			return true
		}
	}
	return false
}

func (c *chain) settle() {
	if c.dirty {
		c.nodes = slices.DeleteFunc(c.nodes, func(n *chainNode) bool { return n.dead })
		c.dirty = false
	}
	pending := c.pending
	c.pending = nil
	for _, node := range pending {
		c.insert(node)
	}
}

func (c *chain) len() int {
	n := len(c.pending)
	for _, node := range c.nodes {
		if !node.dead {
			n++
		}
	}
	return n
}
