package face

import (
	"testing"

	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	id     int
	log    *[]int
	claim  bool
	onCall func()
}

func (r *recorder) ProcessInterest(*ndn.Interest, uint64) bool {
	*r.log = append(*r.log, r.id)
	if r.onCall != nil {
		r.onCall()
	}
	return r.claim
}

func offerInterest(c *chain) bool {
	return c.dispatch(func(h any) bool {
		ih, ok := h.(InterestHandler)
		return ok && ih.ProcessInterest(&ndn.Interest{}, 0)
	})
}

type sliceHandler []int

func (sliceHandler) ProcessInterest(*ndn.Interest, uint64) bool { return false }

func TestChainOrder(t *testing.T) {
	var c chain
	var log []int
	h1 := &recorder{id: 1, log: &log}
	h2 := &recorder{id: 2, log: &log}
	h3 := &recorder{id: 3, log: &log}

	require.NoError(t, c.register(h2, 2))
	require.NoError(t, c.register(h1, 1))
	require.NoError(t, c.register(h3, 3))

	require.False(t, offerInterest(&c))
	require.Equal(t, []int{1, 2, 3}, log)

	log = nil
	h1.claim = true
	require.True(t, offerInterest(&c))
	require.Equal(t, []int{1}, log)
}

func TestChainTieBreak(t *testing.T) {
	var c chain
	var log []int
	for i := 1; i <= 3; i++ {
		require.NoError(t, c.register(&recorder{id: i, log: &log}, -5))
	}
	require.NoError(t, c.register(&recorder{id: 0, log: &log}, -128))
	require.NoError(t, c.register(&recorder{id: 9, log: &log}, 127))

	offerInterest(&c)
	require.Equal(t, []int{0, 1, 2, 3, 9}, log)
}

func TestChainRegisterErrors(t *testing.T) {
	var c chain
	var log []int
	h := &recorder{log: &log}

	require.NoError(t, c.register(h, 0))
	require.ErrorIs(t, c.register(h, 1), ErrDuplicateHandler)
	require.ErrorIs(t, c.register(struct{}{}, 0), ErrInvalidHandler)
	require.ErrorIs(t, c.register(nil, 0), ErrInvalidHandler)
	require.ErrorIs(t, c.register(HandlerFuncs{}, 0), ErrInvalidHandler)
	require.ErrorIs(t, c.register(sliceHandler{1}, 0), ErrInvalidHandler)

	require.False(t, c.unregister(sliceHandler{1}))
	require.False(t, c.unregister(&recorder{}))
	require.True(t, c.unregister(h))
	require.False(t, c.unregister(h))
	require.Equal(t, 0, c.len())
}

func TestChainSelfUnregister(t *testing.T) {
	var c chain
	var log []int
	h1 := &recorder{id: 1, log: &log}
	h2 := &recorder{id: 2, log: &log}
	h3 := &recorder{id: 3, log: &log}
	h2.onCall = func() {
		require.True(t, c.unregister(h2))
		require.False(t, c.unregister(h2))
	}

	require.NoError(t, c.register(h1, 1))
	require.NoError(t, c.register(h2, 2))
	require.NoError(t, c.register(h3, 3))

	offerInterest(&c)
	require.Equal(t, []int{1, 2, 3}, log)
	require.Equal(t, 2, c.len())
	require.Len(t, c.nodes, 2)

	log = nil
	offerInterest(&c)
	require.Equal(t, []int{1, 3}, log)

	// re-registration after removal is allowed
	h2.onCall = nil
	require.NoError(t, c.register(h2, 0))
	log = nil
	offerInterest(&c)
	require.Equal(t, []int{2, 1, 3}, log)
}

func TestChainUnregisterNeighbor(t *testing.T) {
	var c chain
	var log []int
	h1 := &recorder{id: 1, log: &log}
	h2 := &recorder{id: 2, log: &log}
	h1.onCall = func() { c.unregister(h2) }

	require.NoError(t, c.register(h1, 1))
	require.NoError(t, c.register(h2, 2))

	offerInterest(&c)
	require.Equal(t, []int{1}, log)
	require.Equal(t, 1, c.len())
}

func TestChainDeferredRegister(t *testing.T) {
	var c chain
	var log []int
	h0 := &recorder{id: 0, log: &log}
	h1 := &recorder{id: 1, log: &log}
	h1.onCall = func() {
		require.NoError(t, c.register(h0, 0))
		require.ErrorIs(t, c.register(h0, 0), ErrDuplicateHandler)
	}
	require.NoError(t, c.register(h1, 1))

	offerInterest(&c)
	require.Equal(t, []int{1}, log)
	require.Empty(t, c.pending)

	log = nil
	h1.onCall = nil
	offerInterest(&c)
	require.Equal(t, []int{0, 1}, log)
}

func TestChainNestedDispatch(t *testing.T) {
	var c chain
	var log []int
	inner := &recorder{id: 2, log: &log}
	outer := &recorder{id: 1, log: &log}
	outer.onCall = func() {
		outer.onCall = nil
		c.unregister(inner)
		offerInterest(&c)
		// compaction waits for the outermost dispatch
		require.Len(t, c.nodes, 2)
	}
	require.NoError(t, c.register(outer, 1))
	require.NoError(t, c.register(inner, 2))

	offerInterest(&c)
	require.Equal(t, []int{1, 1}, log)
	require.Len(t, c.nodes, 1)
}

func TestHandlerFuncs(t *testing.T) {
	h := &HandlerFuncs{}
	require.False(t, h.ProcessInterest(&ndn.Interest{}, 0))
	require.False(t, h.ProcessData(&ndn.Data{}, 0))
	require.False(t, h.ProcessNack(&ndn.NetworkNack{}, &ndn.Interest{}, 0))

	h.Data = func(*ndn.Data, uint64) bool { return true }
	require.True(t, h.ProcessData(&ndn.Data{}, 0))
	require.False(t, h.ProcessInterest(&ndn.Interest{}, 0))
}
