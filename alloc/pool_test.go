package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// particle is a representative pooled payload.
type particle struct {
	X, Y float64
	TTL  int32
}

// TestPool_RoundTrip verifies values land in slots and read back unchanged.
func TestPool_RoundTrip(t *testing.T) {
	p, err := NewPool[particle](4)
	require.NoError(t, err)

	r1, err := p.Alloc(particle{X: 1, Y: 2, TTL: 30})
	require.NoError(t, err)
	r2, err := p.Alloc(particle{X: -1, Y: -2, TTL: 60})
	require.NoError(t, err)

	assert.Equal(t, particle{X: 1, Y: 2, TTL: 30}, r1.Get())
	assert.Equal(t, particle{X: -1, Y: -2, TTL: 60}, r2.Get())
	assert.Equal(t, 2, p.Live())
}

// TestPool_Exhaustion: the last slot is handed out, the next request fails
// recoverably, and one Free unblocks it.
func TestPool_Exhaustion(t *testing.T) {
	p, err := NewPool[int64](3)
	require.NoError(t, err)

	refs := make([]Ref[int64], 0, 3)
	for i := range 3 {
		r, err := p.Alloc(int64(i))
		require.NoError(t, err, "alloc %d within the pool should succeed", i)
		refs = append(refs, r)
	}

	_, err = p.Alloc(99)
	require.ErrorIs(t, err, ErrPoolFull, "an exhausted pool should refuse, not corrupt")
	assert.Equal(t, 3, p.Live(), "failed alloc should not change occupancy")

	require.NoError(t, p.Free(refs[1]))
	r, err := p.Alloc(int64(42))
	require.NoError(t, err, "alloc should succeed after a free")
	assert.Equal(t, refAddr(refs[1]), refAddr(r), "the freed slot should be handed back")
}

// TestPool_MostRecentlyFreedFirst: a freed slot is the next one allocated.
func TestPool_MostRecentlyFreedFirst(t *testing.T) {
	p, err := NewPool[int32](4)
	require.NoError(t, err)

	var refs []Ref[int32]
	for i := range 4 {
		r, err := p.Alloc(int32(i))
		require.NoError(t, err)
		refs = append(refs, r)
	}

	require.NoError(t, p.Free(refs[2]))
	require.NoError(t, p.Free(refs[0]))

	r, err := p.Alloc(70)
	require.NoError(t, err)
	assert.Equal(t, refAddr(refs[0]), refAddr(r), "most recently freed slot should come back first")

	r, err = p.Alloc(71)
	require.NoError(t, err)
	assert.Equal(t, refAddr(refs[2]), refAddr(r), "then the one freed before it")
}

// TestPool_DrainAndRefill: freeing in arbitrary order leaves all slots
// allocatable again.
func TestPool_DrainAndRefill(t *testing.T) {
	const n = 8
	p, err := NewPool[int64](n)
	require.NoError(t, err)

	addrs := make(map[uintptr]bool, n)
	refs := make([]Ref[int64], 0, n)
	for i := range n {
		r, err := p.Alloc(int64(i))
		require.NoError(t, err)
		refs = append(refs, r)
		addrs[refAddr(r)] = true
	}
	require.Len(t, addrs, n, "slots should be distinct")

	for _, i := range []int{3, 0, 7, 5, 1, 6, 2, 4} {
		require.NoError(t, p.Free(refs[i]))
	}
	require.Zero(t, p.Live())
	require.NoError(t, p.Validate())

	for i := range n {
		r, err := p.Alloc(int64(100 + i))
		require.NoError(t, err, "refill alloc %d should succeed", i)
		assert.True(t, addrs[refAddr(r)], "refill should reuse the original slots")
	}
	_, err = p.Alloc(0)
	require.ErrorIs(t, err, ErrPoolFull)
}

// TestPool_IsLive tracks slot occupancy across the lifecycle.
func TestPool_IsLive(t *testing.T) {
	p, err := NewPool[int64](2)
	require.NoError(t, err)

	r, err := p.Alloc(5)
	require.NoError(t, err)

	live, err := p.IsLive(r)
	require.NoError(t, err)
	assert.True(t, live, "a just-allocated slot is live")

	require.NoError(t, p.Free(r))
	live, err = p.IsLive(r)
	require.NoError(t, err)
	assert.False(t, live, "a freed slot is not live")

	r2, err := p.Alloc(6)
	require.NoError(t, err)
	live, err = p.IsLive(r2)
	require.NoError(t, err)
	assert.True(t, live, "a reused slot is live again")

	var outside int64
	_, err = p.IsLive(MakeRef(&outside))
	require.ErrorIs(t, err, ErrBadRef, "a foreign address is not a slot")

	_, err = p.IsLive(Ref[int64]{})
	require.ErrorIs(t, err, ErrBadRef, "the zero Ref is not a slot")
}

// TestPool_SlotOfAndLiveAt maps Refs back to slot indexes and reads
// occupancy by index.
func TestPool_SlotOfAndLiveAt(t *testing.T) {
	p, err := NewPool[int64](4)
	require.NoError(t, err)

	r0, err := p.Alloc(10)
	require.NoError(t, err)
	r1, err := p.Alloc(11)
	require.NoError(t, err)

	i0, err := p.SlotOf(r0)
	require.NoError(t, err)
	i1, err := p.SlotOf(r1)
	require.NoError(t, err)
	assert.Equal(t, 0, i0, "a fresh pool hands out slot 0 first")
	assert.Equal(t, 1, i1)

	assert.True(t, p.LiveAt(i0))
	assert.True(t, p.LiveAt(i1))
	assert.False(t, p.LiveAt(2), "untouched slots are free")

	require.NoError(t, p.Free(r0))
	assert.False(t, p.LiveAt(i0), "a freed slot reads free by index")

	assert.False(t, p.LiveAt(-1))
	assert.False(t, p.LiveAt(4))

	var outside int64
	_, err = p.SlotOf(MakeRef(&outside))
	require.ErrorIs(t, err, ErrBadRef)

	require.NoError(t, p.Release())
	_, err = p.SlotOf(r1)
	require.ErrorIs(t, err, ErrReleased)
	assert.False(t, p.LiveAt(i1), "a released pool has no live slots")
}

// TestPool_FreeForeignRef rejects addresses the pool does not own.
func TestPool_FreeForeignRef(t *testing.T) {
	p, err := NewPool[int64](2)
	require.NoError(t, err)

	var outside int64
	require.ErrorIs(t, p.Free(MakeRef(&outside)), ErrBadRef)
	require.ErrorIs(t, p.Free(Ref[int64]{}), ErrBadRef)
	assert.Zero(t, p.Live())
}

// TestPool_ConstructionValidation rejects empty pools and surfaces provider
// failures.
func TestPool_ConstructionValidation(t *testing.T) {
	_, err := NewPool[int64](0)
	require.ErrorIs(t, err, ErrBadLayout)

	_, err = NewPool[int64](-3)
	require.ErrorIs(t, err, ErrBadLayout)

	_, err = NewPoolIn[int64](&failAfter{}, 4)
	require.ErrorIs(t, err, errProviderDown)
}

// TestPool_ReleaseSemantics: the cell array goes back to the provider
// exactly once and a released pool rejects every operation.
func TestPool_ReleaseSemantics(t *testing.T) {
	prov := &countingProvider{}
	p, err := NewPoolIn[int64](prov, 4)
	require.NoError(t, err)

	r, err := p.Alloc(1)
	require.NoError(t, err)

	require.NoError(t, p.Release())
	require.Equal(t, 1, prov.frees)
	require.NoError(t, p.Release(), "release should be idempotent")
	assert.Equal(t, 1, prov.frees, "the region must be freed exactly once")

	_, err = p.Alloc(2)
	require.ErrorIs(t, err, ErrReleased)
	require.ErrorIs(t, p.Free(r), ErrReleased)
	_, err = p.IsLive(r)
	require.ErrorIs(t, err, ErrReleased)
	require.ErrorIs(t, p.Validate(), ErrReleased)
}

// TestPool_StatsAndAccessors verifies bookkeeping and derived sizes.
func TestPool_StatsAndAccessors(t *testing.T) {
	p, err := NewPool[particle](5)
	require.NoError(t, err)

	require.Equal(t, 5, p.Slots())
	require.GreaterOrEqual(t, p.SlotSize(), uintptr(20), "a cell holds the payload plus bookkeeping")
	require.Equal(t, uintptr(5)*p.SlotSize(), p.Capacity())

	r, err := p.Alloc(particle{TTL: 1})
	require.NoError(t, err)
	_, err = p.Alloc(particle{TTL: 2})
	require.NoError(t, err)
	require.NoError(t, p.Free(r))

	st := p.Stats()
	assert.Equal(t, uint64(2), st.Allocs)
	assert.Equal(t, uint64(1), st.Frees)
	assert.Equal(t, p.SlotSize(), st.Used, "one live slot's bytes are in use")
	assert.Equal(t, 1, p.Live())
}
