package alloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/core/buffer"
)

func TestHeap_AllocRelease(t *testing.T) {
	h := NewHeap()
	b, err := h.Alloc(16)
	require.NoError(t, err)
	require.Equal(t, 16, b.Capacity())
	require.Equal(t, 0, b.Position())
	require.Equal(t, 16, b.Limit())

	require.NoError(t, b.PutInt64(7))
	require.NoError(t, h.Release(b))
	require.True(t, b.Released())

	require.ErrorIs(t, h.Release(b), api.ErrInvalidArgument, "double release")
	require.ErrorIs(t, h.Release(nil), api.ErrInvalidArgument)
}

func TestAllocators_RejectNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -8} {
		_, err := NewHeap().Alloc(c)
		require.ErrorIs(t, err, api.ErrInvalidArgument)
		_, err = NewDirect().Alloc(c)
		require.ErrorIs(t, err, api.ErrInvalidArgument)
	}
}

func TestDirect_AllocWriteRelease(t *testing.T) {
	d := NewDirect()
	b, err := d.Alloc(4096)
	require.NoError(t, err)
	require.Equal(t, 4096, b.Capacity())

	require.NoError(t, b.PutFloat64(1.25))
	v, err := b.GetFloat64At(0)
	require.NoError(t, err)
	require.Equal(t, 1.25, v)

	st := d.Stats()
	require.Equal(t, int64(1), st.Allocs)
	require.Equal(t, int64(4096), st.LiveBytes)

	require.NoError(t, d.Release(b))
	require.ErrorIs(t, d.Release(b), api.ErrInvalidArgument)
	require.ErrorIs(t, d.Release(nil), api.ErrInvalidArgument)

	st = d.Stats()
	require.Equal(t, int64(1), st.Releases)
	require.Equal(t, int64(0), st.LiveBytes)

	_, err = b.GetByte()
	require.ErrorIs(t, err, api.ErrInvalidState)
}

func TestDirect_QuarantineEvictsOldestFirst(t *testing.T) {
	d := NewDirect(WithQuarantine(2))

	var mems []*buffer.DirectMemory
	for i := 0; i < 3; i++ {
		b, err := d.Alloc(64)
		require.NoError(t, err)
		mems = append(mems, b.Memory())
		require.NoError(t, d.Release(b))
	}

	require.Equal(t, 2, d.Stats().Quarantined)
	require.Nil(t, mems[0].Bytes(), "oldest region is unmapped")
	require.NotNil(t, mems[1].Bytes())
	require.NotNil(t, mems[2].Bytes())

	require.NoError(t, d.Close())
	require.Equal(t, 0, d.Stats().Quarantined)
	require.Nil(t, mems[1].Bytes())
	require.Nil(t, mems[2].Bytes())
}

func TestDirect_NoQuarantineFreesImmediately(t *testing.T) {
	d := NewDirect(WithQuarantine(0))
	b, err := d.Alloc(32)
	require.NoError(t, err)
	mem := b.Memory()
	require.NoError(t, d.Release(b))
	require.Nil(t, mem.Bytes())
	require.Equal(t, 0, d.Stats().Quarantined)
	require.NoError(t, d.Close())
}

func TestDefaults_SingleInstanceUnderRace(t *testing.T) {
	const n = 32
	heaps := make([]*Heap, n)
	directs := make([]*Direct, n)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			heaps[i] = DefaultHeap()
			directs[i] = DefaultDirect()
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < n; i++ {
		require.Same(t, heaps[0], heaps[i])
		require.Same(t, directs[0], directs[i])
	}
	require.NotNil(t, directs[0])
}
