package maskbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlimited(t *testing.T) {
	a := New(0)
	b, ok := a.Acquire(1 << 20)
	require.True(t, ok)
	assert.Len(t, b.Mask, 1<<20)
	assert.Equal(t, int64(1<<20), a.InUse())
	assert.Equal(t, int64(0), a.Limit())

	b.Release()
	b.Release()
	assert.Equal(t, int64(0), a.InUse())
}

func TestBudget(t *testing.T) {
	a := New(100)

	b1, ok := a.Acquire(60)
	require.True(t, ok)

	_, ok = a.Acquire(60)
	assert.False(t, ok, "second buffer must not fit in the budget")

	b2, ok := a.Acquire(40)
	require.True(t, ok)
	assert.Equal(t, int64(100), a.InUse())

	b1.Release()
	b3, ok := a.Acquire(60)
	require.True(t, ok)

	b2.Release()
	b3.Release()
	assert.Equal(t, int64(0), a.InUse())
}

func TestZeroedMask(t *testing.T) {
	a := New(0)
	b, _ := a.Acquire(8)
	for i := range b.Mask {
		b.Mask[i] = true
	}
	b.Release()

	b, _ = a.Acquire(8)
	defer b.Release()
	for i, f := range b.Mask {
		if f {
			t.Fatalf("Mask[%d] not zeroed", i)
		}
	}
}
