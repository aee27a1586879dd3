package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailFIFO(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 3; i++ {
		tr.Push(TrailPoint{X: float64(i)})
	}
	require.Equal(t, 3, tr.Len)
	assert.Equal(t, 0.0, tr.Slice()[0].X)

	// capacity+1 pushes evicts the oldest
	tr.Push(TrailPoint{X: 3})
	require.Equal(t, 3, tr.Len)
	got := tr.Slice()
	assert.Equal(t, []float64{1, 2, 3}, []float64{got[0].X, got[1].X, got[2].X})
}

func TestTrailNeverExceedsCapacity(t *testing.T) {
	for capacity := 1; capacity <= MaxTrail; capacity++ {
		tr := NewTrail(capacity)
		for i := 0; i < 50; i++ {
			tr.Push(TrailPoint{X: float64(i)})
			assert.LessOrEqual(t, tr.Len, capacity)
		}
		// Newest point is always last
		assert.Equal(t, 49.0, tr.Slice()[tr.Len-1].X)
		assert.Equal(t, float64(50-capacity), tr.Slice()[0].X)
	}
}

func TestNewTrailClamps(t *testing.T) {
	assert.Equal(t, 1, NewTrail(0).Cap)
	assert.Equal(t, MaxTrail, NewTrail(100).Cap)
}

func TestTrailZeroValue(t *testing.T) {
	var tr Trail
	tr.Push(TrailPoint{X: 1})
	tr.Push(TrailPoint{X: 2})
	assert.Equal(t, 1, tr.Len)
	assert.Equal(t, 2.0, tr.Slice()[0].X)
}
