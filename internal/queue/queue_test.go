package queue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMaxRootIsLargest(t *testing.T) {
	pq := NewMax(4)
	for _, d := range []float32{5, 1, 9, 3} {
		pq.PushItem(PriorityQueueItem{ID: int64(d), Distance: d})
	}

	top, ok := pq.TopItem()
	assert.True(t, ok)
	assert.Equal(t, float32(9), top.Distance)
}

func TestNewMinRootIsSmallest(t *testing.T) {
	pq := NewMin(4)
	for _, d := range []float32{5, 1, 9, 3} {
		pq.PushItem(PriorityQueueItem{ID: int64(d), Distance: d})
	}

	top, ok := pq.TopItem()
	assert.True(t, ok)
	assert.Equal(t, float32(1), top.Distance)
}

func TestPopItemOrdering(t *testing.T) {
	pq := NewMax(4)
	for _, d := range []float32{5, 1, 9, 3} {
		pq.PushItem(PriorityQueueItem{ID: int64(d), Distance: d})
	}

	var popped []float32
	for pq.Len() > 0 {
		item, ok := pq.PopItem()
		assert.True(t, ok)
		popped = append(popped, item.Distance)
	}

	assert.Equal(t, []float32{9, 5, 3, 1}, popped)
}

func TestPopItemEmpty(t *testing.T) {
	pq := NewMin(0)
	_, ok := pq.PopItem()
	assert.False(t, ok)
}

func TestHeapInterfaceCompat(t *testing.T) {
	pq := NewMax(0)
	heap.Init(pq)
	heap.Push(pq, PriorityQueueItem{ID: 1, Distance: 2})
	heap.Push(pq, PriorityQueueItem{ID: 2, Distance: 8})
	heap.Push(pq, PriorityQueueItem{ID: 3, Distance: 4})

	item := heap.Pop(pq).(PriorityQueueItem)
	assert.Equal(t, int64(2), item.ID)
	assert.Equal(t, float32(8), item.Distance)
}

func TestMinItemOnMaxHeap(t *testing.T) {
	pq := NewMax(4)
	for _, d := range []float32{5, 1, 9, 3} {
		pq.PushItem(PriorityQueueItem{ID: int64(d), Distance: d})
	}

	min, ok := pq.MinItem()
	assert.True(t, ok)
	assert.Equal(t, float32(1), min.Distance)
}

func TestReset(t *testing.T) {
	pq := NewMin(4)
	pq.PushItem(PriorityQueueItem{ID: 1, Distance: 1})
	pq.Reset()
	assert.Equal(t, 0, pq.Len())
}
