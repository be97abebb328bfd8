package sssp

// Item is a frontier entry: a tentative cost for a node.
type Item struct {
	Node uint32
	Dist uint32
}

// less orders by ascending Dist, then ascending Node so pop order is deterministic.
func (a Item) less(b Item) bool {
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Node < b.Node
}

// MinHeap is a concrete-typed min-heap for the Dijkstra frontier.
// Avoids interface boxing overhead of container/heap.
type MinHeap struct {
	items []Item
}

// NewMinHeap returns an empty heap with room for capacity items.
func NewMinHeap(capacity int) MinHeap {
	return MinHeap{items: make([]Item, 0, capacity)}
}

func (h *MinHeap) Len() int { return len(h.items) }

func (h *MinHeap) Push(node, dist uint32) {
	h.items = append(h.items, Item{Node: node, Dist: dist})
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimum item. The heap must be non-empty.
func (h *MinHeap) Pop() Item {
	top := h.items[0]
	n := len(h.items) - 1
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return top
}

// Reset empties the heap and keeps its backing array.
func (h *MinHeap) Reset() {
	h.items = h.items[:0]
}

// siftUp uses hole-sift: saves the floating item and does 1 assignment per
// level instead of 3 (swap).
func (h *MinHeap) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if !item.less(h.items[parent]) {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && h.items[right].less(h.items[child]) {
			child = right
		}
		if !h.items[child].less(item) {
			break
		}
		h.items[i] = h.items[child]
		i = child
	}
	h.items[i] = item
}
