package huffmanunpack

/*** ---------- MinHeap (우선순위만 비교) ---------- ***/

// Heap is an array-backed binary min-heap. Items are ranked only by the
// priority function; equal priorities are resolved by the fixed sift order
// below, which matches the upstream encoder:
//
//   - sift-up stops as soon as parent <= child
//   - sift-down takes the right child only when it is strictly smaller than
//     the left, and stops as soon as parent <= smaller child
//
// Changing either rule changes which of several equally optimal trees gets
// built, and real payloads stop decoding.
type Heap[T any] struct {
	arr      []T
	priority func(T) uint64
}

func NewHeap[T any](priority func(T) uint64) *Heap[T] {
	return &Heap[T]{priority: priority}
}

func (h *Heap[T]) Len() int { return len(h.arr) }

func (h *Heap[T]) less(i, j int) bool { // arr[i] < arr[j]
	return h.priority(h.arr[i]) < h.priority(h.arr[j])
}

func (h *Heap[T]) swap(i, j int) { h.arr[i], h.arr[j] = h.arr[j], h.arr[i] }

func (h *Heap[T]) Push(item T) {
	h.arr = append(h.arr, item)
	i := len(h.arr) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) { // parent <= child 이면 stop
			return
		}
		h.swap(parent, i)
		i = parent
	}
}

// PopMin removes and returns the smallest item. ok is false on an empty heap.
func (h *Heap[T]) PopMin() (item T, ok bool) {
	n := len(h.arr)
	if n == 0 {
		return item, false
	}
	item = h.arr[0]
	last := h.arr[n-1]
	var zero T
	h.arr[n-1] = zero
	h.arr = h.arr[:n-1]
	if len(h.arr) == 0 {
		return item, true
	}
	h.arr[0] = last
	h.down(0)
	return item, true
}

func (h *Heap[T]) down(parent int) {
	n := len(h.arr)
	for {
		child := 2*parent + 1
		if child >= n {
			return
		}
		if child+1 < n && h.less(child+1, child) { // 더 작은 자식 (같으면 왼쪽)
			child++
		}
		if !h.less(child, parent) {
			return
		}
		h.swap(parent, child)
		parent = child
	}
}

// Peek returns the smallest item without removing it.
func (h *Heap[T]) Peek() (item T, ok bool) {
	if len(h.arr) == 0 {
		return item, false
	}
	return h.arr[0], true
}
