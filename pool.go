package dynarray

// PoolMemory is a heap-backed Memory that keeps released buffers on a free
// list and hands them out again. Arrays that grow repeatedly, or are
// initialized and released in a loop, then reuse old buffers instead of
// allocating new ones. Not safe for concurrent use.
type PoolMemory struct {
	poolSize int
	freelist [][]byte
	reused   int
}

// NewPoolMemory creates a PoolMemory retaining at most poolSize free buffers.
// Higher values improve reuse at the cost of increased memory retention.
func NewPoolMemory(poolSize int) *PoolMemory {
	return &PoolMemory{poolSize: poolSize}
}

// Alloc returns a pooled buffer of at least size bytes if one is available,
// a new one otherwise.
func (p *PoolMemory) Alloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	// 优先复用内存
	if m := p.selectBlock(size); m != nil {
		p.reused++
		return m[:size]
	}
	return heapMemory{}.Alloc(size)
}

// Free puts m on the free list, or drops it when the pool is full.
func (p *PoolMemory) Free(m []byte) {
	if cap(m) == 0 || len(p.freelist) >= p.poolSize {
		return
	}
	p.freelist = append(p.freelist, m[:cap(m)])
}

// Pooled returns the number of buffers on the free list.
func (p *PoolMemory) Pooled() int {
	return len(p.freelist)
}

// Reused returns how many allocations were served from the free list.
func (p *PoolMemory) Reused() int {
	return p.reused
}

// selectBlock removes and returns the smallest free buffer holding size bytes.
func (p *PoolMemory) selectBlock(size int) []byte {
	// freelist 通常不会设置太大，这里直接遍历查找
	var idx = -1
	for i, block := range p.freelist {
		if cap(block) >= size && (-1 == idx || cap(block) < cap(p.freelist[idx])) {
			idx = i
		}
	}

	if -1 == idx {
		return nil
	}

	// fast-remove
	selected := p.freelist[idx]
	var lastIdx = len(p.freelist) - 1
	p.freelist[idx], p.freelist[lastIdx] = p.freelist[lastIdx], nil
	p.freelist = p.freelist[:lastIdx]
	return selected
}
