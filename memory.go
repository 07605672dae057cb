package dynarray

// Memory supplies the backing buffers of an Array. The default uses Go heap memory.
//
// Alloc returns a slice of at least size bytes, or nil when the memory
// cannot be obtained. The slice must start at an address aligned for the
// element types stored in it; Go heap allocations always are. Free receives
// every slice Alloc returned, as returned, once the array stops using it.
type Memory interface {
	Alloc(size int) []byte
	Free(m []byte)
}

type heapMemory struct{}

func (heapMemory) Alloc(size int) (m []byte) {
	if size <= 0 {
		return nil
	}
	// makeslice 在长度非法时会 panic，这里转换为分配失败
	defer func() {
		if recover() != nil {
			m = nil
		}
	}()
	return make([]byte, size)
}

func (heapMemory) Free([]byte) {
}

// LimitedMemory is a heap-backed Memory that refuses allocations once the
// live byte count would exceed a limit. Useful to bound an array's footprint
// and to exercise allocation failures.
type LimitedMemory struct {
	limit  int
	inUse  int
	allocs int
	frees  int
}

// NewLimitedMemory creates a LimitedMemory allowing at most limit live bytes.
func NewLimitedMemory(limit int) *LimitedMemory {
	return &LimitedMemory{limit: limit}
}

// Alloc allocates size bytes unless that would exceed the limit.
func (m *LimitedMemory) Alloc(size int) []byte {
	if size <= 0 || size > m.limit-m.inUse {
		return nil
	}
	m.inUse += size
	m.allocs++
	return make([]byte, size)
}

// Free returns the bytes of b to the budget.
func (m *LimitedMemory) Free(b []byte) {
	if b == nil {
		return
	}
	m.inUse -= len(b)
	m.frees++
}

// SetLimit changes the limit. Live bytes above the new limit are not reclaimed.
func (m *LimitedMemory) SetLimit(limit int) {
	m.limit = limit
}

// InUse returns the number of live bytes.
func (m *LimitedMemory) InUse() int {
	return m.inUse
}

// Allocs returns the number of successful allocations.
func (m *LimitedMemory) Allocs() int {
	return m.allocs
}

// Frees returns the number of released buffers.
func (m *LimitedMemory) Frees() int {
	return m.frees
}

// allocate obtains size bytes from mem. buf is the block trimmed to exactly
// size bytes, block is the slice as mem returned it and the one to Free.
func allocate(mem Memory, size int) (buf, block []byte) {
	block = mem.Alloc(size)
	if block == nil {
		return nil, nil
	}
	if len(block) < size {
		mem.Free(block)
		return nil, nil
	}
	return block[:size:size], block
}
