package nms

import (
	"sync"
)

// maxPooledBoxes is the largest box count whose suppression flags are kept
// for reuse, selections over more boxes allocate their flags per call
const maxPooledBoxes = 65536

// flagPool recycles suppression flag buffers between Select calls
type flagPool struct {
	pool sync.Pool
}

func newFlagPool() *flagPool {

	fp := &flagPool{}

	fp.pool.New = func() any {
		return make([]uint8, maxPooledBoxes)
	}

	return fp
}

// Get returns a zeroed flag buffer holding n flags
func (f *flagPool) Get(n int) []uint8 {

	if n > maxPooledBoxes {
		return make([]uint8, n)
	}

	buf := f.pool.Get().([]uint8)
	buf = buf[:n]

	for i := range buf {
		buf[i] = 0
	}

	return buf
}

// Put hands a buffer back for reuse.  Oversized buffers allocated per call
// by Get are left to the garbage collector instead.
func (f *flagPool) Put(buf []uint8) {

	if cap(buf) != maxPooledBoxes {
		return
	}

	f.pool.Put(buf[:maxPooledBoxes])
}
