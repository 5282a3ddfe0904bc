package utils

import "sync"

// WipeChunk is the unit the engine blanks the medium in, matching the
// page size of the small EEPROMs FrogFS targets. Format wipes the whole
// medium in these steps; erase zeroes fragment chains the same way.
const WipeChunk = 16

// The pool holds fixed-size pages behind pointers so recycling them does
// not allocate a fresh slice header per format or erase pass.
var wipePool = sync.Pool{
	New: func() interface{} {
		return new([WipeChunk]byte)
	},
}

// GetWipePage returns an all-zero page of WipeChunk bytes. Recycled pages
// are re-zeroed here because callers hand them straight to storage writes.
func GetWipePage() *[WipeChunk]byte {
	page := wipePool.Get().(*[WipeChunk]byte)
	*page = [WipeChunk]byte{}
	return page
}

// ReleaseWipePage returns a page to the pool.
func ReleaseWipePage(page *[WipeChunk]byte) {
	wipePool.Put(page)
}
