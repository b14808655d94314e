// Package byteview implements the two buffer abstractions the codecs in
// this module share: an immutable, cheaply-sliceable View over a byte
// region, and a growable Buffer used to accumulate encoder output.
//
// Multiple Views may reference overlapping regions of the same backing
// array without copying; the backing array is released once the last View
// referencing it is no longer reachable, left to the garbage collector as
// the teacher's row-level allocator.go leaves its own buffers.
package byteview

// View is an immutable, shareable byte-range view. Views are cheap to
// create and to sub-slice: Range, StartFrom and All never copy the backing
// array. A View must not be mutated once published — callers that need to
// mutate should copy via Bytes() into a new slice first.
type View struct {
	data []byte
}

// New wraps data in a View. The caller must not mutate data afterwards.
func New(data []byte) View {
	return View{data: data}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the underlying byte slice. Callers must treat it as
// read-only.
func (v View) Bytes() []byte {
	return v.data
}

// Range returns the sub-view [start, start+length), sharing the same
// backing array.
func (v View) Range(start, length int) View {
	return View{data: v.data[start : start+length : start+length]}
}

// StartFrom returns the sub-view [start, len(v)), sharing the same backing
// array.
func (v View) StartFrom(start int) View {
	return View{data: v.data[start:]}
}

// All returns v itself: a View over exactly the bytes v covers, without
// copying. On a sub-view it does not widen back to the parent's range.
func (v View) All() View {
	return v
}

// MemoryAccounting is a caller-provided hook that tracks allocations made by
// a Buffer. Increment and Decrement are called with the number of bytes
// gained or released by a single resize; implementations that are shared
// across goroutines are responsible for their own synchronization — Buffer
// itself performs none.
type MemoryAccounting interface {
	Increment(n int)
	Decrement(n int)
}

// Buffer is a growable byte buffer used by encoders to accumulate output.
// An optional MemoryAccounting hook is notified of net allocation changes
// whenever the backing array is resized.
type Buffer struct {
	data    []byte
	account MemoryAccounting
}

// NewBuffer returns an empty Buffer, optionally reporting allocations to
// account.
func NewBuffer(account MemoryAccounting) *Buffer {
	return &Buffer{account: account}
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer's contents. The returned slice is aliased by the
// Buffer and becomes invalid after the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// View returns an immutable View over the buffer's current contents, sharing
// its backing array. Later Append and Reserve calls only write past the
// View's end, and Reset and Consume drop the Buffer's reference to the
// array rather than reusing it, so none of them change the View's bytes.
func (b *Buffer) View() View {
	return View{data: b.data}
}

// Grow ensures at least n more bytes of capacity are available, reporting
// the delta to the memory accounting hook if one is attached.
func (b *Buffer) Grow(n int) {
	if free := cap(b.data) - len(b.data); free < n {
		newCap := 2 * cap(b.data)
		if newCap == 0 {
			newCap = 256
		}
		for newCap < len(b.data)+n {
			newCap *= 2
		}
		grown := make([]byte, len(b.data), newCap)
		copy(grown, b.data)
		if b.account != nil {
			b.account.Increment(newCap - cap(b.data))
		}
		b.data = grown
	}
}

// Append appends p to the buffer, growing it as needed.
func (b *Buffer) Append(p []byte) {
	b.Grow(len(p))
	b.data = append(b.data, p...)
}

// Reserve appends n zero bytes and returns the index at which they start,
// for callers that want to fill them in place (mirrors bitio.ReserveBytes
// at the byte-buffer level).
func (b *Buffer) Reserve(n int) int {
	b.Grow(n)
	i := len(b.data)
	b.data = b.data[:i+n]
	return i
}

// Reset empties the buffer and drops its backing array, reporting the
// released capacity to the memory accounting hook if one is attached.
func (b *Buffer) Reset() {
	if b.account != nil && cap(b.data) > 0 {
		b.account.Decrement(cap(b.data))
	}
	b.data = nil
}

// Consume returns the finalized contents as a View and resets the buffer to
// empty, handing ownership of the backing array to the returned View.
func (b *Buffer) Consume() View {
	v := View{data: b.data}
	b.data = nil
	return v
}
