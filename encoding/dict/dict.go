// Package dict implements the open-addressed dictionary construction used
// by RLE_DICTIONARY and PLAIN_DICTIONARY data pages: a hash table mapping a
// value's byte representation to its index into a dense, first-occurrence-
// ordered vector of unique values, plus the buffered-indices-to-RLE-stream
// encoder that rides on top of it.
//
// Dictionary keys are opaque byte strings: fixed-width slices of the
// PLAIN-encoded bytes for numeric and FIXED_LEN_BYTE_ARRAY columns, or the
// raw content bytes (no length prefix) for BYTE_ARRAY columns. Equality and
// hashing operate uniformly on these byte strings so one table
// implementation serves every physical type.
package dict

import (
	"bytes"

	"github.com/guangie88/parquetcore/bitio"
	"github.com/guangie88/parquetcore/encoding/rle"
	"github.com/guangie88/parquetcore/internal/wyhash"
)

const (
	initialSlots  = 1024
	maxLoadFactor = 0.7
)

// Encoder builds a dictionary of unique values in first-occurrence order
// and accumulates the per-row index of each value put into it.
//
// The table starts at 1024 slots and doubles (rehashing every occupant,
// since probe positions depend on the slot count) whenever the load factor
// would exceed 0.7. Table geometry affects memory footprint only: the
// dictionary index assigned to a value is its first-occurrence order,
// independent of hash table size, so two Encoders fed the same input in
// the same order always agree byte-for-byte.
type Encoder struct {
	slots    []int32 // index+1 into uniques; 0 means empty
	mask     uint64
	uniques  [][]byte
	buffered []uint64
	hashSeed uint64
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.growTo(initialSlots)
	return e
}

// Reset discards every unique value and buffered index, returning the
// Encoder to its initial empty state.
func (e *Encoder) Reset() {
	e.slots = nil
	e.uniques = e.uniques[:0]
	e.buffered = e.buffered[:0]
	e.growTo(initialSlots)
}

// Len returns the number of unique values recorded so far.
func (e *Encoder) Len() int { return len(e.uniques) }

// Uniques returns the dense, first-occurrence-ordered vector of unique
// dictionary keys. The caller must not mutate the returned slices.
func (e *Encoder) Uniques() [][]byte { return e.uniques }

// Put records one occurrence of key, inserting it into the dictionary if
// not already present, buffering its index for the next WriteIndices call,
// and returning that index.
func (e *Encoder) Put(key []byte) int {
	idx := e.indexOf(key)
	e.buffered = append(e.buffered, uint64(idx))
	return idx
}

func (e *Encoder) indexOf(key []byte) int {
	h := wyhash.Bytes(key, e.hashSeed)
	slot := h & e.mask
	for {
		occupant := e.slots[slot]
		if occupant == 0 {
			idx := len(e.uniques)
			e.uniques = append(e.uniques, append([]byte(nil), key...))
			e.slots[slot] = int32(idx + 1)
			if float64(len(e.uniques)) > maxLoadFactor*float64(len(e.slots)) {
				e.growTo(len(e.slots) * 2)
			}
			return idx
		}
		if bytes.Equal(e.uniques[occupant-1], key) {
			return int(occupant - 1)
		}
		slot = (slot + 1) & e.mask
	}
}

// growTo reallocates the slot array to n slots (a power of 2) and
// rehashes every occupant, since the probe sequence for a given key
// depends on the slot count.
func (e *Encoder) growTo(n int) {
	e.slots = make([]int32, n)
	e.mask = uint64(n - 1)
	for idx, key := range e.uniques {
		h := wyhash.Bytes(key, e.hashSeed)
		slot := h & e.mask
		for e.slots[slot] != 0 {
			slot = (slot + 1) & e.mask
		}
		e.slots[slot] = int32(idx + 1)
	}
}

// BitWidth returns the number of bits needed to represent every index in
// [0, Len()-1]: 0 when the dictionary has 0 or 1 entries.
func (e *Encoder) BitWidth() int {
	return BitWidth(e.Len())
}

// BitWidth returns the number of bits needed to represent every dictionary
// index in [0, n-1].
func BitWidth(n int) int {
	if n <= 1 {
		return 0
	}
	width := 0
	for m := n - 1; m > 0; m >>= 1 {
		width++
	}
	return width
}

// WriteIndices encodes the buffered indices as the leading bit-width byte
// followed by the hybrid RLE payload (encoding/rle), then clears the
// buffer so the Encoder is ready for the next page.
func (e *Encoder) WriteIndices() []byte {
	bitWidth := e.BitWidth()
	w := bitio.NewWriter(nil)
	enc := rle.NewDictEncoder(w, bitWidth)
	enc.WriteBitWidth()
	enc.Put(e.buffered)
	enc.Flush()
	e.buffered = e.buffered[:0]
	return w.Bytes()
}

// Decoder wraps an rle.DictDecoder with the dictionary payload (gathered
// from a PLAIN-decoded dictionary page) that indices are resolved against.
type Decoder struct {
	dec    *rle.DictDecoder
	dict   []byte
	stride int
}

// NewDecoder returns a Decoder over the RLE_DICTIONARY-encoded buf (which
// must begin with the bit-width byte) resolving indices against dict, whose
// entries are each stride bytes wide.
func NewDecoder(buf []byte, dict []byte, stride int) (*Decoder, error) {
	d, err := rle.NewDictDecoder(bitio.NewReader(buf))
	if err != nil {
		return nil, err
	}
	return &Decoder{dec: d, dict: dict, stride: stride}, nil
}

// Get resolves up to len(out)/stride indices into dictionary entries,
// copying each resolved entry's bytes into out.
func (d *Decoder) Get(out []byte) (int, error) {
	return d.dec.GetBatchWithDict(d.dict, d.stride, out)
}
