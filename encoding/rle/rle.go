// Package rle implements the hybrid run-length/bit-packed codec used both
// standalone (definition/repetition levels, dictionary indices) and as the
// payload format of RLE_DICTIONARY encoded pages.
//
// The wire format is a sequence of runs, each introduced by a VLQ header
// whose low bit selects the run kind:
//
//   - header&1 == 0: bit-packed run. header>>1 is a number of groups of 8
//     values; groups*bitWidth bits follow, packed LSB-first via bitio.
//   - header&1 == 1: RLE run. header>>1 is a repeat count; ceil(bitWidth/8)
//     little-endian bytes follow, carrying the single repeated value.
package rle

import (
	"github.com/guangie88/parquetcore/bitio"
	"github.com/guangie88/parquetcore/errkind"
)

const groupSize = 8

// Encoder accumulates up to groupSize values at a time, emitting an RLE run
// when a full group is constant and a bit-packed run otherwise. bitWidth is
// fixed for the lifetime of the Encoder.
type Encoder struct {
	bitWidth int
	w        *bitio.Writer

	pending    [groupSize]uint64
	pendingLen int

	// bitPackRun buffers consecutive non-constant groups so they can share a
	// single bit-packed header instead of emitting one header per group of 8.
	bitPackRun []uint64

	rleValue uint64
	rleCount int
}

// NewEncoder returns an Encoder that packs values of the given bit width
// (0..64) onto w.
func NewEncoder(w *bitio.Writer, bitWidth int) *Encoder {
	return &Encoder{bitWidth: bitWidth, w: w}
}

// Reset discards any buffered state and redirects output to w.
func (e *Encoder) Reset(w *bitio.Writer) {
	e.w = w
	e.pendingLen = 0
	e.bitPackRun = e.bitPackRun[:0]
	e.rleCount = 0
}

// Put appends values to the run currently being assembled.
func (e *Encoder) Put(values []uint64) {
	for _, v := range values {
		e.pending[e.pendingLen] = v
		e.pendingLen++
		if e.pendingLen == groupSize {
			e.flushGroup()
		}
	}
}

// flushGroup decides whether the buffered group of 8 extends the current
// bit-packed run or starts (or extends) an RLE run, per the encoder policy
// in which an all-equal group prefers RLE.
func (e *Encoder) flushGroup() {
	group := e.pending[:groupSize]
	constant := true
	for i := 1; i < groupSize; i++ {
		if group[i] != group[0] {
			constant = false
			break
		}
	}

	if constant {
		e.flushBitPackRun()
		e.extendRLERun(group[0])
	} else {
		e.flushRLERun()
		e.bitPackRun = append(e.bitPackRun, group...)
	}
	e.pendingLen = 0
}

func (e *Encoder) extendRLERun(v uint64) {
	if e.rleCount > 0 && e.rleValue == v {
		e.rleCount += groupSize
		return
	}
	e.flushRLERun()
	e.rleValue = v
	e.rleCount = groupSize
}

func (e *Encoder) flushBitPackRun() {
	if len(e.bitPackRun) == 0 {
		return
	}
	groups := len(e.bitPackRun) / groupSize
	e.w.PutVLQ(uint64(groups) << 1)
	for _, v := range e.bitPackRun {
		e.w.PutValue(v, uint(e.bitWidth))
	}
	e.bitPackRun = e.bitPackRun[:0]
}

func (e *Encoder) flushRLERun() {
	if e.rleCount == 0 {
		return
	}
	e.w.PutVLQ((uint64(e.rleCount) << 1) | 1)
	nbytes := (e.bitWidth + 7) / 8
	e.w.PutAligned(e.rleValue, nbytes)
	e.rleCount = 0
}

// Flush emits any buffered values as a final (possibly short) bit-packed
// run, then aligns the output to a byte boundary. A short trailing group is
// zero-padded, which conforming decoders ignore because they stop after the
// number of values they were asked for.
func (e *Encoder) Flush() {
	if e.pendingLen > 0 {
		n := e.pendingLen
		for i := n; i < groupSize; i++ {
			e.pending[i] = 0
		}
		group := e.pending[:groupSize]
		constant := true
		for i := 1; i < n; i++ {
			if group[i] != group[0] {
				constant = false
				break
			}
		}
		e.flushBitPackRun()
		if constant && n == groupSize {
			e.extendRLERun(group[0])
		} else {
			e.flushRLERun()
			e.bitPackRun = append(e.bitPackRun, group...)
		}
		e.pendingLen = 0
	}
	e.flushBitPackRun()
	e.flushRLERun()
	e.w.Flush()
}

// MinBufferSize returns an upper bound, in bytes, on the framing overhead
// (the VLQ header) a single run for the given bit width can add.
func MinBufferSize(bitWidth int) int {
	return 1 + (bitWidth+7)/8
}

// MaxBufferSize upper-bounds the encoded size in bytes of n values at the
// given bit width, assuming the worst case of one bit-packed run with no
// RLE compression.
func MaxBufferSize(bitWidth, n int) int {
	groups := (n + groupSize - 1) / groupSize
	const headerBytes = 10 // worst-case VLQ header for a uint64 group count
	return headerBytes + groups*groupSize*bitWidth/8 + groupSize
}

// Decoder reads runs produced by Encoder. A single Decoder instance is
// reused across GetBatch calls until the underlying bitio.Reader is
// exhausted.
type Decoder struct {
	bitWidth int
	r        *bitio.Reader

	runValue     uint64
	runRemaining int
	bitPacked    bool
}

// NewDecoder returns a Decoder reading values of the given bit width from r.
func NewDecoder(r *bitio.Reader, bitWidth int) *Decoder {
	return &Decoder{bitWidth: bitWidth, r: r}
}

// Reset redirects the Decoder to read from r, discarding any in-progress
// run.
func (d *Decoder) Reset(r *bitio.Reader) {
	d.r = r
	d.runRemaining = 0
}

// GetBatch fills out with up to len(out) decoded values and returns the
// number actually produced; fewer than len(out) means the input ran out of
// runs to decode.
func (d *Decoder) GetBatch(out []uint64) (int, error) {
	n := 0
	for n < len(out) {
		if d.runRemaining == 0 {
			ok, err := d.nextRun()
			if err != nil {
				return n, err
			}
			if !ok {
				return n, nil
			}
		}
		if d.bitPacked {
			v, ok := d.r.GetValue(uint(d.bitWidth))
			if !ok {
				return n, errkind.New(errkind.EndOfInput, "rle.Decoder.GetBatch")
			}
			out[n] = v
		} else {
			out[n] = d.runValue
		}
		n++
		d.runRemaining--
	}
	return n, nil
}

// GetBatchWithDict decodes indices and gathers dict[idx] into out in a
// single pass, as used by RLE_DICTIONARY data pages. dictStride is the
// fixed byte width of each dictionary entry. It returns the number of
// values produced; an index outside the dictionary is reported as
// InvalidFormat.
func (d *Decoder) GetBatchWithDict(dict []byte, dictStride int, out []byte) (int, error) {
	if dictStride <= 0 {
		return 0, errkind.New(errkind.General, "rle.Decoder.GetBatchWithDict")
	}
	count := len(out) / dictStride
	indices := make([]uint64, count)
	n, err := d.GetBatch(indices)
	if err != nil {
		return n, err
	}
	numEntries := len(dict) / dictStride
	for i := 0; i < n; i++ {
		idx := indices[i]
		if idx >= uint64(numEntries) {
			return i, errkind.Errorf(errkind.InvalidFormat, "rle.Decoder.GetBatchWithDict", "dictionary index %d out of range", idx)
		}
		start := int(idx) * dictStride
		copy(out[i*dictStride:(i+1)*dictStride], dict[start:start+dictStride])
	}
	return n, nil
}

func (d *Decoder) nextRun() (bool, error) {
	header, ok := d.r.GetVLQ()
	if !ok {
		return false, nil
	}
	if header&1 == 1 {
		count := int(header >> 1)
		if count <= 0 {
			return false, errkind.New(errkind.InvalidFormat, "rle.Decoder.nextRun")
		}
		nbytes := (d.bitWidth + 7) / 8
		v, ok := d.r.GetAligned(nbytes)
		if !ok {
			return false, errkind.New(errkind.EndOfInput, "rle.Decoder.nextRun")
		}
		d.runValue = v
		d.runRemaining = count
		d.bitPacked = false
		return true, nil
	}

	groups := int(header >> 1)
	if groups <= 0 {
		return false, errkind.New(errkind.InvalidFormat, "rle.Decoder.nextRun")
	}
	d.runRemaining = groups * groupSize
	d.bitPacked = true
	return true, nil
}
