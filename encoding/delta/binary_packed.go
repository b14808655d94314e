// Package delta implements the DELTA_BINARY_PACKED, DELTA_LENGTH_BYTE_ARRAY
// and DELTA_BYTE_ARRAY encodings.
//
// DELTA_BINARY_PACKED stores a page as a VLQ header (block_size,
// num_miniblocks, total_values, zigzag first_value) followed by one or more
// blocks. Each block stores a zigzag min_delta, one bit-width byte per
// miniblock, then that many miniblocks of unsigned, min_delta-normalized
// deltas packed LSB-first. Every value after the first is reconstructed as
// current = current + min_delta + packed_delta, using wrapping
// (two's-complement) arithmetic throughout. Internally this module always
// works in int64 space; the INT32 variants narrow by truncation, matching
// the Parquet format rather than a checked conversion.
package delta

import (
	"github.com/guangie88/parquetcore/bitio"
	"github.com/guangie88/parquetcore/errkind"
	"github.com/guangie88/parquetcore/internal/bits"
)

const (
	// DefaultBlockSize is the number of deltas grouped into one block.
	DefaultBlockSize = 128
	// DefaultNumMiniBlocks is the number of miniblocks per block.
	DefaultNumMiniBlocks = 4
	// DefaultMiniBlockSize is DefaultBlockSize / DefaultNumMiniBlocks.
	DefaultMiniBlockSize = DefaultBlockSize / DefaultNumMiniBlocks
)

// binaryPackedEncoder accumulates int64 values and produces a
// DELTA_BINARY_PACKED page at FlushBuffer, using the fixed block geometry
// (block_size=128, num_miniblocks=4, so miniblock_size=32).
type binaryPackedEncoder struct {
	values []int64
}

func (e *binaryPackedEncoder) put(values []int64) {
	e.values = append(e.values, values...)
}

func (e *binaryPackedEncoder) flushBuffer() []byte {
	w := bitio.NewWriter(nil)

	var first int64
	if len(e.values) > 0 {
		first = e.values[0]
	}
	w.PutVLQ(DefaultBlockSize)
	w.PutVLQ(DefaultNumMiniBlocks)
	w.PutVLQ(uint64(len(e.values)))
	w.PutZigZagVLQ(first)

	var deltas []int64
	if n := len(e.values); n > 1 {
		deltas = make([]int64, n-1)
		for i := 1; i < n; i++ {
			deltas[i-1] = e.values[i] - e.values[i-1] // wrapping: Go integer subtraction already wraps
		}
	}

	for start := 0; start < len(deltas); start += DefaultBlockSize {
		end := start + DefaultBlockSize
		if end > len(deltas) {
			end = len(deltas)
		}
		encodeBlock(w, deltas[start:end])
	}

	e.values = e.values[:0]
	w.Flush()
	return w.Bytes()
}

// encodeBlock writes one block's worth (up to DefaultBlockSize) of deltas.
func encodeBlock(w *bitio.Writer, deltas []int64) {
	minDelta := deltas[0]
	for _, d := range deltas[1:] {
		if d < minDelta {
			minDelta = d
		}
	}
	w.PutZigZagVLQ(minDelta)

	normalized := make([]uint64, DefaultBlockSize)
	for i, d := range deltas {
		normalized[i] = uint64(d - minDelta) // wrapping
	}

	widths := w.ReserveBytes(DefaultNumMiniBlocks)
	for m := 0; m < DefaultNumMiniBlocks; m++ {
		blockStart := m * DefaultMiniBlockSize
		valid := len(deltas) - blockStart
		if valid <= 0 {
			continue
		}
		if valid > DefaultMiniBlockSize {
			valid = DefaultMiniBlockSize
		}
		width := bits.MaxLen64(normalized[blockStart : blockStart+valid])
		widths.Bytes()[m] = byte(width)
		for i := 0; i < DefaultMiniBlockSize; i++ {
			w.PutValue(normalized[blockStart+i], uint(width))
		}
	}
}

// binaryPackedDecoder reads a DELTA_BINARY_PACKED page, exposing int64
// values one block at a time.
//
// Every miniblock packs a full DefaultMiniBlockSize values regardless of
// how many of them are real (the rest is zero padding), so decodeBlock
// always reads the whole padded block in one pass before trimming to the
// values that actually remain — reading only blockValuesLeft values, as a
// naive per-value reader would, leaves the bit reader mid-miniblock and
// throws off every byte offset computed from it afterward.
type binaryPackedDecoder struct {
	r *bitio.Reader

	blockSize      int
	numMiniBlocks  int
	miniBlockSize  int
	totalValues    int
	valuesReturned int

	current int64

	widths      []byte
	blockValues []int64
	blockPos    int
}

func newBinaryPackedDecoder(buf []byte) (*binaryPackedDecoder, error) {
	r := bitio.NewReader(buf)
	blockSize, ok := r.GetVLQ()
	if !ok {
		return nil, errkind.New(errkind.EndOfInput, "delta.binaryPackedDecoder")
	}
	numMiniBlocks, ok := r.GetVLQ()
	if !ok {
		return nil, errkind.New(errkind.EndOfInput, "delta.binaryPackedDecoder")
	}
	if numMiniBlocks == 0 || blockSize%numMiniBlocks != 0 {
		return nil, errkind.New(errkind.InvalidFormat, "delta.binaryPackedDecoder")
	}
	miniBlockSize := int(blockSize / numMiniBlocks)
	if miniBlockSize%8 != 0 {
		return nil, errkind.New(errkind.InvalidFormat, "delta.binaryPackedDecoder")
	}
	totalValues, ok := r.GetVLQ()
	if !ok {
		return nil, errkind.New(errkind.EndOfInput, "delta.binaryPackedDecoder")
	}
	first, ok := r.GetZigZagVLQ()
	if !ok {
		return nil, errkind.New(errkind.EndOfInput, "delta.binaryPackedDecoder")
	}

	return &binaryPackedDecoder{
		r:             r,
		blockSize:     int(blockSize),
		numMiniBlocks: int(numMiniBlocks),
		miniBlockSize: miniBlockSize,
		totalValues:   int(totalValues),
		current:       first,
		widths:        make([]byte, numMiniBlocks),
	}, nil
}

func (d *binaryPackedDecoder) valuesLeft() int {
	return d.totalValues - d.valuesReturned
}

// next returns the next decoded int64, advancing through block framing as
// needed.
func (d *binaryPackedDecoder) next() (int64, error) {
	if d.valuesReturned == 0 {
		d.valuesReturned++
		return d.current, nil
	}

	if d.blockPos >= len(d.blockValues) {
		if err := d.decodeBlock(); err != nil {
			return 0, err
		}
	}

	d.current = d.blockValues[d.blockPos]
	d.blockPos++
	d.valuesReturned++
	return d.current, nil
}

// decodeBlock reads one whole block, including the zero padding of any
// miniblock whose real values run out before DefaultMiniBlockSize, then
// turns the normalized deltas into absolute values by a running prefix
// sum seeded with d.current.
func (d *binaryPackedDecoder) decodeBlock() error {
	minDelta, ok := d.r.GetZigZagVLQ()
	if !ok {
		return errkind.New(errkind.EndOfInput, "delta.binaryPackedDecoder.decodeBlock")
	}

	for m := 0; m < d.numMiniBlocks; m++ {
		v, ok := d.r.GetAligned(1)
		if !ok {
			return errkind.New(errkind.EndOfInput, "delta.binaryPackedDecoder.decodeBlock")
		}
		if v > 64 {
			return errkind.New(errkind.InvalidFormat, "delta.binaryPackedDecoder.decodeBlock")
		}
		d.widths[m] = byte(v)
	}

	if cap(d.blockValues) < d.blockSize {
		d.blockValues = make([]int64, d.blockSize)
	} else {
		d.blockValues = d.blockValues[:d.blockSize]
	}
	for i := range d.blockValues {
		d.blockValues[i] = 0
	}

	for m, width := range d.widths {
		if width == 0 {
			continue
		}
		start := m * d.miniBlockSize
		for i := 0; i < d.miniBlockSize; i++ {
			packed, ok := d.r.GetValue(uint(width))
			if !ok {
				return errkind.New(errkind.EndOfInput, "delta.binaryPackedDecoder.decodeBlock")
			}
			d.blockValues[start+i] = int64(packed)
		}
	}

	remaining := d.totalValues - d.valuesReturned
	if remaining < len(d.blockValues) {
		d.blockValues = d.blockValues[:remaining]
	}

	for i := range d.blockValues {
		d.blockValues[i] += minDelta // wrapping
	}
	if len(d.blockValues) > 0 {
		d.blockValues[0] += d.current
		for i := 1; i < len(d.blockValues); i++ {
			d.blockValues[i] += d.blockValues[i-1] // wrapping
		}
	}
	d.blockPos = 0
	return nil
}

// byteOffset aligns the underlying bit reader to the next byte boundary
// and returns its offset. Every block this decoder reads consumes whole
// padded miniblocks, so once a stream has been fully drained the reader
// sits exactly at the last bit FlushBuffer's encoder wrote before its
// final byte-aligning Flush; aligning here skips past that same padding
// rather than pointing back into it.
func (d *binaryPackedDecoder) byteOffset() int {
	d.r.AlignToByte()
	return d.r.ByteOffset()
}

// Int32Decoder decodes DELTA_BINARY_PACKED values into int32, truncating
// the internal int64 arithmetic as the Parquet format requires.
type Int32Decoder struct{ core *binaryPackedDecoder }

// NewInt32Decoder returns a decoder reading a DELTA_BINARY_PACKED page from
// buf.
func NewInt32Decoder(buf []byte) (*Int32Decoder, error) {
	core, err := newBinaryPackedDecoder(buf)
	if err != nil {
		return nil, err
	}
	return &Int32Decoder{core: core}, nil
}

// ByteOffset returns the byte offset, within the buffer this decoder was
// constructed from, of the first byte past its encoded stream. Only valid
// once ValuesLeft() has reached zero: callers that stop reading early
// only get a lower bound, not the stream's true end.
func (d *Int32Decoder) ByteOffset() int { return d.core.byteOffset() }

// ValuesLeft returns the number of values not yet returned by Get.
func (d *Int32Decoder) ValuesLeft() int { return d.core.valuesLeft() }

// Get fills out with up to min(len(out), ValuesLeft()) values.
func (d *Int32Decoder) Get(out []int32) (int, error) {
	n := len(out)
	if left := d.core.valuesLeft(); n > left {
		n = left
	}
	for i := 0; i < n; i++ {
		v, err := d.core.next()
		if err != nil {
			return i, err
		}
		out[i] = int32(v)
	}
	return n, nil
}

// Int64Decoder decodes DELTA_BINARY_PACKED values into int64.
type Int64Decoder struct{ core *binaryPackedDecoder }

// NewInt64Decoder returns a decoder reading a DELTA_BINARY_PACKED page from
// buf.
func NewInt64Decoder(buf []byte) (*Int64Decoder, error) {
	core, err := newBinaryPackedDecoder(buf)
	if err != nil {
		return nil, err
	}
	return &Int64Decoder{core: core}, nil
}

// ValuesLeft returns the number of values not yet returned by Get.
func (d *Int64Decoder) ValuesLeft() int { return d.core.valuesLeft() }

// Get fills out with up to min(len(out), ValuesLeft()) values.
func (d *Int64Decoder) Get(out []int64) (int, error) {
	n := len(out)
	if left := d.core.valuesLeft(); n > left {
		n = left
	}
	for i := 0; i < n; i++ {
		v, err := d.core.next()
		if err != nil {
			return i, err
		}
		out[i] = v
	}
	return n, nil
}

// Int32Encoder accumulates int32 values and produces a DELTA_BINARY_PACKED
// page.
type Int32Encoder struct{ core binaryPackedEncoder }

// Put appends values to the buffer being assembled.
func (e *Int32Encoder) Put(values []int32) {
	converted := make([]int64, len(values))
	for i, v := range values {
		converted[i] = int64(v)
	}
	e.core.put(converted)
}

// FlushBuffer finalizes and returns the encoded page, resetting the
// encoder so it can be reused.
func (e *Int32Encoder) FlushBuffer() []byte { return e.core.flushBuffer() }

// Int64Encoder accumulates int64 values and produces a DELTA_BINARY_PACKED
// page.
type Int64Encoder struct{ core binaryPackedEncoder }

// Put appends values to the buffer being assembled.
func (e *Int64Encoder) Put(values []int64) { e.core.put(values) }

// FlushBuffer finalizes and returns the encoded page, resetting the
// encoder so it can be reused.
func (e *Int64Encoder) FlushBuffer() []byte { return e.core.flushBuffer() }
