// Package level encodes and decodes definition and repetition levels, the
// small integers that describe nullability and repeated-field nesting
// alongside each value in a data page.
//
// Two wire encodings exist:
//
//   - RLE: a 4-byte little-endian length prefix followed by the hybrid
//     run-length/bit-packed payload (encoding/rle) for that many bytes.
//   - BIT_PACKED: the legacy format, retained for data page v1
//     compatibility. No length prefix; exactly ceil(numValues*bitWidth/8)
//     bytes of LSB-first packed values.
//
// Levels are always non-negative and bounded by a schema-derived maxLevel,
// so BitWidth derives the packing width directly from it.
package level

import (
	"encoding/binary"

	"github.com/guangie88/parquetcore/bitio"
	"github.com/guangie88/parquetcore/encoding/rle"
	"github.com/guangie88/parquetcore/errkind"
)

// Encoding selects the wire format used for a stream of levels.
type Encoding int

const (
	RLE Encoding = iota
	BitPacked
)

// BitWidth returns ceil(log2(maxLevel+1)), the number of bits needed to
// represent every level in [0, maxLevel].
func BitWidth(maxLevel int) int {
	width := 0
	for n := maxLevel; n > 0; n >>= 1 {
		width++
	}
	return width
}

// Encoder produces either wire encoding for a fixed maxLevel.
type Encoder struct {
	encoding Encoding
	bitWidth int
	buf      *bitio.Writer
	rle      *rle.Encoder
}

// NewEncoder returns an Encoder for levels bounded by maxLevel, writing in
// the given Encoding. BIT_PACKED carries no hybrid run framing of its own,
// so its levels are packed directly onto buf and no rle.Encoder is built.
func NewEncoder(enc Encoding, maxLevel int) *Encoder {
	bitWidth := BitWidth(maxLevel)
	w := bitio.NewWriter(nil)
	e := &Encoder{
		encoding: enc,
		bitWidth: bitWidth,
		buf:      w,
	}
	if enc == RLE {
		e.rle = rle.NewEncoder(w, bitWidth)
	}
	return e
}

// Put appends levels to the stream being assembled.
func (e *Encoder) Put(levels []uint64) {
	if e.encoding == BitPacked {
		for _, v := range levels {
			e.buf.PutValue(v, uint(e.bitWidth))
		}
		return
	}
	e.rle.Put(levels)
}

// Bytes finalizes the stream and returns its wire representation: for RLE,
// the 4-byte length prefix followed by the hybrid payload; for BIT_PACKED,
// the raw LSB-first packed bytes, with no run framing at all.
func (e *Encoder) Bytes() []byte {
	if e.encoding == RLE {
		e.rle.Flush()
	} else {
		e.buf.Flush()
	}
	payload := e.buf.Bytes()

	switch e.encoding {
	case BitPacked:
		return payload
	default:
		out := make([]byte, 4+len(payload))
		binary.LittleEndian.PutUint32(out, uint32(len(payload)))
		copy(out[4:], payload)
		return out
	}
}

// Reset discards any buffered levels and prepares the Encoder to produce a
// fresh stream for the same maxLevel and Encoding.
func (e *Encoder) Reset() {
	e.buf.Reset(nil)
	if e.encoding == RLE {
		e.rle.Reset(e.buf)
	}
}

// Decoder reads a stream of levels produced by Encoder (or by any
// conforming writer of the same wire format).
type Decoder struct {
	maxLevel        int
	bitWidth        int
	rle             *rle.Decoder
	bitPackedReader *bitio.Reader
}

// NewDecoder returns a Decoder for levels bounded by maxLevel.
func NewDecoder(maxLevel int) *Decoder {
	return &Decoder{maxLevel: maxLevel, bitWidth: BitWidth(maxLevel)}
}

// SetData configures the Decoder to read RLE-encoded levels from buf, which
// must begin with the 4-byte length prefix described at the top of this
// file, as used by DataPage v1. numBufferedValues is an upper bound on how
// many levels GetBatch calls against this buffer will be asked to produce;
// it does not gate decoding itself.
func (d *Decoder) SetData(numBufferedValues int, buf []byte) error {
	if len(buf) < 4 {
		return errkind.New(errkind.EndOfInput, "level.Decoder.SetData")
	}
	n := binary.LittleEndian.Uint32(buf)
	if int(n) > len(buf)-4 {
		return errkind.New(errkind.EndOfInput, "level.Decoder.SetData")
	}
	d.bitPackedReader = nil
	d.rle = rle.NewDecoder(bitio.NewReader(buf[4:4+n]), d.bitWidth)
	return nil
}

// SetDataRange configures the Decoder to read RLE-encoded levels from
// buf[start:start+length], with no length prefix, as used by DataPage v2
// where the byte length is carried in the page header rather than inline.
// SetDataRange is only valid for the RLE wire format: BIT_PACKED carries no
// inner framing for GetBatch to stop at, so calling it with that encoding
// is a contract violation and returns InvalidFormat.
func (d *Decoder) SetDataRange(numBufferedValues int, buf []byte, start, length int, enc Encoding) error {
	if enc == BitPacked {
		return errkind.New(errkind.InvalidFormat, "level.Decoder.SetDataRange")
	}
	if start < 0 || length < 0 || start+length > len(buf) {
		return errkind.New(errkind.EndOfInput, "level.Decoder.SetDataRange")
	}
	d.bitPackedReader = nil
	d.rle = rle.NewDecoder(bitio.NewReader(buf[start:start+length]), d.bitWidth)
	return nil
}

// SetBitPackedData configures the Decoder to read exactly
// ceil(numValues*bitWidth/8) bytes of legacy BIT_PACKED levels from buf, with
// no length prefix and no run framing: every value is encoded as one
// fixed-width bit-packed group.
func (d *Decoder) SetBitPackedData(numValues int, buf []byte) error {
	want := (numValues*d.bitWidth + 7) / 8
	if len(buf) < want {
		return errkind.New(errkind.EndOfInput, "level.Decoder.SetBitPackedData")
	}
	d.rle = nil
	d.bitPackedReader = bitio.NewReader(buf[:want])
	return nil
}

// GetBatch fills out with up to len(out) decoded levels, returning the
// number actually produced.
func (d *Decoder) GetBatch(out []uint64) (int, error) {
	if d.bitPackedReader != nil {
		n := 0
		for n < len(out) {
			v, ok := d.bitPackedReader.GetValue(uint(d.bitWidth))
			if !ok {
				return n, nil
			}
			out[n] = v
			n++
		}
		return n, nil
	}
	if d.rle == nil {
		return 0, errkind.New(errkind.General, "level.Decoder.GetBatch: no data set")
	}
	return d.rle.GetBatch(out)
}
