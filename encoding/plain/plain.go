// Package plain implements the PLAIN encoding for every physical type: a
// fixed-width, little-endian, tightly-packed representation for numeric
// types, LSB-first bit packing for BOOLEAN, length-prefixed records for
// BYTE_ARRAY, and unprefixed TypeLength-byte records for
// FIXED_LEN_BYTE_ARRAY.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"encoding/binary"
	"math"

	"github.com/guangie88/parquetcore/bitio"
	"github.com/guangie88/parquetcore/byteview"
	"github.com/guangie88/parquetcore/deprecated"
	"github.com/guangie88/parquetcore/errkind"
)

// ByteArrayLengthSize is the width, in bytes, of the length prefix that
// precedes every BYTE_ARRAY value.
const ByteArrayLengthSize = 4

// NextByteArray splits the next length-prefixed value off the front of buf,
// returning a View over its payload (sharing buf's backing array) and the
// byte offset immediately following it.
func NextByteArray(view byteview.View, offset int) (byteview.View, int, error) {
	buf := view.Bytes()
	if offset+ByteArrayLengthSize > len(buf) {
		return byteview.View{}, offset, errkind.New(errkind.EndOfInput, "plain.NextByteArray")
	}
	n := int(binary.LittleEndian.Uint32(buf[offset : offset+ByteArrayLengthSize]))
	if n < 0 {
		return byteview.View{}, offset, errkind.New(errkind.InvalidFormat, "plain.NextByteArray")
	}
	start := offset + ByteArrayLengthSize
	if start+n > len(buf) {
		return byteview.View{}, offset, errkind.New(errkind.EndOfInput, "plain.NextByteArray")
	}
	return view.Range(start, n), start + n, nil
}

// AppendByteArray appends v to b as a PLAIN-encoded BYTE_ARRAY value: a
// 4-byte little-endian length followed by v's bytes.
func AppendByteArray(b, v []byte) []byte {
	var length [ByteArrayLengthSize]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(v)))
	b = append(b, length[:]...)
	b = append(b, v...)
	return b
}

// BooleanDecoder reads PLAIN-encoded BOOLEAN values: one bit per value,
// LSB-first.
type BooleanDecoder struct {
	r         *bitio.Reader
	numValues int
	pos       int
}

// SetData configures the decoder to read numValues booleans from buf.
func (d *BooleanDecoder) SetData(buf []byte, numValues int) error {
	d.r = bitio.NewReader(buf)
	d.numValues = numValues
	d.pos = 0
	return nil
}

// ValuesLeft returns the number of values not yet returned by Get.
func (d *BooleanDecoder) ValuesLeft() int { return d.numValues - d.pos }

// Get fills out with up to min(len(out), ValuesLeft()) values.
func (d *BooleanDecoder) Get(out []bool) (int, error) {
	n := len(out)
	if left := d.ValuesLeft(); n > left {
		n = left
	}
	for i := 0; i < n; i++ {
		v, ok := d.r.GetValue(1)
		if !ok {
			return i, errkind.New(errkind.EndOfInput, "plain.BooleanDecoder.Get")
		}
		out[i] = v != 0
	}
	d.pos += n
	return n, nil
}

// BooleanEncoder accumulates PLAIN-encoded BOOLEAN values.
type BooleanEncoder struct {
	w *bitio.Writer
}

// Put appends values to the buffer being assembled.
func (e *BooleanEncoder) Put(values []bool) {
	if e.w == nil {
		e.w = bitio.NewWriter(nil)
	}
	for _, v := range values {
		bit := uint64(0)
		if v {
			bit = 1
		}
		e.w.PutValue(bit, 1)
	}
}

// FlushBuffer finalizes and returns the encoded bytes, resetting the
// encoder so it can be reused.
func (e *BooleanEncoder) FlushBuffer() []byte {
	if e.w == nil {
		return nil
	}
	e.w.Flush()
	out := e.w.Bytes()
	e.w = nil
	return out
}

// fixedWidthDecoder implements the shared mechanics of the fixed-width
// PLAIN decoders (INT32, INT64, FLOAT, DOUBLE, INT96 and
// FIXED_LEN_BYTE_ARRAY): tightly packed, width bytes per value.
type fixedWidthDecoder struct {
	buf       []byte
	width     int
	numValues int
	pos       int
}

func (d *fixedWidthDecoder) setData(buf []byte, width, numValues int) error {
	if len(buf) < numValues*width {
		return errkind.New(errkind.EndOfInput, "plain.fixedWidthDecoder.SetData")
	}
	d.buf = buf
	d.width = width
	d.numValues = numValues
	d.pos = 0
	return nil
}

func (d *fixedWidthDecoder) valuesLeft() int { return d.numValues - d.pos }

func (d *fixedWidthDecoder) take(n int) []byte {
	start := d.pos * d.width
	d.pos += n
	return d.buf[start : start+n*d.width]
}

// Int32Decoder reads PLAIN-encoded INT32 values.
type Int32Decoder struct{ fixedWidthDecoder }

func (d *Int32Decoder) SetData(buf []byte, numValues int) error {
	return d.setData(buf, 4, numValues)
}
func (d *Int32Decoder) ValuesLeft() int { return d.valuesLeft() }
func (d *Int32Decoder) Get(out []int32) (int, error) {
	n := len(out)
	if left := d.valuesLeft(); n > left {
		n = left
	}
	raw := d.take(n)
	for i := 0; i < n; i++ {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return n, nil
}

// Int32Encoder accumulates PLAIN-encoded INT32 values.
type Int32Encoder struct{ buf []byte }

func (e *Int32Encoder) Put(values []int32) {
	for _, v := range values {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		e.buf = append(e.buf, b[:]...)
	}
}
func (e *Int32Encoder) FlushBuffer() []byte {
	out := e.buf
	e.buf = nil
	return out
}

// Int64Decoder reads PLAIN-encoded INT64 values.
type Int64Decoder struct{ fixedWidthDecoder }

func (d *Int64Decoder) SetData(buf []byte, numValues int) error {
	return d.setData(buf, 8, numValues)
}
func (d *Int64Decoder) ValuesLeft() int { return d.valuesLeft() }
func (d *Int64Decoder) Get(out []int64) (int, error) {
	n := len(out)
	if left := d.valuesLeft(); n > left {
		n = left
	}
	raw := d.take(n)
	for i := 0; i < n; i++ {
		out[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return n, nil
}

// Int64Encoder accumulates PLAIN-encoded INT64 values.
type Int64Encoder struct{ buf []byte }

func (e *Int64Encoder) Put(values []int64) {
	for _, v := range values {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		e.buf = append(e.buf, b[:]...)
	}
}
func (e *Int64Encoder) FlushBuffer() []byte {
	out := e.buf
	e.buf = nil
	return out
}

// FloatDecoder reads PLAIN-encoded FLOAT values.
type FloatDecoder struct{ fixedWidthDecoder }

func (d *FloatDecoder) SetData(buf []byte, numValues int) error {
	return d.setData(buf, 4, numValues)
}
func (d *FloatDecoder) ValuesLeft() int { return d.valuesLeft() }
func (d *FloatDecoder) Get(out []float32) (int, error) {
	n := len(out)
	if left := d.valuesLeft(); n > left {
		n = left
	}
	raw := d.take(n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return n, nil
}

// FloatEncoder accumulates PLAIN-encoded FLOAT values.
type FloatEncoder struct{ buf []byte }

func (e *FloatEncoder) Put(values []float32) {
	for _, v := range values {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		e.buf = append(e.buf, b[:]...)
	}
}
func (e *FloatEncoder) FlushBuffer() []byte {
	out := e.buf
	e.buf = nil
	return out
}

// DoubleDecoder reads PLAIN-encoded DOUBLE values.
type DoubleDecoder struct{ fixedWidthDecoder }

func (d *DoubleDecoder) SetData(buf []byte, numValues int) error {
	return d.setData(buf, 8, numValues)
}
func (d *DoubleDecoder) ValuesLeft() int { return d.valuesLeft() }
func (d *DoubleDecoder) Get(out []float64) (int, error) {
	n := len(out)
	if left := d.valuesLeft(); n > left {
		n = left
	}
	raw := d.take(n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return n, nil
}

// DoubleEncoder accumulates PLAIN-encoded DOUBLE values.
type DoubleEncoder struct{ buf []byte }

func (e *DoubleEncoder) Put(values []float64) {
	for _, v := range values {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		e.buf = append(e.buf, b[:]...)
	}
}
func (e *DoubleEncoder) FlushBuffer() []byte {
	out := e.buf
	e.buf = nil
	return out
}

// Int96Decoder reads PLAIN-encoded INT96 values: 12 bytes each, as three
// little-endian uint32 words.
type Int96Decoder struct{ fixedWidthDecoder }

func (d *Int96Decoder) SetData(buf []byte, numValues int) error {
	return d.setData(buf, 12, numValues)
}
func (d *Int96Decoder) ValuesLeft() int { return d.valuesLeft() }
func (d *Int96Decoder) Get(out []deprecated.Int96) (int, error) {
	n := len(out)
	if left := d.valuesLeft(); n > left {
		n = left
	}
	raw := d.take(n)
	for i := 0; i < n; i++ {
		w := raw[i*12:]
		out[i] = deprecated.Int96{
			binary.LittleEndian.Uint32(w[0:4]),
			binary.LittleEndian.Uint32(w[4:8]),
			binary.LittleEndian.Uint32(w[8:12]),
		}
	}
	return n, nil
}

// Int96Encoder accumulates PLAIN-encoded INT96 values.
type Int96Encoder struct{ buf []byte }

func (e *Int96Encoder) Put(values []deprecated.Int96) {
	for _, v := range values {
		var b [12]byte
		binary.LittleEndian.PutUint32(b[0:4], v[0])
		binary.LittleEndian.PutUint32(b[4:8], v[1])
		binary.LittleEndian.PutUint32(b[8:12], v[2])
		e.buf = append(e.buf, b[:]...)
	}
}
func (e *Int96Encoder) FlushBuffer() []byte {
	out := e.buf
	e.buf = nil
	return out
}

// ByteArrayDecoder reads PLAIN-encoded BYTE_ARRAY values: each a 4-byte
// little-endian length followed by that many bytes.
type ByteArrayDecoder struct {
	view       byteview.View
	byteOffset int
	numValues  int
	pos        int
}

// SetData configures the decoder to read numValues byte arrays from buf.
func (d *ByteArrayDecoder) SetData(buf []byte, numValues int) error {
	d.view = byteview.New(buf)
	d.byteOffset = 0
	d.numValues = numValues
	d.pos = 0
	return nil
}

// ValuesLeft returns the number of values not yet returned by Get.
func (d *ByteArrayDecoder) ValuesLeft() int { return d.numValues - d.pos }

// Get fills out with up to min(len(out), ValuesLeft()) Views, each sharing
// the backing array handed to SetData.
func (d *ByteArrayDecoder) Get(out []byteview.View) (int, error) {
	n := len(out)
	if left := d.ValuesLeft(); n > left {
		n = left
	}
	for i := 0; i < n; i++ {
		v, next, err := NextByteArray(d.view, d.byteOffset)
		if err != nil {
			return i, err
		}
		out[i] = v
		d.byteOffset = next
	}
	d.pos += n
	return n, nil
}

// ByteArrayEncoder accumulates PLAIN-encoded BYTE_ARRAY values.
type ByteArrayEncoder struct{ buf []byte }

func (e *ByteArrayEncoder) Put(values [][]byte) {
	for _, v := range values {
		e.buf = AppendByteArray(e.buf, v)
	}
}
func (e *ByteArrayEncoder) FlushBuffer() []byte {
	out := e.buf
	e.buf = nil
	return out
}

// FixedLenByteArrayDecoder reads PLAIN-encoded FIXED_LEN_BYTE_ARRAY values:
// each exactly TypeLength bytes, with no length prefix.
type FixedLenByteArrayDecoder struct {
	fixedWidthDecoder
	TypeLength int
}

// NewFixedLenByteArrayDecoder returns a decoder for values of the given
// fixed byte width, taken from the column descriptor.
func NewFixedLenByteArrayDecoder(typeLength int) *FixedLenByteArrayDecoder {
	return &FixedLenByteArrayDecoder{TypeLength: typeLength}
}

func (d *FixedLenByteArrayDecoder) SetData(buf []byte, numValues int) error {
	return d.setData(buf, d.TypeLength, numValues)
}
func (d *FixedLenByteArrayDecoder) ValuesLeft() int { return d.valuesLeft() }

// Get fills out with up to min(len(out), ValuesLeft()) values, each backed
// by a TypeLength-byte slice of the SetData buffer.
func (d *FixedLenByteArrayDecoder) Get(out [][]byte) (int, error) {
	n := len(out)
	if left := d.valuesLeft(); n > left {
		n = left
	}
	raw := d.take(n)
	for i := 0; i < n; i++ {
		out[i] = raw[i*d.TypeLength : (i+1)*d.TypeLength]
	}
	return n, nil
}

// FixedLenByteArrayEncoder accumulates PLAIN-encoded FIXED_LEN_BYTE_ARRAY
// values, all of the same byte width.
type FixedLenByteArrayEncoder struct {
	TypeLength int
	buf        []byte
}

func (e *FixedLenByteArrayEncoder) Put(values [][]byte) {
	for _, v := range values {
		e.buf = append(e.buf, v...)
	}
}
func (e *FixedLenByteArrayEncoder) FlushBuffer() []byte {
	out := e.buf
	e.buf = nil
	return out
}
