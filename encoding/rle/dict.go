package rle

import (
	"github.com/guangie88/parquetcore/bitio"
	"github.com/guangie88/parquetcore/errkind"
)

// DictEncoder wraps Encoder with the one-byte bit-width prefix that precedes
// the hybrid RLE payload of an RLE_DICTIONARY (or PLAIN_DICTIONARY) data
// page.
type DictEncoder struct {
	Encoder
}

// NewDictEncoder returns a DictEncoder writing dictionary indices of the
// given bit width to w, prefixed by the bit-width byte.
func NewDictEncoder(w *bitio.Writer, bitWidth int) *DictEncoder {
	return &DictEncoder{Encoder: Encoder{bitWidth: bitWidth, w: w}}
}

// WriteBitWidth writes the leading bit-width byte. Callers must call this
// exactly once, before any Put calls, since the byte must precede the RLE
// payload in the output stream.
func (e *DictEncoder) WriteBitWidth() {
	e.w.PutAligned(uint64(e.bitWidth), 1)
}

// DictDecoder wraps Decoder, first reading the leading bit-width byte that
// precedes an RLE_DICTIONARY payload.
type DictDecoder struct {
	Decoder
}

// NewDictDecoder reads the bit-width byte from r and returns a DictDecoder
// ready to decode the indices that follow.
func NewDictDecoder(r *bitio.Reader) (*DictDecoder, error) {
	width, ok := r.GetAligned(1)
	if !ok {
		return nil, errkind.New(errkind.EndOfInput, "rle.NewDictDecoder")
	}
	if width > 64 {
		return nil, errkind.Errorf(errkind.InvalidFormat, "rle.NewDictDecoder", "bit width %d exceeds 64", width)
	}
	return &DictDecoder{Decoder: Decoder{bitWidth: int(width), r: r}}, nil
}
