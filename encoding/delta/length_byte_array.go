package delta

// LengthByteArrayEncoder accumulates byte strings and produces a
// DELTA_LENGTH_BYTE_ARRAY page: an Int32 DELTA_BINARY_PACKED stream of
// lengths followed by the concatenated raw content bytes.
type LengthByteArrayEncoder struct {
	lengths Int32Encoder
	content []byte
}

// Put appends values to the buffer being assembled.
func (e *LengthByteArrayEncoder) Put(values [][]byte) {
	for _, v := range values {
		e.lengths.Put([]int32{int32(len(v))})
		e.content = append(e.content, v...)
	}
}

// FlushBuffer finalizes and returns the encoded page, resetting the encoder
// so it can be reused.
func (e *LengthByteArrayEncoder) FlushBuffer() []byte {
	lengths := e.lengths.FlushBuffer()
	out := append(lengths, e.content...)
	e.content = e.content[:0]
	return out
}

// LengthByteArrayDecoder reads a DELTA_LENGTH_BYTE_ARRAY page.
type LengthByteArrayDecoder struct {
	lengths []int32
	pos     int
	content []byte
	offset  int
}

// NewLengthByteArrayDecoder returns a decoder over a DELTA_LENGTH_BYTE_ARRAY
// page in buf. The lengths stream is fully decoded up front since its
// encoded byte length, and therefore where the content region begins, is
// only known once every block has been read.
func NewLengthByteArrayDecoder(buf []byte) (*LengthByteArrayDecoder, error) {
	lengthsDecoder, err := NewInt32Decoder(buf)
	if err != nil {
		return nil, err
	}
	lengths := make([]int32, lengthsDecoder.ValuesLeft())
	if _, err := lengthsDecoder.Get(lengths); err != nil {
		return nil, err
	}
	return &LengthByteArrayDecoder{
		lengths: lengths,
		content: buf[lengthsDecoder.ByteOffset():],
	}, nil
}

// ValuesLeft returns the number of values not yet returned by Get.
func (d *LengthByteArrayDecoder) ValuesLeft() int { return len(d.lengths) - d.pos }

// Get fills out with up to min(len(out), ValuesLeft()) byte strings, each a
// slice into the decoder's backing buffer. The caller must not retain these
// slices past the decoder's lifetime without copying them.
func (d *LengthByteArrayDecoder) Get(out [][]byte) (int, error) {
	n := len(out)
	if left := d.ValuesLeft(); n > left {
		n = left
	}
	for i := 0; i < n; i++ {
		length := int(d.lengths[d.pos])
		out[i] = d.content[d.offset : d.offset+length]
		d.offset += length
		d.pos++
	}
	return n, nil
}
