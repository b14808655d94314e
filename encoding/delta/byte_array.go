package delta

// ByteArrayEncoder accumulates byte strings and produces a DELTA_BYTE_ARRAY
// page: an Int32 DELTA_BINARY_PACKED stream of shared-prefix lengths
// followed by a DELTA_LENGTH_BYTE_ARRAY stream of the remaining suffixes.
type ByteArrayEncoder struct {
	prefixLengths Int32Encoder
	suffixes      LengthByteArrayEncoder
	previous      []byte
}

// Put appends values to the buffer being assembled.
func (e *ByteArrayEncoder) Put(values [][]byte) {
	for _, v := range values {
		prefixLen := commonPrefixLen(e.previous, v)
		e.prefixLengths.Put([]int32{int32(prefixLen)})
		e.suffixes.Put([][]byte{v[prefixLen:]})
		e.previous = append(e.previous[:0], v...)
	}
}

// FlushBuffer finalizes and returns the encoded page, resetting the encoder
// so it can be reused.
func (e *ByteArrayEncoder) FlushBuffer() []byte {
	prefixLengths := e.prefixLengths.FlushBuffer()
	suffixes := e.suffixes.FlushBuffer()
	e.previous = e.previous[:0]
	return append(prefixLengths, suffixes...)
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// ByteArrayDecoder reads a DELTA_BYTE_ARRAY page, reconstructing each value
// from the previously decoded one.
//
// Get returns a freshly allocated slice for every value. Reconstructing
// value i requires the bytes of value i-1, so the decoder
// retains its own copy of the last value produced rather than depending on
// the caller not to mutate a previously returned slice.
type ByteArrayDecoder struct {
	prefixLengths []int32
	pos           int
	suffixes      *LengthByteArrayDecoder
	previous      []byte
}

// NewByteArrayDecoder returns a decoder over a DELTA_BYTE_ARRAY page in buf.
func NewByteArrayDecoder(buf []byte) (*ByteArrayDecoder, error) {
	prefixDecoder, err := NewInt32Decoder(buf)
	if err != nil {
		return nil, err
	}
	prefixLengths := make([]int32, prefixDecoder.ValuesLeft())
	if _, err := prefixDecoder.Get(prefixLengths); err != nil {
		return nil, err
	}
	// The prefix-length stream's encoded byte length is only known once
	// every block has been read, same as LengthByteArrayDecoder.
	suffixOffset := prefixDecoder.ByteOffset()

	suffixes, err := NewLengthByteArrayDecoder(buf[suffixOffset:])
	if err != nil {
		return nil, err
	}

	return &ByteArrayDecoder{
		prefixLengths: prefixLengths,
		suffixes:      suffixes,
	}, nil
}

// ValuesLeft returns the number of values not yet returned by Get.
func (d *ByteArrayDecoder) ValuesLeft() int { return len(d.prefixLengths) - d.pos }

// Get fills out with up to min(len(out), ValuesLeft()) byte strings, each a
// defensive copy safe for the caller to retain.
func (d *ByteArrayDecoder) Get(out [][]byte) (int, error) {
	n := len(out)
	if left := d.ValuesLeft(); n > left {
		n = left
	}
	var suffixBuf [1][]byte
	for i := 0; i < n; i++ {
		prefixLen := int(d.prefixLengths[d.pos])
		if _, err := d.suffixes.Get(suffixBuf[:]); err != nil {
			return i, err
		}
		value := make([]byte, prefixLen+len(suffixBuf[0]))
		copy(value, d.previous[:prefixLen])
		copy(value[prefixLen:], suffixBuf[0])

		d.previous = append(d.previous[:0], value...)
		out[i] = value
		d.pos++
	}
	return n, nil
}
