package delta

import (
	"bytes"
	"math"
	"testing"
)

func TestBinaryPackedInt32RoundTrip(t *testing.T) {
	values := []int32{1, 2, 3, 100, -5, -5, -5, 42, 1000000, -1000000}

	var enc Int32Encoder
	enc.Put(values)
	buf := enc.FlushBuffer()

	dec, err := NewInt32Decoder(buf)
	if err != nil {
		t.Fatalf("NewInt32Decoder: %v", err)
	}
	if dec.ValuesLeft() != len(values) {
		t.Fatalf("ValuesLeft=%d, want %d", dec.ValuesLeft(), len(values))
	}
	out := make([]int32, len(values))
	n, err := dec.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != len(values) {
		t.Fatalf("got %d values, want %d", n, len(values))
	}
	for i, want := range values {
		if out[i] != want {
			t.Fatalf("index %d: want=%d got=%d", i, want, out[i])
		}
	}
}

func TestBinaryPackedInt64RoundTrip(t *testing.T) {
	values := make([]int64, 300) // spans multiple blocks (block_size=128)
	for i := range values {
		values[i] = int64(i)*int64(i) - 1000
	}

	var enc Int64Encoder
	enc.Put(values)
	buf := enc.FlushBuffer()

	dec, err := NewInt64Decoder(buf)
	if err != nil {
		t.Fatalf("NewInt64Decoder: %v", err)
	}
	out := make([]int64, len(values))
	n, err := dec.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != len(values) {
		t.Fatalf("got %d, want %d", n, len(values))
	}
	for i, want := range values {
		if out[i] != want {
			t.Fatalf("index %d: want=%d got=%d", i, want, out[i])
		}
	}
}

func TestBinaryPackedWrappingAtIntExtremes(t *testing.T) {
	t.Run("int32", func(t *testing.T) {
		values := []int32{math.MinInt32, math.MaxInt32, math.MinInt32, 0, math.MaxInt32}
		var enc Int32Encoder
		enc.Put(values)
		buf := enc.FlushBuffer()
		dec, err := NewInt32Decoder(buf)
		if err != nil {
			t.Fatalf("NewInt32Decoder: %v", err)
		}
		out := make([]int32, len(values))
		if _, err := dec.Get(out); err != nil {
			t.Fatalf("Get: %v", err)
		}
		for i, want := range values {
			if out[i] != want {
				t.Fatalf("index %d: want=%d got=%d", i, want, out[i])
			}
		}
	})

	t.Run("int64", func(t *testing.T) {
		values := []int64{math.MinInt64, math.MaxInt64, math.MinInt64, 0, math.MaxInt64}
		var enc Int64Encoder
		enc.Put(values)
		buf := enc.FlushBuffer()
		dec, err := NewInt64Decoder(buf)
		if err != nil {
			t.Fatalf("NewInt64Decoder: %v", err)
		}
		out := make([]int64, len(values))
		if _, err := dec.Get(out); err != nil {
			t.Fatalf("Get: %v", err)
		}
		for i, want := range values {
			if out[i] != want {
				t.Fatalf("index %d: want=%d got=%d", i, want, out[i])
			}
		}
	})
}

func TestBinaryPackedSingleValue(t *testing.T) {
	var enc Int32Encoder
	enc.Put([]int32{7})
	buf := enc.FlushBuffer()

	dec, err := NewInt32Decoder(buf)
	if err != nil {
		t.Fatalf("NewInt32Decoder: %v", err)
	}
	if dec.ValuesLeft() != 1 {
		t.Fatalf("ValuesLeft=%d, want 1", dec.ValuesLeft())
	}
	out := make([]int32, 1)
	if _, err := dec.Get(out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out[0] != 7 {
		t.Fatalf("want 7, got %d", out[0])
	}
}

func TestLengthByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{[]byte("hello"), []byte(""), []byte("parquet"), []byte("x")}

	var enc LengthByteArrayEncoder
	enc.Put(values)
	buf := enc.FlushBuffer()

	dec, err := NewLengthByteArrayDecoder(buf)
	if err != nil {
		t.Fatalf("NewLengthByteArrayDecoder: %v", err)
	}
	out := make([][]byte, len(values))
	n, err := dec.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != len(values) {
		t.Fatalf("got %d, want %d", n, len(values))
	}
	for i, want := range values {
		if !bytes.Equal(out[i], want) {
			t.Fatalf("index %d: want=%q got=%q", i, want, out[i])
		}
	}
}

func TestByteArrayPrefixSuffixReconstruction(t *testing.T) {
	values := [][]byte{
		[]byte("aeroplane"),
		[]byte("aeroplanes"),
		[]byte("aerospace"),
		[]byte("banana"),
		[]byte("banana"),
		[]byte(""),
	}

	var enc ByteArrayEncoder
	enc.Put(values)
	buf := enc.FlushBuffer()

	dec, err := NewByteArrayDecoder(buf)
	if err != nil {
		t.Fatalf("NewByteArrayDecoder: %v", err)
	}
	if dec.ValuesLeft() != len(values) {
		t.Fatalf("ValuesLeft=%d, want %d", dec.ValuesLeft(), len(values))
	}
	out := make([][]byte, len(values))
	n, err := dec.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != len(values) {
		t.Fatalf("got %d, want %d", n, len(values))
	}
	for i, want := range values {
		if !bytes.Equal(out[i], want) {
			t.Fatalf("index %d: want=%q got=%q", i, want, out[i])
		}
	}
}

func TestByteArrayValuesRemainValidAcrossCalls(t *testing.T) {
	values := [][]byte{[]byte("abcdef"), []byte("abcxyz"), []byte("abc123")}

	var enc ByteArrayEncoder
	enc.Put(values)
	buf := enc.FlushBuffer()

	dec, err := NewByteArrayDecoder(buf)
	if err != nil {
		t.Fatalf("NewByteArrayDecoder: %v", err)
	}

	var got [][]byte
	single := make([][]byte, 1)
	for dec.ValuesLeft() > 0 {
		if _, err := dec.Get(single); err != nil {
			t.Fatalf("Get: %v", err)
		}
		got = append(got, append([]byte(nil), single[0]...))
	}
	for i, want := range values {
		if !bytes.Equal(got[i], want) {
			t.Fatalf("index %d: want=%q got=%q", i, want, got[i])
		}
	}
}
