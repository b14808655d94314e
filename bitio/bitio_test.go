package bitio

import (
	"math"
	"math/rand"
	"testing"
)

func TestWriterReaderValueRoundTrip(t *testing.T) {
	for width := uint(1); width <= 64; width++ {
		width := width
		t.Run("", func(t *testing.T) {
			prng := rand.New(rand.NewSource(int64(width)))
			mask := uint64(math.MaxUint64)
			if width < 64 {
				mask = (uint64(1) << width) - 1
			}

			values := make([]uint64, 129)
			for i := range values {
				values[i] = prng.Uint64() & mask
			}

			w := NewWriter(nil)
			for _, v := range values {
				w.PutValue(v, width)
			}
			w.Flush()

			r := NewReader(w.Bytes())
			for i, want := range values {
				got, ok := r.GetValue(width)
				if !ok {
					t.Fatalf("width=%d: unexpected EOF at index %d", width, i)
				}
				if got != want {
					t.Fatalf("width=%d: index %d: want=%d got=%d", width, i, want, got)
				}
			}
		})
	}
}

func TestLSBFirstPackingExample(t *testing.T) {
	// a=0b001, b=0b010, c=0b100 at width 3 fill nine bits: a, b and the low
	// two bits of c land in the first byte, the top bit of c in bit 0 of the
	// second.
	w := NewWriter(nil)
	w.PutValue(0b001, 3)
	w.PutValue(0b010, 3)
	w.PutValue(0b100, 3)
	w.Flush()

	got := w.Bytes()
	want := []byte{0b00_010_001, 0b0000_0001}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("want=%08b got=%08b", want, got)
	}
}

func TestPutAlignedGetAligned(t *testing.T) {
	w := NewWriter(nil)
	w.PutValue(0b101, 3)
	w.PutAligned(0x0102030405060708, 8)
	w.Flush()

	r := NewReader(w.Bytes())
	if _, ok := r.GetValue(3); !ok {
		t.Fatal("unexpected EOF reading the leading 3 bits")
	}
	v, ok := r.GetAligned(8)
	if !ok {
		t.Fatal("unexpected EOF reading the aligned 8 bytes")
	}
	if v != 0x0102030405060708 {
		t.Fatalf("want=%x got=%x", uint64(0x0102030405060708), v)
	}
}

func TestVLQRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 129, 16383, 16384, math.MaxUint32, math.MaxUint64}
	w := NewWriter(nil)
	for _, v := range values {
		w.PutVLQ(v)
	}
	r := NewReader(w.Bytes())
	for i, want := range values {
		got, ok := r.GetVLQ()
		if !ok {
			t.Fatalf("index %d: unexpected EOF", i)
		}
		if got != want {
			t.Fatalf("index %d: want=%d got=%d", i, want, got)
		}
	}
}

func TestZigZagVLQRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, -2, 2, math.MinInt64, math.MaxInt64}
	w := NewWriter(nil)
	for _, v := range values {
		w.PutZigZagVLQ(v)
	}
	r := NewReader(w.Bytes())
	for i, want := range values {
		got, ok := r.GetZigZagVLQ()
		if !ok {
			t.Fatalf("index %d: unexpected EOF", i)
		}
		if got != want {
			t.Fatalf("index %d: want=%d got=%d", i, want, got)
		}
	}
}

func TestReserveBytesBackpatch(t *testing.T) {
	w := NewWriter(nil)
	w.PutVLQ(42)
	reserved := w.ReserveBytes(4)
	w.PutVLQ(7)
	copy(reserved.Bytes(), []byte{1, 2, 3, 4})
	w.Flush()

	r := NewReader(w.Bytes())
	if v, ok := r.GetVLQ(); !ok || v != 42 {
		t.Fatalf("want=42 got=%d ok=%v", v, ok)
	}
	b, ok := r.GetAligned(4)
	if !ok {
		t.Fatal("unexpected EOF reading reserved bytes")
	}
	if b != 0x04030201 {
		t.Fatalf("want=%x got=%x", uint32(0x04030201), b)
	}
	if v, ok := r.GetVLQ(); !ok || v != 7 {
		t.Fatalf("want=7 got=%d ok=%v", v, ok)
	}
}

func TestGetValueEOF(t *testing.T) {
	r := NewReader(nil)
	if _, ok := r.GetValue(1); ok {
		t.Fatal("expected EOF on empty reader")
	}
}
