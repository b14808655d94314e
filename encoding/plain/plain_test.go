package plain

import (
	"bytes"
	"testing"

	"github.com/guangie88/parquetcore/byteview"
	"github.com/guangie88/parquetcore/deprecated"
)

func TestInt32ExactBytes(t *testing.T) {
	var e Int32Encoder
	e.Put([]int32{42, 18, 52})
	got := e.FlushBuffer()
	want := []byte{42, 0, 0, 0, 18, 0, 0, 0, 52, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("want=%v got=%v", want, got)
	}

	var d Int32Decoder
	if err := d.SetData(got, 3); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	out := make([]int32, 3)
	n, err := d.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != 3 {
		t.Fatalf("want n=3, got %d", n)
	}
	wantValues := []int32{42, 18, 52}
	for i := range wantValues {
		if out[i] != wantValues[i] {
			t.Fatalf("index %d: want=%d got=%d", i, wantValues[i], out[i])
		}
	}
}

func TestBooleanExactBytes(t *testing.T) {
	values := []bool{false, true, false, false, true, false, true, true, false, true}
	var e BooleanEncoder
	e.Put(values)
	got := e.FlushBuffer()
	// LSB-first: bits 1, 4, 6 and 7 of the first byte, bit 1 of the second.
	want := []byte{0xD2, 0x02}
	if !bytes.Equal(got, want) {
		t.Fatalf("want=%08b %08b got=%v", want[0], want[1], got)
	}

	var d BooleanDecoder
	if err := d.SetData(got, len(values)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	out := make([]bool, len(values))
	n, err := d.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != len(values) {
		t.Fatalf("want n=%d, got %d", len(values), n)
	}
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("index %d: want=%v got=%v", i, values[i], out[i])
		}
	}
}

func TestByteArrayExactBytes(t *testing.T) {
	values := [][]byte{[]byte("hello"), []byte("parquet")}
	var e ByteArrayEncoder
	e.Put(values)
	got := e.FlushBuffer()
	want := append(append([]byte{5, 0, 0, 0}, "hello"...), append([]byte{7, 0, 0, 0}, "parquet"...)...)
	if !bytes.Equal(got, want) {
		t.Fatalf("want=%v got=%v", want, got)
	}

	var d ByteArrayDecoder
	if err := d.SetData(got, 2); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	out := make([]byteview.View, 2)
	n, err := d.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != 2 {
		t.Fatalf("want n=2, got %d", n)
	}
	if string(out[0].Bytes()) != "hello" || string(out[1].Bytes()) != "parquet" {
		t.Fatalf("got=%q, %q", out[0].Bytes(), out[1].Bytes())
	}
}

func TestInt64RoundTrip(t *testing.T) {
	values := []int64{0, -1, 1 << 40, -(1 << 40)}
	var e Int64Encoder
	e.Put(values)
	buf := e.FlushBuffer()

	var d Int64Decoder
	if err := d.SetData(buf, len(values)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	out := make([]int64, len(values))
	n, err := d.Get(out)
	if err != nil || n != len(values) {
		t.Fatalf("Get: n=%d err=%v", n, err)
	}
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("index %d: want=%d got=%d", i, values[i], out[i])
		}
	}
}

func TestFloatDoubleRoundTrip(t *testing.T) {
	fvalues := []float32{0, 1.5, -2.25, 3.4e10}
	var fe FloatEncoder
	fe.Put(fvalues)
	fbuf := fe.FlushBuffer()
	var fd FloatDecoder
	if err := fd.SetData(fbuf, len(fvalues)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	fout := make([]float32, len(fvalues))
	if _, err := fd.Get(fout); err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i := range fvalues {
		if fout[i] != fvalues[i] {
			t.Fatalf("index %d: want=%v got=%v", i, fvalues[i], fout[i])
		}
	}

	dvalues := []float64{0, 1.5, -2.25, 3.4e100}
	var de DoubleEncoder
	de.Put(dvalues)
	dbuf := de.FlushBuffer()
	var dd DoubleDecoder
	if err := dd.SetData(dbuf, len(dvalues)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	dout := make([]float64, len(dvalues))
	if _, err := dd.Get(dout); err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i := range dvalues {
		if dout[i] != dvalues[i] {
			t.Fatalf("index %d: want=%v got=%v", i, dvalues[i], dout[i])
		}
	}
}

func TestInt96RoundTrip(t *testing.T) {
	values := []deprecated.Int96{{1, 2, 3}, {0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}}
	var e Int96Encoder
	e.Put(values)
	buf := e.FlushBuffer()
	if len(buf) != 24 {
		t.Fatalf("want 24 bytes, got %d", len(buf))
	}

	var d Int96Decoder
	if err := d.SetData(buf, len(values)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	out := make([]deprecated.Int96, len(values))
	if _, err := d.Get(out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("index %d: want=%v got=%v", i, values[i], out[i])
		}
	}
}

func TestFixedLenByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}
	e := FixedLenByteArrayEncoder{TypeLength: 4}
	e.Put(values)
	buf := e.FlushBuffer()

	d := NewFixedLenByteArrayDecoder(4)
	if err := d.SetData(buf, len(values)); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	out := make([][]byte, len(values))
	n, err := d.Get(out)
	if err != nil || n != len(values) {
		t.Fatalf("Get: n=%d err=%v", n, err)
	}
	for i := range values {
		if !bytes.Equal(out[i], values[i]) {
			t.Fatalf("index %d: want=%v got=%v", i, values[i], out[i])
		}
	}
}

func TestGetBatchDrainedReturnsShort(t *testing.T) {
	var e Int32Encoder
	e.Put([]int32{1, 2, 3})
	buf := e.FlushBuffer()

	var d Int32Decoder
	if err := d.SetData(buf, 3); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	out := make([]int32, 10)
	n, err := d.Get(out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3, got %d", n)
	}
	if d.ValuesLeft() != 0 {
		t.Fatalf("expected decoder drained, ValuesLeft=%d", d.ValuesLeft())
	}
}
