package level

import (
	"testing"

	"github.com/guangie88/parquetcore/internal/quick"
)

func TestBitWidth(t *testing.T) {
	cases := []struct {
		maxLevel int
		want     int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{7, 3},
		{8, 4},
	}
	for _, c := range cases {
		if got := BitWidth(c.maxLevel); got != c.want {
			t.Errorf("maxLevel=%d: want=%d got=%d", c.maxLevel, c.want, got)
		}
	}
}

func TestRLERoundTrip(t *testing.T) {
	err := quick.Check(func(raw []uint64) bool {
		levels := make([]uint64, len(raw))
		for i, v := range raw {
			levels[i] = v % 4 // maxLevel=3
		}

		e := NewEncoder(RLE, 3)
		e.Put(levels)
		buf := e.Bytes()

		d := NewDecoder(3)
		if err := d.SetData(len(levels), buf); err != nil {
			t.Fatalf("SetData: %v", err)
		}
		out := make([]uint64, len(levels))
		n, err := d.GetBatch(out)
		if err != nil {
			t.Fatalf("GetBatch: %v", err)
		}
		if n != len(levels) {
			return false
		}
		for i := range levels {
			if out[i] != levels[i] {
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestBitPackedRoundTrip(t *testing.T) {
	err := quick.Check(func(raw []uint64) bool {
		levels := make([]uint64, len(raw))
		for i, v := range raw {
			levels[i] = v % 2 // maxLevel=1
		}

		e := NewEncoder(BitPacked, 1)
		e.Put(levels)
		buf := e.Bytes()

		d := NewDecoder(1)
		if err := d.SetBitPackedData(len(levels), buf); err != nil {
			t.Fatalf("SetBitPackedData: %v", err)
		}
		out := make([]uint64, len(levels))
		n, err := d.GetBatch(out)
		if err != nil {
			t.Fatalf("GetBatch: %v", err)
		}
		if n != len(levels) {
			return false
		}
		for i := range levels {
			if out[i] != levels[i] {
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSetDataRangeOnBitPackedFails(t *testing.T) {
	d := NewDecoder(3)
	err := d.SetDataRange(0, []byte{0, 0, 0}, 0, 3, BitPacked)
	if err == nil {
		t.Fatal("expected SetDataRange on BIT_PACKED to fail")
	}
}

func TestSetDataRangeUsedByDataPageV2(t *testing.T) {
	levels := []uint64{0, 1, 2, 3, 3, 3, 3, 3, 2, 1, 0}
	e := NewEncoder(RLE, 3)
	e.Put(levels)
	buf := e.Bytes() // 4-byte length prefix + payload

	d := NewDecoder(3)
	if err := d.SetDataRange(len(levels), buf, 4, len(buf)-4, RLE); err != nil {
		t.Fatalf("SetDataRange: %v", err)
	}
	out := make([]uint64, len(levels))
	n, err := d.GetBatch(out)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if n != len(levels) {
		t.Fatalf("want %d, got %d", len(levels), n)
	}
	for i := range levels {
		if out[i] != levels[i] {
			t.Fatalf("index %d: want=%d got=%d", i, levels[i], out[i])
		}
	}
}
