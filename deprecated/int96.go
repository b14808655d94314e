// Package deprecated holds the legacy INT96 physical type, named for its
// status in the Parquet format itself (superseded by logical timestamp
// annotations on INT64) rather than anything about this module's support
// for it: PLAIN still encodes and decodes it like any other physical type.
package deprecated

import "math/big"

// Int96 is the 12-byte deprecated INT96 physical type: three little-endian
// uint32 words, interpreted as a 96-bit two's-complement integer.
type Int96 [3]uint32

// Negative reports whether i holds a negative value, per the sign bit of
// the most significant word.
func (i Int96) Negative() bool {
	return (i[2] >> 31) != 0
}

// Less reports whether i < j under signed 96-bit comparison.
func (i Int96) Less(j Int96) bool {
	if i.Negative() != j.Negative() {
		return i.Negative()
	}
	for k := 2; k >= 0; k-- {
		switch {
		case i[k] < j[k]:
			return true
		case i[k] > j[k]:
			return false
		}
	}
	return false
}

// Int converts i to a big.Int representation, primarily for diagnostics.
func (i Int96) Int() *big.Int {
	z := new(big.Int)
	z.Or(z, big.NewInt(int64(int32(i[2]))))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(i[1])))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(i[0])))
	return z
}

// String returns a string representation of i.
func (i Int96) String() string {
	return i.Int().String()
}
