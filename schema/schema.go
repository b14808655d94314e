// Package schema defines the minimal column descriptor handle the value
// and level codecs in encoding/plain, encoding/dict and encoding/delta
// receive from the (out of scope) schema subsystem.
//
// The full schema tree — nested groups, logical type annotations, the
// Thrift-encoded SchemaElement list carried in the file footer — belongs
// to that external collaborator. What the codecs in this module actually
// need out of it is narrow: a column's physical type, its fixed length
// when the type is FIXED_LEN_BYTE_ARRAY, and the maximum definition and
// repetition levels used to size the level codec's bit width.
package schema

import "github.com/guangie88/parquetcore/format"

// ColumnDescriptor is the opaque handle the codecs in this module receive
// in place of a pointer into a full schema tree.
type ColumnDescriptor struct {
	// Name is the column's leaf name, carried through for error messages
	// and logging only; codecs never branch on it.
	Name string

	// Type is the column's physical type.
	Type format.Type

	// TypeLength is the fixed width in bytes of a FIXED_LEN_BYTE_ARRAY
	// column; zero for every other physical type.
	TypeLength int32

	// MaxDefinitionLevel and MaxRepetitionLevel bound the bit width the
	// level codec (encoding/level) packs definition and repetition
	// levels at for this column.
	MaxDefinitionLevel uint32
	MaxRepetitionLevel uint32
}

// FixedLenByteArraySize returns TypeLength when Type is
// FixedLenByteArray, and 0 otherwise; it exists so callers never have to
// repeat the Type == FixedLenByteArray guard themselves.
func (c *ColumnDescriptor) FixedLenByteArraySize() int {
	if c.Type != format.FixedLenByteArray {
		return 0
	}
	return int(c.TypeLength)
}
