// Package format defines the wire-level enums and Thrift-encoded page
// headers the codecs and page reader in this module operate on.
//
// The file-level FileMetaData footer and its Thrift-serialized schema tree
// are out of scope for this module (spec.md §1 treats the footer parser as
// an external collaborator); only the page header — the one Thrift
// structure the page reader itself must decode — is modeled here, using the
// same CompactProtocol codec (github.com/segmentio/encoding/thrift) the
// teacher repo uses for its footer.
package format

import "fmt"

// Type is a physical type recognized by the Parquet format.
type Type int32

const (
	Boolean Type = iota
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("Type(%d)", int32(t))
	}
}

// Encoding identifies a value encoding used on a data or dictionary page.
type Encoding int32

const (
	Plain Encoding = iota
	_              // GROUP_VAR_INT, deprecated and never produced
	PlainDictionary
	RLE
	BitPacked
	DeltaBinaryPacked
	DeltaLengthByteArray
	DeltaByteArray
	RLEDictionary
	ByteStreamSplit
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	case ByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return fmt.Sprintf("Encoding(%d)", int32(e))
	}
}

// CompressionCodec identifies the block compression applied to a page's
// payload. The codecs themselves are out of scope for this module (spec.md
// §1); only the enum used to select between them is defined here.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = iota
	Snappy
	Gzip
	LZOUnsupported
	Brotli
	Zstd
	Lz4Raw
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Brotli:
		return "BROTLI"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return fmt.Sprintf("CompressionCodec(%d)", int32(c))
	}
}

// PageType identifies which of the header's optional sub-structures is set.
type PageType int32

const (
	DataPage PageType = iota
	IndexPage
	DictionaryPage
	DataPageV2
)

func (t PageType) String() string {
	switch t {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return fmt.Sprintf("PageType(%d)", int32(t))
	}
}

// Statistics carries the subset of the page statistics struct the core
// codecs surface; min/max/null/distinct-count computation itself belongs to
// the (out of scope) column-chunk writer.
type Statistics struct {
	Max           []byte `thrift:"1,optional"`
	Min           []byte `thrift:"2,optional"`
	NullCount     int64  `thrift:"3,optional"`
	DistinctCount int64  `thrift:"4,optional"`
	MaxValue      []byte `thrift:"5,optional"`
	MinValue      []byte `thrift:"6,optional"`
}

// DataPageHeader is the Thrift structure carried by v1 data pages.
type DataPageHeader struct {
	NumValues               int32      `thrift:"1"`
	Encoding                Encoding   `thrift:"2"`
	DefinitionLevelEncoding Encoding   `thrift:"3"`
	RepetitionLevelEncoding Encoding   `thrift:"4"`
	Statistics              Statistics `thrift:"5,optional"`
}

// IndexPageHeader is carried by (legacy, unused by this module) index
// pages; kept only so PageHeader.IndexPageHeader round-trips through
// Thrift when present in an input stream.
type IndexPageHeader struct{}

// DictionaryPageHeader is the Thrift structure carried by dictionary pages.
type DictionaryPageHeader struct {
	NumValues int32    `thrift:"1"`
	Encoding  Encoding `thrift:"2"`
	IsSorted  bool     `thrift:"3,optional"`
}

// DataPageHeaderV2 is the Thrift structure carried by v2 data pages.
type DataPageHeaderV2 struct {
	NumValues                  int32      `thrift:"1"`
	NumNulls                   int32      `thrift:"2"`
	NumRows                    int32      `thrift:"3"`
	Encoding                   Encoding   `thrift:"4"`
	DefinitionLevelsByteLength int32      `thrift:"5"`
	RepetitionLevelsByteLength int32      `thrift:"6"`
	IsCompressed               bool       `thrift:"7,optional,default=true"`
	Statistics                 Statistics `thrift:"8,optional"`
}

// PageHeader is the Thrift structure that precedes every page's payload in
// a column chunk.
type PageHeader struct {
	Type                 PageType              `thrift:"1"`
	UncompressedPageSize int32                 `thrift:"2"`
	CompressedPageSize   int32                 `thrift:"3"`
	CRC                  int32                 `thrift:"4,optional"`
	DataPageHeader       *DataPageHeader       `thrift:"5,optional"`
	IndexPageHeader      *IndexPageHeader      `thrift:"6,optional"`
	DictionaryPageHeader *DictionaryPageHeader `thrift:"7,optional"`
	DataPageHeaderV2     *DataPageHeaderV2     `thrift:"8,optional"`
}
