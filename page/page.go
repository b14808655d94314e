// Package page implements the page-level demultiplexing of a column
// chunk: decoding each page's Thrift-encoded header, lifting its
// compressed payload through an installed compress.Codec, and handing
// back a typed record (DictionaryPage, DataPage or DataPageV2) ready for
// the value and level decoders in encoding/plain, encoding/dict,
// encoding/delta and encoding/level to consume.
//
// The column-chunk framing this reads from — (start_offset,
// compressed_size, total_num_values) discovered from the file footer —
// is an external collaborator; Reader is handed an io.Reader already
// positioned at the first page and a value count, nothing more.
package page

import (
	"bufio"
	"io"

	"github.com/guangie88/parquetcore/byteview"
	"github.com/guangie88/parquetcore/compress"
	"github.com/guangie88/parquetcore/errkind"
	"github.com/guangie88/parquetcore/format"

	"github.com/segmentio/encoding/thrift"
)

// DictionaryPage is a decoded DICTIONARY_PAGE record: Data holds the
// PLAIN-encoded dictionary entries.
type DictionaryPage struct {
	NumValues int32
	Encoding  format.Encoding
	IsSorted  bool
	Data      byteview.View
}

// DataPage is a decoded (v1) DATA_PAGE record: Data holds the
// concatenation of the repetition-level, definition-level and value
// streams, in that order, as laid out on the wire.
type DataPage struct {
	NumValues               int32
	Encoding                format.Encoding
	DefinitionLevelEncoding format.Encoding
	RepetitionLevelEncoding format.Encoding
	Data                    byteview.View
}

// DataPageV2 is a decoded DATA_PAGE_V2 record. Unlike DataPage, the byte
// lengths of the repetition- and definition-level streams at the front of
// Data are carried in the header rather than self-delimited. When a codec
// is installed and IsCompressed is true, Reader.Next passes the whole
// payload, level streams included, through the codec; the level bytes are
// not set aside before decompressing.
type DataPageV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   format.Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               bool
	Data                       byteview.View
}

// Reader iterates the pages of a single column chunk, whose bytes are
// assumed to start at the reader's current position and span exactly
// totalValues values worth of pages.
//
// A Reader is single-pass and stateful: once Next returns an error, the
// Reader is poisoned and must not be used again, per the error handling
// contract shared with every other codec in this module.
type Reader struct {
	r           *bufio.Reader
	codec       compress.Codec // nil means pages are never decompressed
	protocol    thrift.CompactProtocol
	decoder     thrift.Decoder
	totalValues int64
	seenValues  int64
	poisoned    bool
}

// NewReader returns a Reader over r, which must be positioned at the
// first page of the chunk. totalValues bounds how many values the chunk's
// pages carry in total (from the column chunk's metadata); codec may be
// nil if the chunk is uncompressed.
func NewReader(r io.Reader, totalValues int64, codec compress.Codec) *Reader {
	pr := &Reader{
		r:           bufio.NewReader(r),
		codec:       codec,
		totalValues: totalValues,
	}
	pr.decoder.Reset(pr.protocol.NewReader(pr.r))
	return pr
}

// Next decodes and returns the next page, or (nil, nil) once every value
// declared by the chunk's metadata has been produced. Unknown page types
// are consumed and skipped silently, per the page format's own
// forward-compatibility contract.
func (pr *Reader) Next() (interface{}, error) {
	if pr.poisoned {
		return nil, errkind.New(errkind.General, "page.Reader.Next: reader is poisoned")
	}
	for {
		if pr.seenValues >= pr.totalValues {
			return nil, nil
		}

		header := new(format.PageHeader)
		if err := pr.decoder.Decode(header); err != nil {
			pr.poisoned = true
			if err == io.EOF {
				return nil, errkind.Wrap(errkind.EndOfInput, "page.Reader.Next: decoding page header", err)
			}
			return nil, errkind.Wrap(errkind.InvalidFormat, "page.Reader.Next: decoding page header", err)
		}

		payload, err := pr.readPayload(header)
		if err != nil {
			pr.poisoned = true
			return nil, err
		}

		switch header.Type {
		case format.DictionaryPage:
			h := header.DictionaryPageHeader
			if h == nil {
				pr.poisoned = true
				return nil, errkind.New(errkind.InvalidFormat, "page.Reader.Next: missing DictionaryPageHeader")
			}
			pr.seenValues += int64(h.NumValues)
			return &DictionaryPage{
				NumValues: h.NumValues,
				Encoding:  h.Encoding,
				IsSorted:  h.IsSorted,
				Data:      byteview.New(payload),
			}, nil

		case format.DataPage:
			h := header.DataPageHeader
			if h == nil {
				pr.poisoned = true
				return nil, errkind.New(errkind.InvalidFormat, "page.Reader.Next: missing DataPageHeader")
			}
			pr.seenValues += int64(h.NumValues)
			return &DataPage{
				NumValues:               h.NumValues,
				Encoding:                h.Encoding,
				DefinitionLevelEncoding: h.DefinitionLevelEncoding,
				RepetitionLevelEncoding: h.RepetitionLevelEncoding,
				Data:                    byteview.New(payload),
			}, nil

		case format.DataPageV2:
			h := header.DataPageHeaderV2
			if h == nil {
				pr.poisoned = true
				return nil, errkind.New(errkind.InvalidFormat, "page.Reader.Next: missing DataPageHeaderV2")
			}
			pr.seenValues += int64(h.NumValues)
			return &DataPageV2{
				NumValues:                  h.NumValues,
				NumNulls:                   h.NumNulls,
				NumRows:                    h.NumRows,
				Encoding:                   h.Encoding,
				DefinitionLevelsByteLength: h.DefinitionLevelsByteLength,
				RepetitionLevelsByteLength: h.RepetitionLevelsByteLength,
				IsCompressed:               h.IsCompressed,
				Data:                       byteview.New(payload),
			}, nil

		default:
			// Forward-compatible page types (e.g. INDEX_PAGE) are skipped:
			// the payload has already been consumed above, only the loop
			// continues.
		}
	}
}

// readPayload reads header.CompressedPageSize bytes into a fresh buffer and,
// if a decompressor is installed and the page is marked compressed,
// decompresses them into another fresh buffer, validating the result
// against header.UncompressedPageSize. Pages already returned never share
// memory with later ones.
func (pr *Reader) readPayload(header *format.PageHeader) ([]byte, error) {
	n := int(header.CompressedPageSize)
	payload := make([]byte, n)
	if _, err := io.ReadFull(pr.r, payload); err != nil {
		return nil, errkind.Wrap(errkind.EndOfInput, "page.Reader.readPayload: reading compressed page", err)
	}

	compressed := isCompressed(header)
	if pr.codec == nil || !compressed {
		return payload, nil
	}

	decoded, err := pr.codec.Decode(nil, payload)
	if err != nil {
		return nil, errkind.Wrap(errkind.General, "page.Reader.readPayload: decompressing page", err)
	}

	if int32(len(decoded)) != header.UncompressedPageSize {
		return nil, errkind.Errorf(errkind.SizeMismatch, "page.Reader.readPayload",
			"decompressed %d bytes, header declares %d", len(decoded), header.UncompressedPageSize)
	}
	return decoded, nil
}

func isCompressed(header *format.PageHeader) bool {
	if header.Type == format.DataPageV2 && header.DataPageHeaderV2 != nil {
		return header.DataPageHeaderV2.IsCompressed
	}
	return true
}
