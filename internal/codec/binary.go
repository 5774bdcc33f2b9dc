package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/M4rkoza7/aces/internal/schema"
)

// Binary layout, little-endian throughout.
//
// Header file (.uasset):
//
//	magic   [4]byte "ADTB"
//	version uint16
//	_       uint16  reserved, zero
//	nameLen uint32
//	name    [nameLen]byte  table name, must match the schema
//	rows    uint32
//	dataLen uint32  byte length of the data file
//
// Data file (.uexp): rows back to back, each a uint32 byte length followed
// by the fields in exact schema order. Integers are 8-byte two's complement,
// booleans one byte, strings a uint16 length prefix plus UTF-8 bytes.

var magic = [4]byte{'A', 'D', 'T', 'B'}

// Version is the binary layout version this build reads and writes.
const Version = 1

// Pair is a linked binary asset pair: the structural header file and the
// data-expansion file it describes.
type Pair struct {
	Header []byte
	Data   []byte
}

// EncodePair encodes records into a binary asset pair. Field order and
// per-field byte layout are fixed by the schema, so encoding is
// deterministic: identical records always produce identical bytes.
func EncodePair(records []*schema.Record, s *schema.Schema) (Pair, error) {
	var data []byte
	for i, rec := range records {
		if rec.Schema() != s {
			return Pair{}, fmt.Errorf("record %d does not belong to schema %s", i, s.Name)
		}
		row, err := encodeRow(rec, s)
		if err != nil {
			return Pair{}, fmt.Errorf("record %d: %w", i, err)
		}
		data = binary.LittleEndian.AppendUint32(data, uint32(len(row)))
		data = append(data, row...)
	}

	header := make([]byte, 0, 20+len(s.Name))
	header = append(header, magic[:]...)
	header = binary.LittleEndian.AppendUint16(header, Version)
	header = binary.LittleEndian.AppendUint16(header, 0)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(s.Name)))
	header = append(header, s.Name...)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(records)))
	header = binary.LittleEndian.AppendUint32(header, uint32(len(data)))

	return Pair{Header: header, Data: data}, nil
}

func encodeRow(rec *schema.Record, s *schema.Schema) ([]byte, error) {
	var row []byte
	for i, f := range s.Fields {
		v := rec.At(i)
		switch f.Type {
		case schema.FieldInt:
			n, ok := v.(int64)
			if !ok {
				return nil, fmt.Errorf("field %q: expected int64, got %T", f.Name, v)
			}
			row = binary.LittleEndian.AppendUint64(row, uint64(n))
		case schema.FieldBool:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("field %q: expected bool, got %T", f.Name, v)
			}
			if b {
				row = append(row, 1)
			} else {
				row = append(row, 0)
			}
		case schema.FieldString:
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("field %q: expected string, got %T", f.Name, v)
			}
			if len(str) > math.MaxUint16 {
				return nil, fmt.Errorf("field %q: string exceeds %d bytes", f.Name, math.MaxUint16)
			}
			row = binary.LittleEndian.AppendUint16(row, uint16(len(str)))
			row = append(row, str...)
		}
	}
	return row, nil
}

// DecodePair decodes a binary asset pair into records. Header, magic, and
// length checks fail with ErrFormat; a recognized header carrying an unknown
// version fails with ErrUnsupportedVersion. On any failure no records are
// returned.
func DecodePair(p Pair, s *schema.Schema) ([]*schema.Record, error) {
	rows, dataLen, err := decodeHeader(p.Header, s)
	if err != nil {
		return nil, err
	}
	if len(p.Data) != int(dataLen) {
		return nil, fmt.Errorf("%w: data file is %d bytes, header declares %d", ErrFormat, len(p.Data), dataLen)
	}

	records := make([]*schema.Record, 0, rows)
	rest := p.Data
	for i := uint32(0); i < rows; i++ {
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: truncated row %d", ErrFormat, i)
		}
		rowLen := binary.LittleEndian.Uint32(rest)
		rest = rest[4:]
		if uint32(len(rest)) < rowLen {
			return nil, fmt.Errorf("%w: row %d declares %d bytes, %d remain", ErrFormat, i, rowLen, len(rest))
		}

		rec, err := decodeRow(rest[:rowLen], s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
		rest = rest[rowLen:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after last row", ErrFormat, len(rest))
	}
	return records, nil
}

func decodeHeader(header []byte, s *schema.Schema) (rows, dataLen uint32, err error) {
	if len(header) < 12 {
		return 0, 0, fmt.Errorf("%w: header is %d bytes", ErrFormat, len(header))
	}
	if [4]byte(header[:4]) != magic {
		return 0, 0, fmt.Errorf("%w: bad magic %q", ErrFormat, header[:4])
	}
	version := binary.LittleEndian.Uint16(header[4:])
	if version != Version {
		return 0, 0, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}

	nameLen := binary.LittleEndian.Uint32(header[8:])
	if len(header) != 12+int(nameLen)+8 {
		return 0, 0, fmt.Errorf("%w: header is %d bytes, expected %d", ErrFormat, len(header), 12+int(nameLen)+8)
	}
	name := string(header[12 : 12+nameLen])
	if name != s.Name {
		return 0, 0, fmt.Errorf("%w: table name %q does not match schema %s", ErrFormat, name, s.Name)
	}

	rows = binary.LittleEndian.Uint32(header[12+nameLen:])
	dataLen = binary.LittleEndian.Uint32(header[12+nameLen+4:])
	return rows, dataLen, nil
}

func decodeRow(row []byte, s *schema.Schema) (*schema.Record, error) {
	rec := schema.NewRecord(s)
	for _, f := range s.Fields {
		switch f.Type {
		case schema.FieldInt:
			if len(row) < 8 {
				return nil, fmt.Errorf("%w: truncated field %q", ErrFormat, f.Name)
			}
			n := int64(binary.LittleEndian.Uint64(row))
			row = row[8:]
			rec.Set(f.Name, n)
		case schema.FieldBool:
			if len(row) < 1 {
				return nil, fmt.Errorf("%w: truncated field %q", ErrFormat, f.Name)
			}
			switch row[0] {
			case 0:
				rec.Set(f.Name, false)
			case 1:
				rec.Set(f.Name, true)
			default:
				return nil, fmt.Errorf("%w: invalid boolean %d in field %q", ErrFormat, row[0], f.Name)
			}
			row = row[1:]
		case schema.FieldString:
			if len(row) < 2 {
				return nil, fmt.Errorf("%w: truncated field %q", ErrFormat, f.Name)
			}
			strLen := binary.LittleEndian.Uint16(row)
			row = row[2:]
			if len(row) < int(strLen) {
				return nil, fmt.Errorf("%w: truncated string in field %q", ErrFormat, f.Name)
			}
			rec.Set(f.Name, string(row[:strLen]))
			row = row[strLen:]
		}
	}
	if len(row) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes in row", ErrFormat, len(row))
	}
	return rec, nil
}
