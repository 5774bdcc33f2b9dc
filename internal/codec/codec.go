// Package codec decodes and encodes the aircraft data tables.
//
// Two front-ends feed one internal representation: a binary asset pair
// (structural header file plus data-expansion file) and an equivalent JSON
// text form. Both decode to the same []*schema.Record sequence; encoding to
// the binary pair is deterministic, so an unmodified decode/encode cycle is
// byte-identical.
package codec

import (
	"bytes"
	"errors"
)

var (
	// ErrFormat indicates malformed or unrecognized table data.
	// No partial table is ever produced alongside it.
	ErrFormat = errors.New("codec: malformed table data")

	// ErrUnsupportedVersion indicates a recognized table with a schema
	// version this build does not handle.
	ErrUnsupportedVersion = errors.New("codec: unsupported table version")
)

// Format identifies one of the two accepted input encodings.
type Format int

const (
	FormatBinary Format = iota
	FormatJSON
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect inspects raw input bytes and reports which front-end should decode
// them. JSON documents start with '{' after optional BOM and whitespace;
// everything else is treated as the binary form.
func Detect(data []byte) Format {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) > 0 && data[0] == '{' {
		return FormatJSON
	}
	return FormatBinary
}
