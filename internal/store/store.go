// Package store resolves table files on disk and persists the encoded
// binary asset pairs. Reads and writes are whole-file, scoped acquisitions:
// a path is opened, fully read or written, and released before returning.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/M4rkoza7/aces/internal/codec"
	"github.com/M4rkoza7/aces/internal/schema"
)

// File name layout per table. The binary form is a linked pair; the JSON
// text form is a single file.
const (
	headerExt = ".uasset"
	dataExt   = ".uexp"
	jsonExt   = ".json"
)

// LoadTable reads one table from dir, preferring the binary pair when both
// encodings are present. Content-based format detection guards against a
// .json file that actually holds binary data.
func LoadTable(dir string, s *schema.Schema) ([]*schema.Record, error) {
	headerPath := filepath.Join(dir, s.Name+headerExt)
	if _, err := os.Stat(headerPath); err == nil {
		return loadPair(dir, s)
	}

	jsonPath := filepath.Join(dir, s.Name+jsonExt)
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", jsonPath, err)
	}
	if codec.Detect(data) != codec.FormatJSON {
		return nil, fmt.Errorf("%s: %w: not a JSON table document", jsonPath, codec.ErrFormat)
	}
	return codec.DecodeJSON(data, s)
}

func loadPair(dir string, s *schema.Schema) ([]*schema.Record, error) {
	header, err := os.ReadFile(filepath.Join(dir, s.Name+headerExt))
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, s.Name+dataExt))
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return codec.DecodePair(codec.Pair{Header: header, Data: data}, s)
}

// TableSet is the full set of tables persisted together.
type TableSet struct {
	Planes []*schema.Record
	Skins  []*schema.Record
	Viewer []*schema.Record
}

// WriteAll encodes and writes all three tables as binary pairs into dir,
// creating it if absent. All files are staged under temporary names first
// and only renamed into place once every write succeeded, so a failure
// leaves no partially written output pair behind.
func WriteAll(dir string, set TableSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tables := []struct {
		schema  *schema.Schema
		records []*schema.Record
	}{
		{schema.PlayerPlane, set.Planes},
		{schema.Skin, set.Skins},
		{schema.Viewer, set.Viewer},
	}

	type staged struct{ tmp, final string }
	var files []staged

	cleanup := func() {
		for _, f := range files {
			os.Remove(f.tmp)
		}
	}

	for _, t := range tables {
		pair, err := codec.EncodePair(t.records, t.schema)
		if err != nil {
			cleanup()
			return fmt.Errorf("encode %s: %w", t.schema.Name, err)
		}
		for _, part := range []struct {
			ext     string
			content []byte
		}{
			{headerExt, pair.Header},
			{dataExt, pair.Data},
		} {
			final := filepath.Join(dir, t.schema.Name+part.ext)
			tmp := final + ".tmp"
			if err := os.WriteFile(tmp, part.content, 0o644); err != nil {
				cleanup()
				return fmt.Errorf("stage %s: %w", final, err)
			}
			files = append(files, staged{tmp: tmp, final: final})
		}
	}

	for i, f := range files {
		if err := os.Rename(f.tmp, f.final); err != nil {
			// Remove the temps that were not renamed yet.
			for _, rest := range files[i:] {
				os.Remove(rest.tmp)
			}
			return fmt.Errorf("place %s: %w", f.final, err)
		}
	}
	return nil
}
