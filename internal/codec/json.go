package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/M4rkoza7/aces/internal/schema"
)

// JSON text form. Rows carry the classic property-list shape used by asset
// dump tools, so hand-edited or exported table dumps load directly:
//
//	{
//	  "TableName": "PlayerPlaneDataTable",
//	  "Rows": [
//	    {"Name": "Row_0", "Value": [{"Name": "PlaneID", "Value": 0}, ...]}
//	  ]
//	}

type jsonDoc struct {
	TableName string    `json:"TableName"`
	Rows      []jsonRow `json:"Rows"`
}

type jsonRow struct {
	Name  string     `json:"Name"`
	Value []jsonProp `json:"Value"`
}

type jsonProp struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// DecodeJSON decodes the JSON text form into records. The document must name
// the expected table and every row must carry the full field set; structural
// problems fail with ErrFormat and no records.
func DecodeJSON(data []byte, s *schema.Schema) ([]*schema.Record, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if doc.TableName != s.Name {
		return nil, fmt.Errorf("%w: table name %q does not match schema %s", ErrFormat, doc.TableName, s.Name)
	}

	records := make([]*schema.Record, 0, len(doc.Rows))
	for i, row := range doc.Rows {
		rec := schema.NewRecord(s)
		seen := make(map[string]bool, len(row.Value))
		for _, prop := range row.Value {
			if !s.Has(prop.Name) {
				return nil, fmt.Errorf("%w: row %d has unknown field %q", ErrFormat, i, prop.Name)
			}
			if seen[prop.Name] {
				return nil, fmt.Errorf("%w: row %d repeats field %q", ErrFormat, i, prop.Name)
			}
			seen[prop.Name] = true
			if err := rec.Set(prop.Name, prop.Value); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrFormat, i, err)
			}
		}
		if len(seen) != s.NumFields() {
			return nil, fmt.Errorf("%w: row %d has %d of %d fields", ErrFormat, i, len(seen), s.NumFields())
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeJSON encodes records into the JSON text form. Row names follow the
// Row_<first field value> convention of the asset dumps.
func EncodeJSON(records []*schema.Record, s *schema.Schema) ([]byte, error) {
	doc := jsonDoc{
		TableName: s.Name,
		Rows:      make([]jsonRow, 0, len(records)),
	}
	for i, rec := range records {
		if rec.Schema() != s {
			return nil, fmt.Errorf("record %d does not belong to schema %s", i, s.Name)
		}
		row := jsonRow{
			Name:  fmt.Sprintf("Row_%v", rec.At(0)),
			Value: make([]jsonProp, len(s.Fields)),
		}
		for j, f := range s.Fields {
			row.Value[j] = jsonProp{Name: f.Name, Value: rec.At(j)}
		}
		doc.Rows = append(doc.Rows, row)
	}
	return json.MarshalIndent(doc, "", "  ")
}
