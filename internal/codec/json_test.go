package codec

import (
	"errors"
	"testing"

	"github.com/M4rkoza7/aces/internal/schema"
)

const skinJSON = `{
  "TableName": "SkinDataTable",
  "Rows": [
    {
      "Name": "Row_0",
      "Value": [
        {"Name": "SkinID", "Value": 0},
        {"Name": "PlaneID", "Value": 0},
        {"Name": "SkinNo", "Value": 0},
        {"Name": "SortNumber", "Value": 0},
        {"Name": "bNoseEmblem", "Value": false},
        {"Name": "bWingEmblem", "Value": true},
        {"Name": "bTailEmblem", "Value": false},
        {"Name": "PlaneReference", "Value": "/Game/Blueprint/Player/Pawn/AcePlayerPawn_f18f.AcePlayerPawn_f18f_C"}
      ]
    }
  ]
}`

func TestDecodeJSON(t *testing.T) {
	records, err := DecodeJSON([]byte(skinJSON), schema.Skin)
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("decoded %d records, want 1", len(records))
	}

	rec := records[0]
	if got := rec.Int(schema.FieldSkinID); got != 0 {
		t.Errorf("SkinID = %d, want 0", got)
	}
	if got := rec.Bool("bWingEmblem"); !got {
		t.Error("bWingEmblem = false, want true")
	}
	if got := rec.Text(schema.FieldPlaneReference); got == "" {
		t.Error("PlaneReference is empty")
	}
}

func TestDecodeJSON_MatchesBinaryDecode(t *testing.T) {
	fromJSON, err := DecodeJSON([]byte(skinJSON), schema.Skin)
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}

	pair, err := EncodePair(fromJSON, schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	fromBinary, err := DecodePair(pair, schema.Skin)
	if err != nil {
		t.Fatalf("DecodePair() error = %v", err)
	}

	if !fromJSON[0].Equal(fromBinary[0]) {
		t.Error("JSON and binary decodes of the same table differ")
	}
}

func TestDecodeJSON_WrongTableName(t *testing.T) {
	_, err := DecodeJSON([]byte(skinJSON), schema.PlayerPlane)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("DecodeJSON() error = %v, want ErrFormat", err)
	}
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	doc := `{"TableName": "SkinDataTable", "Rows": [{"Name": "Row_0", "Value": [{"Name": "Bogus", "Value": 1}]}]}`
	if _, err := DecodeJSON([]byte(doc), schema.Skin); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodeJSON() error = %v, want ErrFormat", err)
	}
}

func TestDecodeJSON_MissingFields(t *testing.T) {
	doc := `{"TableName": "SkinDataTable", "Rows": [{"Name": "Row_0", "Value": [{"Name": "SkinID", "Value": 0}]}]}`
	if _, err := DecodeJSON([]byte(doc), schema.Skin); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodeJSON() error = %v, want ErrFormat", err)
	}
}

func TestDecodeJSON_NotJSON(t *testing.T) {
	if _, err := DecodeJSON([]byte("ADTB garbage"), schema.Skin); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodeJSON() error = %v, want ErrFormat", err)
	}
}

func TestEncodeJSON_RoundTrip(t *testing.T) {
	records, err := DecodeJSON([]byte(skinJSON), schema.Skin)
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}

	out, err := EncodeJSON(records, schema.Skin)
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	again, err := DecodeJSON(out, schema.Skin)
	if err != nil {
		t.Fatalf("DecodeJSON(encoded) error = %v", err)
	}
	if !records[0].Equal(again[0]) {
		t.Error("record differs after JSON round trip")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"json", []byte(`{"TableName":"x"}`), FormatJSON},
		{"json with whitespace", []byte("  \n\t{"), FormatJSON},
		{"json with BOM", append([]byte{0xEF, 0xBB, 0xBF}, '{'), FormatJSON},
		{"binary magic", []byte("ADTB\x01\x00"), FormatBinary},
		{"empty", nil, FormatBinary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
