package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/M4rkoza7/aces/internal/schema"
)

func skinRecord(t *testing.T, id, planeID, skinNo int64, nose bool, ref string) *schema.Record {
	t.Helper()
	rec := schema.NewRecord(schema.Skin)
	fields := map[string]any{
		schema.FieldSkinID:         id,
		schema.FieldPlaneID:        planeID,
		schema.FieldSkinNo:         skinNo,
		schema.FieldSortNumber:     id,
		"bNoseEmblem":              nose,
		schema.FieldPlaneReference: ref,
	}
	for name, value := range fields {
		if err := rec.Set(name, value); err != nil {
			t.Fatalf("Set(%s) error = %v", name, err)
		}
	}
	return rec
}

func testSkins(t *testing.T) []*schema.Record {
	t.Helper()
	return []*schema.Record{
		skinRecord(t, 0, 0, 0, false, "/Game/Blueprint/Player/Pawn/AcePlayerPawn_f18f.AcePlayerPawn_f18f_C"),
		skinRecord(t, 1, 0, 1, true, "/Game/Blueprint/Player/Pawn/Skin/AcePlayerPawn_f18f_s01.AcePlayerPawn_f18f_s01_C"),
		skinRecord(t, 2, 1, 0, false, "/Game/Blueprint/Player/Pawn/AcePlayerPawn_f04e.AcePlayerPawn_f04e_C"),
	}
}

func TestEncodeDecodePair_RoundTrip(t *testing.T) {
	records := testSkins(t)

	pair, err := EncodePair(records, schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}

	decoded, err := DecodePair(pair, schema.Skin)
	if err != nil {
		t.Fatalf("DecodePair() error = %v", err)
	}
	if len(decoded) != len(records) {
		t.Fatalf("decoded %d records, want %d", len(decoded), len(records))
	}
	for i, rec := range decoded {
		if !rec.Equal(records[i]) {
			t.Errorf("record %d differs after round trip: %v", i, rec.Map())
		}
	}
}

func TestEncodePair_Deterministic(t *testing.T) {
	records := testSkins(t)

	a, err := EncodePair(records, schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	b, err := EncodePair(records, schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	if !bytes.Equal(a.Header, b.Header) || !bytes.Equal(a.Data, b.Data) {
		t.Error("identical records produced different bytes")
	}
}

func TestDecodePair_BadMagic(t *testing.T) {
	pair, err := EncodePair(testSkins(t), schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	pair.Header[0] = 'X'

	_, err = DecodePair(pair, schema.Skin)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("DecodePair() error = %v, want ErrFormat", err)
	}
}

func TestDecodePair_UnsupportedVersion(t *testing.T) {
	pair, err := EncodePair(testSkins(t), schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	binary.LittleEndian.PutUint16(pair.Header[4:], Version+1)

	_, err = DecodePair(pair, schema.Skin)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("DecodePair() error = %v, want ErrUnsupportedVersion", err)
	}
	if errors.Is(err, ErrFormat) {
		t.Error("version error should not also be ErrFormat")
	}
}

func TestDecodePair_TruncatedHeader(t *testing.T) {
	pair, err := EncodePair(testSkins(t), schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	pair.Header = pair.Header[:8]

	if _, err := DecodePair(pair, schema.Skin); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodePair() error = %v, want ErrFormat", err)
	}
}

func TestDecodePair_TruncatedData(t *testing.T) {
	pair, err := EncodePair(testSkins(t), schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	pair.Data = pair.Data[:len(pair.Data)-3]

	if _, err := DecodePair(pair, schema.Skin); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodePair() error = %v, want ErrFormat", err)
	}
}

func TestDecodePair_TrailingBytes(t *testing.T) {
	pair, err := EncodePair(testSkins(t), schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}
	pair.Data = append(pair.Data, 0xDE, 0xAD)

	if _, err := DecodePair(pair, schema.Skin); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodePair() error = %v, want ErrFormat", err)
	}
}

func TestDecodePair_WrongSchema(t *testing.T) {
	pair, err := EncodePair(testSkins(t), schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}

	if _, err := DecodePair(pair, schema.Viewer); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodePair() with mismatched schema error = %v, want ErrFormat", err)
	}
}

func TestDecodePair_InvalidBoolean(t *testing.T) {
	pair, err := EncodePair(testSkins(t)[:1], schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair() error = %v", err)
	}

	// Row layout: 4 int64 fields (32 bytes), then the three bool bytes.
	const boolOffset = 4 + 4*8
	pair.Data[boolOffset] = 7

	if _, err := DecodePair(pair, schema.Skin); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodePair() error = %v, want ErrFormat", err)
	}
}

func TestEncodePair_ForeignRecordRejected(t *testing.T) {
	foreign := schema.NewRecord(schema.Viewer)
	if _, err := EncodePair([]*schema.Record{foreign}, schema.Skin); err == nil {
		t.Fatal("EncodePair() expected error for record of another schema")
	}
}

func TestEncodeDecodePair_Empty(t *testing.T) {
	pair, err := EncodePair(nil, schema.Skin)
	if err != nil {
		t.Fatalf("EncodePair(nil) error = %v", err)
	}
	if len(pair.Data) != 0 {
		t.Errorf("empty table data = %d bytes, want 0", len(pair.Data))
	}

	decoded, err := DecodePair(pair, schema.Skin)
	if err != nil {
		t.Fatalf("DecodePair() error = %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("decoded %d records from empty table", len(decoded))
	}
}
