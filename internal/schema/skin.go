package schema

// Field names used by the table model for the skin table.
const (
	FieldSkinID         = "SkinID"
	FieldSkinNo         = "SkinNo"
	FieldPlaneReference = "PlaneReference"
)

// Skin is the cosmetic variant table. Every row references one plane by
// PlaneID; SkinNo is the display order within that plane's skin group.
var Skin = New("SkinDataTable",
	FieldSpec{Name: FieldSkinID, Type: FieldInt},
	FieldSpec{Name: FieldPlaneID, Type: FieldInt},
	FieldSpec{Name: FieldSkinNo, Type: FieldInt},
	FieldSpec{Name: FieldSortNumber, Type: FieldInt},
	FieldSpec{Name: "bNoseEmblem", Type: FieldBool},
	FieldSpec{Name: "bWingEmblem", Type: FieldBool},
	FieldSpec{Name: "bTailEmblem", Type: FieldBool},
	FieldSpec{Name: FieldPlaneReference, Type: FieldString},
)

func init() {
	Register(Skin)
}
