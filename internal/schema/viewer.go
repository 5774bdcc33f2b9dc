package schema

// FieldViewerID is the sequential identifier of a viewer row.
const FieldViewerID = "AircraftViewerID"

// Viewer is the aircraft viewer table. It is fully derived from the plane and
// skin tables and never edited directly: one row per skin, ordered by PlaneID
// then SkinNo, with AircraftViewerID assigned sequentially from zero.
var Viewer = New("AircraftViewerDataTable",
	FieldSpec{Name: FieldViewerID, Type: FieldInt},
	FieldSpec{Name: FieldPlaneID, Type: FieldInt},
	FieldSpec{Name: FieldPlaneStringID, Type: FieldString},
	FieldSpec{Name: FieldSkinID, Type: FieldInt},
	FieldSpec{Name: FieldSortNumber, Type: FieldInt},
	FieldSpec{Name: FieldReference, Type: FieldString},
)

func init() {
	Register(Viewer)
}
