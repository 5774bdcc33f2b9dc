package schema

// Field names used by the table model for the player plane table.
const (
	FieldPlaneID       = "PlaneID"
	FieldPlaneStringID = "PlaneStringID"
	FieldCategory      = "Category"
	FieldSortNumber    = "SortNumber"
	FieldAlphaSort     = "AlphabeticalSortNumber"
	FieldReference     = "Reference"
)

// Special weapon slot fields. A plane needs at least one of these set.
var SpWeaponFields = []string{"SpWeaponID1", "SpWeaponID2", "SpWeaponID3"}

// StatFields are the numeric aircraft stats subject to baseline-template
// default substitution when omitted on add.
var StatFields = []string{
	"GunLoadCount", "MainWeaponLoadCount",
	"SpWeaponLoadCount1", "SpWeaponLoadCount2", "SpWeaponLoadCount3",
	"GraphAirToAir", "GraphAirToGround", "GraphSpeed", "GraphMobirity",
	"GraphStability", "GraphDefense",
	"PartsSlotBody", "PartsSlotArms", "PartsSlotMisc",
	"StealthLevel", "AircraftCost", "MaxHealth",
}

// PlayerPlane is the primary aircraft stats table.
var PlayerPlane = New("PlayerPlaneDataTable",
	FieldSpec{Name: FieldPlaneID, Type: FieldInt},
	FieldSpec{Name: FieldPlaneStringID, Type: FieldString},
	FieldSpec{Name: FieldCategory, Type: FieldString},
	FieldSpec{Name: FieldSortNumber, Type: FieldInt},
	FieldSpec{Name: FieldAlphaSort, Type: FieldInt},
	FieldSpec{Name: "SpWeaponID1", Type: FieldString},
	FieldSpec{Name: "SpWeaponID2", Type: FieldString},
	FieldSpec{Name: "SpWeaponID3", Type: FieldString},
	FieldSpec{Name: "FlareLoadCount", Type: FieldInt},
	FieldSpec{Name: FieldReference, Type: FieldString},
	FieldSpec{Name: "GunLoadCount", Type: FieldInt},
	FieldSpec{Name: "MainWeaponLoadCount", Type: FieldInt},
	FieldSpec{Name: "SpWeaponLoadCount1", Type: FieldInt},
	FieldSpec{Name: "SpWeaponLoadCount2", Type: FieldInt},
	FieldSpec{Name: "SpWeaponLoadCount3", Type: FieldInt},
	FieldSpec{Name: "GraphAirToAir", Type: FieldInt},
	FieldSpec{Name: "GraphAirToGround", Type: FieldInt},
	FieldSpec{Name: "GraphSpeed", Type: FieldInt},
	FieldSpec{Name: "GraphMobirity", Type: FieldInt},
	FieldSpec{Name: "GraphStability", Type: FieldInt},
	FieldSpec{Name: "GraphDefense", Type: FieldInt},
	FieldSpec{Name: "PartsSlotBody", Type: FieldInt},
	FieldSpec{Name: "PartsSlotArms", Type: FieldInt},
	FieldSpec{Name: "PartsSlotMisc", Type: FieldInt},
	FieldSpec{Name: "StealthLevel", Type: FieldInt},
	FieldSpec{Name: "AircraftCost", Type: FieldInt},
	FieldSpec{Name: "MaxHealth", Type: FieldInt},
)

func init() {
	Register(PlayerPlane)
}
