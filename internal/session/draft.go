package session

import (
	"github.com/M4rkoza7/aces/internal/schema"
)

// Draft is the scratch buffer collected from the UI collaborator before a
// commit. Omitted stat fields fall back to the baseline template on add.
type Draft struct {
	PlaneID        *int64           `json:"planeId,omitempty"`
	PlaneStringID  string           `json:"planeStringId" validate:"required"`
	Category       string           `json:"category,omitempty"`
	SpWeaponID1    string           `json:"spWeaponId1,omitempty"`
	SpWeaponID2    string           `json:"spWeaponId2,omitempty"`
	SpWeaponID3    string           `json:"spWeaponId3,omitempty"`
	FlareLoadCount *int64           `json:"flareLoadCount,omitempty"`
	Stats          map[string]int64 `json:"stats,omitempty"`
	Skins          []SkinDraft      `json:"skins,omitempty"`
}

// SkinDraft describes one skin collected alongside the plane draft.
type SkinDraft struct {
	SkinNo     int64 `json:"skinNo"`
	NoseEmblem bool  `json:"noseEmblem"`
	WingEmblem bool  `json:"wingEmblem"`
	TailEmblem bool  `json:"tailEmblem"`
}

// fields flattens the draft into the field map the table model consumes.
func (d Draft) fields() map[string]any {
	fields := map[string]any{
		schema.FieldPlaneStringID: d.PlaneStringID,
		"SpWeaponID1":             d.SpWeaponID1,
		"SpWeaponID2":             d.SpWeaponID2,
		"SpWeaponID3":             d.SpWeaponID3,
	}
	if d.PlaneID != nil {
		fields[schema.FieldPlaneID] = *d.PlaneID
	}
	if d.Category != "" {
		fields[schema.FieldCategory] = d.Category
	}
	if d.FlareLoadCount != nil {
		fields["FlareLoadCount"] = *d.FlareLoadCount
	}
	for name, value := range d.Stats {
		fields[name] = value
	}
	return fields
}

func (s SkinDraft) fields() map[string]any {
	return map[string]any{
		schema.FieldSkinNo: s.SkinNo,
		"bNoseEmblem":      s.NoseEmblem,
		"bWingEmblem":      s.WingEmblem,
		"bTailEmblem":      s.TailEmblem,
	}
}

// draftFromRecord loads an existing plane record and its skins into a draft.
func draftFromRecord(rec *schema.Record, skins []*schema.Record) Draft {
	id := rec.Int(schema.FieldPlaneID)
	flare := rec.Int("FlareLoadCount")

	d := Draft{
		PlaneID:        &id,
		PlaneStringID:  rec.Text(schema.FieldPlaneStringID),
		Category:       rec.Text(schema.FieldCategory),
		SpWeaponID1:    rec.Text("SpWeaponID1"),
		SpWeaponID2:    rec.Text("SpWeaponID2"),
		SpWeaponID3:    rec.Text("SpWeaponID3"),
		FlareLoadCount: &flare,
		Stats:          make(map[string]int64, len(schema.StatFields)),
	}
	for _, name := range schema.StatFields {
		d.Stats[name] = rec.Int(name)
	}
	for _, s := range skins {
		d.Skins = append(d.Skins, SkinDraft{
			SkinNo:     s.Int(schema.FieldSkinNo),
			NoseEmblem: s.Bool("bNoseEmblem"),
			WingEmblem: s.Bool("bWingEmblem"),
			TailEmblem: s.Bool("bTailEmblem"),
		})
	}
	return d
}

// template returns a copy of the draft usable as an add-mode seed: stats and
// loadouts carried over, identity fields cleared.
func (d Draft) template() Draft {
	seed := d
	seed.PlaneID = nil
	seed.PlaneStringID = ""
	seed.Skins = nil
	seed.Stats = make(map[string]int64, len(d.Stats))
	for name, value := range d.Stats {
		seed.Stats[name] = value
	}
	return seed
}
