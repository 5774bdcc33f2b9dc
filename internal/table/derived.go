package table

import (
	"fmt"
	"sort"

	"github.com/M4rkoza7/aces/internal/schema"
)

// BuildViewer computes the aircraft viewer table from the plane and skin
// tables. The result is a pure function of its inputs: one row per skin,
// ordered by PlaneID then SkinNo, with AircraftViewerID and SortNumber
// assigned sequentially from zero. Recomputing from identical inputs yields
// identical output.
func BuildViewer(planes, skins []*schema.Record) []*schema.Record {
	byPlane := make(map[int64][]*schema.Record, len(planes))
	for _, s := range skins {
		id := s.Int(schema.FieldPlaneID)
		byPlane[id] = append(byPlane[id], s)
	}

	ordered := make([]*schema.Record, len(planes))
	copy(ordered, planes)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Int(schema.FieldPlaneID) < ordered[j].Int(schema.FieldPlaneID)
	})

	var viewer []*schema.Record
	next := int64(0)
	for _, p := range ordered {
		id := p.Int(schema.FieldPlaneID)
		sid := p.Text(schema.FieldPlaneStringID)

		group := byPlane[id]
		sort.Slice(group, func(i, j int) bool {
			a, b := group[i], group[j]
			if a.Int(schema.FieldSkinNo) != b.Int(schema.FieldSkinNo) {
				return a.Int(schema.FieldSkinNo) < b.Int(schema.FieldSkinNo)
			}
			return a.Int(schema.FieldSkinID) < b.Int(schema.FieldSkinID)
		})

		for _, s := range group {
			rec := schema.NewRecord(schema.Viewer)
			rec.Set(schema.FieldViewerID, next)
			rec.Set(schema.FieldPlaneID, id)
			rec.Set(schema.FieldPlaneStringID, sid)
			rec.Set(schema.FieldSkinID, s.Int(schema.FieldSkinID))
			rec.Set(schema.FieldSortNumber, next)
			rec.Set(schema.FieldReference, planeReference(sid))
			viewer = append(viewer, rec)
			next++
		}
	}
	return viewer
}

// applyBaseline copies the baseline template plane's stat fields into a fresh
// record. Caller-supplied fields overwrite these afterwards, so substitution
// only applies where the caller supplied no value.
func (m *Model) applyBaseline(rec *schema.Record) {
	tpl := m.findPlaneByName(m.baseline)
	if tpl == nil {
		return
	}
	for _, name := range schema.StatFields {
		if v, ok := tpl.Get(name); ok {
			rec.Set(name, v)
		}
	}
	if v, ok := tpl.Get("FlareLoadCount"); ok {
		rec.Set("FlareLoadCount", v)
	}
}

// planeReference builds the pawn blueprint path for a plane.
func planeReference(sid string) string {
	return fmt.Sprintf("/Game/Blueprint/Player/Pawn/AcePlayerPawn_%s.AcePlayerPawn_%s_C", sid, sid)
}

// skinReference builds the pawn blueprint path for a skin. Skin 0 points at
// the base pawn; later skins use the numbered skin blueprint.
func skinReference(sid string, skinNo int64) string {
	if skinNo == 0 {
		return planeReference(sid)
	}
	return fmt.Sprintf("/Game/Blueprint/Player/Pawn/Skin/AcePlayerPawn_%s_s%02d.AcePlayerPawn_%s_s%02d_C", sid, skinNo, sid, skinNo)
}
