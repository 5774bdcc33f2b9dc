// Package table holds the in-memory editable table model: the player plane
// table, its skin table, and the derived aircraft viewer table. The model
// enforces the cross-table invariants (unique plane keys, non-empty skin
// lists, viewer table as a pure function of the other two) and performs ID
// allocation and baseline-template default substitution.
package table

import (
	"fmt"
	"sort"

	"github.com/M4rkoza7/aces/internal/schema"
)

// DefaultBaseline is the PlaneStringID of the reference aircraft whose stats
// fill omitted fields on add.
const DefaultBaseline = "f18f"

// Model is the in-memory table set for one edit session. It is not safe for
// concurrent use; the owning session serializes access.
type Model struct {
	planes   []*schema.Record
	skins    []*schema.Record
	viewer   []*schema.Record
	baseline string
}

// Summary is the listing row exposed to the UI collaborator.
type Summary struct {
	PlaneID       int64  `json:"planeId"`
	PlaneStringID string `json:"planeStringId"`
}

// NewModel builds a model from decoded plane and skin records, validating the
// invariants and regenerating the viewer table. baseline selects the template
// plane for default substitution; empty means DefaultBaseline.
func NewModel(planes, skins []*schema.Record, baseline string) (*Model, error) {
	if baseline == "" {
		baseline = DefaultBaseline
	}
	m := &Model{
		planes:   planes,
		skins:    skins,
		baseline: baseline,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.refresh()
	return m, nil
}

// validate checks uniqueness of plane keys, skin IDs, the skin foreign keys,
// and the non-empty-skin-list invariant on the loaded data.
func (m *Model) validate() error {
	ids := make(map[int64]bool, len(m.planes))
	names := make(map[string]bool, len(m.planes))
	for _, p := range m.planes {
		id := p.Int(schema.FieldPlaneID)
		sid := p.Text(schema.FieldPlaneStringID)
		if ids[id] {
			return fmt.Errorf("%w: PlaneID %d", ErrDuplicateKey, id)
		}
		if sid == "" || names[sid] {
			return fmt.Errorf("%w: PlaneStringID %q", ErrDuplicateKey, sid)
		}
		ids[id] = true
		names[sid] = true
	}

	skinIDs := make(map[int64]bool, len(m.skins))
	skinCount := make(map[int64]int, len(m.planes))
	for _, s := range m.skins {
		id := s.Int(schema.FieldSkinID)
		planeID := s.Int(schema.FieldPlaneID)
		if skinIDs[id] {
			return fmt.Errorf("%w: SkinID %d", ErrDuplicateKey, id)
		}
		if !ids[planeID] {
			return fmt.Errorf("%w: skin %d references PlaneID %d", ErrNotFound, id, planeID)
		}
		skinIDs[id] = true
		skinCount[planeID]++
	}
	for _, p := range m.planes {
		if skinCount[p.Int(schema.FieldPlaneID)] == 0 {
			return fmt.Errorf("%w: plane %q has no skins", ErrLastSkin, p.Text(schema.FieldPlaneStringID))
		}
	}
	return nil
}

// Clone deep-copies the model. Mutating operations on the clone never touch
// the original; commit paths mutate a clone and swap it in on success.
func (m *Model) Clone() *Model {
	return &Model{
		planes:   cloneRecords(m.planes),
		skins:    cloneRecords(m.skins),
		viewer:   cloneRecords(m.viewer),
		baseline: m.baseline,
	}
}

func cloneRecords(records []*schema.Record) []*schema.Record {
	out := make([]*schema.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Planes returns the plane records in table order.
func (m *Model) Planes() []*schema.Record { return m.planes }

// Skins returns the skin records in table order.
func (m *Model) Skins() []*schema.Record { return m.skins }

// Viewer returns the derived viewer records.
func (m *Model) Viewer() []*schema.Record { return m.viewer }

// ListPlanes returns plane summaries ordered by PlaneID.
func (m *Model) ListPlanes() []Summary {
	out := make([]Summary, 0, len(m.planes))
	for _, p := range m.planes {
		out = append(out, Summary{
			PlaneID:       p.Int(schema.FieldPlaneID),
			PlaneStringID: p.Text(schema.FieldPlaneStringID),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlaneID < out[j].PlaneID })
	return out
}

// GetPlane returns a copy of the full plane record and its skins ordered by
// SkinNo. Fails with ErrNotFound for an unknown id.
func (m *Model) GetPlane(id int64) (*schema.Record, []*schema.Record, error) {
	p := m.findPlane(id)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: PlaneID %d", ErrNotFound, id)
	}
	skins := make([]*schema.Record, 0, 1)
	for _, s := range m.skins {
		if s.Int(schema.FieldPlaneID) == id {
			skins = append(skins, s.Clone())
		}
	}
	sort.Slice(skins, func(i, j int) bool {
		return skins[i].Int(schema.FieldSkinNo) < skins[j].Int(schema.FieldSkinNo)
	})
	return p.Clone(), skins, nil
}

// AddPlane creates a plane record from the given fields and returns its
// PlaneID. A missing PlaneID is assigned the smallest non-negative integer
// not in use; omitted stat fields are filled from the baseline template.
// A first skin (SkinNo 0) is created alongside so the non-empty-skin-list
// invariant holds from birth. Fails with ErrDuplicateKey if the
// PlaneStringID or an explicit PlaneID is already taken.
func (m *Model) AddPlane(fields map[string]any) (int64, error) {
	sid, _ := fields[schema.FieldPlaneStringID].(string)
	if sid == "" {
		return 0, fmt.Errorf("table: PlaneStringID is required")
	}
	if m.findPlaneByName(sid) != nil {
		return 0, fmt.Errorf("%w: PlaneStringID %q", ErrDuplicateKey, sid)
	}

	id, err := m.resolvePlaneID(fields)
	if err != nil {
		return 0, err
	}

	rec := schema.NewRecord(schema.PlayerPlane)
	m.applyBaseline(rec)
	for name, value := range fields {
		if name == schema.FieldPlaneID {
			continue
		}
		if err := rec.Set(name, value); err != nil {
			return 0, err
		}
	}
	rec.Set(schema.FieldPlaneID, id)
	rec.Set(schema.FieldReference, planeReference(sid))

	m.planes = append(m.planes, rec)
	if _, err := m.addSkinRecord(id, sid, map[string]any{schema.FieldSkinNo: int64(0)}); err != nil {
		return 0, err
	}
	m.refresh()
	return id, nil
}

func (m *Model) resolvePlaneID(fields map[string]any) (int64, error) {
	raw, ok := fields[schema.FieldPlaneID]
	if !ok || raw == nil {
		return m.nextPlaneID(), nil
	}
	v, err := schema.Coerce(raw, schema.FieldInt)
	if err != nil {
		return 0, err
	}
	id := v.(int64)
	if m.findPlane(id) != nil {
		return 0, fmt.Errorf("%w: PlaneID %d", ErrDuplicateKey, id)
	}
	return id, nil
}

// EditPlane updates an existing plane record. PlaneID is immutable and a
// PlaneID entry in fields is ignored; changing PlaneStringID is allowed as
// long as it stays unique, and the reference fields follow it.
func (m *Model) EditPlane(id int64, fields map[string]any) error {
	p := m.findPlane(id)
	if p == nil {
		return fmt.Errorf("%w: PlaneID %d", ErrNotFound, id)
	}

	if raw, ok := fields[schema.FieldPlaneStringID]; ok {
		sid, _ := raw.(string)
		if other := m.findPlaneByName(sid); other != nil && other != p {
			return fmt.Errorf("%w: PlaneStringID %q", ErrDuplicateKey, sid)
		}
	}

	// Stage on a copy so a bad field leaves the record untouched.
	staged := p.Clone()
	for name, value := range fields {
		if name == schema.FieldPlaneID {
			continue
		}
		if err := staged.Set(name, value); err != nil {
			return err
		}
	}
	sid := staged.Text(schema.FieldPlaneStringID)
	staged.Set(schema.FieldReference, planeReference(sid))

	for i, rec := range m.planes {
		if rec == p {
			m.planes[i] = staged
			break
		}
	}
	for _, s := range m.skins {
		if s.Int(schema.FieldPlaneID) == id {
			s.Set(schema.FieldPlaneReference, skinReference(sid, s.Int(schema.FieldSkinNo)))
		}
	}
	m.refresh()
	return nil
}

// DeletePlane removes a plane and cascades deletion of its skins.
func (m *Model) DeletePlane(id int64) error {
	p := m.findPlane(id)
	if p == nil {
		return fmt.Errorf("%w: PlaneID %d", ErrNotFound, id)
	}

	planes := m.planes[:0]
	for _, rec := range m.planes {
		if rec != p {
			planes = append(planes, rec)
		}
	}
	m.planes = planes

	skins := m.skins[:0]
	for _, s := range m.skins {
		if s.Int(schema.FieldPlaneID) != id {
			skins = append(skins, s)
		}
	}
	m.skins = skins

	m.refresh()
	return nil
}

// AddSkin creates a skin for an existing plane and returns its SkinID.
// A missing SkinNo is assigned one past the plane's current highest.
func (m *Model) AddSkin(planeID int64, fields map[string]any) (int64, error) {
	p := m.findPlane(planeID)
	if p == nil {
		return 0, fmt.Errorf("%w: PlaneID %d", ErrNotFound, planeID)
	}

	clean := make(map[string]any, len(fields))
	for name, value := range fields {
		switch name {
		case schema.FieldSkinID, schema.FieldPlaneID, schema.FieldPlaneReference:
			continue
		}
		clean[name] = value
	}
	if _, ok := clean[schema.FieldSkinNo]; !ok {
		clean[schema.FieldSkinNo] = m.nextSkinNo(planeID)
	}

	id, err := m.addSkinRecord(planeID, p.Text(schema.FieldPlaneStringID), clean)
	if err != nil {
		return 0, err
	}
	m.refresh()
	return id, nil
}

func (m *Model) addSkinRecord(planeID int64, sid string, fields map[string]any) (int64, error) {
	rec := schema.NewRecord(schema.Skin)
	for name, value := range fields {
		if err := rec.Set(name, value); err != nil {
			return 0, err
		}
	}
	id := m.nextSkinID()
	rec.Set(schema.FieldSkinID, id)
	rec.Set(schema.FieldPlaneID, planeID)
	rec.Set(schema.FieldSortNumber, id)
	rec.Set(schema.FieldPlaneReference, skinReference(sid, rec.Int(schema.FieldSkinNo)))
	m.skins = append(m.skins, rec)
	return id, nil
}

// RemoveSkin deletes a skin. Removing the owning plane's last skin is
// refused with ErrLastSkin and the model is left unchanged.
func (m *Model) RemoveSkin(skinID int64) error {
	var target *schema.Record
	for _, s := range m.skins {
		if s.Int(schema.FieldSkinID) == skinID {
			target = s
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: SkinID %d", ErrNotFound, skinID)
	}

	planeID := target.Int(schema.FieldPlaneID)
	remaining := 0
	for _, s := range m.skins {
		if s.Int(schema.FieldPlaneID) == planeID {
			remaining++
		}
	}
	if remaining <= 1 {
		return fmt.Errorf("%w: SkinID %d is the last skin of PlaneID %d", ErrLastSkin, skinID, planeID)
	}

	skins := m.skins[:0]
	for _, s := range m.skins {
		if s != target {
			skins = append(skins, s)
		}
	}
	m.skins = skins
	m.refresh()
	return nil
}

// findPlane returns the plane record with the given PlaneID, or nil.
func (m *Model) findPlane(id int64) *schema.Record {
	for _, p := range m.planes {
		if p.Int(schema.FieldPlaneID) == id {
			return p
		}
	}
	return nil
}

func (m *Model) findPlaneByName(sid string) *schema.Record {
	for _, p := range m.planes {
		if p.Text(schema.FieldPlaneStringID) == sid {
			return p
		}
	}
	return nil
}

// nextPlaneID returns the smallest non-negative integer not used as a PlaneID.
func (m *Model) nextPlaneID() int64 {
	used := make(map[int64]bool, len(m.planes))
	for _, p := range m.planes {
		used[p.Int(schema.FieldPlaneID)] = true
	}
	for id := int64(0); ; id++ {
		if !used[id] {
			return id
		}
	}
}

// nextSkinID returns the smallest non-negative integer not used as a SkinID.
func (m *Model) nextSkinID() int64 {
	used := make(map[int64]bool, len(m.skins))
	for _, s := range m.skins {
		used[s.Int(schema.FieldSkinID)] = true
	}
	for id := int64(0); ; id++ {
		if !used[id] {
			return id
		}
	}
}

func (m *Model) nextSkinNo(planeID int64) int64 {
	next := int64(0)
	for _, s := range m.skins {
		if s.Int(schema.FieldPlaneID) == planeID && s.Int(schema.FieldSkinNo) >= next {
			next = s.Int(schema.FieldSkinNo) + 1
		}
	}
	return next
}

// refresh recomputes everything that is a function of the current table
// contents: the alphabetical sort numbers and the derived viewer table.
// Called after every mutation.
func (m *Model) refresh() {
	m.recomputeSortNumbers()
	m.viewer = BuildViewer(m.planes, m.skins)
}

// recomputeSortNumbers assigns each plane's SortNumber and
// AlphabeticalSortNumber from its alphabetical index by PlaneStringID.
func (m *Model) recomputeSortNumbers() {
	names := make([]string, 0, len(m.planes))
	for _, p := range m.planes {
		names = append(names, p.Text(schema.FieldPlaneStringID))
	}
	sort.Strings(names)

	index := make(map[string]int64, len(names))
	for i, n := range names {
		index[n] = int64(i)
	}
	for _, p := range m.planes {
		i := index[p.Text(schema.FieldPlaneStringID)]
		p.Set(schema.FieldSortNumber, i)
		p.Set(schema.FieldAlphaSort, i)
	}
}
