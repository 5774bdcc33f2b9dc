// Package session implements the edit session: a two-state machine (add or
// edit mode) over a scratch draft, committed atomically against the table
// model and the output directory. One session exclusively owns the loaded
// model for its lifetime.
package session

import (
	"context"
	"fmt"

	"github.com/M4rkoza7/aces/internal/schema"
	"github.com/M4rkoza7/aces/internal/store"
	"github.com/M4rkoza7/aces/internal/table"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Mode is the session's current editing mode.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Session orchestrates edits against the table model. Not safe for
// concurrent use; the service serializes access.
type Session struct {
	id        string
	mode      Mode
	draft     Draft
	model     *table.Model
	outputDir string
	validate  *validator.Validate

	// Last record viewed in edit mode, kept as the add-mode seed.
	lastViewed *Draft
}

// New creates a session in add mode owning the given model. Committed
// tables are written into outputDir.
func New(model *table.Model, outputDir string) *Session {
	return &Session{
		id:        uuid.NewString(),
		mode:      ModeAdd,
		model:     model,
		outputDir: outputDir,
		validate:  newValidator(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Draft returns the current scratch buffer.
func (s *Session) Draft() Draft { return s.draft }

// Model returns the model the session owns, for read access.
func (s *Session) Model() *table.Model { return s.model }

// SetDraft replaces the scratch buffer. In edit mode the loaded record's
// PlaneID is pinned: drafts cannot retarget or change it.
func (s *Session) SetDraft(d Draft) {
	if s.mode == ModeEdit {
		d.PlaneID = s.draft.PlaneID
	}
	s.draft = d
}

// SwitchToEdit loads an existing record into the scratch buffer and enters
// edit mode. The loaded draft also becomes the template seed for a later
// switch back to add mode.
func (s *Session) SwitchToEdit(id int64) error {
	rec, skins, err := s.model.GetPlane(id)
	if err != nil {
		return err
	}
	s.draft = draftFromRecord(rec, skins)
	seed := s.draft.template()
	s.lastViewed = &seed
	s.mode = ModeEdit
	return nil
}

// SwitchToAdd clears the scratch buffer and enters add mode, pre-seeded from
// whatever was last viewed in edit mode.
func (s *Session) SwitchToAdd() {
	if s.lastViewed != nil {
		s.draft = s.lastViewed.template()
	} else {
		s.draft = Draft{}
	}
	s.mode = ModeAdd
}

// Discard resets the scratch buffer with no model mutation, returning the
// session to a clean add mode.
func (s *Session) Discard() {
	s.draft = Draft{}
	s.mode = ModeAdd
}

// Commit validates the scratch buffer, applies it through the table model,
// and persists all three tables together. The mutation runs against a clone
// that only replaces the live model after every file landed, so a failed
// commit leaves both the in-memory model and the on-disk tables unchanged.
// Returns the PlaneID of the committed record.
func (s *Session) Commit(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := checkDraft(s.validate, s.draft); err != nil {
		return 0, err
	}

	clone := s.model.Clone()

	var id int64
	var err error
	switch s.mode {
	case ModeAdd:
		id, err = s.applyAdd(clone)
	case ModeEdit:
		id, err = s.applyEdit(clone)
	default:
		err = fmt.Errorf("session: unknown mode %q", s.mode)
	}
	if err != nil {
		return 0, err
	}

	if err := persist(s.outputDir, clone); err != nil {
		return 0, err
	}

	s.model = clone
	if err := s.SwitchToEdit(id); err != nil {
		// The record was just committed; a lookup failure here means the
		// session state is inconsistent with its own model.
		return 0, err
	}
	return id, nil
}

func (s *Session) applyAdd(m *table.Model) (int64, error) {
	id, err := m.AddPlane(s.draft.fields())
	if err != nil {
		return 0, err
	}
	if len(s.draft.Skins) == 0 {
		return id, nil
	}

	// AddPlane created a default first skin. Add the drafted skins, then
	// drop the placeholder so exactly the drafts remain.
	_, autoSkins, err := m.GetPlane(id)
	if err != nil {
		return 0, err
	}
	for _, sd := range s.draft.Skins {
		if _, err := m.AddSkin(id, sd.fields()); err != nil {
			return 0, err
		}
	}
	if err := m.RemoveSkin(autoSkins[0].Int(schema.FieldSkinID)); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Session) applyEdit(m *table.Model) (int64, error) {
	if s.draft.PlaneID == nil {
		return 0, fmt.Errorf("session: edit draft has no PlaneID")
	}
	id := *s.draft.PlaneID

	if err := m.EditPlane(id, s.draft.fields()); err != nil {
		return 0, err
	}
	if len(s.draft.Skins) == 0 {
		return id, nil
	}

	// Replace-all skin semantics: drafted skins in, previous skins out.
	_, oldSkins, err := m.GetPlane(id)
	if err != nil {
		return 0, err
	}
	for _, sd := range s.draft.Skins {
		if _, err := m.AddSkin(id, sd.fields()); err != nil {
			return 0, err
		}
	}
	for _, old := range oldSkins {
		if err := m.RemoveSkin(old.Int(schema.FieldSkinID)); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Apply runs a direct model mutation (delete, skin add/remove) with the same
// clone-persist-swap discipline as Commit.
func (s *Session) Apply(mutate func(*table.Model) error) error {
	clone := s.model.Clone()
	if err := mutate(clone); err != nil {
		return err
	}
	if err := persist(s.outputDir, clone); err != nil {
		return err
	}
	s.model = clone

	// The loaded record may have been deleted under an edit draft.
	if s.mode == ModeEdit && s.draft.PlaneID != nil {
		if _, _, err := s.model.GetPlane(*s.draft.PlaneID); err != nil {
			s.Discard()
		}
	}
	return nil
}

func persist(dir string, m *table.Model) error {
	return store.WriteAll(dir, store.TableSet{
		Planes: m.Planes(),
		Skins:  m.Skins(),
		Viewer: m.Viewer(),
	})
}
