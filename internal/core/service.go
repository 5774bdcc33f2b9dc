// Package core provides the business logic for the aircraft table editor.
// This package has no HTTP dependencies and can be driven by any frontend.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/M4rkoza7/aces/internal/audit"
	"github.com/M4rkoza7/aces/internal/bundle"
	"github.com/M4rkoza7/aces/internal/codec"
	"github.com/M4rkoza7/aces/internal/config"
	"github.com/M4rkoza7/aces/internal/schema"
	"github.com/M4rkoza7/aces/internal/session"
	"github.com/M4rkoza7/aces/internal/store"
	"github.com/M4rkoza7/aces/internal/table"
)

// Service owns the edit session and serializes every operation against it:
// one session exclusively owns the loaded table set, and each operation runs
// to completion before the next is accepted.
type Service struct {
	cfg   *config.Config
	audit *audit.Store

	mu      sync.Mutex
	session *session.Session
}

// PlaneDetail is the full record view returned to the UI collaborator.
type PlaneDetail struct {
	Plane map[string]any   `json:"plane"`
	Skins []map[string]any `json:"skins"`
}

// SessionState mirrors the session for the UI collaborator.
type SessionState struct {
	ID    string        `json:"id"`
	Mode  session.Mode  `json:"mode"`
	Draft session.Draft `json:"draft"`
}

// NewService loads the table set (from the configured input directory, or
// the embedded default bundle when none is set) and opens an edit session
// over it.
func NewService(cfg *config.Config, auditStore *audit.Store) (*Service, error) {
	var planes, skins []*schema.Record
	var err error

	if cfg.Paths.DataDir != "" {
		planes, err = store.LoadTable(cfg.Paths.DataDir, schema.PlayerPlane)
		if err != nil {
			return nil, fmt.Errorf("load plane table: %w", err)
		}
		skins, err = store.LoadTable(cfg.Paths.DataDir, schema.Skin)
		if err != nil {
			return nil, fmt.Errorf("load skin table: %w", err)
		}
		slog.Info("tables loaded", "dir", cfg.Paths.DataDir, "planes", len(planes), "skins", len(skins))
	} else {
		planes, skins, err = bundle.LoadPlanes()
		if err != nil {
			return nil, fmt.Errorf("load default bundle: %w", err)
		}
		slog.Info("default bundle loaded", "planes", len(planes), "skins", len(skins))
	}

	model, err := table.NewModel(planes, skins, cfg.Paths.BaselinePlane)
	if err != nil {
		return nil, fmt.Errorf("build table model: %w", err)
	}

	return &Service{
		cfg:     cfg,
		audit:   auditStore,
		session: session.New(model, cfg.Paths.OutputDir),
	}, nil
}

// ListPlanes returns plane summaries ordered by PlaneID.
func (s *Service) ListPlanes() []table.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Model().ListPlanes()
}

// GetPlane returns the full plane record and its skins.
func (s *Service) GetPlane(id int64) (PlaneDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, skins, err := s.session.Model().GetPlane(id)
	if err != nil {
		return PlaneDetail{}, err
	}
	detail := PlaneDetail{Plane: rec.Map(), Skins: make([]map[string]any, len(skins))}
	for i, skin := range skins {
		detail.Skins[i] = skin.Map()
	}
	return detail, nil
}

// DeletePlane removes a plane, cascading its skins, and persists the result.
func (s *Service) DeletePlane(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.session.Apply(func(m *table.Model) error {
		return m.DeletePlane(id)
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, audit.Entry{
		Action:    audit.ActionPlaneDelete,
		TableName: schema.PlayerPlane.Name,
		RowKey:    fmt.Sprintf("%d", id),
	})
	return nil
}

// AddSkin creates a skin for a plane and persists the result.
func (s *Service) AddSkin(ctx context.Context, planeID int64, draft session.SkinDraft) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var skinID int64
	err := s.session.Apply(func(m *table.Model) error {
		var err error
		skinID, err = m.AddSkin(planeID, map[string]any{
			schema.FieldSkinNo: draft.SkinNo,
			"bNoseEmblem":      draft.NoseEmblem,
			"bWingEmblem":      draft.WingEmblem,
			"bTailEmblem":      draft.TailEmblem,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logAudit(ctx, audit.Entry{
		Action:    audit.ActionSkinAdd,
		TableName: schema.Skin.Name,
		RowKey:    fmt.Sprintf("%d", skinID),
		Detail:    fmt.Sprintf("PlaneID=%d SkinNo=%d", planeID, draft.SkinNo),
	})
	return skinID, nil
}

// RemoveSkin deletes a skin and persists the result. Removing a plane's last
// skin is refused.
func (s *Service) RemoveSkin(ctx context.Context, skinID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.session.Apply(func(m *table.Model) error {
		return m.RemoveSkin(skinID)
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, audit.Entry{
		Action:    audit.ActionSkinRemove,
		TableName: schema.Skin.Name,
		RowKey:    fmt.Sprintf("%d", skinID),
	})
	return nil
}

// Session returns the current session state.
func (s *Service) Session() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionState()
}

// SwitchToAdd moves the session into add mode.
func (s *Service) SwitchToAdd() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SwitchToAdd()
	return s.sessionState()
}

// SwitchToEdit loads a record into the session's scratch buffer.
func (s *Service) SwitchToEdit(id int64) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.SwitchToEdit(id); err != nil {
		return SessionState{}, err
	}
	return s.sessionState(), nil
}

// SetDraft replaces the session scratch buffer.
func (s *Service) SetDraft(d session.Draft) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SetDraft(d)
	return s.sessionState()
}

// Discard drops the scratch buffer with no model mutation.
func (s *Service) Discard() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Discard()
	return s.sessionState()
}

func (s *Service) sessionState() SessionState {
	return SessionState{
		ID:    s.session.ID(),
		Mode:  s.session.Mode(),
		Draft: s.session.Draft(),
	}
}

// Commit validates and applies the scratch buffer, persisting all three
// tables together. Returns the committed record's PlaneID.
func (s *Service) Commit(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode := s.session.Mode()
	id, err := s.session.Commit(ctx)
	if err != nil {
		return 0, err
	}

	action := audit.ActionPlaneAdd
	if mode == session.ModeEdit {
		action = audit.ActionPlaneEdit
	}
	s.logAudit(ctx, audit.Entry{
		Action:    action,
		TableName: schema.PlayerPlane.Name,
		RowKey:    fmt.Sprintf("%d", id),
		SessionID: s.session.ID(),
	})
	s.logAudit(ctx, audit.Entry{
		Action:    audit.ActionCommit,
		TableName: schema.PlayerPlane.Name,
		RowKey:    fmt.Sprintf("%d", id),
		Detail:    fmt.Sprintf("output=%s", s.cfg.Paths.OutputDir),
		SessionID: s.session.ID(),
	})
	return id, nil
}

// Export returns a table in the JSON text form.
func (s *Service) Export(tableName string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := schema.Get(tableName)
	if !ok {
		return nil, fmt.Errorf("%w: table %q", table.ErrNotFound, tableName)
	}

	m := s.session.Model()
	var records []*schema.Record
	switch sc {
	case schema.PlayerPlane:
		records = m.Planes()
	case schema.Skin:
		records = m.Skins()
	case schema.Viewer:
		records = m.Viewer()
	default:
		return nil, fmt.Errorf("%w: table %q", table.ErrNotFound, tableName)
	}
	return codec.EncodeJSON(records, sc)
}

// AuditLog returns the newest audit entries.
func (s *Service) AuditLog(ctx context.Context, limit int) ([]audit.Entry, error) {
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.List(ctx, limit)
}

// logAudit records an audit entry, logging instead of failing the operation
// when the write does not succeed.
func (s *Service) logAudit(ctx context.Context, e audit.Entry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, e); err != nil {
		slog.Error("audit write failed", "action", e.Action, "error", err)
	}
}
