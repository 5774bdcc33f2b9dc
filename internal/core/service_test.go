package core

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/M4rkoza7/aces/internal/audit"
	"github.com/M4rkoza7/aces/internal/config"
	"github.com/M4rkoza7/aces/internal/session"
	"github.com/M4rkoza7/aces/internal/table"
)

func testService(t *testing.T) *Service {
	t.Helper()

	auditStore, err := audit.Open(":memory:")
	if err != nil {
		t.Fatalf("audit.Open() error = %v", err)
	}
	t.Cleanup(func() { auditStore.Close() })

	cfg := &config.Config{}
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.BaselinePlane = table.DefaultBaseline

	svc, err := NewService(cfg, auditStore)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestNewService_LoadsBundle(t *testing.T) {
	svc := testService(t)
	planes := svc.ListPlanes()
	if len(planes) == 0 {
		t.Fatal("ListPlanes() returned no planes from the default bundle")
	}
}

func TestService_GetPlane(t *testing.T) {
	svc := testService(t)

	detail, err := svc.GetPlane(0)
	if err != nil {
		t.Fatalf("GetPlane(0) error = %v", err)
	}
	if detail.Plane["PlaneStringID"] == "" {
		t.Error("plane detail has no PlaneStringID")
	}
	if len(detail.Skins) == 0 {
		t.Error("plane detail has no skins")
	}

	if _, err := svc.GetPlane(999); !errors.Is(err, table.ErrNotFound) {
		t.Errorf("GetPlane(999) error = %v, want ErrNotFound", err)
	}
}

func TestService_AddCommitFlow(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	before := len(svc.ListPlanes())

	state := svc.SetDraft(session.Draft{PlaneStringID: "su57", SpWeaponID1: "MSL"})
	if state.Mode != session.ModeAdd {
		t.Fatalf("Mode = %q, want add", state.Mode)
	}

	id, err := svc.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if got := len(svc.ListPlanes()); got != before+1 {
		t.Errorf("plane count = %d, want %d", got, before+1)
	}

	// After commit the session holds the new record in edit mode.
	state = svc.Session()
	if state.Mode != session.ModeEdit {
		t.Errorf("Mode after commit = %q, want edit", state.Mode)
	}
	if state.Draft.PlaneID == nil || *state.Draft.PlaneID != id {
		t.Errorf("Draft.PlaneID = %v, want %d", state.Draft.PlaneID, id)
	}

	// The commit and the add are both on the audit trail.
	entries, err := svc.AuditLog(ctx, 10)
	if err != nil {
		t.Fatalf("AuditLog() error = %v", err)
	}
	actions := make(map[audit.Action]bool, len(entries))
	for _, e := range entries {
		actions[e.Action] = true
	}
	if !actions[audit.ActionPlaneAdd] || !actions[audit.ActionCommit] {
		t.Errorf("audit actions = %v, want plane_add and commit", actions)
	}
}

func TestService_CommitValidationFailure(t *testing.T) {
	svc := testService(t)

	svc.SetDraft(session.Draft{})
	_, err := svc.Commit(context.Background())

	var verr *session.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Commit() error = %v, want *ValidationError", err)
	}

	entries, readErr := os.ReadDir(svc.cfg.Paths.OutputDir)
	if readErr != nil {
		t.Fatalf("ReadDir() error = %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("failed commit wrote %d files", len(entries))
	}
}

func TestService_DeletePlane(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	before := len(svc.ListPlanes())

	if err := svc.DeletePlane(ctx, 2); err != nil {
		t.Fatalf("DeletePlane(2) error = %v", err)
	}
	if got := len(svc.ListPlanes()); got != before-1 {
		t.Errorf("plane count = %d, want %d", got, before-1)
	}
	if err := svc.DeletePlane(ctx, 2); !errors.Is(err, table.ErrNotFound) {
		t.Errorf("second DeletePlane(2) error = %v, want ErrNotFound", err)
	}
}

func TestService_SkinLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	skinID, err := svc.AddSkin(ctx, 1, session.SkinDraft{SkinNo: 1, NoseEmblem: true})
	if err != nil {
		t.Fatalf("AddSkin() error = %v", err)
	}
	if err := svc.RemoveSkin(ctx, skinID); err != nil {
		t.Fatalf("RemoveSkin(%d) error = %v", skinID, err)
	}

	// The remaining skin is the plane's last one.
	detail, err := svc.GetPlane(1)
	if err != nil {
		t.Fatalf("GetPlane(1) error = %v", err)
	}
	if len(detail.Skins) != 1 {
		t.Fatalf("plane 1 has %d skins, want 1", len(detail.Skins))
	}
	last := detail.Skins[0]["SkinID"].(int64)
	if err := svc.RemoveSkin(ctx, last); !errors.Is(err, table.ErrLastSkin) {
		t.Errorf("RemoveSkin(last) error = %v, want ErrLastSkin", err)
	}
}

func TestService_Export(t *testing.T) {
	svc := testService(t)

	for _, name := range []string{"PlayerPlaneDataTable", "SkinDataTable", "AircraftViewerDataTable"} {
		data, err := svc.Export(name)
		if err != nil {
			t.Errorf("Export(%s) error = %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Export(%s) returned no data", name)
		}
	}

	if _, err := svc.Export("NoSuchTable"); !errors.Is(err, table.ErrNotFound) {
		t.Errorf("Export(NoSuchTable) error = %v, want ErrNotFound", err)
	}
}

func TestService_SwitchToEdit(t *testing.T) {
	svc := testService(t)

	state, err := svc.SwitchToEdit(0)
	if err != nil {
		t.Fatalf("SwitchToEdit(0) error = %v", err)
	}
	if state.Mode != session.ModeEdit {
		t.Errorf("Mode = %q, want edit", state.Mode)
	}

	if _, err := svc.SwitchToEdit(999); !errors.Is(err, table.ErrNotFound) {
		t.Errorf("SwitchToEdit(999) error = %v, want ErrNotFound", err)
	}

	state = svc.SwitchToAdd()
	if state.Mode != session.ModeAdd {
		t.Errorf("Mode = %q, want add", state.Mode)
	}
}
