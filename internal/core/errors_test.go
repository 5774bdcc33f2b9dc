package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/M4rkoza7/aces/internal/codec"
	"github.com/M4rkoza7/aces/internal/session"
	"github.com/M4rkoza7/aces/internal/table"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil", nil, ""},
		{"format", codec.ErrFormat, "FMT001"},
		{"wrapped format", fmt.Errorf("load: %w", codec.ErrFormat), "FMT001"},
		{"version", codec.ErrUnsupportedVersion, "FMT002"},
		{"duplicate", table.ErrDuplicateKey, "TBL001"},
		{"not found", table.ErrNotFound, "TBL002"},
		{"last skin", table.ErrLastSkin, "TBL003"},
		{"validation", &session.ValidationError{Missing: []string{"PlaneStringID"}}, "SES001"},
		{"unknown", errors.New("boom"), "GEN001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestMapError_VersionNotShadowedByFormat(t *testing.T) {
	// An unsupported version wraps ErrUnsupportedVersion only; the generic
	// format code must not claim it.
	err := fmt.Errorf("decode: %w", codec.ErrUnsupportedVersion)
	if got := MapError(err); got.Code != "FMT002" {
		t.Errorf("MapError().Code = %q, want FMT002", got.Code)
	}
}
