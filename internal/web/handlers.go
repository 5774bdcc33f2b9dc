package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/M4rkoza7/aces/internal/session"
	"github.com/go-chi/chi/v5"
)

// handleListPlanes returns the plane summaries, ordered by PlaneID.
func (s *Server) handleListPlanes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.ListPlanes())
}

// handleGetPlane returns the full field set of one plane plus its skins.
func (s *Server) handleGetPlane(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planeID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid plane id"})
		return
	}
	detail, err := s.service.GetPlane(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// handleDeletePlane removes a plane and its skins.
func (s *Server) handleDeletePlane(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planeID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid plane id"})
		return
	}
	if err := s.service.DeletePlane(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddSkin adds a skin row to an existing plane.
func (s *Server) handleAddSkin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planeID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid plane id"})
		return
	}
	var draft session.SkinDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid request body"})
		return
	}
	skinID, err := s.service.AddSkin(r.Context(), id, draft)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"skinID": skinID})
}

// handleRemoveSkin deletes a skin row. The last skin of a plane cannot
// be removed.
func (s *Server) handleRemoveSkin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "skinID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid skin id"})
		return
	}
	if err := s.service.RemoveSkin(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSession reports the current session mode and draft.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.Session())
}

// handleSwitchToAdd moves the session into add mode.
func (s *Server) handleSwitchToAdd(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.SwitchToAdd())
}

// handleSwitchToEdit loads a plane into the session for editing.
func (s *Server) handleSwitchToEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planeID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid plane id"})
		return
	}
	state, err := s.service.SwitchToEdit(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// handleSetDraft replaces the session draft.
func (s *Server) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	var draft session.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid request body"})
		return
	}
	respondJSON(w, http.StatusOK, s.service.SetDraft(draft))
}

// handleCommit validates the draft, applies it, and writes the tables out.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	planeID, err := s.service.Commit(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"planeID": planeID})
}

// handleDiscard drops the draft and reloads it from the model.
func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.Discard())
}

// handleExport streams one table in its JSON text form.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	data, err := s.service.Export(name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+".json\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleAuditLog returns recent audit entries, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Code: "GEN001", Message: "invalid limit"})
			return
		}
		limit = n
	}
	entries, err := s.service.AuditLog(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// pathID parses an int64 route parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
