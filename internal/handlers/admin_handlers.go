package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aeronica/complaint-portal/internal/domain"
)

// ListAllComplaints handles the admin complaint listing (full view)
func (h *Handlers) ListAllComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.complaintService.ListAdmin(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve complaints", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"complaints": complaints,
	})
}

// UpdateStatus handles complaint status transitions
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid complaint ID", "INVALID_INPUT")
		return
	}

	status, ok := domain.ParseComplaintStatus(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid status value", "INVALID_INPUT")
		return
	}

	updated, err := h.complaintService.UpdateStatus(r.Context(), req.ID, status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update status", "INTERNAL_ERROR")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Complaint not found", "NOT_FOUND")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
