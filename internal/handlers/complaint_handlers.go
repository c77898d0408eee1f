package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aeronica/complaint-portal/internal/domain"
)

// SubmitComplaint handles public complaint submission (multipart form,
// optional photo). No field beyond what the public form guarantees is
// required; absent fields are stored as NULL.
func (h *Handlers) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Uploads.MaxBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Upload exceeds size limit", "REQUEST_TOO_LARGE")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form", "INVALID_INPUT")
		return
	}

	req := &domain.SubmitComplaintRequest{
		Fullname:      formValue(r, "fullname"),
		Phone:         formValue(r, "phone"),
		ComplaintType: formValue(r, "complaint_type"),
		Description:   formValue(r, "description"),
		Urgency:       formValue(r, "urgency"),
		Latitude:      formValue(r, "latitude"),
		Longitude:     formValue(r, "longitude"),
	}

	var (
		file     io.Reader
		filename string
	)
	// The public form posts under files[]; accept a bare file field too.
	f, header, err := r.FormFile("files[]")
	if err == http.ErrMissingFile {
		f, header, err = r.FormFile("file")
	}
	if err == nil {
		defer f.Close()
		file = f
		filename = header.Filename
	} else if err != http.ErrMissingFile {
		writeError(w, http.StatusBadRequest, "Invalid file upload", "INVALID_INPUT")
		return
	}

	complaint, err := h.complaintService.Submit(r.Context(), req, filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save complaint", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, domain.SubmitComplaintResponse{
		Status:   "success",
		Message:  "Complaint saved",
		ImageURL: complaint.ImageURL,
	})
}

// ListComplaints handles the public complaint listing (redacted view)
func (h *Handlers) ListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.complaintService.ListPublic(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve complaints", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"complaints": complaints,
	})
}

// ServeUpload serves a stored complaint photo
func (h *Handlers) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if name == "" {
		writeError(w, http.StatusNotFound, "File not found", "NOT_FOUND")
		return
	}

	f, err := h.store.Open(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found", "NOT_FOUND")
		return
	}
	defer f.Close()

	http.ServeContent(w, r, name, time.Time{}, f)
}

func formValue(r *http.Request, key string) *string {
	if vs, ok := r.MultipartForm.Value[key]; ok && len(vs) > 0 {
		return &vs[0]
	}
	return nil
}
