package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aeronica/complaint-portal/internal/domain"
)

// Login handles administrator authentication
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	response, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// SendOTP handles one-time code requests
func (h *Handlers) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
		return
	}

	if err := h.authService.SendOTP(r.Context(), &req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send code", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Code sent to your email",
	})
}

// VerifyOTP handles one-time code verification
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
		return
	}

	response, err := h.authService.VerifyOTP(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired code", "INVALID_CODE")
		return
	}

	writeJSON(w, http.StatusOK, response)
}
