package donation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GiveHope-Foundation/donation-service/internal/auth"
	"github.com/GiveHope-Foundation/donation-service/internal/pagination"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Donation *Donation `json:"donation,omitempty"`
}

// DecisionResponse is the trimmed shape returned after an approve/reject.
type DecisionResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Donation struct {
		ID        string    `json:"id"`
		Summary   string    `json:"summary"`
		Status    Status    `json:"status"`
		UpdatedAt time.Time `json:"updated_at"`
	} `json:"donation"`
}

// PickupResponse is the trimmed shape returned after a pickup update.
type PickupResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Donation struct {
		ID           string       `json:"id"`
		PickupStatus PickupStatus `json:"pickup_status"`
		UpdatedAt    time.Time    `json:"updated_at"`
	} `json:"donation"`
}

type PaginatedDonations struct {
	Success    bool            `json:"success"`
	Donations  []Donation      `json:"donations"`
	Pagination pagination.Meta `json:"pagination"`
}

// Submit handles POST /donations for authenticated donors.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req SubmitDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	donor := DonorInfo{ID: principal.UserID, Name: principal.Name, Email: principal.Email}

	d, err := h.service.Submit(r.Context(), donor, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:  true,
		Message:  "Donation submitted successfully",
		Donation: d,
	})
}

// ListMine handles GET /donations for authenticated donors.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	resp, err := h.service.ListForDonor(r.Context(), principal.UserID, pagination.ParseParams(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Decide handles PATCH /admin/donations/{id}/status.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Donation ID is required")
		return
	}

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	d, err := h.service.Decide(r.Context(), actor, id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := DecisionResponse{
		Success: true,
		Message: fmt.Sprintf("Donation %s successfully", strings.ToLower(string(d.Status))),
	}
	resp.Donation.ID = d.ID
	resp.Donation.Summary = d.Summary()
	resp.Donation.Status = d.Status
	resp.Donation.UpdatedAt = d.UpdatedAt

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Claim handles POST /admin/donations/claim.
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.DonationID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Donation ID is required")
		return
	}

	d, err := h.service.Claim(r.Context(), actor, req.DonationID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:  true,
		Message:  "Donation accepted successfully",
		Donation: d,
	})
}

// UpdatePickup handles PATCH /admin/donations/pickup.
func (h *Handler) UpdatePickup(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req PickupUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	d, err := h.service.UpdatePickup(r.Context(), actor, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := PickupResponse{
		Success: true,
		Message: fmt.Sprintf("Pickup status updated to %s", strings.ToLower(string(d.PickupStatus))),
	}
	resp.Donation.ID = d.ID
	resp.Donation.PickupStatus = d.PickupStatus
	resp.Donation.UpdatedAt = d.UpdatedAt

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Get handles GET /admin/donations/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Donation ID is required")
		return
	}

	d, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:  true,
		Message:  "Donation retrieved successfully",
		Donation: d,
	})
}

// ListForOrganization handles GET /admin/donations.
func (h *Handler) ListForOrganization(w http.ResponseWriter, r *http.Request) {
	h.listWithActor(w, r, h.service.ListForOrganization)
}

// ListPool handles GET /admin/donations/pool.
func (h *Handler) ListPool(w http.ResponseWriter, r *http.Request) {
	h.listWithActor(w, r, h.service.ListPool)
}

// ListPickups handles GET /admin/donations/pickups.
func (h *Handler) ListPickups(w http.ResponseWriter, r *http.Request) {
	h.listWithActor(w, r, h.service.ListPickups)
}

func (h *Handler) listWithActor(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, actor auth.Actor, params pagination.Params) (*PaginatedDonations, error)) {

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	resp, err := list(r.Context(), actor, pagination.ParseParams(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// respondServiceError maps domain errors onto the HTTP error taxonomy.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNoOrganization):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, ErrNotPending), errors.Is(err, ErrAlreadyClaimed), errors.Is(err, ErrUnassigned):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidPickupStatus),
		errors.Is(err, ErrPickupNotRequired), errors.Is(err, ErrUnknownOrganization):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
