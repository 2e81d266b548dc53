package project

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Handler struct {
	svc *workspace.Service
}

func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Get("/{id}/financials", h.financials)
	r.Post("/{id}/submissions", h.addSubmission)
	r.Patch("/{id}/submissions/{sid}", h.updateSubmission)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	projects := h.svc.Projects(r.URL.Query().Get("q"))
	if projects == nil {
		projects = []project.Project{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(projects); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createProjectRequest struct {
	Title                string         `json:"title"`
	ClientID             string         `json:"clientId"`
	ClientName           string         `json:"clientName"`
	Location             string         `json:"location"`
	Description          string         `json:"description"`
	Status               project.Status `json:"status"`
	StartDate            time.Time      `json:"startDate"`
	TargetCompletionDate *time.Time     `json:"targetCompletionDate,omitempty"`
	TotalBudget          *int64         `json:"totalBudget,omitempty"`
	Color                string         `json:"color"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if req.Status != "" && !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if req.TotalBudget != nil && *req.TotalBudget < 0 {
		http.Error(w, "totalBudget must not be negative", http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreateProject(r.Context(), project.CreateParams{
		Title:                req.Title,
		ClientID:             req.ClientID,
		ClientName:           req.ClientName,
		Location:             req.Location,
		Description:          req.Description,
		Status:               req.Status,
		StartDate:            req.StartDate,
		TargetCompletionDate: req.TargetCompletionDate,
		TotalBudget:          req.TotalBudget,
		Color:                req.Color,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateProjectRequest struct {
	Title                *string         `json:"title,omitempty"`
	Location             *string         `json:"location,omitempty"`
	Description          *string         `json:"description,omitempty"`
	Status               *project.Status `json:"status,omitempty"`
	StartDate            *time.Time      `json:"startDate,omitempty"`
	TargetCompletionDate *time.Time      `json:"targetCompletionDate,omitempty"`
	ActualCompletionDate *time.Time      `json:"actualCompletionDate,omitempty"`
	TotalBudget          *int64          `json:"totalBudget,omitempty"`
	Color                *string         `json:"color,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	p, err := h.svc.UpdateProject(r.Context(), chi.URLParam(r, "id"), project.Update{
		Title:                req.Title,
		Location:             req.Location,
		Description:          req.Description,
		Status:               req.Status,
		StartDate:            req.StartDate,
		TargetCompletionDate: req.TargetCompletionDate,
		ActualCompletionDate: req.ActualCompletionDate,
		TotalBudget:          req.TotalBudget,
		Color:                req.Color,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) financials(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.ProjectFinancials(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(f); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type submissionRequest struct {
	Type                 project.SubmissionType   `json:"type"`
	Authority            string                   `json:"authority"`
	SubmittedDate        *time.Time               `json:"submittedDate,omitempty"`
	ExpectedApprovalDate *time.Time               `json:"expectedApprovalDate,omitempty"`
	ApprovalDate         *time.Time               `json:"approvalDate,omitempty"`
	Status               project.SubmissionStatus `json:"status"`
	ConsultantFee        int64                    `json:"consultantFee"`
	Notes                string                   `json:"notes,omitempty"`
}

func (h *Handler) addSubmission(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ConsultantFee < 0 {
		http.Error(w, "consultantFee must not be negative", http.StatusBadRequest)
		return
	}

	if req.Status != "" && !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if req.Type == "" {
		req.Type = project.SubmissionOther
	}

	if !req.Type.Valid() {
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	sub, err := h.svc.AddSubmission(r.Context(), chi.URLParam(r, "id"), project.SubmissionParams{
		Type:                 req.Type,
		Authority:            req.Authority,
		SubmittedDate:        req.SubmittedDate,
		ExpectedApprovalDate: req.ExpectedApprovalDate,
		ApprovalDate:         req.ApprovalDate,
		Status:               req.Status,
		ConsultantFee:        req.ConsultantFee,
		Notes:                req.Notes,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(sub); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateSubmissionRequest struct {
	Type                 *project.SubmissionType   `json:"type,omitempty"`
	Authority            *string                   `json:"authority,omitempty"`
	SubmittedDate        *time.Time                `json:"submittedDate,omitempty"`
	ExpectedApprovalDate *time.Time                `json:"expectedApprovalDate,omitempty"`
	ApprovalDate         *time.Time                `json:"approvalDate,omitempty"`
	Status               *project.SubmissionStatus `json:"status,omitempty"`
	ConsultantFee        *int64                    `json:"consultantFee,omitempty"`
	Notes                *string                   `json:"notes,omitempty"`
}

func (h *Handler) updateSubmission(w http.ResponseWriter, r *http.Request) {
	var req updateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ConsultantFee != nil && *req.ConsultantFee < 0 {
		http.Error(w, "consultantFee must not be negative", http.StatusBadRequest)
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if req.Type != nil && !req.Type.Valid() {
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	sub, err := h.svc.UpdateSubmission(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sid"), project.SubmissionUpdate{
		Type:                 req.Type,
		Authority:            req.Authority,
		SubmittedDate:        req.SubmittedDate,
		ExpectedApprovalDate: req.ExpectedApprovalDate,
		ApprovalDate:         req.ApprovalDate,
		Status:               req.Status,
		ConsultantFee:        req.ConsultantFee,
		Notes:                req.Notes,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "submission not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(sub); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
