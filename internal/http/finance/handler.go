package finance

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Handler struct {
	svc *workspace.Service
}

func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/records", h.records)
	r.Get("/totals", h.totals)
	r.Get("/{projectId}", h.record)
	r.Get("/{projectId}/payments", h.payments)
	r.Post("/{projectId}/payments", h.addPayment)
	r.Patch("/{projectId}/payments/{paymentId}", h.updatePayment)
}

func (h *Handler) records(w http.ResponseWriter, _ *http.Request) {
	records := h.svc.FinanceRecords()
	if records == nil {
		records = []finance.Record{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(records); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) totals(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.FinanceTotals()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.FinanceRecord(chi.URLParam(r, "projectId"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "finance record not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rec); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	status := finance.StatusAll
	if s := r.URL.Query().Get("status"); s != "" {
		status = finance.PaymentStatus(s)
		if status != finance.StatusAll && !status.Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
	}

	payments, err := h.svc.Payments(chi.URLParam(r, "projectId"), status)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "finance record not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if payments == nil {
		payments = []finance.Payment{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payments); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) addPayment(w http.ResponseWriter, r *http.Request) {
	var req finance.PaymentParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount < 0 || req.PaidAmount < 0 {
		http.Error(w, "amounts must not be negative", http.StatusBadRequest)
		return
	}

	if req.Status == "" {
		req.Status = finance.StatusPending
	}

	if !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if req.Type == "" {
		req.Type = finance.TypeOther
	}

	if !req.Type.Valid() {
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	p, err := h.svc.AddPayment(r.Context(), chi.URLParam(r, "projectId"), req)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "finance record not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePaymentRequest struct {
	Type          *finance.PaymentType   `json:"type,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Amount        *int64                 `json:"amount,omitempty"`
	PaidAmount    *int64                 `json:"paidAmount,omitempty"`
	Status        *finance.PaymentStatus `json:"status,omitempty"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	PaidDate      *time.Time             `json:"paidDate,omitempty"`
	InvoiceNumber *string                `json:"invoiceNumber,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var req updatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if (req.Amount != nil && *req.Amount < 0) || (req.PaidAmount != nil && *req.PaidAmount < 0) {
		http.Error(w, "amounts must not be negative", http.StatusBadRequest)
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

	p, err := h.svc.UpdatePayment(r.Context(), chi.URLParam(r, "projectId"), chi.URLParam(r, "paymentId"), finance.PaymentUpdate{
		Type:          req.Type,
		Description:   req.Description,
		Amount:        req.Amount,
		PaidAmount:    req.PaidAmount,
		Status:        req.Status,
		DueDate:       req.DueDate,
		PaidDate:      req.PaidDate,
		InvoiceNumber: req.InvoiceNumber,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
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
