package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/importer"
	"github.com/MrJamesThe3rd/studiodesk/internal/matching"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Handler struct {
	importSvc *importer.Service
	svc       *workspace.Service
	matchSvc  *matching.Service
}

func NewHandler(importSvc *importer.Service, svc *workspace.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		svc:       svc,
		matchSvc:  matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{projectId}", h.importLedger)
	r.Post("/{projectId}/confirm", h.confirmImport)
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Payments []finance.Payment `json:"payments"`
	Replaced []finance.Payment `json:"replaced,omitempty"`
}

type importConflictResponse struct {
	New       []finance.PaymentParams `json:"new"`
	Conflicts []finance.Conflict      `json:"conflicts"`
}

type confirmRequest struct {
	Params  []finance.PaymentParams          `json:"params"`
	Replace map[string]finance.PaymentParams `json:"replace,omitempty"`
}

// importLedger parses an uploaded ledger and records its payments. When
// any row duplicates a payment already on record nothing is written and
// the split is returned with 409 for the user to confirm.
func (h *Handler) importLedger(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params = h.matchSvc.Apply(r.Context(), params)

	result, err := h.svc.ImportPayments(r.Context(), chi.URLParam(r, "projectId"), params)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "finance record not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       result.New,
			Conflicts: result.Conflicts,
		}
		if resp.New == nil {
			resp.New = []finance.PaymentParams{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	for i := range req.Params {
		if msg := normalizeParams(&req.Params[i]); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
	}

	for id, p := range req.Replace {
		if msg := normalizeParams(&p); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		req.Replace[id] = p
	}

	res, err := h.svc.ResolveImport(r.Context(), chi.URLParam(r, "projectId"), workspace.ImportResolution{
		Add:     req.Params,
		Replace: req.Replace,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "finance record or payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := toSuccessResponse(res.Added)
	resp.Replaced = res.Replaced

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// normalizeParams fills the default status and type of p and reports what is
// wrong with it, if anything.
func normalizeParams(p *finance.PaymentParams) string {
	if p.Amount < 0 || p.PaidAmount < 0 {
		return "amounts must not be negative"
	}

	if p.Status == "" {
		p.Status = finance.StatusPending
	}

	if !p.Status.Valid() {
		return "invalid status"
	}

	if p.Type == "" {
		p.Type = finance.TypeOther
	}

	if !p.Type.Valid() {
		return "invalid type"
	}

	return ""
}

func toSuccessResponse(payments []finance.Payment) importSuccessResponse {
	if payments == nil {
		payments = []finance.Payment{}
	}

	return importSuccessResponse{
		Imported: len(payments),
		Payments: payments,
	}
}
