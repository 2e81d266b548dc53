package workspace

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

func (s *Service) FinanceRecords() []finance.Record {
	var out []finance.Record

	s.read(func(st State) { out = slices.Clone(st.FinanceRecords) })

	return out
}

func (s *Service) FinanceTotals() finance.Totals {
	var out finance.Totals

	s.read(func(st State) { out = finance.ComputeTotals(st.FinanceRecords) })

	return out
}

func (s *Service) FinanceRecord(projectID string) (finance.Record, error) {
	var (
		r  finance.Record
		ok bool
	)

	s.read(func(st State) { r, ok = finance.ForProject(st.FinanceRecords, projectID) })

	if !ok {
		return finance.Record{}, ErrNotFound
	}

	return r, nil
}

// Payments returns the payments of projectID with the given status;
// finance.StatusAll returns every payment.
func (s *Service) Payments(projectID string, status finance.PaymentStatus) ([]finance.Payment, error) {
	r, err := s.FinanceRecord(projectID)
	if err != nil {
		return nil, err
	}

	return finance.FilterPayments(r.Payments, status), nil
}

func (s *Service) AddPayment(ctx context.Context, projectID string, params finance.PaymentParams) (finance.Payment, error) {
	var created finance.Payment

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if _, ok := finance.ForProject(next.FinanceRecords, projectID); !ok {
			return nil, ErrNotFound
		}

		next.FinanceRecords, created = finance.AddPayment(next.FinanceRecords, projectID, params)

		return []Collection{CollectionFinanceRecords}, nil
	})
	if err != nil {
		return finance.Payment{}, err
	}

	return created, nil
}

func (s *Service) UpdatePayment(ctx context.Context, projectID, paymentID string, upd finance.PaymentUpdate) (finance.Payment, error) {
	var updated finance.Payment

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		r, ok := finance.ForProject(next.FinanceRecords, projectID)
		if !ok || !slices.ContainsFunc(r.Payments, func(p finance.Payment) bool { return p.ID == paymentID }) {
			return nil, ErrNotFound
		}

		next.FinanceRecords = finance.UpdatePayment(next.FinanceRecords, projectID, paymentID, upd)

		r, _ = finance.ForProject(next.FinanceRecords, projectID)
		updated = r.Payments[slices.IndexFunc(r.Payments, func(p finance.Payment) bool { return p.ID == paymentID })]

		return []Collection{CollectionFinanceRecords}, nil
	})
	if err != nil {
		return finance.Payment{}, err
	}

	return updated, nil
}

// ImportResult reports the outcome of ImportPayments. When Conflicts is
// non-empty nothing was written and New holds the params that did not clash.
type ImportResult struct {
	Imported  []finance.Payment       `json:"imported"`
	New       []finance.PaymentParams `json:"new"`
	Conflicts []finance.Conflict      `json:"conflicts"`
}

// ImportPayments records a batch of payments on projectID's ledger. If any
// of them duplicates a payment already on record the batch is held back for
// confirmation.
func (s *Service) ImportPayments(ctx context.Context, projectID string, params []finance.PaymentParams) (*ImportResult, error) {
	result := &ImportResult{}

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		r, ok := finance.ForProject(next.FinanceRecords, projectID)
		if !ok {
			return nil, ErrNotFound
		}

		if len(params) == 0 {
			return nil, nil
		}

		newParams, conflicts := finance.SplitConflicts(r, params)
		if len(conflicts) > 0 {
			result.New = newParams
			result.Conflicts = conflicts

			return nil, nil
		}

		next.FinanceRecords, result.Imported = finance.AddPayments(next.FinanceRecords, projectID, newParams)

		return []Collection{CollectionFinanceRecords}, nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ImportResolution is the user's answer to an ImportResult. Add is recorded
// as new payments; Replace overwrites recorded payments, keyed by payment id,
// with the incoming values.
type ImportResolution struct {
	Add     []finance.PaymentParams          `json:"add"`
	Replace map[string]finance.PaymentParams `json:"replace,omitempty"`
}

// ResolvedImport lists the payments written by ResolveImport.
type ResolvedImport struct {
	Added    []finance.Payment `json:"added"`
	Replaced []finance.Payment `json:"replaced"`
}

// ResolveImport applies res to projectID's ledger in a single write, without
// conflict checks. Every id in res.Replace must name a payment on the ledger.
func (s *Service) ResolveImport(ctx context.Context, projectID string, res ImportResolution) (*ResolvedImport, error) {
	out := &ResolvedImport{}

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		r, ok := finance.ForProject(next.FinanceRecords, projectID)
		if !ok {
			return nil, ErrNotFound
		}

		for id := range res.Replace {
			if !slices.ContainsFunc(r.Payments, func(p finance.Payment) bool { return p.ID == id }) {
				return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
			}
		}

		if len(res.Add) == 0 && len(res.Replace) == 0 {
			return nil, nil
		}

		ids := slices.Sorted(maps.Keys(res.Replace))
		for _, id := range ids {
			next.FinanceRecords = finance.UpdatePayment(next.FinanceRecords, projectID, id, res.Replace[id].Replacement())
		}

		next.FinanceRecords, out.Added = finance.AddPayments(next.FinanceRecords, projectID, res.Add)

		r, _ = finance.ForProject(next.FinanceRecords, projectID)
		for _, id := range ids {
			out.Replaced = append(out.Replaced, r.Payments[slices.IndexFunc(r.Payments, func(p finance.Payment) bool { return p.ID == id })])
		}

		return []Collection{CollectionFinanceRecords}, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
