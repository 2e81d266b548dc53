package matching

import (
	"context"
	"log/slog"
	"slices"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, rawDescription string) (string, error)
	CreateMapping(ctx context.Context, rawPattern, preferredDescription string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a preferred description for the given raw description.
// Returns empty string if no match found.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (string, error) {
	return s.repo.FindMatch(ctx, rawDescription)
}

// Learn remembers a mapping between a raw pattern and a preferred description.
// Learning the same pattern again replaces its description.
func (s *Service) Learn(ctx context.Context, rawPattern, preferredDescription string) error {
	return s.repo.CreateMapping(ctx, rawPattern, preferredDescription)
}

// Apply returns a copy of params with descriptions replaced by learned
// suggestions. Lookup failures keep the original description.
func (s *Service) Apply(ctx context.Context, params []finance.PaymentParams) []finance.PaymentParams {
	out := slices.Clone(params)

	for i, p := range out {
		suggested, err := s.repo.FindMatch(ctx, p.Description)
		if err != nil {
			slog.Warn("failed to suggest description", "description", p.Description, "error", err)
			continue
		}

		if suggested == "" {
			continue
		}

		out[i].Description = suggested
	}

	return out
}
