// Package capital exposes a company's structured share-capital data and a
// shareholding percentage calculator. The two are intentionally decoupled:
// the calculator takes explicit figures and never consults the registry.
package capital

import (
	"context"
	"encoding/json"
	"log/slog"

	"ownergraph/internal/company/models"
)

// RegistryClient is the one registry operation this service needs. The
// capital endpoint is sparsely populated upstream, so absence is modelled as
// an empty result rather than an error.
type RegistryClient interface {
	GetOptional(ctx context.Context, path string) (json.RawMessage, error)
}

// Service fetches and normalizes share-capital data.
type Service struct {
	client RegistryClient
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs a Service.
func New(client RegistryClient, opts ...Option) *Service {
	s := &Service{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capital returns the company's share classes, or an empty slice when the
// registry holds no structured capital data for it. Field names vary across
// upstream API versions; decoding tolerates the known aliases.
func (s *Service) Capital(ctx context.Context, number string) ([]models.CapitalItem, error) {
	number = models.NormalizeCompanyNumber(number)

	body, err := s.client.GetOptional(ctx, "/company/"+number+"/capital")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []models.CapitalItem{}, nil
	}

	items, err := decodeCapital(body)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "capital payload decode failed",
				"company_number", number, "error", err)
		}
		return []models.CapitalItem{}, nil
	}
	return items, nil
}
