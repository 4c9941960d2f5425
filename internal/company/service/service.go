// Package service resolves company profiles and controlling parties from the
// registry, normalizing upstream shapes into domain models.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"ownergraph/internal/company/models"
	"ownergraph/internal/company/store"
)

// RegistryClient is the one registry operation this service needs.
type RegistryClient interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
}

// Service fetches and normalizes company data. Registry errors pass through
// untouched so callers can branch on the client's taxonomy.
type Service struct {
	client RegistryClient
	cache  store.ProfileCache
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithCache attaches a resolver-level profile cache. Cache failures are
// advisory; the upstream fetch always remains the source of truth.
func WithCache(cache store.ProfileCache) Option {
	return func(s *Service) { s.cache = cache }
}

// New constructs a Service.
func New(client RegistryClient, opts ...Option) *Service {
	s := &Service{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile fetches one company's profile snapshot. The identifier is
// normalized before use.
func (s *Service) Profile(ctx context.Context, number string) (*models.CompanyProfile, error) {
	number = models.NormalizeCompanyNumber(number)

	if s.cache != nil {
		cached, err := s.cache.Find(ctx, number)
		if err != nil {
			s.debug(ctx, "profile cache lookup failed", "company_number", number, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	body, err := s.client.Get(ctx, "/company/"+number)
	if err != nil {
		return nil, err
	}

	profile, err := decodeProfile(number, body)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, profile); err != nil {
			s.debug(ctx, "profile cache save failed", "company_number", number, "error", err)
		}
	}
	return profile, nil
}

// Controllers fetches the persons with significant control for a company.
// An empty slice is a meaningful result: the company legitimately has no
// listed controllers or is exempt from disclosure. It is distinct from an
// error, which means the fetch itself failed.
func (s *Service) Controllers(ctx context.Context, number string) ([]models.ControllingParty, error) {
	number = models.NormalizeCompanyNumber(number)

	body, err := s.client.Get(ctx, "/company/"+number+"/persons-with-significant-control")
	if err != nil {
		return nil, err
	}
	return decodeControllers(body)
}

func (s *Service) debug(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.DebugContext(ctx, msg, args...)
	}
}
