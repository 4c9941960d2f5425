// Package filings scans a company's filing history and flags entries likely
// to contain share-capital or control-change evidence. This is best-effort
// enrichment for report consumers; it never blocks or fails a traversal.
package filings

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"ownergraph/internal/company/models"
	"ownergraph/internal/platform/config"
)

// relevantCategories are always kept regardless of description text.
var relevantCategories = map[string]struct{}{
	"capital":       {},
	"resolution":    {},
	"incorporation": {},
}

// defaultKeywords flag a filing by description. Case-insensitive substring
// match; the list deliberately overlaps ("capital" subsumes two others) to
// stay robust against upstream description drift.
var defaultKeywords = []string{
	"statement of capital",
	"allotment",
	"capital",
	"resolution relating to share capital",
	"psc",
	"persons with significant control",
	"incorporation",
}

// RegistryClient is the one registry operation this service needs.
type RegistryClient interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
}

// Service filters filing history down to capital/control-relevant entries.
type Service struct {
	client     RegistryClient
	maxResults int
	keywords   []string
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithKeywords replaces the default description keyword list.
func WithKeywords(keywords []string) Option {
	return func(s *Service) {
		if len(keywords) > 0 {
			s.keywords = keywords
		}
	}
}

// New constructs a Service. A non-positive MaxResults falls back to 15.
func New(client RegistryClient, cfg config.Filings, opts ...Option) *Service {
	max := cfg.MaxResults
	if max <= 0 {
		max = 15
	}
	s := &Service{client: client, maxResults: max, keywords: defaultKeywords}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type filingHistoryResponse struct {
	Items []filingItem `json:"items"`
}

type filingItem struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Relevant returns capital/control-relevant filings, most recent first as
// upstream orders them, capped at the configured count. Fetch or decode
// failures yield an empty result: this data source fails soft by design.
func (s *Service) Relevant(ctx context.Context, number string) []models.FilingSummary {
	number = models.NormalizeCompanyNumber(number)

	body, err := s.client.Get(ctx, "/company/"+number+"/filing-history")
	if err != nil {
		s.warn(ctx, "filing history fetch failed", "company_number", number, "error", err)
		return nil
	}

	var resp filingHistoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		s.warn(ctx, "filing history decode failed", "company_number", number, "error", err)
		return nil
	}

	var out []models.FilingSummary
	for _, item := range resp.Items {
		if len(out) >= s.maxResults {
			break
		}
		if !s.isRelevant(item) {
			continue
		}
		out = append(out, models.FilingSummary{
			Date:        item.Date,
			Category:    item.Category,
			Type:        item.Type,
			Description: item.Description,
		})
	}
	return out
}

func (s *Service) isRelevant(item filingItem) bool {
	if _, ok := relevantCategories[strings.ToLower(item.Category)]; ok {
		return true
	}
	desc := strings.ToLower(item.Description)
	for _, kw := range s.keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func (s *Service) warn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
