package filings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownergraph/internal/platform/config"
	"ownergraph/internal/registry"
)

type stubClient struct {
	body string
	err  error
}

func (s stubClient) Get(context.Context, string) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.body), nil
}

func TestRelevant_FiltersByCategoryAndKeyword(t *testing.T) {
	client := stubClient{body: `{
		"items": [
			{"date": "2024-06-01", "category": "capital", "type": "SH01", "description": "Statement of capital following an allotment of shares"},
			{"date": "2024-05-01", "category": "accounts", "type": "AA", "description": "Annual accounts"},
			{"date": "2024-04-01", "category": "confirmation-statement", "type": "CS01", "description": "Confirmation statement with updates to PSC details"},
			{"date": "2024-03-01", "category": "resolution", "type": "RES01", "description": "Special resolution"},
			{"date": "2024-02-01", "category": "officers", "type": "AP01", "description": "Appointment of a director"}
		]
	}`}

	got := New(client, config.Filings{MaxResults: 15}).Relevant(context.Background(), "03877012")
	require.Len(t, got, 3)
	assert.Equal(t, "2024-06-01", got[0].Date)
	assert.Equal(t, "confirmation-statement", got[1].Category, "PSC keyword match")
	assert.Equal(t, "resolution", got[2].Category)
}

func TestRelevant_PreservesUpstreamOrderAndCap(t *testing.T) {
	items := `{"items": [`
	for i := 0; i < 20; i++ {
		if i > 0 {
			items += ","
		}
		items += `{"date": "2024-01-01", "category": "capital", "description": "Statement of capital"}`
	}
	items += `]}`

	got := New(stubClient{body: items}, config.Filings{MaxResults: 15}).Relevant(context.Background(), "03877012")
	assert.Len(t, got, 15)
}

func TestRelevant_KeywordMatchIsCaseInsensitive(t *testing.T) {
	client := stubClient{body: `{
		"items": [{"date": "2024-01-01", "category": "misc", "description": "STATEMENT OF CAPITAL on incorporation"}]
	}`}

	got := New(client, config.Filings{}).Relevant(context.Background(), "03877012")
	assert.Len(t, got, 1)
}

func TestRelevant_FailsSoft(t *testing.T) {
	t.Run("fetch failure yields empty result", func(t *testing.T) {
		got := New(stubClient{err: registry.ErrNotFound}, config.Filings{}).Relevant(context.Background(), "03877012")
		assert.Empty(t, got)
	})

	t.Run("decode failure yields empty result", func(t *testing.T) {
		got := New(stubClient{body: `{"items": "nope"}`}, config.Filings{}).Relevant(context.Background(), "03877012")
		assert.Empty(t, got)
	})
}

func TestRelevant_CustomKeywords(t *testing.T) {
	client := stubClient{body: `{
		"items": [{"date": "2024-01-01", "category": "misc", "description": "share buyback completed"}]
	}`}

	got := New(client, config.Filings{}, WithKeywords([]string{"buyback"})).Relevant(context.Background(), "03877012")
	assert.Len(t, got, 1)
}
