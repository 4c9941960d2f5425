package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownergraph/internal/company/models"
	"ownergraph/internal/company/store"
	"ownergraph/internal/registry"
)

// fakeRegistry serves canned JSON per path and counts calls.
type fakeRegistry struct {
	responses map[string]string
	errs      map[string]error
	calls     map[string]int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		responses: make(map[string]string),
		errs:      make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (f *fakeRegistry) Get(_ context.Context, path string) (json.RawMessage, error) {
	f.calls[path]++
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if body, ok := f.responses[path]; ok {
		return json.RawMessage(body), nil
	}
	return nil, registry.ErrNotFound
}

func TestService_Profile(t *testing.T) {
	reg := newFakeRegistry()
	reg.responses["/company/03877012"] = `{
		"company_name": "Alpha Ltd",
		"company_status": "active",
		"date_of_creation": "2001-02-03",
		"sic_codes": ["62012", "62020"],
		"jurisdiction": "england-wales"
	}`

	svc := New(reg)
	profile, err := svc.Profile(context.Background(), " 03877012 ")
	require.NoError(t, err)

	assert.Equal(t, "03877012", profile.Number)
	assert.Equal(t, "Alpha Ltd", profile.Name)
	assert.Equal(t, models.StatusActive, profile.Status)
	assert.Equal(t, "2001-02-03", profile.IncorporatedOn)
	assert.Equal(t, []string{"62012", "62020"}, profile.SICCodes)
	assert.Equal(t, "England Wales", profile.Jurisdiction)
}

func TestService_Profile_NotFoundPassesThrough(t *testing.T) {
	svc := New(newFakeRegistry())

	_, err := svc.Profile(context.Background(), "99999999")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestService_Profile_CacheHitSkipsFetch(t *testing.T) {
	reg := newFakeRegistry()
	reg.responses["/company/03877012"] = `{"company_name": "Alpha Ltd", "company_status": "active"}`

	cache := store.NewMemoryCache(time.Minute)
	svc := New(reg, WithCache(cache))
	ctx := context.Background()

	_, err := svc.Profile(ctx, "03877012")
	require.NoError(t, err)
	_, err = svc.Profile(ctx, "03877012")
	require.NoError(t, err)

	assert.Equal(t, 1, reg.calls["/company/03877012"], "second resolve should be served from cache")
}

func TestService_Controllers(t *testing.T) {
	reg := newFakeRegistry()
	reg.responses["/company/03877012/persons-with-significant-control"] = `{
		"items": [
			{
				"name": "Bob Smith",
				"kind": "individual-person-with-significant-control",
				"nationality": "British",
				"country_of_residence": "England",
				"statement": "NONE",
				"natures_of_control": ["ownership-of-shares-25-to-50-percent"]
			},
			{
				"name": "Holdings Ltd",
				"kind": "corporate-entity-person-with-significant-control",
				"natures_of_control": ["voting-rights-75-to-100-percent"],
				"identification": {
					"registration_number": "01234567",
					"legal_form": "Limited Company",
					"legal_authority": "Companies Act 2006",
					"country_registered": "United Kingdom",
					"place_registered": "Companies House"
				}
			}
		]
	}`

	svc := New(reg)
	parties, err := svc.Controllers(context.Background(), "03877012")
	require.NoError(t, err)
	require.Len(t, parties, 2)

	bob := parties[0]
	assert.Equal(t, "Bob Smith", bob.Name)
	assert.Equal(t, models.PartyKindIndividual, bob.Kind)
	assert.Equal(t, "individual-person-with-significant-control", bob.RawKind)
	assert.Equal(t, "British", bob.Nationality)
	assert.Empty(t, bob.Statement, "NONE sentinel must be dropped")
	assert.Nil(t, bob.Identification)

	holdings := parties[1]
	assert.Equal(t, models.PartyKindCorporate, holdings.Kind)
	require.NotNil(t, holdings.Identification)
	assert.Equal(t, "01234567", holdings.Identification.RegistrationNumber)
	assert.Equal(t, "United Kingdom", holdings.Identification.CountryRegistered)
}

func TestService_Controllers_EmptyListIsNotAnError(t *testing.T) {
	reg := newFakeRegistry()
	reg.responses["/company/03877012/persons-with-significant-control"] = `{"items": []}`

	svc := New(reg)
	parties, err := svc.Controllers(context.Background(), "03877012")
	require.NoError(t, err)
	assert.NotNil(t, parties)
	assert.Empty(t, parties)
}

func TestService_Controllers_MissingItemsKeyIsExempt(t *testing.T) {
	reg := newFakeRegistry()
	reg.responses["/company/03877012/persons-with-significant-control"] = `{"total_results": 0}`

	svc := New(reg)
	parties, err := svc.Controllers(context.Background(), "03877012")
	require.NoError(t, err)
	assert.Empty(t, parties)
}

func TestService_Controllers_FetchFailure(t *testing.T) {
	reg := newFakeRegistry()
	reg.errs["/company/03877012/persons-with-significant-control"] = registry.ErrRateLimited

	svc := New(reg)
	_, err := svc.Controllers(context.Background(), "03877012")
	assert.ErrorIs(t, err, registry.ErrRateLimited)
}
