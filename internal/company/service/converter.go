package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"ownergraph/internal/company/models"
)

// Upstream response shapes. Field names follow the registry API; optional
// fields stay pointers only where absence matters.

type profileResponse struct {
	CompanyName    string   `json:"company_name"`
	CompanyStatus  string   `json:"company_status"`
	DateOfCreation string   `json:"date_of_creation"`
	SICCodes       []string `json:"sic_codes"`
	Jurisdiction   string   `json:"jurisdiction"`
}

type pscListResponse struct {
	Items []pscItem `json:"items"`
}

type pscItem struct {
	Name               string             `json:"name"`
	Kind               string             `json:"kind"`
	Nationality        string             `json:"nationality"`
	CountryOfResidence string             `json:"country_of_residence"`
	Statement          string             `json:"statement"`
	NaturesOfControl   []string           `json:"natures_of_control"`
	Identification     *pscIdentification `json:"identification"`
}

type pscIdentification struct {
	RegistrationNumber string `json:"registration_number"`
	LegalForm          string `json:"legal_form"`
	LegalAuthority     string `json:"legal_authority"`
	CountryRegistered  string `json:"country_registered"`
	PlaceRegistered    string `json:"place_registered"`
}

func decodeProfile(number string, body json.RawMessage) (*models.CompanyProfile, error) {
	var resp profileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode company profile: %w", err)
	}

	return &models.CompanyProfile{
		Number:         number,
		Name:           resp.CompanyName,
		Status:         models.ParseCompanyStatus(resp.CompanyStatus),
		RawStatus:      resp.CompanyStatus,
		IncorporatedOn: resp.DateOfCreation,
		SICCodes:       resp.SICCodes,
		Jurisdiction:   models.PrettifyVocab(resp.Jurisdiction),
	}, nil
}

func decodeControllers(body json.RawMessage) ([]models.ControllingParty, error) {
	var resp pscListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode controllers: %w", err)
	}

	parties := make([]models.ControllingParty, 0, len(resp.Items))
	for _, item := range resp.Items {
		parties = append(parties, toControllingParty(item))
	}
	return parties, nil
}

func toControllingParty(item pscItem) models.ControllingParty {
	party := models.ControllingParty{
		Name:               item.Name,
		Kind:               models.ClassifyKind(item.Kind),
		RawKind:            item.Kind,
		Nationality:        item.Nationality,
		CountryOfResidence: item.CountryOfResidence,
		Statement:          normalizeStatement(item.Statement),
		NaturesOfControl:   item.NaturesOfControl,
	}
	if item.Identification != nil {
		party.Identification = &models.Identification{
			RegistrationNumber: item.Identification.RegistrationNumber,
			LegalForm:          item.Identification.LegalForm,
			LegalAuthority:     item.Identification.LegalAuthority,
			CountryRegistered:  item.Identification.CountryRegistered,
			PlaceRegistered:    item.Identification.PlaceRegistered,
		}
	}
	return party
}

// normalizeStatement drops the upstream "NONE" sentinel, which means "no
// statement" rather than a statement whose text is NONE.
func normalizeStatement(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "NONE") {
		return ""
	}
	return s
}
