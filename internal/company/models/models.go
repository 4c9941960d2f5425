// Package models defines the corporate registry domain types shared across
// feature packages. Instances are immutable snapshots created per fetch; no
// entity outlives the traversal that produced it.
package models

import "strings"

// CompanyStatus is the normalized lifecycle status of a company.
type CompanyStatus string

const (
	StatusActive      CompanyStatus = "active"
	StatusDissolved   CompanyStatus = "dissolved"
	StatusLiquidation CompanyStatus = "liquidation"
	StatusOther       CompanyStatus = "other"
)

// ParseCompanyStatus maps upstream status strings onto the closed enum.
func ParseCompanyStatus(raw string) CompanyStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return StatusActive
	case "dissolved":
		return StatusDissolved
	case "liquidation":
		return StatusLiquidation
	default:
		return StatusOther
	}
}

// CompanyProfile is one company's profile snapshot.
type CompanyProfile struct {
	Number         string        `json:"company_number"`
	Name           string        `json:"company_name"`
	Status         CompanyStatus `json:"status"`
	RawStatus      string        `json:"raw_status,omitempty"`
	IncorporatedOn string        `json:"incorporated_on,omitempty"`
	SICCodes       []string      `json:"sic_codes,omitempty"`
	Jurisdiction   string        `json:"jurisdiction,omitempty"`
}

// Identification describes a corporate or legal-person controller's own
// registration. A present registration number signals the controller is
// itself a registrable entity; the country/place fields drive the
// jurisdiction heuristic.
type Identification struct {
	RegistrationNumber string `json:"registration_number,omitempty"`
	LegalForm          string `json:"legal_form,omitempty"`
	LegalAuthority     string `json:"legal_authority,omitempty"`
	CountryRegistered  string `json:"country_registered,omitempty"`
	PlaceRegistered    string `json:"place_registered,omitempty"`
}

// ControllingParty is one person with significant control (PSC).
type ControllingParty struct {
	Name               string          `json:"name"`
	Kind               PartyKind       `json:"kind"`
	RawKind            string          `json:"raw_kind,omitempty"`
	Nationality        string          `json:"nationality,omitempty"`
	CountryOfResidence string          `json:"country_of_residence,omitempty"`
	Statement          string          `json:"statement,omitempty"`
	NaturesOfControl   []string        `json:"natures_of_control,omitempty"`
	Identification     *Identification `json:"identification,omitempty"`
}

// FilingSummary is one filing-history entry.
type FilingSummary struct {
	Date        string `json:"date,omitempty"`
	Category    string `json:"category,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// CapitalItem is one share class from the structured capital endpoint.
/// Numeric fields stay textual: upstream mixes numbers and strings across API
// versions and this system performs no arithmetic on them.
type CapitalItem struct {
	ShareClass            string `json:"share_class,omitempty"`
	NumberAllotted        string `json:"number_allotted,omitempty"`
	Currency              string `json:"currency,omitempty"`
	NominalValuePerShare  string `json:"nominal_value_per_share,omitempty"`
	AggregateNominalValue string `json:"aggregate_nominal_value,omitempty"`
}

// PrettifyVocab turns a controlled-vocabulary token into its display form,
// e.g. "ownership-of-shares-25-to-50-percent" -> "Ownership Of Shares 25 To
// 50 Percent". Kind classification relies on this exact transform.
func PrettifyVocab(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
