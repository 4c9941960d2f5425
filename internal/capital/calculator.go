package capital

import (
	"math"

	dErrors "ownergraph/pkg/domain-errors"
)

// ShareholdingInput is an explicit calculation request. It is deliberately
// independent of registry data; callers supply the figures they trust.
type ShareholdingInput struct {
	EntityName  string `json:"entity_name,omitempty"`
	ShareClass  string `json:"share_class,omitempty"`
	TotalIssued int64  `json:"total_issued"`
	SharesHeld  int64  `json:"shares_held"`
}

// ShareholdingResult is the outcome of one shareholding calculation.
type ShareholdingResult struct {
	EntityName  string  `json:"entity_name"`
	ShareClass  string  `json:"share_class,omitempty"`
	TotalIssued int64   `json:"total_issued"`
	SharesHeld  int64   `json:"shares_held"`
	Percentage  float64 `json:"percentage"`
}

// CalculateShareholding computes the percentage of a class held by one
// entity, rounded to two decimal places. Validation failures carry the
// validation error code.
func CalculateShareholding(in ShareholdingInput) (*ShareholdingResult, error) {
	if in.TotalIssued <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "total issued shares must be greater than zero")
	}
	if in.SharesHeld < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "shares held cannot be negative")
	}
	if in.SharesHeld > in.TotalIssued {
		return nil, dErrors.New(dErrors.CodeValidation, "shares held cannot exceed total issued shares")
	}

	name := in.EntityName
	if name == "" {
		name = "The specified entity"
	}

	pct := float64(in.SharesHeld) / float64(in.TotalIssued) * 100
	pct = math.Round(pct*100) / 100

	return &ShareholdingResult{
		EntityName:  name,
		ShareClass:  in.ShareClass,
		TotalIssued: in.TotalIssued,
		SharesHeld:  in.SharesHeld,
		Percentage:  pct,
	}, nil
}
