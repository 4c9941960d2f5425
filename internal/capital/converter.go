package capital

import (
	"encoding/json"

	"ownergraph/internal/company/models"
)

// flexString decodes a JSON string or number into a string. The capital
// endpoint has shipped both over its lifetime.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexAggregate decodes aggregate_nominal_value, which upstream renders
// either as a scalar or as a {value, currency} object.
type flexAggregate struct {
	Value    flexString
	Currency string
}

func (f *flexAggregate) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Value    flexString `json:"value"`
			Currency string     `json:"currency"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		f.Value = obj.Value
		f.Currency = obj.Currency
		return nil
	}
	return f.Value.UnmarshalJSON(data)
}

type capitalItem struct {
	ShareClass    flexString `json:"share_class"`
	ClassOfShares flexString `json:"class_of_shares"`

	NumberAllotted flexString `json:"number_allotted"`
	SharesAllotted flexString `json:"shares_allotted"`
	NumberOfShares flexString `json:"number_of_shares"`

	Currency flexString `json:"currency"`

	NominalValuePerShare flexString `json:"nominal_value_per_share"`
	ValuePerShare        flexString `json:"value_per_share"`

	AggregateNominalValue flexAggregate `json:"aggregate_nominal_value"`
}

type capitalResponse struct {
	Items        []capitalItem `json:"items"`
	ShareCapital []capitalItem `json:"share_capital"`
}

// decodeCapital accepts the three payload shapes seen in the wild: an object
// with an "items" list, an object with a "share_capital" list, or a bare
// list.
func decodeCapital(body json.RawMessage) ([]models.CapitalItem, error) {
	var raw []capitalItem

	trimmed := firstNonSpace(body)
	if trimmed == '[' {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, err
		}
	} else {
		var resp capitalResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		raw = resp.Items
		if len(raw) == 0 {
			raw = resp.ShareCapital
		}
	}

	out := make([]models.CapitalItem, 0, len(raw))
	for _, item := range raw {
		out = append(out, toCapitalItem(item))
	}
	return out, nil
}

func toCapitalItem(item capitalItem) models.CapitalItem {
	currency := string(item.Currency)
	if currency == "" {
		currency = item.AggregateNominalValue.Currency
	}
	return models.CapitalItem{
		ShareClass:            coalesce(item.ShareClass, item.ClassOfShares),
		NumberAllotted:        coalesce(item.NumberAllotted, item.SharesAllotted, item.NumberOfShares),
		Currency:              currency,
		NominalValuePerShare:  coalesce(item.NominalValuePerShare, item.ValuePerShare),
		AggregateNominalValue: string(item.AggregateNominalValue.Value),
	}
}

func coalesce(values ...flexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
