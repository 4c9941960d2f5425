package models

import "strings"

// PartyKind is the semantic classification of a controlling party.
type PartyKind string

const (
	PartyKindIndividual PartyKind = "individual"
	PartyKindCorporate  PartyKind = "corporate"
	PartyKindLegal      PartyKind = "legal"
	PartyKindOther      PartyKind = "other"
)

// IsCorporateBody reports whether the party is a corporate or legal person,
// i.e. a candidate for recursive expansion.
func (k PartyKind) IsCorporateBody() bool {
	return k == PartyKindCorporate || k == PartyKindLegal
}

// knownKinds maps upstream vocabulary tokens to their semantic tag. The
// fallback heuristic below handles tokens that are not listed here.
var knownKinds = map[string]PartyKind{
	"individual-person-with-significant-control":       PartyKindIndividual,
	"corporate-entity-person-with-significant-control": PartyKindCorporate,
	"legal-person-person-with-significant-control":     PartyKindLegal,
	"individual-beneficial-owner":                      PartyKindIndividual,
	"corporate-entity-beneficial-owner":                PartyKindCorporate,
	"legal-person-beneficial-owner":                    PartyKindLegal,
	"person-with-significant-control-statement":        PartyKindIndividual,
}

// ClassifyKind maps an upstream kind string onto PartyKind. Unknown tokens
// fall back to a substring test over the display label: "Individual" wins,
// then "Corporate"/"Legal", then a bare "Person With Significant Control"
// counts as an individual. Registry vocabularies mix statement-style and
// entity-style values, so the fallback must stay substring-based.
func ClassifyKind(raw string) PartyKind {
	token := strings.ToLower(strings.TrimSpace(raw))
	if k, ok := knownKinds[token]; ok {
		return k
	}

	label := PrettifyVocab(raw)
	switch {
	case strings.Contains(label, "Individual"):
		return PartyKindIndividual
	case strings.Contains(label, "Corporate"):
		return PartyKindCorporate
	case strings.Contains(label, "Legal"):
		return PartyKindLegal
	case strings.Contains(label, "Person With Significant Control"):
		return PartyKindIndividual
	default:
		return PartyKindOther
	}
}
