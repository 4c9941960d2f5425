package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecursable(t *testing.T) {
	tests := []struct {
		name           string
		ident          *Identification
		assumeDomestic bool
		want           bool
	}{
		{
			name:           "uk country registered",
			ident:          &Identification{RegistrationNumber: "12345678", CountryRegistered: "United Kingdom"},
			assumeDomestic: true,
			want:           true,
		},
		{
			name:           "uk place registered",
			ident:          &Identification{RegistrationNumber: "12345678", PlaceRegistered: "Companies House, Cardiff"},
			assumeDomestic: true,
			want:           true,
		},
		{
			name:           "keyword match is case-insensitive",
			ident:          &Identification{RegistrationNumber: "SC123456", CountryRegistered: "SCOTLAND"},
			assumeDomestic: true,
			want:           true,
		},
		{
			name:           "foreign registration",
			ident:          &Identification{RegistrationNumber: "12345678", CountryRegistered: "Delaware, USA"},
			assumeDomestic: true,
			want:           false,
		},
		{
			name:           "no jurisdiction fields defaults domestic",
			ident:          &Identification{RegistrationNumber: "12345678"},
			assumeDomestic: true,
			want:           true,
		},
		{
			name:           "no jurisdiction fields with policy off",
			ident:          &Identification{RegistrationNumber: "12345678"},
			assumeDomestic: false,
			want:           false,
		},
		{
			name:           "no registration number",
			ident:          &Identification{CountryRegistered: "United Kingdom"},
			assumeDomestic: true,
			want:           false,
		},
		{
			name:           "blank registration number",
			ident:          &Identification{RegistrationNumber: "   "},
			assumeDomestic: true,
			want:           false,
		},
		{
			name:           "nil identification",
			ident:          nil,
			assumeDomestic: true,
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recursable(tt.ident, tt.assumeDomestic))
		})
	}
}
