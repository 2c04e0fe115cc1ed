package freight

import (
	"freightzone-backend/internal/domain"
	"regexp"
	"strings"
)

var nzPostalCode = regexp.MustCompile(`^\d{4}$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AddressValidation struct {
	Success            bool         `json:"success"`
	IsValid            bool         `json:"isValid"`
	Country            string       `json:"country,omitempty"`
	Errors             []FieldError `json:"errors"`
	SupportedCountries []string     `json:"supportedCountries"`
}

// ValidateAddress checks that addr can be classified before any price is
// quoted. A New Zealand address needs at least one of city, state or postal
// code, and its postal code must be four digits when present.
func ValidateAddress(addr domain.Address) AddressValidation {
	v := AddressValidation{
		Success:            true,
		Errors:             []FieldError{},
		SupportedCountries: SupportedCountryList(),
	}

	if strings.TrimSpace(addr.Country) == "" {
		v.Errors = append(v.Errors, FieldError{Field: "country", Message: "Country is required"})
		return v
	}

	country, ok := NormalizeCountry(addr.Country)
	if !ok {
		v.Errors = append(v.Errors, FieldError{Field: "country", Message: domain.ErrUnsupportedCountry.Error()})
		return v
	}
	v.Country = country

	if country == CountryNewZealand {
		city := strings.TrimSpace(addr.City)
		state := strings.TrimSpace(addr.State)
		postal := strings.TrimSpace(addr.PostalCode)

		if city == "" && state == "" && postal == "" {
			v.Errors = append(v.Errors, FieldError{Field: "address", Message: domain.ErrMissingAddressFields.Error()})
		}
		if postal != "" && !nzPostalCode.MatchString(postal) {
			v.Errors = append(v.Errors, FieldError{Field: "postalCode", Message: "New Zealand postal codes have four digits"})
		}
	}

	v.IsValid = len(v.Errors) == 0
	return v
}
