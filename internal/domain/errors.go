package domain

import "errors"

var (
	ErrUnsupportedCountry   = errors.New("country is not supported for shipping")
	ErrInvalidLocalZoneCity = errors.New("local zone city must be a North Island city")
	ErrMissingAddressFields = errors.New("address requires a city, region or postal code")
	ErrInvalidFreightConfig = errors.New("invalid freight configuration")
	ErrConfigNotFound       = errors.New("configuration not found")
)
