package types

import "strings"

const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"

	// CountryCodeIndia is the ISO 3166-1 alpha-2 code of the only domestic jurisdiction
	CountryCodeIndia = "IN"
)

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"inr": "₹",
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(code)]; ok {
		return symbol
	}
	return code
}

// CurrencyForCountry derives the billing currency from a client's country.
// India bills in INR, every other country in USD.
func CurrencyForCountry(countryCode string) string {
	if IsDomesticCountry(countryCode) {
		return CurrencyINR
	}
	return CurrencyUSD
}

// IsDomesticCountry reports whether the country is subject to domestic (GST) tax
func IsDomesticCountry(countryCode string) bool {
	return strings.EqualFold(strings.TrimSpace(countryCode), CountryCodeIndia)
}

// ClientType is the tax jurisdiction bucket of a client
type ClientType string

const (
	ClientTypeIndian        ClientType = "indian"
	ClientTypeInternational ClientType = "international"
)
