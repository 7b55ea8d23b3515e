package domain

// euCountryCodes is the set of country codes accepted by the VIES service:
// the EU member states plus XI (Northern Ireland). Greece uses EL, not GR.
var euCountryCodes = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "CY": {}, "CZ": {}, "DE": {}, "DK": {},
	"EE": {}, "EL": {}, "ES": {}, "FI": {}, "FR": {}, "HR": {}, "HU": {},
	"IE": {}, "IT": {}, "LT": {}, "LU": {}, "LV": {}, "MT": {}, "NL": {},
	"PL": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {}, "SK": {}, "XI": {},
}

// IsEUCountryCode reports whether code is a VIES-recognised country code.
func IsEUCountryCode(code string) bool {
	_, ok := euCountryCodes[code]
	return ok
}

// EUCountryCodes returns the VIES-recognised country codes in no particular order.
func EUCountryCodes() []string {
	codes := make([]string, 0, len(euCountryCodes))
	for c := range euCountryCodes {
		codes = append(codes, c)
	}
	return codes
}
