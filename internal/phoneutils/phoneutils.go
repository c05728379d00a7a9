// Package phoneutils normalizes phone numbers across formatting and
// country-code variants and matches abandoned-call records against the set
// of known trade-customer numbers.
//
// Normalization correctness silently determines all trade classification
// for abandoned calls, so it lives here as an isolated, independently
// testable unit.
package phoneutils

import (
	"strings"

	"southside/call-report/internal/models"
)

// countryCode is the national prefix stripped during normalization.
// Configurable so the pipeline is not hardwired to one country.
var countryCode = "353"

// SetCountryCode sets the country-code prefix used by Normalize.
func SetCountryCode(code string) {
	if code != "" {
		countryCode = code
	}
}

// Normalize reduces a phone number to its bare national digit string:
// formatting characters are removed first, then country-code prefixes in
// priority order ("+353", "00353", "353"), then a single leading "0".
// "+353 87 123 4567", "087-123-4567" and "871234567" all normalize to
// "871234567".
func Normalize(phone string) string {
	s := strings.TrimSpace(phone)

	replacer := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
	s = replacer.Replace(s)

	switch {
	case strings.HasPrefix(s, "+"+countryCode):
		s = s[len(countryCode)+1:]
	case strings.HasPrefix(s, "00"+countryCode):
		s = s[len(countryCode)+2:]
	case strings.HasPrefix(s, countryCode):
		s = s[len(countryCode):]
	}

	if strings.HasPrefix(s, "0") {
		s = s[1:]
	}

	return s
}

// BuildTradeNumberSet collects the normalized from-numbers of every
// trade-classified call. Placeholder values ("anonymous", empty string) are
// excluded so they can never create false trade matches.
func BuildTradeNumberSet(calls []models.Call) map[string]bool {
	set := make(map[string]bool)
	for i := range calls {
		if !calls[i].IsTrade() {
			continue
		}
		n := Normalize(calls[i].FromNumber)
		if n == "" || n == "anonymous" {
			continue
		}
		set[n] = true
	}
	return set
}

// ClassifyAbandoned resolves the customer type of every abandoned record by
// set membership: a normalized caller number in the trade set is trade,
// everything else is retail. There is no unclassified state here.
func ClassifyAbandoned(records []models.AbandonedCall, tradeNumbers map[string]bool) {
	for i := range records {
		if tradeNumbers[Normalize(records[i].CallerID)] {
			records[i].CustomerType = models.CustomerTypeTrade
		} else {
			records[i].CustomerType = models.CustomerTypeRetail
		}
	}
}
