// Package classifier infers the customer segment of a call leg from its
// free-text activity detail.
//
// The phone system resolves known contact-list numbers to account names when
// it writes the "Inbound: <caller>" fragment, so a caller rendered as a raw
// number was not found in the contact list. That makes the first character
// of the token a free classifier: digit means retail, anything else means a
// resolved account name, i.e. a trade customer.
package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"southside/call-report/internal/models"
)

// inboundTokenPattern captures the caller token after "Inbound:", terminated
// by the arrow glyph, an opening parenthesis, or end of string.
var inboundTokenPattern = regexp.MustCompile(`Inbound:\s*(.+?)(?:\s*→|\s*\(|$)`)

// ClassifyActivity inspects one leg's activity detail and returns the leg
// classification. No "Inbound:" fragment, or an empty token, yields
// LegUnclassified; resolution to a concrete type happens at aggregation.
func ClassifyActivity(activity string) models.LegClassification {
	m := inboundTokenPattern.FindStringSubmatch(activity)
	if m == nil {
		return models.LegUnclassified
	}

	token := strings.TrimSpace(m[1])
	if token == "" {
		return models.LegUnclassified
	}

	if unicode.IsDigit([]rune(token)[0]) {
		return models.LegRetail
	}
	return models.LegTrade
}
