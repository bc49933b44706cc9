// Package phone provides phone number normalization for customer records
// coming out of the municipal CRM store, which stores numbers in whatever
// format the original data entry used.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalize formats a raw phone number to E.164 for the given default
// region (e.g. "US"). Unparseable or empty input is returned unchanged:
// a display phone number is never worth failing a customer fetch over.
func Normalize(raw, region string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	num, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
