package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LeadID is a tagged lead identifier. A lead is either locally minted
// (string token prefixed "reminder-" or "seed-", not yet persisted to the
// remote pipeline store) or server-backed (numeric identifier assigned by
// the remote store). Which side of the tag an ID sits on decides sync
// eligibility: local leads go through the create path, remote leads through
// the update path, and never the other way around.
//
// On the wire the distinction stays implicit for client compatibility:
// remote IDs serialize as JSON numbers, local IDs as strings.
type LeadID struct {
	remote int64
	local  string
}

// LocalID mints a local identifier from a token.
func LocalID(token string) LeadID {
	return LeadID{local: token}
}

// RemoteID wraps a server-assigned numeric identifier.
func RemoteID(n int64) LeadID {
	return LeadID{remote: n}
}

// ReminderLeadID is the deterministic local identifier for a lead derived
// from a reminder. Deriving the same reminder twice yields the same token.
func ReminderLeadID(reminderID int64) LeadID {
	return LocalID(fmt.Sprintf("reminder-%d", reminderID))
}

// SeedLeadID is the local identifier for the Nth demo seed lead.
func SeedLeadID(n int) LeadID {
	return LocalID(fmt.Sprintf("seed-%d", n))
}

// ParseLeadID reads an identifier from its string form. A value that parses
// as an integer is server-backed; anything else is a local token.
func ParseLeadID(s string) LeadID {
	s = strings.TrimSpace(s)
	if s == "" {
		return LeadID{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return RemoteID(n)
	}
	return LocalID(s)
}

// IsLocal reports whether the identifier is locally minted.
func (id LeadID) IsLocal() bool { return id.local != "" }

// IsRemote reports whether the identifier is server-assigned.
func (id LeadID) IsRemote() bool { return id.local == "" && id.remote != 0 }

// IsZero reports whether the identifier is unset.
func (id LeadID) IsZero() bool { return id.local == "" && id.remote == 0 }

// Remote returns the numeric identifier when server-backed.
func (id LeadID) Remote() (int64, bool) {
	if id.IsRemote() {
		return id.remote, true
	}
	return 0, false
}

// String returns the canonical string form: the token for local IDs, the
// decimal number for remote ones.
func (id LeadID) String() string {
	if id.IsLocal() {
		return id.local
	}
	if id.remote != 0 {
		return strconv.FormatInt(id.remote, 10)
	}
	return ""
}

// Equal compares two identifiers.
func (id LeadID) Equal(other LeadID) bool {
	return id.local == other.local && id.remote == other.remote
}

// MarshalJSON writes remote IDs as numbers and local IDs as strings,
// matching what the mobile client and the remote store exchange.
func (id LeadID) MarshalJSON() ([]byte, error) {
	if id.IsLocal() {
		return json.Marshal(id.local)
	}
	if id.remote != 0 {
		return json.Marshal(id.remote)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a number, a string, or null.
func (id *LeadID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*id = LeadID{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ParseLeadID(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("lead id must be a string or number: %w", err)
	}
	*id = RemoteID(n)
	return nil
}
