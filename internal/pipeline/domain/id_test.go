package domain

import (
	"encoding/json"
	"testing"
)

func TestParseLeadIDTagging(t *testing.T) {
	tests := []struct {
		in        string
		wantLocal bool
	}{
		{"reminder-7", true},
		{"seed-1", true},
		{"42", false},
		{"some-token", true},
	}
	for _, tc := range tests {
		id := ParseLeadID(tc.in)
		if id.IsLocal() != tc.wantLocal {
			t.Errorf("ParseLeadID(%q).IsLocal() = %v, want %v", tc.in, id.IsLocal(), tc.wantLocal)
		}
		if id.String() != tc.in {
			t.Errorf("ParseLeadID(%q).String() = %q", tc.in, id.String())
		}
	}
}

func TestLeadIDJSONRepresentation(t *testing.T) {
	// Remote IDs go out as numbers, local IDs as strings.
	remote, err := json.Marshal(RemoteID(42))
	if err != nil {
		t.Fatalf("marshal remote: %v", err)
	}
	if string(remote) != "42" {
		t.Fatalf("remote id marshaled as %s, want 42", remote)
	}

	local, err := json.Marshal(LocalID("reminder-7"))
	if err != nil {
		t.Fatalf("marshal local: %v", err)
	}
	if string(local) != `"reminder-7"` {
		t.Fatalf("local id marshaled as %s, want \"reminder-7\"", local)
	}
}

func TestLeadIDUnmarshalNumberAndString(t *testing.T) {
	var fromNumber LeadID
	if err := json.Unmarshal([]byte(`42`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if n, ok := fromNumber.Remote(); !ok || n != 42 {
		t.Fatalf("expected remote 42, got %v", fromNumber)
	}

	var fromToken LeadID
	if err := json.Unmarshal([]byte(`"seed-3"`), &fromToken); err != nil {
		t.Fatalf("unmarshal token: %v", err)
	}
	if !fromToken.IsLocal() || fromToken.String() != "seed-3" {
		t.Fatalf("expected local seed-3, got %v", fromToken)
	}

	// A numeric string is a server identifier that happened to travel as a
	// string: non-numeric is the sole signal for "local".
	var numericString LeadID
	if err := json.Unmarshal([]byte(`"42"`), &numericString); err != nil {
		t.Fatalf("unmarshal numeric string: %v", err)
	}
	if numericString.IsLocal() {
		t.Fatal("numeric string must be treated as server-backed")
	}
}

func TestReminderLeadIDDeterministic(t *testing.T) {
	a := ReminderLeadID(7)
	b := ReminderLeadID(7)
	if !a.Equal(b) {
		t.Fatalf("same reminder minted different ids: %v vs %v", a, b)
	}
	if a.String() != "reminder-7" {
		t.Fatalf("expected reminder-7, got %q", a.String())
	}
}
