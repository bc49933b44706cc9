package domain

// Reconcile swaps a locally-minted identifier for the server-assigned one
// after the remote store accepts the create. Every occurrence of oldID is
// replaced; all other fields and the snapshot order are preserved. The
// returned slice is a fresh copy, so concurrent completions can each
// reconcile against their own snapshot safely.
//
// When oldID is absent the call is a no-op with changed=false, not an
// error: a duplicate or late completion callback simply finds nothing left
// to rename.
func Reconcile(leads []Lead, oldID, newID LeadID) (out []Lead, changed bool) {
	out = make([]Lead, len(leads))
	copy(out, leads)
	for i := range out {
		if out[i].ID.Equal(oldID) {
			out[i].ID = newID
			changed = true
		}
	}
	return out, changed
}

// NeedsSync reports whether the lead must still go through the remote
// create path. Only locally-identified leads qualify; a reconciled lead is
// updated in place remotely and never re-submitted as a create.
func NeedsSync(l Lead) bool {
	return l.ID.IsLocal()
}

// LocalLeads filters the snapshot down to leads awaiting a remote create.
func LocalLeads(leads []Lead) []Lead {
	var out []Lead
	for _, l := range leads {
		if NeedsSync(l) {
			out = append(out, l)
		}
	}
	return out
}
