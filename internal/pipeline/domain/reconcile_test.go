package domain

import "testing"

func TestReconcileSwapsIdentifier(t *testing.T) {
	leads := []Lead{
		{ID: LocalID("reminder-7"), Title: "City of Ames", Score: 85, Stage: StageContacted},
		{ID: RemoteID(2), Title: "Des Moines Water", Score: 55, Stage: StageContacted},
	}

	out, changed := Reconcile(leads, LocalID("reminder-7"), RemoteID(101))
	if !changed {
		t.Fatal("expected reconciliation to report a change")
	}

	if n, ok := out[0].ID.Remote(); !ok || n != 101 {
		t.Fatalf("expected first lead to carry remote id 101, got %v", out[0].ID)
	}
	// Everything but the identifier is preserved, in order.
	if out[0].Title != "City of Ames" || out[0].Score != 85 || out[0].Stage != StageContacted {
		t.Fatalf("reconcile altered non-id fields: %+v", out[0])
	}
	if !out[1].ID.Equal(RemoteID(2)) {
		t.Fatalf("unrelated lead touched: %+v", out[1])
	}

	// Input snapshot untouched.
	if !leads[0].ID.IsLocal() {
		t.Fatal("reconcile mutated the input snapshot")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	leads := []Lead{{ID: LocalID("reminder-7"), Title: "City of Ames"}}

	once, changed := Reconcile(leads, LocalID("reminder-7"), RemoteID(101))
	if !changed {
		t.Fatal("first reconcile should change the snapshot")
	}

	// A late duplicate completion referencing the stale local id finds
	// nothing to rename.
	twice, changed := Reconcile(once, LocalID("reminder-7"), RemoteID(101))
	if changed {
		t.Fatal("second reconcile must be a no-op")
	}
	if n, ok := twice[0].ID.Remote(); !ok || n != 101 {
		t.Fatalf("identifier drifted on duplicate completion: %v", twice[0].ID)
	}
}

func TestReconcileMissingOldIDIsNoop(t *testing.T) {
	leads := []Lead{{ID: RemoteID(2)}}
	out, changed := Reconcile(leads, LocalID("seed-9"), RemoteID(300))
	if changed {
		t.Fatal("unknown oldId must be a no-op, not an error")
	}
	if len(out) != 1 || !out[0].ID.Equal(RemoteID(2)) {
		t.Fatalf("snapshot altered on no-op reconcile: %+v", out)
	}
}

func TestNeedsSyncOnlyForLocalIdentifiers(t *testing.T) {
	if !NeedsSync(Lead{ID: LocalID("seed-1")}) {
		t.Error("seed lead must need sync")
	}
	if !NeedsSync(Lead{ID: LocalID("reminder-4")}) {
		t.Error("reminder lead must need sync")
	}
	if NeedsSync(Lead{ID: RemoteID(12)}) {
		t.Error("server-backed lead must never be re-submitted as a create")
	}
}

func TestLocalLeadsFilter(t *testing.T) {
	leads := []Lead{
		{ID: RemoteID(1)},
		{ID: LocalID("seed-1")},
		{ID: LocalID("reminder-2")},
	}
	local := LocalLeads(leads)
	if len(local) != 2 {
		t.Fatalf("expected 2 local leads, got %d", len(local))
	}
}
