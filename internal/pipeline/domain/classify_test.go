package domain

import "testing"

func containsID(leads []Lead, id LeadID) bool {
	for _, l := range leads {
		if l.ID.Equal(id) {
			return true
		}
	}
	return false
}

func TestClassifyScenario(t *testing.T) {
	lead1 := Lead{ID: RemoteID(1), Title: "City of Ames", Score: 82, Stage: StageQualified}
	lead2 := Lead{ID: RemoteID(2), Title: "Des Moines Water", Score: 55, Stage: StageContacted}

	c := Classify([]Lead{lead1, lead2})

	if len(c.Hot) != 1 || !containsID(c.Hot, lead1.ID) {
		t.Fatalf("hot = %+v, want [lead1]", c.Hot)
	}
	if len(c.Stale) != 1 || !containsID(c.Stale, lead2.ID) {
		t.Fatalf("stale = %+v, want [lead2]", c.Stale)
	}
	if len(c.NeedsFollowUp) != 1 || !containsID(c.NeedsFollowUp, lead1.ID) {
		t.Fatalf("needsFollowUp = %+v, want [lead1]", c.NeedsFollowUp)
	}
}

func TestClassifyQueueMembershipOverlaps(t *testing.T) {
	// Hot and needs-follow-up at once: membership is not mutually exclusive.
	lead := Lead{ID: RemoteID(1), Score: 90, Stage: StageMeetingScheduled}

	c := Classify([]Lead{lead})

	if !containsID(c.Hot, lead.ID) {
		t.Error("expected lead in hot queue")
	}
	if !containsID(c.NeedsFollowUp, lead.ID) {
		t.Error("expected lead in needs-follow-up queue")
	}
	if containsID(c.Stale, lead.ID) {
		t.Error("did not expect lead in stale queue")
	}
}

func TestClassifyHotExcludesWonClosed(t *testing.T) {
	c := Classify([]Lead{{ID: RemoteID(1), Score: 95, Stage: StageWonClosed}})
	if len(c.Hot) != 0 {
		t.Fatalf("closed-won lead must not be hot, got %+v", c.Hot)
	}
}

func TestClassifyStageCountsCoverAllStages(t *testing.T) {
	c := Classify([]Lead{
		{ID: RemoteID(1), Stage: StageContacted, Score: 70},
		{ID: RemoteID(2), Stage: StageContacted, Score: 40},
		{ID: RemoteID(3), Stage: StageWonClosed, Score: 90},
	})

	if len(c.StageCounts) != 6 {
		t.Fatalf("expected all 6 stages in counts, got %d", len(c.StageCounts))
	}
	if c.StageCounts[StageContacted] != 2 {
		t.Errorf("Contacted count = %d, want 2", c.StageCounts[StageContacted])
	}
	if c.StageCounts[StageWonClosed] != 1 {
		t.Errorf("Won / Closed count = %d, want 1", c.StageCounts[StageWonClosed])
	}
	for _, s := range []Stage{StageNew, StageQualified, StageMeetingScheduled, StageProposalSent} {
		if got, ok := c.StageCounts[s]; !ok || got != 0 {
			t.Errorf("stage %q count = %d (present=%v), want 0 and present", s, got, ok)
		}
	}
}

func TestClassifyIndependentOfIterationOrder(t *testing.T) {
	leads := []Lead{
		{ID: RemoteID(1), Score: 85, Stage: StageQualified},
		{ID: RemoteID(2), Score: 50, Stage: StageContacted},
		{ID: RemoteID(3), Score: 81, Stage: StageNew},
	}
	reversed := []Lead{leads[2], leads[1], leads[0]}

	a := Classify(leads)
	b := Classify(reversed)

	// Set-equality is the contract, not list-equality.
	queues := []struct {
		name string
		x, y []Lead
	}{
		{"hot", a.Hot, b.Hot},
		{"stale", a.Stale, b.Stale},
		{"needsFollowUp", a.NeedsFollowUp, b.NeedsFollowUp},
	}
	for _, q := range queues {
		if len(q.x) != len(q.y) {
			t.Fatalf("%s queue size differs across orders: %d vs %d", q.name, len(q.x), len(q.y))
		}
		for _, l := range q.x {
			if !containsID(q.y, l.ID) {
				t.Errorf("%s queue membership differs across orders for %v", q.name, l.ID)
			}
		}
	}
	for _, s := range Stages() {
		if a.StageCounts[s] != b.StageCounts[s] {
			t.Errorf("stage count for %q differs across orders", s)
		}
	}
}

func TestClassifyDoesNotMutateSnapshot(t *testing.T) {
	leads := []Lead{{ID: RemoteID(1), Score: 85, Stage: StageQualified}}
	_ = Classify(leads)
	_ = Classify(leads)

	if leads[0].Score != 85 || leads[0].Stage != StageQualified {
		t.Fatalf("classification mutated the snapshot: %+v", leads[0])
	}
}

func TestClassifyEmptySnapshot(t *testing.T) {
	c := Classify(nil)
	if len(c.Hot) != 0 || len(c.Stale) != 0 || len(c.NeedsFollowUp) != 0 {
		t.Fatalf("expected empty queues, got %+v", c)
	}
	if len(c.StageCounts) != 6 {
		t.Fatalf("expected all stages present for empty snapshot, got %d", len(c.StageCounts))
	}
}
