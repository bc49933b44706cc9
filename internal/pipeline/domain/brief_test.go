package domain

import (
	"reflect"
	"testing"
)

func TestFallbackBriefEmptySnapshot(t *testing.T) {
	b := FallbackBrief(nil)

	if b.Summary != "No hot leads right now. Work the follow-up queue to build momentum." {
		t.Errorf("summary = %q", b.Summary)
	}
	if b.HotInsight != "No active leads yet. Convert a reminder to get the pipeline moving." {
		t.Errorf("hotInsight = %q", b.HotInsight)
	}
	if len(b.FollowUps) != 0 {
		t.Errorf("followUps = %+v, want none", b.FollowUps)
	}
}

func TestFallbackBriefGolden(t *testing.T) {
	leads := []Lead{
		{ID: LocalID("reminder-7"), Title: "City of Ames", Score: 85, Stage: StageContacted, NextAction: "Call about hydrant contract"},
		{ID: RemoteID(2), Title: "Des Moines Water", Score: 55, Stage: StageContacted},
		{ID: RemoteID(3), Title: "Ankeny Parks", Score: 91, Stage: StageQualified, NextAction: "Send proposal draft"},
		{ID: RemoteID(4), Title: "Waukee Schools", Score: 40, Stage: StageNew},
	}

	want := Brief{
		Summary:    "2 hot leads in play: City of Ames, Ankeny Parks.",
		HotInsight: "Ankeny Parks (score 91) is your strongest opportunity today.",
		FollowUps: []BriefFollowUp{
			{ID: LocalID("reminder-7"), Title: "City of Ames", Suggestion: "Call about hydrant contract"},
			{ID: RemoteID(2), Title: "Des Moines Water", Suggestion: "Draft a follow-up to keep the conversation going."},
			{ID: RemoteID(3), Title: "Ankeny Parks", Suggestion: "Send proposal draft"},
		},
	}

	got := FallbackBrief(leads)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("brief mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestFallbackBriefSingleHotLead(t *testing.T) {
	leads := []Lead{{ID: RemoteID(1), Title: "City of Ames", Score: 84, Stage: StageContacted}}

	b := FallbackBrief(leads)
	if b.Summary != "1 hot lead in play: City of Ames." {
		t.Errorf("summary = %q", b.Summary)
	}
}

func TestFallbackBriefNoHotLeadsFallsBackToFirstLead(t *testing.T) {
	leads := []Lead{
		{ID: RemoteID(1), Title: "Des Moines Water", Score: 55, Stage: StageContacted},
		{ID: RemoteID(2), Title: "Waukee Schools", Score: 62, Stage: StageNew},
	}

	b := FallbackBrief(leads)
	if b.Summary != "No hot leads right now. Work the follow-up queue to build momentum." {
		t.Errorf("summary = %q", b.Summary)
	}
	if b.HotInsight != "Des Moines Water (score 55) is your strongest opportunity today." {
		t.Errorf("hotInsight = %q, want first lead fallback", b.HotInsight)
	}
}

func TestFallbackBriefDeterministic(t *testing.T) {
	leads := []Lead{
		{ID: RemoteID(1), Title: "A", Score: 90, Stage: StageQualified},
		{ID: RemoteID(2), Title: "B", Score: 88, Stage: StageContacted},
	}

	first := FallbackBrief(leads)
	second := FallbackBrief(leads)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("fallback brief must be deterministic for a given snapshot")
	}
}
