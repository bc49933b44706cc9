package domain

import (
	"fmt"
	"strings"
)

// BriefFollowUp is one suggested next touch in the morning brief.
type BriefFollowUp struct {
	ID         LeadID `json:"id"`
	Title      string `json:"title"`
	Suggestion string `json:"suggestion"`
}

// Brief is the morning summary shown on the dashboard. The same shape comes
// back from the AI assist service; this package produces the deterministic
// fallback used when that service is unreachable or not yet invoked.
type Brief struct {
	Summary    string          `json:"summary"`
	HotInsight string          `json:"hotInsight"`
	FollowUps  []BriefFollowUp `json:"followUps"`
}

const (
	briefNoHotLeads    = "No hot leads right now. Work the follow-up queue to build momentum."
	briefNoActiveLeads = "No active leads yet. Convert a reminder to get the pipeline moving."
	briefGenericAction = "Draft a follow-up to keep the conversation going."
)

// FallbackBrief builds the brief from the lead snapshot alone: no
// randomness, no clock, no external calls. Identical snapshots always
// produce identical briefs, which makes the output usable offline and as a
// golden test fixture.
func FallbackBrief(leads []Lead) Brief {
	return Brief{
		Summary:    briefSummary(leads),
		HotInsight: briefHotInsight(leads),
		FollowUps:  briefFollowUps(leads),
	}
}

// briefSummary counts score-qualified leads and names up to two of them.
// Unlike the hot queue, the headline does not exclude Won / Closed: a
// just-won 90-score deal still belongs in the morning headline.
func briefSummary(leads []Lead) string {
	var hot []Lead
	for _, l := range leads {
		if l.Score >= hotScoreMin {
			hot = append(hot, l)
		}
	}
	if len(hot) == 0 {
		return briefNoHotLeads
	}

	names := make([]string, 0, 2)
	for _, l := range hot {
		names = append(names, l.Title)
		if len(names) == 2 {
			break
		}
	}
	if len(hot) == 1 {
		return fmt.Sprintf("1 hot lead in play: %s.", names[0])
	}
	return fmt.Sprintf("%d hot leads in play: %s.", len(hot), strings.Join(names, ", "))
}

// briefHotInsight names the highest-scoring hot lead, falling back to the
// first lead overall when nothing clears the hot threshold.
func briefHotInsight(leads []Lead) string {
	if len(leads) == 0 {
		return briefNoActiveLeads
	}

	best := leads[0]
	found := false
	for _, l := range leads {
		if l.Score < hotScoreMin {
			continue
		}
		if !found || l.Score > best.Score {
			best = l
			found = true
		}
	}
	return fmt.Sprintf("%s (score %d) is your strongest opportunity today.", best.Title, best.Score)
}

func briefFollowUps(leads []Lead) []BriefFollowUp {
	out := make([]BriefFollowUp, 0, 3)
	for _, l := range leads {
		suggestion := l.NextAction
		if suggestion == "" {
			suggestion = briefGenericAction
		}
		out = append(out, BriefFollowUp{ID: l.ID, Title: l.Title, Suggestion: suggestion})
		if len(out) == 3 {
			break
		}
	}
	return out
}
