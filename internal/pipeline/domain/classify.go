package domain

const (
	// hotScoreMin is the score floor for the hot queue and the brief headline.
	hotScoreMin = 80
	// staleScoreMax is the exclusive score ceiling below which a Contacted
	// lead counts as stale.
	staleScoreMax = 60
)

// Classification is the derived priority-queue view over the lead snapshot.
// It is recomputed on every read and never stored. Queue membership
// overlaps: a lead can be hot and need follow-up at the same time.
type Classification struct {
	StageCounts   map[Stage]int `json:"stageCounts"`
	Hot           []Lead        `json:"hot"`
	Stale         []Lead        `json:"stale"`
	NeedsFollowUp []Lead        `json:"needsFollowUp"`
}

// Classify computes stage counts and queue membership from the lead
// snapshot. All six stages appear in StageCounts even at zero. The input
// slice is not modified; queue slices preserve snapshot order but callers
// must treat membership as set semantics.
func Classify(leads []Lead) Classification {
	c := Classification{
		StageCounts:   make(map[Stage]int, len(stageNames)),
		Hot:           []Lead{},
		Stale:         []Lead{},
		NeedsFollowUp: []Lead{},
	}
	for _, s := range Stages() {
		c.StageCounts[s] = 0
	}

	for _, l := range leads {
		if l.Stage.Valid() {
			c.StageCounts[l.Stage]++
		}
		if l.Score >= hotScoreMin && l.Stage != StageWonClosed {
			c.Hot = append(c.Hot, l)
		}
		if l.Stage == StageContacted && l.Score < staleScoreMax {
			c.Stale = append(c.Stale, l)
		}
		if l.Stage == StageQualified || l.Stage == StageMeetingScheduled {
			c.NeedsFollowUp = append(c.NeedsFollowUp, l)
		}
	}
	return c
}
