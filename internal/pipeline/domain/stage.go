package domain

import "fmt"

// Stage is a step in the fixed pipeline sequence. The ordering is total and
// drives advance/retreat as well as the default My Day stage filters.
type Stage int

const (
	StageNew Stage = iota
	StageContacted
	StageQualified
	StageMeetingScheduled
	StageProposalSent
	StageWonClosed
)

var stageNames = [...]string{
	StageNew:              "New",
	StageContacted:        "Contacted",
	StageQualified:        "Qualified",
	StageMeetingScheduled: "Meeting Scheduled",
	StageProposalSent:     "Proposal / Bid Sent",
	StageWonClosed:        "Won / Closed",
}

// Stages returns every stage in pipeline order.
func Stages() []Stage {
	return []Stage{
		StageNew,
		StageContacted,
		StageQualified,
		StageMeetingScheduled,
		StageProposalSent,
		StageWonClosed,
	}
}

// Valid reports whether the stage is one of the six defined values.
func (s Stage) Valid() bool {
	return s >= StageNew && s <= StageWonClosed
}

// String returns the display name used on the wire and in the client UI.
func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage maps a display name back to its stage.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return StageNew, fmt.Errorf("unknown pipeline stage %q", name)
}

// Advance moves one step forward. Advancing Won / Closed is a no-op: the
// transition saturates rather than erroring.
func (s Stage) Advance() Stage {
	if s >= StageWonClosed {
		return StageWonClosed
	}
	if s < StageNew {
		return StageNew
	}
	return s + 1
}

// Retreat moves one step back, saturating at New.
func (s Stage) Retreat() Stage {
	if s <= StageNew {
		return StageNew
	}
	if s > StageWonClosed {
		return StageWonClosed
	}
	return s - 1
}

// MarshalText lets stages serialize by display name, including as JSON map keys.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid stage %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText parses a stage from its display name.
func (s *Stage) UnmarshalText(data []byte) error {
	parsed, err := ParseStage(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
