// Package domain holds the pipeline core: the lead model, the stage
// machine, queue classification, reminder conversion, identity
// reconciliation, and the fallback brief. Every function operates on an
// in-memory snapshot supplied by the caller, returns new values instead of
// mutating shared state, and performs no I/O. The surrounding service layer
// owns persistence and remote calls.
package domain

// Source identifies where a lead entered the pipeline.
type Source string

const (
	// SourceMunicipal marks leads derived from municipal CRM reminders.
	SourceMunicipal Source = "municipal"
	// SourceBarrelhouse marks leads imported from the external CRM.
	SourceBarrelhouse Source = "barrelhouse"
	// SourceManual marks leads entered by hand.
	SourceManual Source = "manual"
)

// Lead is a sales opportunity moving through the pipeline.
type Lead struct {
	ID         LeadID `json:"id"`
	Source     Source `json:"source"`
	Title      string `json:"title"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Score      int    `json:"score"`
	Stage      Stage  `json:"stage"`
	NextAction string `json:"nextAction,omitempty"`
	CustomerID int64  `json:"customerId,omitempty"`
}

// FilterKey names a priority-queue filter toggle in the client.
type FilterKey string

const (
	FilterHot      FilterKey = "hot"
	FilterStale    FilterKey = "stale"
	FilterFollowUp FilterKey = "follow_up"
)

// Preferences is the user-configurable view state: which priority filters
// are active and which stages feed the My Day screen. It never influences
// lead data, only which derived views get rendered.
type Preferences struct {
	Filters     []FilterKey `json:"filters"`
	MyDayStages []Stage     `json:"my_day_stages"`
}

// DefaultPreferences returns the view state for a rep who has never saved
// any: no filters, My Day focused on the actionable middle of the funnel.
func DefaultPreferences() Preferences {
	return Preferences{
		Filters:     []FilterKey{},
		MyDayStages: []Stage{StageContacted, StageQualified, StageMeetingScheduled},
	}
}
