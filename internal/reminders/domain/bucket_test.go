package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayBucketWindows(t *testing.T) {
	today := date(2024, time.June, 10)

	tests := []struct {
		due  string
		want Bucket
	}{
		{"2024-06-09", BucketOverdue},
		{"2024-05-01", BucketOverdue},
		{"2024-06-10", BucketDueToday},
		{"2024-06-11", BucketThisWeek},
		{"2024-06-15", BucketThisWeek},
		{"2024-06-17", BucketThisWeek},   // exactly 7 days out
		{"2024-06-18", BucketNext30Days}, // day 8
		{"2024-07-05", BucketNext30Days},
		{"2024-07-10", BucketNext30Days}, // exactly 30 days out
		{"2024-07-11", BucketLater},
	}

	for _, tc := range tests {
		due, err := time.Parse("2006-01-02", tc.due)
		if err != nil {
			t.Fatalf("bad test date %q: %v", tc.due, err)
		}
		if got := DayBucket(today, due); got != tc.want {
			t.Errorf("DayBucket(2024-06-10, %s) = %q, want %q", tc.due, got, tc.want)
		}
	}
}

func TestDayBucketIgnoresTimeOfDay(t *testing.T) {
	// A reminder created late in the evening must still be due-today, and an
	// early-morning "today" reference must not push same-day reminders into
	// overdue. Raw timestamp subtraction gets both of these wrong.
	today := time.Date(2024, time.June, 10, 23, 45, 0, 0, time.UTC)
	due := time.Date(2024, time.June, 10, 0, 0, 1, 0, time.UTC)

	if got := DayBucket(today, due); got != BucketDueToday {
		t.Fatalf("same calendar day classified as %q, want %q", got, BucketDueToday)
	}

	earlyToday := time.Date(2024, time.June, 10, 0, 5, 0, 0, time.UTC)
	dueTomorrowLate := time.Date(2024, time.June, 11, 23, 0, 0, 0, time.UTC)
	if got := DayBucket(earlyToday, dueTomorrowLate); got != BucketThisWeek {
		t.Fatalf("next calendar day classified as %q, want %q", got, BucketThisWeek)
	}
}

func TestCountsTowardNext30Overlap(t *testing.T) {
	today := date(2024, time.June, 10)

	// Due in 5 days: this-week AND counted toward next-30-days.
	in5 := date(2024, time.June, 15)
	if DayBucket(today, in5) != BucketThisWeek {
		t.Fatalf("expected this-week for +5 days")
	}
	if !CountsTowardNext30(today, in5) {
		t.Fatalf("+5 days must also count toward next-30-days")
	}

	// Due today is in neither forward-looking window.
	if CountsTowardNext30(today, today) {
		t.Fatalf("due-today must not count toward next-30-days")
	}
	// Overdue never counts forward.
	if CountsTowardNext30(today, date(2024, time.June, 9)) {
		t.Fatalf("overdue must not count toward next-30-days")
	}
}

func TestBucketRemindersFiltersClosedStatuses(t *testing.T) {
	today := date(2024, time.June, 10)
	reminders := []Reminder{
		{ID: 1, Title: "call", DueDate: "2024-06-09", Status: StatusPending},
		{ID: 2, Title: "visit", DueDate: "2024-06-10", Status: StatusSnoozed},
		{ID: 3, Title: "done", DueDate: "2024-06-10", Status: StatusCompleted},
		{ID: 4, Title: "dropped", DueDate: "2024-06-10", Status: StatusCancelled},
		{ID: 5, Title: "bad date", DueDate: "not-a-date", Status: StatusPending},
	}

	b := BucketReminders(today, reminders)

	if len(b.Overdue) != 1 || b.Overdue[0].ID != 1 {
		t.Fatalf("expected reminder 1 overdue, got %+v", b.Overdue)
	}
	if len(b.DueToday) != 1 || b.DueToday[0].ID != 2 {
		t.Fatalf("expected snoozed reminder 2 due today, got %+v", b.DueToday)
	}
	if len(b.ThisWeek) != 0 || len(b.Next30Days) != 0 || len(b.Later) != 0 {
		t.Fatalf("expected empty forward buckets, got %+v", b)
	}
}

func TestSummarizeScenario(t *testing.T) {
	// today = 2024-06-10; due 06-09 overdue, 06-10 today, 06-15 this-week and
	// next-30, 07-05 next-30 only.
	today := date(2024, time.June, 10)
	reminders := []Reminder{
		{ID: 1, DueDate: "2024-06-09", Status: StatusPending},
		{ID: 2, DueDate: "2024-06-10", Status: StatusPending},
		{ID: 3, DueDate: "2024-06-15", Status: StatusPending},
		{ID: 4, DueDate: "2024-07-05", Status: StatusSnoozed},
	}

	s := Summarize(today, reminders)

	if s.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", s.Overdue)
	}
	if s.Today != 1 {
		t.Errorf("today = %d, want 1", s.Today)
	}
	if s.ThisWeek != 1 {
		t.Errorf("thisWeek = %d, want 1", s.ThisWeek)
	}
	if s.Next30Days != 2 {
		t.Errorf("next30Days = %d, want 2 (cumulative with thisWeek)", s.Next30Days)
	}
	if s.TotalPending != 3 {
		t.Errorf("totalPending = %d, want 3 (snoozed excluded)", s.TotalPending)
	}
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	s := Summarize(date(2024, time.June, 10), nil)
	if s != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}
