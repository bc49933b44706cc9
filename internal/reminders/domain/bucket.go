package domain

import "time"

// Bucket is the time classification of an open reminder relative to "today".
type Bucket string

const (
	BucketOverdue    Bucket = "overdue"
	BucketDueToday   Bucket = "due-today"
	BucketThisWeek   Bucket = "this-week"
	BucketNext30Days Bucket = "next-30-days"
	// BucketLater covers reminders more than 30 days out. They appear in no
	// dashboard counter but stay in the queue listing.
	BucketLater Bucket = "later"
)

// Buckets is the triaged reminder queue.
type Buckets struct {
	Overdue    []Reminder `json:"overdue"`
	DueToday   []Reminder `json:"dueToday"`
	ThisWeek   []Reminder `json:"thisWeek"`
	Next30Days []Reminder `json:"next30Days"`
	Later      []Reminder `json:"later"`
}

// Summary is the dashboard counter view over the reminder queue. Next30Days
// is cumulative: a reminder due in 5 days counts here and in ThisWeek. The
// counters are presented side by side on the dashboard, so they deliberately
// overlap rather than partition.
type Summary struct {
	Overdue      int `json:"overdue"`
	Today        int `json:"today"`
	ThisWeek     int `json:"thisWeek"`
	Next30Days   int `json:"next30Days"`
	TotalPending int `json:"totalPending"`
}

// DayBucket classifies a due date against today at calendar-day granularity.
// Time-of-day on either argument must not affect the result: comparisons are
// on whole days, never raw timestamp subtraction.
func DayBucket(today, due time.Time) Bucket {
	switch d := daysBetween(today, due); {
	case d < 0:
		return BucketOverdue
	case d == 0:
		return BucketDueToday
	case d <= 7:
		return BucketThisWeek
	case d <= 30:
		return BucketNext30Days
	default:
		return BucketLater
	}
}

// CountsTowardNext30 reports whether the due date lands in the cumulative
// next-30-days window (strictly after today, at most 30 days out).
func CountsTowardNext30(today, due time.Time) bool {
	d := daysBetween(today, due)
	return d > 0 && d <= 30
}

// BucketReminders triages open reminders into queue sections. Completed and
// cancelled reminders are ignored, as are rows whose due date fails to parse.
// Input order is preserved within each section.
func BucketReminders(today time.Time, reminders []Reminder) Buckets {
	var b Buckets
	for _, r := range reminders {
		if !r.Open() {
			continue
		}
		due, ok := r.Due()
		if !ok {
			continue
		}
		switch DayBucket(today, due) {
		case BucketOverdue:
			b.Overdue = append(b.Overdue, r)
		case BucketDueToday:
			b.DueToday = append(b.DueToday, r)
		case BucketThisWeek:
			b.ThisWeek = append(b.ThisWeek, r)
		case BucketNext30Days:
			b.Next30Days = append(b.Next30Days, r)
		default:
			b.Later = append(b.Later, r)
		}
	}
	return b
}

// Summarize computes the dashboard counters over the full reminder snapshot.
func Summarize(today time.Time, reminders []Reminder) Summary {
	var s Summary
	for _, r := range reminders {
		if r.Status == StatusPending {
			s.TotalPending++
		}
		if !r.Open() {
			continue
		}
		due, ok := r.Due()
		if !ok {
			continue
		}
		switch DayBucket(today, due) {
		case BucketOverdue:
			s.Overdue++
		case BucketDueToday:
			s.Today++
		case BucketThisWeek:
			s.ThisWeek++
		}
		if CountsTowardNext30(today, due) {
			s.Next30Days++
		}
	}
	return s
}

// daysBetween returns the number of calendar days from a to b, ignoring
// time-of-day and any timezone difference between the two values.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / (24 * time.Hour))
}
