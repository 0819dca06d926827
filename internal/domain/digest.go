package domain

import "time"

// RevisionDigest is the daily revision summary sent to the user.
type RevisionDigest struct {
	Date         time.Time
	Due          []MemorizedRange
	Overdue      int
	RevisedToday int
	Total        int
}
