package models

import "time"

// TimestampLayout formats a run's start time with minute granularity.
const TimestampLayout = "2006-01-02_15-04"

// TimestampKey returns the key shared by every artifact of one run.
// Two runs started in the same minute get the same key.
func TimestampKey(t time.Time) string {
	return t.Format(TimestampLayout)
}
